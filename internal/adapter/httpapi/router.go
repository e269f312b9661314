package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/datastd/internal/infrastructure/config"
	"github.com/eslsoft/datastd/internal/usecase"
)

// NewRouter assembles the HTTP surface: middleware, health and metrics
// endpoints, and the versioned resource routes.
func NewRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	roots usecase.RootUsecase,
	fields usecase.FieldUsecase,
	tasks usecase.TaskUsecase,
) *chi.Mux {
	metrics := NewMetrics()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeOK(w, req, map[string]string{"status": "up"})
	})
	r.Handle("/metrics", metrics.Handler())

	rootHandler := NewRootHandler(roots)
	fieldHandler := NewFieldHandler(fields)
	taskHandler := NewTaskHandler(tasks)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/naming/resolve", fieldHandler.Resolve)
		r.Route("/roots", rootHandler.Register)
		r.Route("/fields", fieldHandler.Register)
		r.Route("/tasks", taskHandler.Register)
	})

	return r
}
