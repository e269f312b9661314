package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/repository"
	"github.com/eslsoft/datastd/internal/usecase"
)

// RootHandler exposes dictionary management over HTTP.
type RootHandler struct {
	uc usecase.RootUsecase
}

func NewRootHandler(uc usecase.RootUsecase) *RootHandler {
	return &RootHandler{uc: uc}
}

func (h *RootHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/", h.DeleteAll)
	r.Post("/batch", h.CreateBatch)
	r.Get("/similar", h.SearchSimilar)
	r.Get("/lookup", h.Lookup)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *RootHandler) Create(w http.ResponseWriter, r *http.Request) {
	var root entity.WordRoot
	if err := render.DecodeJSON(r.Body, &root); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err))
		return
	}
	created, err := h.uc.Create(r.Context(), &root)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, created)
}

type batchCreateRequest struct {
	Roots []*entity.WordRoot `json:"roots"`
}

func (h *RootHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchCreateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err))
		return
	}
	created, err := h.uc.CreateBatch(r.Context(), req.Roots)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, created)
}

func (h *RootHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var root entity.WordRoot
	if err := render.DecodeJSON(r.Body, &root); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err))
		return
	}
	root.ID = id
	updated, err := h.uc.Update(r.Context(), &root)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, updated)
}

func (h *RootHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	root, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, root)
}

func (h *RootHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	root, err := h.uc.Lookup(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if root == nil {
		writeError(w, r, entity.ErrRootNotFound)
		return
	}
	writeOK(w, r, root)
}

func (h *RootHandler) List(w http.ResponseWriter, r *http.Request) {
	page, filter := listQuery(r)
	query := &repository.ListRootQuery{Pagination: page, FilterOrder: filter}
	roots, total, err := h.uc.List(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, roots, total, query.PageNo, query.PageSize)
}

func (h *RootHandler) SearchSimilar(w http.ResponseWriter, r *http.Request) {
	roots, err := h.uc.SearchSimilar(r.Context(), r.URL.Query().Get("term"), limitParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, roots)
}

func (h *RootHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, nil)
}

func (h *RootHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, nil)
}
