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

// FieldHandler exposes name resolution and the standard field registry.
type FieldHandler struct {
	uc usecase.FieldUsecase
}

func NewFieldHandler(uc usecase.FieldUsecase) *FieldHandler {
	return &FieldHandler{uc: uc}
}

func (h *FieldHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/", h.DeleteAll)
	r.Get("/search", h.Search)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type resolveRequest struct {
	Description string `json:"description"`
}

func (h *FieldHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err))
		return
	}
	result, err := h.uc.Resolve(r.Context(), req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, result)
}

func (h *FieldHandler) Create(w http.ResponseWriter, r *http.Request) {
	var field entity.StandardField
	if err := render.DecodeJSON(r.Body, &field); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err))
		return
	}
	created, err := h.uc.Create(r.Context(), &field)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, created)
}

func (h *FieldHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var field entity.StandardField
	if err := render.DecodeJSON(r.Body, &field); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err))
		return
	}
	field.ID = id
	updated, err := h.uc.Update(r.Context(), &field)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, updated)
}

func (h *FieldHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, detail)
}

func (h *FieldHandler) List(w http.ResponseWriter, r *http.Request) {
	page, filter := listQuery(r)
	query := &repository.ListFieldQuery{Pagination: page, FilterOrder: filter}
	fields, total, err := h.uc.List(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, fields, total, query.PageNo, query.PageSize)
}

func (h *FieldHandler) Search(w http.ResponseWriter, r *http.Request) {
	fields, err := h.uc.Search(r.Context(), r.URL.Query().Get("keyword"), limitParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, fields)
}

func (h *FieldHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *FieldHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, nil)
}
