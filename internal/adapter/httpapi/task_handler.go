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

// TaskHandler exposes the review queue.
type TaskHandler struct {
	uc usecase.TaskUsecase
}

func NewTaskHandler(uc usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

func (h *TaskHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/unread-count", h.UnreadCount)
	r.Post("/{id}/read", h.MarkRead)
	r.Post("/{id}/resolve", h.Resolve)
	r.Post("/{id}/resolve-root", h.ResolveAsNewRoot)
	r.Post("/{id}/approve-field", h.ResolveAsApprovedField)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	page, filter := listQuery(r)
	query := &repository.ListTaskQuery{Pagination: page, FilterOrder: filter}
	tasks, total, err := h.uc.List(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, tasks, total, query.PageNo, query.PageSize)
}

type unreadCountResponse struct {
	Count int64 `json:"count"`
}

func (h *TaskHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.uc.UnreadCount(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, unreadCountResponse{Count: count})
}

func (h *TaskHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	task, err := h.uc.MarkRead(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, task)
}

func (h *TaskHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	task, err := h.uc.Resolve(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, task)
}

type resolveRootRequest struct {
	Root *entity.WordRoot `json:"root"`
}

func (h *TaskHandler) ResolveAsNewRoot(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req resolveRootRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err))
		return
	}
	if req.Root == nil {
		writeError(w, r, fmt.Errorf("%w: root payload required", entity.ErrInvalidArgument))
		return
	}
	root, err := h.uc.ResolveAsNewRoot(r.Context(), id, req.Root)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, root)
}

func (h *TaskHandler) ResolveAsApprovedField(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	field, err := h.uc.ResolveAsApprovedField(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, r, field)
}
