package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/spf13/cast"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/repository"
)

// response is the wire envelope shared by every endpoint: status 0 means
// success, any other value repeats the HTTP status code of the failure.
type response struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
}

// pagedResponse extends the envelope with pagination totals.
type pagedResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data"`
	Total  int64  `json:"total"`
	Page   int32  `json:"page"`
	Size   int32  `json:"size"`
}

func writeOK(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{Status: 0, Msg: "ok", Data: data})
}

func writePage(w http.ResponseWriter, r *http.Request, data any, total int64, page, size int32) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, pagedResponse{Status: 0, Msg: "ok", Data: data, Total: total, Page: page, Size: size})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	render.Status(r, code)
	render.JSON(w, r, response{Status: code, Msg: err.Error()})
}

// statusCode keeps the domain error to HTTP status mapping in one place.
func statusCode(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument),
		errors.Is(err, entity.ErrInvalidRoot),
		errors.Is(err, entity.ErrInvalidField),
		errors.Is(err, entity.ErrInvalidTaskType),
		errors.Is(err, entity.ErrEmptyDescription):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrRootNotFound),
		errors.Is(err, entity.ErrFieldNotFound),
		errors.Is(err, entity.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateAbbr),
		errors.Is(err, entity.ErrDuplicateFieldName),
		errors.Is(err, entity.ErrRootReferenced),
		errors.Is(err, entity.ErrTaskResolved),
		errors.Is(err, entity.ErrFieldIncomplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func idParam(r *http.Request) (int64, error) {
	id := cast.ToInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", entity.ErrInvalidArgument)
	}
	return id, nil
}

func listQuery(r *http.Request) (repository.Pagination, repository.FilterOrder) {
	q := r.URL.Query()
	page := repository.Pagination{
		PageNo:   cast.ToInt32(q.Get("page_no")),
		PageSize: cast.ToInt32(q.Get("page_size")),
	}
	filter := repository.FilterOrder{
		Filter:  q.Get("filter"),
		OrderBy: q.Get("order_by"),
	}
	return page, filter
}

func limitParam(r *http.Request) int32 {
	return cast.ToInt32(r.URL.Query().Get("limit"))
}
