package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/infrastructure/config"
	"github.com/eslsoft/datastd/internal/repository"
	"github.com/eslsoft/datastd/internal/usecase"
)

type fakeRootUC struct {
	root     *entity.WordRoot
	roots    []*entity.WordRoot
	total    int64
	err      error
	gotID    int64
	gotTerm  string
	gotLimit int32
}

func (f *fakeRootUC) Create(_ context.Context, root *entity.WordRoot) (*entity.WordRoot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return root, nil
}

func (f *fakeRootUC) CreateBatch(_ context.Context, roots []*entity.WordRoot) ([]*entity.WordRoot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return roots, nil
}

func (f *fakeRootUC) Update(_ context.Context, root *entity.WordRoot) (*entity.WordRoot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotID = root.ID
	return root, nil
}

func (f *fakeRootUC) Get(_ context.Context, id int64) (*entity.WordRoot, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.root, nil
}

func (f *fakeRootUC) Lookup(_ context.Context, term string) (*entity.WordRoot, error) {
	f.gotTerm = term
	if f.err != nil {
		return nil, f.err
	}
	return f.root, nil
}

func (f *fakeRootUC) List(_ context.Context, query *repository.ListRootQuery) ([]*entity.WordRoot, int64, error) {
	query.Normalize()
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.roots, f.total, nil
}

func (f *fakeRootUC) SearchSimilar(_ context.Context, term string, limit int32) ([]*entity.WordRoot, error) {
	f.gotTerm = term
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.roots, nil
}

func (f *fakeRootUC) Delete(_ context.Context, id int64) error {
	f.gotID = id
	return f.err
}

func (f *fakeRootUC) DeleteAll(context.Context) error { return f.err }

type fakeFieldUC struct {
	result *usecase.ResolveResult
	field  *entity.StandardField
	detail *entity.FieldDetail
	list   []*entity.StandardField
	total  int64
	err    error
	gotID  int64
	gotKw  string
}

func (f *fakeFieldUC) Resolve(_ context.Context, description string) (*usecase.ResolveResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeFieldUC) Create(_ context.Context, field *entity.StandardField) (*entity.StandardField, error) {
	if f.err != nil {
		return nil, f.err
	}
	return field, nil
}

func (f *fakeFieldUC) Update(_ context.Context, field *entity.StandardField) (*entity.StandardField, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotID = field.ID
	return field, nil
}

func (f *fakeFieldUC) Get(_ context.Context, id int64) (*entity.FieldDetail, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f *fakeFieldUC) List(_ context.Context, query *repository.ListFieldQuery) ([]*entity.StandardField, int64, error) {
	query.Normalize()
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.list, f.total, nil
}

func (f *fakeFieldUC) Search(_ context.Context, keyword string, limit int32) ([]*entity.StandardField, error) {
	f.gotKw = keyword
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeFieldUC) Delete(_ context.Context, id int64) error {
	f.gotID = id
	return f.err
}

func (f *fakeFieldUC) DeleteAll(context.Context) error { return f.err }

type fakeTaskUC struct {
	task   *entity.NotificationTask
	tasks  []*entity.NotificationTask
	root   *entity.WordRoot
	field  *entity.StandardField
	unread int64
	total  int64
	err    error
	gotID  int64
}

func (f *fakeTaskUC) List(_ context.Context, query *repository.ListTaskQuery) ([]*entity.NotificationTask, int64, error) {
	query.Normalize()
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.tasks, f.total, nil
}

func (f *fakeTaskUC) UnreadCount(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.unread, nil
}

func (f *fakeTaskUC) MarkRead(_ context.Context, id int64) (*entity.NotificationTask, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

func (f *fakeTaskUC) Resolve(_ context.Context, id int64) (*entity.NotificationTask, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

func (f *fakeTaskUC) ResolveAsNewRoot(_ context.Context, id int64, root *entity.WordRoot) (*entity.WordRoot, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return root, nil
}

func (f *fakeTaskUC) ResolveAsApprovedField(_ context.Context, id int64) (*entity.StandardField, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.field, nil
}

type envelope struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	Total  int64           `json:"total"`
	Page   int32           `json:"page"`
	Size   int32           `json:"size"`
}

func newTestRouter(roots usecase.RootUsecase, fields usecase.FieldUsecase, tasks usecase.TaskUsecase) http.Handler {
	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"*"}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRouter(cfg, logger, roots, fields, tasks)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestResolveEndpoint(t *testing.T) {
	fields := &fakeFieldUC{result: &usecase.ResolveResult{
		Composition: entity.Composition{
			CNName:       "订单金额",
			ENName:       "order_amt",
			DataType:     "varchar(32)",
			FullyMatched: true,
		},
	}}
	h := newTestRouter(&fakeRootUC{}, fields, &fakeTaskUC{})

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/naming/resolve", `{"description":"订单金额"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if env.Status != 0 {
		t.Fatalf("expected envelope status 0, got %d", env.Status)
	}

	var result usecase.ResolveResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if result.Composition.ENName != "order_amt" {
		t.Fatalf("expected en_name order_amt, got %q", result.Composition.ENName)
	}
}

func TestResolveMapsEmptyDescription(t *testing.T) {
	fields := &fakeFieldUC{err: entity.ErrEmptyDescription}
	h := newTestRouter(&fakeRootUC{}, fields, &fakeTaskUC{})

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/naming/resolve", `{"description":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Status != http.StatusBadRequest {
		t.Fatalf("expected envelope status 400, got %d", env.Status)
	}
}

func TestGetRootMapsNotFound(t *testing.T) {
	roots := &fakeRootUC{err: entity.ErrRootNotFound}
	h := newTestRouter(roots, &fakeFieldUC{}, &fakeTaskUC{})

	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/roots/7", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if roots.gotID != 7 {
		t.Fatalf("expected id 7 passed through, got %d", roots.gotID)
	}
}

func TestCreateRootMapsDuplicateToConflict(t *testing.T) {
	roots := &fakeRootUC{err: entity.ErrDuplicateAbbr}
	h := newTestRouter(roots, &fakeFieldUC{}, &fakeTaskUC{})

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/roots", `{"cn_name":"订单","en_abbr":"order"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(env.Msg, "already exists") {
		t.Fatalf("expected duplicate message, got %q", env.Msg)
	}
}

func TestListRootsEchoesClampedPagination(t *testing.T) {
	roots := &fakeRootUC{
		roots: []*entity.WordRoot{{ID: 1, CNName: "订单", ENAbbr: "order"}},
		total: 42,
	}
	h := newTestRouter(roots, &fakeFieldUC{}, &fakeTaskUC{})

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/roots?page_no=0&page_size=0", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Total != 42 {
		t.Fatalf("expected total 42, got %d", env.Total)
	}
	if env.Page != 1 || env.Size != repository.DefaultPageSize {
		t.Fatalf("expected clamped page 1/size %d, got %d/%d", repository.DefaultPageSize, env.Page, env.Size)
	}
}

func TestInvalidIDRejected(t *testing.T) {
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, &fakeTaskUC{})

	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/roots/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookupMissIs404(t *testing.T) {
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, &fakeTaskUC{})

	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/roots/lookup?term=税费", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown term, got %d", rec.Code)
	}
}

func TestUnreadCount(t *testing.T) {
	tasks := &fakeTaskUC{unread: 3}
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, tasks)

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/tasks/unread-count", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var data unreadCountResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Count != 3 {
		t.Fatalf("expected count 3, got %d", data.Count)
	}
}

func TestResolveRootRequiresPayload(t *testing.T) {
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, &fakeTaskUC{})

	rec, _ := doRequest(t, h, http.MethodPost, "/api/v1/tasks/5/resolve-root", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without root payload, got %d", rec.Code)
	}
}

func TestResolveResolvedTaskConflicts(t *testing.T) {
	tasks := &fakeTaskUC{err: entity.ErrTaskResolved}
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, tasks)

	rec, _ := doRequest(t, h, http.MethodPost, "/api/v1/tasks/5/resolve", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for resolved task, got %d", rec.Code)
	}
	if tasks.gotID != 5 {
		t.Fatalf("expected id 5 passed through, got %d", tasks.gotID)
	}
}

func TestApproveFieldMapsIncomplete(t *testing.T) {
	tasks := &fakeTaskUC{err: entity.ErrFieldIncomplete}
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, tasks)

	rec, _ := doRequest(t, h, http.MethodPost, "/api/v1/tasks/5/approve-field", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for incomplete field, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, &fakeTaskUC{})

	rec, env := doRequest(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Status != 0 {
		t.Fatalf("expected status 0, got %d", env.Status)
	}
}

func TestMetricsExposed(t *testing.T) {
	h := newTestRouter(&fakeRootUC{}, &fakeFieldUC{}, &fakeTaskUC{})

	// Drive one request through the middleware so the counter has a sample.
	doRequest(t, h, http.MethodGet, "/healthz", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "datastd_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}
