package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/repository"
)

func TestTaskList_NormalizesPagination(t *testing.T) {
	repo := &mockTaskRepo{}
	uc := NewTaskUsecase(repo)

	if _, _, err := uc.List(context.Background(), &repository.ListTaskQuery{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.listQuery.PageNo != 1 || repo.listQuery.PageSize != repository.DefaultPageSize {
		t.Fatalf("pagination not normalized: %+v", repo.listQuery.Pagination)
	}

	if _, _, err := uc.List(context.Background(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.listQuery == nil {
		t.Fatalf("nil query must become an empty one")
	}
}

func TestTaskUnreadCount(t *testing.T) {
	repo := &mockTaskRepo{unread: 7}
	uc := NewTaskUsecase(repo)

	n, err := uc.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 7 {
		t.Fatalf("unread: got %d", n)
	}
}

func TestMarkReadTask(t *testing.T) {
	read := &entity.NotificationTask{ID: 5, Type: entity.TaskRootRequest, IsRead: true}
	repo := &mockTaskRepo{task: read}
	uc := NewTaskUsecase(repo)

	got, err := uc.MarkRead(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.markReadID != 5 || !got.IsRead {
		t.Fatalf("got id=%d task=%+v", repo.markReadID, got)
	}

	if _, err := uc.MarkRead(context.Background(), 0); !errors.Is(err, entity.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestResolveTask_Dismiss(t *testing.T) {
	repo := &mockTaskRepo{task: &entity.NotificationTask{ID: 4, IsRead: true}}
	uc := NewTaskUsecase(repo)

	if _, err := uc.Resolve(context.Background(), 4); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.resolveID != 4 {
		t.Fatalf("resolve id: got %d", repo.resolveID)
	}
}

func TestResolveTask_PropagatesResolved(t *testing.T) {
	repo := &mockTaskRepo{taskErr: entity.ErrTaskResolved}
	uc := NewTaskUsecase(repo)

	if _, err := uc.Resolve(context.Background(), 4); !errors.Is(err, entity.ErrTaskResolved) {
		t.Fatalf("expected ErrTaskResolved, got %v", err)
	}
}

func TestResolveAsNewRoot_NormalizesRoot(t *testing.T) {
	repo := &mockTaskRepo{}
	uc := NewTaskUsecase(repo)

	got, err := uc.ResolveAsNewRoot(context.Background(), 2, &entity.WordRoot{
		CNName: " 税费 ",
		ENAbbr: " TAX ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.resolveID != 2 {
		t.Fatalf("resolve id: got %d", repo.resolveID)
	}
	if got.CNName != "税费" || got.ENAbbr != "tax" {
		t.Fatalf("root not normalized: %+v", got)
	}
}

func TestResolveAsNewRoot_RejectsInvalidRoot(t *testing.T) {
	repo := &mockTaskRepo{}
	uc := NewTaskUsecase(repo)

	_, err := uc.ResolveAsNewRoot(context.Background(), 2, &entity.WordRoot{CNName: "税费"})
	if !errors.Is(err, entity.ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot, got %v", err)
	}
	if repo.resolveID != 0 {
		t.Fatalf("invalid root must not reach the repo")
	}
}

func TestResolveAsNewRoot_PropagatesDuplicate(t *testing.T) {
	repo := &mockTaskRepo{resolveErr: entity.ErrDuplicateAbbr}
	uc := NewTaskUsecase(repo)

	_, err := uc.ResolveAsNewRoot(context.Background(), 2, &entity.WordRoot{CNName: "税费", ENAbbr: "tax"})
	if !errors.Is(err, entity.ErrDuplicateAbbr) {
		t.Fatalf("expected ErrDuplicateAbbr, got %v", err)
	}
}

func TestResolveAsApprovedField(t *testing.T) {
	approved := &entity.StandardField{ID: 9, ENName: "order_tax", IsStandard: true}
	repo := &mockTaskRepo{approved: approved}
	uc := NewTaskUsecase(repo)

	got, err := uc.ResolveAsApprovedField(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.resolveID != 3 || !got.IsStandard {
		t.Fatalf("got id=%d field=%+v", repo.resolveID, got)
	}

	if _, err := uc.ResolveAsApprovedField(context.Background(), 0); !errors.Is(err, entity.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestResolveAsApprovedField_PropagatesIncomplete(t *testing.T) {
	repo := &mockTaskRepo{resolveErr: entity.ErrFieldIncomplete}
	uc := NewTaskUsecase(repo)

	if _, err := uc.ResolveAsApprovedField(context.Background(), 3); !errors.Is(err, entity.ErrFieldIncomplete) {
		t.Fatalf("expected ErrFieldIncomplete, got %v", err)
	}
}
