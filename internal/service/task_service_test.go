package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/dto"
	"github.com/avelichko/taskdeck/internal/repository"
)

// fakeTaskRepo is a map-backed task store
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
	seq   int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if task.ID == "" {
		task.ID = fmt.Sprintf("task-%d", f.seq)
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return task, nil
}

func (f *fakeTaskRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Task, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var owned []*domain.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			owned = append(owned, task)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func standardPrincipal(userID string) *domain.Principal {
	return &domain.Principal{UserID: userID, Role: domain.UserTypeStandard}
}

func TestTaskService_CreateAndGet(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()
	principal := standardPrincipal("user-1")

	due := "2026-10-01T12:00:00Z"
	created, err := svc.Create(ctx, principal, &dto.CreateTaskRequest{
		Title:       "Write report",
		Description: "quarterly numbers",
		Priority:    "high",
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, domain.TaskStatusOpen, created.Status)
	assert.Equal(t, domain.TaskPriorityHigh, created.Priority)
	require.NotNil(t, created.DueDate)

	got, err := svc.Get(ctx, principal, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestTaskService_Create_BadDueDate(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())
	bad := "next tuesday"

	_, err := svc.Create(context.Background(), standardPrincipal("user-1"), &dto.CreateTaskRequest{
		Title:   "x",
		DueDate: &bad,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_OwnershipEnforced(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, standardPrincipal("user-1"), &dto.CreateTaskRequest{Title: "mine"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, standardPrincipal("user-2"), created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, standardPrincipal("user-2"), created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may operate on any task.
	admin := &domain.Principal{UserID: "admin-1", Role: domain.UserTypeAdmin}
	_, err = svc.Get(ctx, admin, created.ID)
	require.NoError(t, err)
}

func TestTaskService_Update(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()
	principal := standardPrincipal("user-1")

	created, err := svc.Create(ctx, principal, &dto.CreateTaskRequest{Title: "before"})
	require.NoError(t, err)

	title := "after"
	status := "done"
	updated, err := svc.Update(ctx, principal, created.ID, &dto.UpdateTaskRequest{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, domain.TaskStatusDone, updated.Status)
	// Untouched fields stay put.
	assert.Equal(t, domain.TaskPriorityMedium, updated.Priority)
}

func TestTaskService_ListPagination(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()
	principal := standardPrincipal("user-1")

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, principal, &dto.CreateTaskRequest{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, standardPrincipal("user-2"), &dto.CreateTaskRequest{Title: "other"})
	require.NoError(t, err)

	page, total, err := svc.List(ctx, principal, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)

	rest, _, err := svc.List(ctx, principal, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}
