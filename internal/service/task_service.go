package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/dto"
	"github.com/avelichko/taskdeck/internal/repository"
)

const (
	defaultTaskPageSize = 20
	maxTaskPageSize     = 100
)

// taskService implements TaskService interface
type taskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

// Create creates a task owned by the principal
func (s *taskService) Create(ctx context.Context, principal *domain.Principal, req *dto.CreateTaskRequest) (*domain.Task, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
	}

	task := &domain.Task{
		UserID:      principal.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatusOpen,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get retrieves a task the principal owns
func (s *taskService) Get(ctx context.Context, principal *domain.Principal, taskID string) (*domain.Task, error) {
	return s.ownedTask(ctx, principal, taskID)
}

// NormalizePage clamps pagination parameters to the allowed page window
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultTaskPageSize
	}
	if limit > maxTaskPageSize {
		limit = maxTaskPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List retrieves a page of the principal's tasks
func (s *taskService) List(ctx context.Context, principal *domain.Principal, limit, offset int) ([]*domain.Task, int, error) {
	limit, offset = NormalizePage(limit, offset)
	return s.taskRepo.ListByUserID(ctx, principal.UserID, limit, offset)
}

// Update applies the non-nil fields of the request to a task the principal owns
func (s *taskService) Update(ctx context.Context, principal *domain.Principal, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, principal, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes a task the principal owns
func (s *taskService) Delete(ctx context.Context, principal *domain.Principal, taskID string) error {
	if _, err := s.ownedTask(ctx, principal, taskID); err != nil {
		return err
	}

	return s.taskRepo.Delete(ctx, taskID)
}

// ownedTask loads a task and enforces ownership. Admins may operate on any
// task.
func (s *taskService) ownedTask(ctx context.Context, principal *domain.Principal, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.UserID != principal.UserID && principal.Role != domain.UserTypeAdmin {
		return nil, fmt.Errorf("task %s belongs to another user: %w", taskID, ErrForbidden)
	}

	return task, nil
}

func parseDueDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, fmt.Errorf("invalid due_date, expected RFC3339: %w", ErrValidation)
	}

	return &t, nil
}
