package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
	"github.com/contaflux/contaflux_backend/internal/middleware"
)

// taskService implements the task board.
type taskService struct {
	taskRepo portsrepo.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo portsrepo.TaskRepository) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := req.Status
	if status == "" {
		status = domain.TaskTodo
	}

	task := domain.Task{
		TaskID:      uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		AuditFields: domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		logger.Error("Failed to save task", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return &task, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, status *domain.TaskStatus) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListTasks(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, updaterUserID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}

	updated := false
	if req.Title != nil {
		task.Title = *req.Title
		updated = true
	}
	if req.Description != nil {
		task.Description = *req.Description
		updated = true
	}
	if req.Status != nil {
		task.Status = *req.Status
		updated = true
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
		updated = true
	}
	if !updated {
		return task, nil
	}

	task.Touch(updaterUserID, time.Now().UTC())
	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return task, nil
}

func (s *taskService) AdvanceTask(ctx context.Context, taskID string, updaterUserID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}

	next := task.NextStatus()
	if next == task.Status {
		return task, nil
	}

	task.Status = next
	task.Touch(updaterUserID, time.Now().UTC())
	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("failed to advance task %s: %w", taskID, err)
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	return nil
}
