package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tracker/internal/model"
	"tracker/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title     string
	Status    model.TaskStatus
	ProjectID uint
}

// TaskPatch lists the fields to change; nil means keep.
type TaskPatch struct {
	Title     *string
	Status    *model.TaskStatus
	ProjectID *uint
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, projectRepo: projectRepo}
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*model.Task, error) {
	title, err := requiredText("title", in.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = model.StatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of %v", ErrValidation, model.Statuses)
	}
	if err := requireID("projectId", in.ProjectID); err != nil {
		return nil, err
	}
	if err := s.ensureProject(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	task := model.Task{Title: title, Status: status, ProjectID: in.ProjectID}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return s.Get(ctx, task.ID)
}

// List returns a page of tasks; a non-nil projectID filters by project.
func (s *TaskService) List(ctx context.Context, p model.PageRequest, projectID *uint) (model.Page[model.Task], error) {
	p = p.Normalize()
	tasks, total, err := s.taskRepo.List(ctx, p, projectID)
	if err != nil {
		return model.Page[model.Task]{}, err
	}
	return model.Page[model.Task]{Data: tasks, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	return task, err
}

// Update merges patch into the task. Moving the task to a project that does
// not exist fails and leaves the task as it was.
func (s *TaskService) Update(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if patch.Title != nil {
		title, err := requiredText("title", *patch.Title, maxTitleLen)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: status must be one of %v", ErrValidation, model.Statuses)
		}
		fields["status"] = *patch.Status
	}
	if patch.ProjectID != nil && *patch.ProjectID != task.ProjectID {
		if err := requireID("projectId", *patch.ProjectID); err != nil {
			return nil, err
		}
		if err := s.ensureProject(ctx, *patch.ProjectID); err != nil {
			return nil, err
		}
		fields["project_id"] = *patch.ProjectID
	}
	if len(fields) == 0 {
		return task, nil
	}

	if err := s.taskRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrNotFound, id)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetStatus moves a task to status.
func (s *TaskService) SetStatus(ctx context.Context, id uint, status model.TaskStatus) (*model.Task, error) {
	return s.Update(ctx, id, TaskPatch{Status: &status})
}

// Delete removes a task and its comments.
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: task %d", ErrNotFound, id)
		}
		return err
	}
	log.Printf("[info] task deleted id=%d", id)
	return nil
}

func (s *TaskService) ensureProject(ctx context.Context, projectID uint) error {
	ok, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: project %d", ErrNotFound, projectID)
	}
	return nil
}
