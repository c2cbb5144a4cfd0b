package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tracker/internal/model"
	"tracker/internal/repository"
)

// ProjectInput represents data required to create a project.
type ProjectInput struct {
	Title string
}

// ProjectPatch lists the fields to change; nil means keep.
type ProjectPatch struct {
	Title *string
}

// ProjectService wraps project-related business logic.
type ProjectService struct {
	repo *repository.ProjectRepository
}

func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	title, err := requiredText("title", in.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}

	project := model.Project{Title: title}
	if err := s.repo.Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) List(ctx context.Context, p model.PageRequest) (model.Page[model.Project], error) {
	p = p.Normalize()
	projects, total, err := s.repo.List(ctx, p)
	if err != nil {
		return model.Page[model.Project]{}, err
	}
	return model.Page[model.Project]{Data: projects, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
	}
	return project, err
}

func (s *ProjectService) Update(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error) {
	if patch.Title == nil {
		return s.Get(ctx, id)
	}

	title, err := requiredText("title", *patch.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTitle(ctx, id, title); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the project together with its tasks and their comments.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return err
	}
	log.Printf("[info] project deleted id=%d", id)
	return nil
}
