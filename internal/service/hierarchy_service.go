package service

import (
	"context"
	"fmt"

	"tracker/internal/model"
	"tracker/internal/repository"
)

// HierarchyService assembles the project → task → comment tree shown by the
// client's hierarchy view.
type HierarchyService struct {
	projectRepo *repository.ProjectRepository
}

func NewHierarchyService(projectRepo *repository.ProjectRepository) *HierarchyService {
	return &HierarchyService{projectRepo: projectRepo}
}

// Tree returns a page of projects with tasks and comments nested. With a
// projectID the tree holds that single project, or fails if it is missing.
func (s *HierarchyService) Tree(ctx context.Context, p model.PageRequest, projectID *uint) (model.Page[model.Project], error) {
	p = p.Normalize()
	projects, total, err := s.projectRepo.ListTree(ctx, p, projectID)
	if err != nil {
		return model.Page[model.Project]{}, err
	}
	if projectID != nil && total == 0 {
		return model.Page[model.Project]{}, fmt.Errorf("%w: project %d", ErrNotFound, *projectID)
	}
	return model.Page[model.Project]{Data: projects, Total: total, Page: p.Page, Limit: p.Limit}, nil
}
