package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracker/internal/model"
)

// ProjectRepository handles CRUD for projects.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count projects: %w", err)
	}
	return count > 0, nil
}

func (r *ProjectRepository) List(ctx context.Context, p model.PageRequest) ([]model.Project, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	projects := []model.Project{}
	if err := db.Scopes(paginate(p)).Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return projects, total, nil
}

// ListTree returns a page of projects with their tasks and each task's
// comments preloaded. A non-nil projectID narrows the tree to one project.
func (r *ProjectRepository) ListTree(ctx context.Context, p model.PageRequest, projectID *uint) ([]model.Project, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if projectID != nil {
			return db.Where("id = ?", *projectID)
		}
		return db
	}
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.Project{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	projects := []model.Project{}
	err := db.Scopes(filter, paginate(p)).
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Tasks.Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list project tree: %w", err)
	}
	return projects, total, nil
}

func (r *ProjectRepository) UpdateTitle(ctx context.Context, id uint, title string) error {
	res := r.db.WithContext(ctx).Model(&model.Project{ID: id}).Update("title", title)
	if res.Error != nil {
		return fmt.Errorf("update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project; the store cascades to its tasks and their comments.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Project{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}
