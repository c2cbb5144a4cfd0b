package service

import (
	"context"
	"errors"
	"fmt"

	"tracker/internal/model"
	"tracker/internal/repository"
)

type CommentInput struct {
	Content string
	TaskID  uint
}

type CommentPatch struct {
	Content *string
}

// CommentService wraps comment-related business logic.
type CommentService struct {
	commentRepo *repository.CommentRepository
	taskRepo    *repository.TaskRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, taskRepo *repository.TaskRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, taskRepo: taskRepo}
}

func (s *CommentService) Create(ctx context.Context, in CommentInput) (*model.Comment, error) {
	content, err := requiredText("content", in.Content, 0)
	if err != nil {
		return nil, err
	}
	if err := requireID("taskId", in.TaskID); err != nil {
		return nil, err
	}

	ok, err := s.taskRepo.Exists(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: task %d", ErrNotFound, in.TaskID)
	}

	comment := model.Comment{Content: content, TaskID: in.TaskID}
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}
	return s.Get(ctx, comment.ID)
}

func (s *CommentService) List(ctx context.Context, p model.PageRequest, taskID *uint) (model.Page[model.Comment], error) {
	p = p.Normalize()
	comments, total, err := s.commentRepo.List(ctx, p, taskID)
	if err != nil {
		return model.Page[model.Comment]{}, err
	}
	return model.Page[model.Comment]{Data: comments, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *CommentService) Get(ctx context.Context, id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: comment %d", ErrNotFound, id)
	}
	return comment, err
}

func (s *CommentService) Update(ctx context.Context, id uint, patch CommentPatch) (*model.Comment, error) {
	if patch.Content == nil {
		return s.Get(ctx, id)
	}

	content, err := requiredText("content", *patch.Content, 0)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateContent(ctx, id, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, id)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: comment %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
