package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tracker/internal/model"
	"tracker/internal/repository"
)

// UserService covers account administration.
type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListAll(ctx)
}

// Me returns the caller's own account.
func (s *UserService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	return user, err
}

// UpdateRole sets a user's role. The change reaches the user's tokens on
// their next refresh.
func (s *UserService) UpdateRole(ctx context.Context, userID uint, role model.Role) (*model.User, error) {
	if err := requireID("id", userID); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of %v", ErrValidation, model.Roles)
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	log.Printf("[info] user role changed id=%d role=%s", userID, role)

	return s.Me(ctx, userID)
}

func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if err := requireID("id", userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}
	log.Printf("[info] user deleted id=%d", userID)
	return nil
}
