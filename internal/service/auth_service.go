package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tracker/internal/auth"
	"tracker/internal/model"
	"tracker/internal/repository"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// UserView is the public projection of a user.
type UserView struct {
	ID       uint       `json:"id"`
	Email    string     `json:"email"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

func viewOf(u *model.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Username: u.Username, Role: u.Role}
}

// AuthResult is returned by register, login and refresh alike.
type AuthResult struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// AuthService sequences registration, login and token refresh.
type AuthService struct {
	users   *repository.UserRepository
	hasher  *auth.PasswordHasher
	access  *auth.AccessTokens
	refresh *auth.RefreshTokens

	// dummyHash is verified against when the email is unknown so both login
	// failures cost one bcrypt comparison.
	dummyHash string
}

func NewAuthService(users *repository.UserRepository, hasher *auth.PasswordHasher, access *auth.AccessTokens, refresh *auth.RefreshTokens) *AuthService {
	dummy, _ := hasher.Hash("tracker-dummy-password")
	return &AuthService{
		users:     users,
		hasher:    hasher,
		access:    access,
		refresh:   refresh,
		dummyHash: dummy,
	}
}

// Register creates a GUEST account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	username, err := validateUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleGuest,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		return nil, err
	}

	log.Printf("[info] user registered id=%d", user.ID)
	return s.issue(&user)
}

// Login verifies credentials. An unknown email and a wrong password produce
// the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	invalid := fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

	email, err := normalizeEmail(in.Email)
	if err != nil || in.Password == "" {
		return nil, invalid
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.hasher.Verify(in.Password, s.dummyHash)
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, invalid
	}

	return s.issue(user)
}

// Refresh exchanges a refresh token for a new pair. The role is read from the
// store so role changes apply without waiting for the old token to expire.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	invalid := fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)

	id, err := s.refresh.Verify(refreshToken)
	if err != nil {
		return nil, invalid
	}

	user, err := s.users.FindByID(ctx, id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Authenticate verifies an access token and returns the identity it carries.
func (s *AuthService) Authenticate(_ context.Context, accessToken string) (auth.Identity, error) {
	id, err := s.access.Verify(accessToken)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}
	return id, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	id := auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}

	accessToken, err := s.access.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.refresh.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         viewOf(user),
	}, nil
}
