package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tracker/internal/auth"
	"tracker/internal/model"
	"tracker/internal/repository"
	"tracker/internal/testkit"
)

type fixture struct {
	userRepo  *repository.UserRepository
	access    *auth.AccessTokens
	refresh   *auth.RefreshTokens
	auth      *AuthService
	users     *UserService
	projects  *ProjectService
	tasks     *TaskService
	comments  *CommentService
	hierarchy *HierarchyService
	reports   *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testkit.NewDB(t)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	access := auth.NewAccessTokens(auth.TokenConfig{Secret: "access-secret", TTL: 15 * time.Minute, Issuer: "test"})
	refresh := auth.NewRefreshTokens(auth.TokenConfig{Secret: "refresh-secret", TTL: time.Hour, Issuer: "test"})

	return &fixture{
		userRepo:  userRepo,
		access:    access,
		refresh:   refresh,
		auth:      NewAuthService(userRepo, auth.NewPasswordHasher(bcrypt.MinCost), access, refresh),
		users:     NewUserService(userRepo),
		projects:  NewProjectService(projectRepo),
		tasks:     NewTaskService(taskRepo, projectRepo),
		comments:  NewCommentService(commentRepo, taskRepo),
		hierarchy: NewHierarchyService(projectRepo),
		reports:   NewReportService(userRepo, projectRepo, taskRepo, commentRepo),
	}
}

func (f *fixture) register(t *testing.T, email string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Email: email, Username: "tester", Password: "password123"})
	require.NoError(t, err)
	return res
}

func (f *fixture) project(t *testing.T, title string) *model.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), ProjectInput{Title: title})
	require.NoError(t, err)
	return p
}

func (f *fixture) task(t *testing.T, projectID uint, title string) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), TaskInput{Title: title, ProjectID: projectID})
	require.NoError(t, err)
	return task
}
