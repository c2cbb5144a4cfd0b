package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/model"
	"tracker/internal/repository"
	"tracker/internal/testkit"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testkit.NewDB(t))

	first := &model.User{Email: "a@example.com", Username: "alice", PasswordHash: "x", Role: model.RoleGuest}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	second := &model.User{Email: "a@example.com", Username: "alice2", PasswordHash: "y", Role: model.RoleGuest}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	exists, err := repo.EmailExists(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_RoleAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testkit.NewDB(t))

	user := &model.User{Email: "m@example.com", Username: "member", PasswordHash: "x", Role: model.RoleMember}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateRole(ctx, user.ID, model.RoleAdmin))
	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, found.Role)

	counts, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[model.RoleAdmin])
	assert.Equal(t, int64(0), counts[model.RoleGuest])

	assert.ErrorIs(t, repo.UpdateRole(ctx, 999, model.RoleAdmin), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repository.ErrNotFound)
}

func TestProjectRepository_ListPagination(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProjectRepository(testkit.NewDB(t))

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Create(ctx, &model.Project{Title: fmt.Sprintf("project %02d", i)}))
	}

	page, total, err := repo.List(ctx, model.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, page, 10)
	assert.Equal(t, "project 01", page[0].Title)

	last, total, err := repo.List(ctx, model.PageRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, last, 5)
	for i := 1; i < len(last); i++ {
		assert.Less(t, last[i-1].ID, last[i].ID)
	}
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testkit.NewDB(t)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	comments := repository.NewCommentRepository(db)

	doomed := &model.Project{Title: "doomed"}
	kept := &model.Project{Title: "kept"}
	require.NoError(t, projects.Create(ctx, doomed))
	require.NoError(t, projects.Create(ctx, kept))

	var doomedTasks []uint
	for i := 0; i < 3; i++ {
		task := &model.Task{Title: fmt.Sprintf("task %d", i), Status: model.StatusTodo, ProjectID: doomed.ID}
		require.NoError(t, tasks.Create(ctx, task))
		doomedTasks = append(doomedTasks, task.ID)
		require.NoError(t, comments.Create(ctx, &model.Comment{Content: "note", TaskID: task.ID}))
	}
	keptTask := &model.Task{Title: "survivor", Status: model.StatusDone, ProjectID: kept.ID}
	require.NoError(t, tasks.Create(ctx, keptTask))
	require.NoError(t, comments.Create(ctx, &model.Comment{Content: "stays", TaskID: keptTask.ID}))

	require.NoError(t, projects.Delete(ctx, doomed.ID))

	for _, id := range doomedTasks {
		_, err := tasks.FindByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
	remaining, total, err := tasks.List(ctx, model.PageRequest{Page: 1, Limit: 100}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, keptTask.ID, remaining[0].ID)

	count, err := comments.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTaskRepository_FilterAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := testkit.NewDB(t)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)

	a := &model.Project{Title: "a"}
	b := &model.Project{Title: "b"}
	require.NoError(t, projects.Create(ctx, a))
	require.NoError(t, projects.Create(ctx, b))

	require.NoError(t, tasks.Create(ctx, &model.Task{Title: "a1", Status: model.StatusTodo, ProjectID: a.ID}))
	require.NoError(t, tasks.Create(ctx, &model.Task{Title: "a2", Status: model.StatusDone, ProjectID: a.ID}))
	moving := &model.Task{Title: "b1", Status: model.StatusTodo, ProjectID: b.ID}
	require.NoError(t, tasks.Create(ctx, moving))

	list, total, err := tasks.List(ctx, model.PageRequest{Page: 1, Limit: 10}, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Project)
	assert.Equal(t, "a", list[0].Project.Title)

	require.NoError(t, tasks.Update(ctx, moving.ID, map[string]any{"project_id": a.ID, "status": model.StatusInProgress}))
	moved, err := tasks.FindByID(ctx, moving.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, moved.ProjectID)
	assert.Equal(t, model.StatusInProgress, moved.Status)

	assert.ErrorIs(t, tasks.Update(ctx, 999, map[string]any{"title": "x"}), repository.ErrNotFound)

	counts, err := tasks.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[model.StatusTodo])
	assert.Equal(t, int64(1), counts[model.StatusInProgress])
	assert.Equal(t, int64(1), counts[model.StatusDone])
}

func TestProjectRepository_ListTree(t *testing.T) {
	ctx := context.Background()
	db := testkit.NewDB(t)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	comments := repository.NewCommentRepository(db)

	p := &model.Project{Title: "root"}
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, projects.Create(ctx, &model.Project{Title: "other"}))
	task := &model.Task{Title: "leaf", Status: model.StatusTodo, ProjectID: p.ID}
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, comments.Create(ctx, &model.Comment{Content: "first", TaskID: task.ID}))
	require.NoError(t, comments.Create(ctx, &model.Comment{Content: "second", TaskID: task.ID}))

	tree, total, err := projects.ListTree(ctx, model.PageRequest{Page: 1, Limit: 10}, &p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Tasks, 1)
	require.Len(t, tree[0].Tasks[0].Comments, 2)
	assert.Equal(t, "first", tree[0].Tasks[0].Comments[0].Content)

	all, total, err := projects.ListTree(ctx, model.PageRequest{Page: 1, Limit: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestCommentRepository_FindPreloadsTaskProject(t *testing.T) {
	ctx := context.Background()
	db := testkit.NewDB(t)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	comments := repository.NewCommentRepository(db)

	p := &model.Project{Title: "reader"}
	require.NoError(t, projects.Create(ctx, p))
	task := &model.Task{Title: "demo", Status: model.StatusTodo, ProjectID: p.ID}
	require.NoError(t, tasks.Create(ctx, task))
	c := &model.Comment{Content: "looks good", TaskID: task.ID}
	require.NoError(t, comments.Create(ctx, c))

	found, err := comments.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Task)
	require.NotNil(t, found.Task.Project)
	assert.Equal(t, "reader", found.Task.Project.Title)

	require.NoError(t, comments.UpdateContent(ctx, c.ID, "changed"))
	found, err = comments.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", found.Content)

	require.NoError(t, comments.Delete(ctx, c.ID))
	assert.ErrorIs(t, comments.Delete(ctx, c.ID), repository.ErrNotFound)
}
