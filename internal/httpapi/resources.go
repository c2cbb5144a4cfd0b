package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"tracker/internal/model"
	"tracker/internal/service"
)

// Projects

type createProjectRequest struct {
	Title string `json:"title"`
}

type updateProjectRequest struct {
	Title *string `json:"title"`
}

func (h *handlers) createProject(c *fiber.Ctx) error {
	var req createProjectRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	project, err := h.svc.Projects.Create(c.UserContext(), service.ProjectInput{Title: req.Title})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *handlers) listProjects(c *fiber.Ctx) error {
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.svc.Projects.List(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *handlers) getProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	project, err := h.svc.Projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

func (h *handlers) updateProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	project, err := h.svc.Projects.Update(c.UserContext(), id, service.ProjectPatch{Title: req.Title})
	if err != nil {
		return err
	}
	return c.JSON(project)
}

func (h *handlers) deleteProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Tasks

type createTaskRequest struct {
	Title     string           `json:"title"`
	Status    model.TaskStatus `json:"status"`
	ProjectID uint             `json:"projectId"`
}

type updateTaskRequest struct {
	Title     *string           `json:"title"`
	Status    *model.TaskStatus `json:"status"`
	ProjectID *uint             `json:"projectId"`
}

type statusRequest struct {
	Status model.TaskStatus `json:"status"`
}

func (h *handlers) createTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	task, err := h.svc.Tasks.Create(c.UserContext(), service.TaskInput{
		Title:     req.Title,
		Status:    req.Status,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *handlers) listTasks(c *fiber.Ctx) error {
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	projectID, err := optionalID(c, "projectId")
	if err != nil {
		return err
	}
	page, err := h.svc.Tasks.List(c.UserContext(), p, projectID)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *handlers) getTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	task, err := h.svc.Tasks.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

func (h *handlers) updateTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	task, err := h.svc.Tasks.Update(c.UserContext(), id, service.TaskPatch{
		Title:     req.Title,
		Status:    req.Status,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return err
	}
	return c.JSON(task)
}

func (h *handlers) setTaskStatus(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	task, err := h.svc.Tasks.SetStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

func (h *handlers) deleteTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Tasks.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Comments

type createCommentRequest struct {
	Content string `json:"content"`
	TaskID  uint   `json:"taskId"`
}

type updateCommentRequest struct {
	Content *string `json:"content"`
}

func (h *handlers) createComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Comments.Create(c.UserContext(), service.CommentInput{Content: req.Content, TaskID: req.TaskID})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *handlers) listComments(c *fiber.Ctx) error {
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	taskID, err := optionalID(c, "taskId")
	if err != nil {
		return err
	}
	page, err := h.svc.Comments.List(c.UserContext(), p, taskID)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *handlers) getComment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	comment, err := h.svc.Comments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

func (h *handlers) updateComment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateCommentRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Comments.Update(c.UserContext(), id, service.CommentPatch{Content: req.Content})
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

func (h *handlers) deleteComment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Comments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
