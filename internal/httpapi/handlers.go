package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tracker/internal/auth"
	"tracker/internal/model"
	"tracker/internal/service"
)

type handlers struct {
	svc   Services
	index []routeDoc
}

type routeDoc struct {
	Method  string       `json:"method"`
	Path    string       `json:"path"`
	Summary string       `json:"summary"`
	Public  bool         `json:"public"`
	Roles   []model.Role `json:"roles,omitempty"`
}

func routeIndex(routes []route) []routeDoc {
	docs := make([]routeDoc, 0, len(routes))
	for _, r := range routes {
		doc := routeDoc{Method: r.Method, Path: r.Path, Summary: r.Summary, Public: r.Public}
		if !r.Public {
			doc.Roles = auth.RolesFor(r.Op)
		}
		docs = append(docs, doc)
	}
	return docs
}

func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Tracker API is running",
		"version": "1.0",
		"endpoints": fiber.Map{
			"auth":     "/auth/register, /auth/login, /auth/refresh",
			"projects": "/projects",
			"tasks":    "/tasks",
			"comments": "/comments",
			"docs":     "/api",
		},
	})
}

func (h *handlers) docs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"routes": h.index})
}

// Auth

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *handlers) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Auth.Register(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *handlers) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Auth.Login(c.UserContext(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *handlers) refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if req.RefreshToken == "" {
		return badRequest("refreshToken is required")
	}
	res, err := h.svc.Auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Users

type updateRoleRequest struct {
	Role model.Role `json:"role"`
}

func (h *handlers) listUsers(c *fiber.Ctx) error {
	users, err := h.svc.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *handlers) me(c *fiber.Ctx) error {
	id, _ := identityFrom(c)
	user, err := h.svc.Users.Me(c.UserContext(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *handlers) updateRole(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateRoleRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Users.UpdateRole(c.UserContext(), id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *handlers) deleteUser(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Views

func (h *handlers) hierarchy(c *fiber.Ctx) error {
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	projectID, err := optionalID(c, "projectId")
	if err != nil {
		return err
	}
	tree, err := h.svc.Hierarchy.Tree(c.UserContext(), p, projectID)
	if err != nil {
		return err
	}
	return c.JSON(tree)
}

func (h *handlers) stats(c *fiber.Ctx) error {
	stats, err := h.svc.Reports.Stats(c.UserContext(), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
