package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tracker/internal/auth"
	"tracker/internal/service"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Projects  *service.ProjectService
	Tasks     *service.TaskService
	Comments  *service.CommentService
	Hierarchy *service.HierarchyService
	Reports   *service.ReportService
}

// Options tunes the fiber app.
type Options struct {
	AccessLog bool
	BodyLimit int
}

// route declares one endpoint. Routes that are not Public always run the
// authentication gate followed by the role check for Op.
type route struct {
	Method  string
	Path    string
	Op      auth.Operation
	Public  bool
	Summary string
	Handler fiber.Handler
}

// New builds the fiber app with every route registered.
func New(svc Services, opts Options) *fiber.App {
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = 1 << 20
	}

	app := fiber.New(fiber.Config{
		AppName:               "tracker",
		ErrorHandler:          errorHandler,
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	h := &handlers{svc: svc}
	routes := h.routes()
	h.index = routeIndex(routes)

	gate := Authenticate(svc.Auth)
	for _, r := range routes {
		chain := make([]fiber.Handler, 0, 3)
		if !r.Public {
			chain = append(chain, gate, Require(r.Op))
		}
		chain = append(chain, r.Handler)
		app.Add(r.Method, r.Path, chain...)
	}

	return app
}

func (h *handlers) routes() []route {
	return []route{
		{Method: fiber.MethodGet, Path: "/", Public: true, Summary: "Health check", Handler: h.health},
		{Method: fiber.MethodGet, Path: "/api", Public: true, Summary: "Route index", Handler: h.docs},
		{Method: fiber.MethodGet, Path: "/api-json", Public: true, Summary: "Route index", Handler: h.docs},

		{Method: fiber.MethodPost, Path: "/auth/register", Public: true, Summary: "Register a GUEST account", Handler: h.register},
		{Method: fiber.MethodPost, Path: "/auth/login", Public: true, Summary: "Log in", Handler: h.login},
		{Method: fiber.MethodPost, Path: "/auth/refresh", Public: true, Summary: "Exchange a refresh token", Handler: h.refresh},

		{Method: fiber.MethodGet, Path: "/users", Op: auth.OpUserList, Summary: "List users", Handler: h.listUsers},
		{Method: fiber.MethodGet, Path: "/users/me", Op: auth.OpUserMe, Summary: "Current user", Handler: h.me},
		{Method: fiber.MethodPatch, Path: "/users/:id/role", Op: auth.OpUserRole, Summary: "Change a user's role", Handler: h.updateRole},
		{Method: fiber.MethodDelete, Path: "/users/:id", Op: auth.OpUserDelete, Summary: "Delete a user", Handler: h.deleteUser},

		{Method: fiber.MethodPost, Path: "/projects", Op: auth.OpProjectCreate, Summary: "Create project", Handler: h.createProject},
		{Method: fiber.MethodGet, Path: "/projects", Op: auth.OpProjectList, Summary: "List projects", Handler: h.listProjects},
		{Method: fiber.MethodGet, Path: "/projects/:id", Op: auth.OpProjectGet, Summary: "Get project", Handler: h.getProject},
		{Method: fiber.MethodPatch, Path: "/projects/:id", Op: auth.OpProjectUpdate, Summary: "Update project", Handler: h.updateProject},
		{Method: fiber.MethodDelete, Path: "/projects/:id", Op: auth.OpProjectDelete, Summary: "Delete project and its tasks", Handler: h.deleteProject},

		{Method: fiber.MethodPost, Path: "/tasks", Op: auth.OpTaskCreate, Summary: "Create task in a project", Handler: h.createTask},
		{Method: fiber.MethodGet, Path: "/tasks", Op: auth.OpTaskList, Summary: "List tasks (projectId filter)", Handler: h.listTasks},
		{Method: fiber.MethodGet, Path: "/tasks/:id", Op: auth.OpTaskGet, Summary: "Get task", Handler: h.getTask},
		{Method: fiber.MethodPatch, Path: "/tasks/:id/status", Op: auth.OpTaskStatus, Summary: "Update task status", Handler: h.setTaskStatus},
		{Method: fiber.MethodPatch, Path: "/tasks/:id", Op: auth.OpTaskUpdate, Summary: "Update task title, status or project", Handler: h.updateTask},
		{Method: fiber.MethodDelete, Path: "/tasks/:id", Op: auth.OpTaskDelete, Summary: "Delete task", Handler: h.deleteTask},

		{Method: fiber.MethodPost, Path: "/comments", Op: auth.OpCommentCreate, Summary: "Comment on a task", Handler: h.createComment},
		{Method: fiber.MethodGet, Path: "/comments", Op: auth.OpCommentList, Summary: "List comments (taskId filter)", Handler: h.listComments},
		{Method: fiber.MethodGet, Path: "/comments/:id", Op: auth.OpCommentGet, Summary: "Get comment", Handler: h.getComment},
		{Method: fiber.MethodPatch, Path: "/comments/:id", Op: auth.OpCommentUpdate, Summary: "Update comment", Handler: h.updateComment},
		{Method: fiber.MethodDelete, Path: "/comments/:id", Op: auth.OpCommentDelete, Summary: "Delete comment", Handler: h.deleteComment},

		{Method: fiber.MethodGet, Path: "/hierarchy", Op: auth.OpHierarchyView, Summary: "Project → task → comment tree", Handler: h.hierarchy},
		{Method: fiber.MethodGet, Path: "/stats", Op: auth.OpStatsView, Summary: "Dashboard counts", Handler: h.stats},
	}
}
