package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mtfsantos/task-manager/modules/auth"
	"github.com/mtfsantos/task-manager/modules/task"
)

// APIModule is the HTTP surface of the service. It depends on the auth and
// tasks modules and reaches them through their ports.
type APIModule struct {
	app            *fiber.App
	authAdapter    auth.AuthPort
	taskAdapter    task.TaskPort
	listenAddr     string
	allowedOrigins string
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule configured from the environment.
func NewModule() *APIModule {
	listenAddr := os.Getenv("TASKS_HTTP_ADDR")
	if listenAddr == "" {
		listenAddr = ":8000"
	}
	allowedOrigins := os.Getenv("TASKS_ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	return &APIModule{
		listenAddr:     listenAddr,
		allowedOrigins: allowedOrigins,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "tasks"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "tasks":
		m.taskAdapter = task.NewTaskAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskAdapter == nil {
		return fmt.Errorf("tasks dependency not set")
	}

	m.app = newApp(m.authAdapter, m.taskAdapter, m.allowedOrigins)

	go func() {
		if err := m.app.Listen(m.listenAddr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.listenAddr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.listenAddr,
		},
	}
}

// newApp builds the Fiber application with middleware and routes. Factored
// out so tests can run the full router against in-process ports.
func newApp(authPort auth.AuthPort, taskPort task.TaskPort, allowedOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
	}))

	handlers := NewHandlers(authPort, taskPort)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Task Management API!",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := app.Group("/api/v1")
	v1.Post("/login", handlers.Login)

	tasks := v1.Group("/tasks", AuthMiddleware(authPort))
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/", handlers.ListTasks)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)

	return app
}

// errorHandler converts unhandled Fiber errors to the API's error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		detail = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{Detail: detail})
}
