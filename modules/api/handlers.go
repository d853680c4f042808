package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mtfsantos/task-manager/modules/auth"
	"github.com/mtfsantos/task-manager/modules/task"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	auth  auth.AuthPort
	tasks task.TaskPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort) *Handlers {
	return &Handlers{
		auth:  authPort,
		tasks: taskPort,
	}
}

// Login authenticates the fixed credential pair and returns a bearer token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Detail: "Invalid request body"})
	}

	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return unauthorized(c, "Incorrect username or password")
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})
}

// CreateTask creates a new task.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Detail: "Invalid request body"})
	}

	resp, err := h.tasks.Create(c.UserContext(), &task.CreateTaskRequest{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	})
	if err != nil {
		return h.taskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTasks returns tasks, optionally filtered by status and paginated via
// skip/limit query parameters.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	resp, err := h.tasks.List(c.UserContext(), &task.ListTasksRequest{
		Status: c.Query("status"),
		Skip:   c.QueryInt("skip", 0),
		Limit:  c.QueryInt("limit", 0),
	})
	if err != nil {
		return h.taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp.Tasks)
}

// GetTask returns a single task by ID.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	resp, err := h.tasks.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask applies a partial update to a task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Detail: "Invalid request body"})
	}

	resp, err := h.tasks.Update(c.UserContext(), &task.UpdateTaskRequest{
		ID:          c.Params("id"),
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	})
	if err != nil {
		return h.taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask deletes a task permanently.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	deleted, err := h.tasks.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.taskError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Detail: "Task not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// taskError maps task store failures to responses: validation errors to 422
// with field detail, absence to 404, everything else to a generic 500.
func (h *Handlers) taskError(c *fiber.Ctx, err error) error {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
			Detail: []FieldError{{Field: verr.Field, Message: verr.Message}},
		})
	}
	if errors.Is(err, task.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Detail: "Task not found"})
	}

	return h.internalError(c, err)
}

// internalError logs the real cause and hides it from the client.
func (h *Handlers) internalError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: "Internal server error"})
}
