package task

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// GetTaskRequest is the request for getting a task by ID.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// ListTasksRequest is the request for listing tasks. Skip and Limit
// paginate the result; Limit defaults to 100 when unset.
type ListTasksRequest struct {
	Status string `json:"status,omitempty"`
	Skip   int    `json:"skip,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// ListTasksResponse is the response containing a page of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for a partial task update. Only non-nil
// fields are applied.
type UpdateTaskRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse reports whether a record existed to delete.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// TaskResponse is the wire representation of a task. Description and
// UpdatedAt render as null when absent.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TaskPort defines the interface driving adapters use to reach the task
// store. The Service implements it directly; TaskAdapter implements it over
// the service container.
type TaskPort interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	Get(ctx context.Context, id string) (*TaskResponse, error)
	List(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
}
