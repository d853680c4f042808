package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskAdapter implements TaskPort using the mono service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

var _ TaskPort = (*TaskAdapter)(nil)

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// Create creates a task via the create-task service.
func (a *TaskAdapter) Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get retrieves a task via the get-task service.
func (a *TaskAdapter) Get(ctx context.Context, id string) (*TaskResponse, error) {
	req := GetTaskRequest{ID: id}
	var resp TaskResponse
	if err := a.call(ctx, "get-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists tasks via the list-tasks service.
func (a *TaskAdapter) List(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, "list-tasks", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update updates a task via the update-task service.
func (a *TaskAdapter) Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete deletes a task via the delete-task service.
func (a *TaskAdapter) Delete(ctx context.Context, id string) (bool, error) {
	req := DeleteTaskRequest{ID: id}
	var resp DeleteTaskResponse
	if err := a.call(ctx, "delete-task", &req, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// call invokes a request-reply service and maps known failures back to
// their typed forms.
func (a *TaskAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return mapServiceError(service, err)
	}
	return nil
}

// mapServiceError reconstructs sentinel and validation errors that crossed
// the service container as opaque strings.
func mapServiceError(service string, err error) error {
	msg := err.Error()

	if i := strings.Index(msg, validationPrefix); i >= 0 {
		rest := msg[i+len(validationPrefix):]
		if field, reason, ok := strings.Cut(rest, ": "); ok {
			return &ValidationError{Field: field, Message: reason}
		}
	}
	if strings.Contains(msg, ErrNotFound.Error()) {
		return ErrNotFound
	}

	return fmt.Errorf("%s service call failed: %w", service, err)
}
