package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	domain "github.com/mtfsantos/task-manager/domain/task"
)

const defaultListLimit = 100

// Service owns the task lifecycle: create, read, filtered list, partial
// update, delete. Cache is optional; when nil every read goes to the
// database. Cache errors degrade to the database and never fail a request.
type Service struct {
	repo    *Repository
	cache   *Cache
	sfGroup singleflight.Group
}

// Service implements TaskPort so the api module can be wired to it directly
// in tests, without the service container.
var _ TaskPort = (*Service)(nil)

// NewService creates a new task Service. cache may be nil.
func NewService(repo *Repository, cache *Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Create validates the input, assigns a fresh ID and creation time, and
// persists the task. Status defaults to pending when unspecified.
func (s *Service) Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	status := domain.StatusPending
	if req.Status != "" {
		parsed, err := validateStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return toTaskResponse(task), nil
}

// Get retrieves a task by ID, consulting the cache first when enabled.
// Concurrent misses for the same ID collapse into one database query.
func (s *Service) Get(ctx context.Context, id string) (*TaskResponse, error) {
	if s.cache != nil {
		var cached domain.Task
		found, err := s.cache.Get(ctx, id, &cached)
		if err != nil {
			log.Printf("[tasks] cache error for id=%s: %v", id, err)
		}
		if found {
			return toTaskResponse(&cached), nil
		}
	}

	val, err, _ := s.sfGroup.Do(id, func() (any, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	task := val.(*domain.Task)

	if s.cache != nil {
		if err := s.cache.Set(ctx, task); err != nil {
			log.Printf("[tasks] failed to cache task id=%s: %v", id, err)
		}
	}

	return toTaskResponse(task), nil
}

// List retrieves tasks optionally filtered by status, paginated by
// skip/limit. Limit defaults to 100 when unset.
func (s *Service) List(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	var status *domain.Status
	if req.Status != "" {
		parsed, err := validateStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	skip := req.Skip
	if skip < 0 {
		skip = 0
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	tasks, err := s.repo.List(ctx, status, skip, limit)
	if err != nil {
		return nil, err
	}

	resp := &ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, *toTaskResponse(&tasks[i]))
	}
	return resp, nil
}

// Update applies a partial patch: only non-nil fields are touched, each
// revalidated against the creation constraints. UpdatedAt is refreshed on
// every successful update. Returns ErrNotFound if the task does not exist.
func (s *Service) Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return nil, err
		}
		task.Description = req.Description
	}
	if req.Status != nil {
		parsed, err := validateStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		task.Status = parsed
	}

	now := time.Now().UTC()
	task.UpdatedAt = &now

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.invalidate(ctx, task.ID)
	return toTaskResponse(task), nil
}

// Delete removes a task permanently and reports whether a record existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx, id)
	}
	return deleted, nil
}

// invalidate drops a stale cache entry after a mutation.
func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("[tasks] failed to invalidate cache for id=%s: %v", id, err)
	}
}

// toTaskResponse converts a Task entity to its wire representation.
func toTaskResponse(task *domain.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
