package task

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mtfsantos/task-manager/domain/task"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")

// Repository provides access to task storage using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs database migrations for the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// Create saves a new task to the database.
func (r *Repository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// List retrieves tasks, optionally filtered by status, paginated by
// skip/limit. Results are ordered by creation time for a stable contract.
func (r *Repository) List(ctx context.Context, status *domain.Status, skip, limit int) ([]domain.Task, error) {
	var tasks []domain.Task

	query := r.db.WithContext(ctx).Order("created_at ASC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Save writes the full task record back to the database.
func (r *Repository) Save(ctx context.Context, task *domain.Task) error {
	result := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", task.ID).
		Select("Title", "Description", "Status", "UpdatedAt").Updates(task)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task permanently. It returns whether a record existed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return result.RowsAffected > 0, nil
}
