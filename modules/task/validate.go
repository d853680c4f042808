package task

import (
	"fmt"
	"unicode/utf8"

	domain "github.com/mtfsantos/task-manager/domain/task"
)

const (
	// MaxTitleLength is the maximum title length in characters.
	MaxTitleLength = 255
	// MaxDescriptionLength is the maximum description length in characters.
	MaxDescriptionLength = 1000
)

// validationPrefix tags validation errors so they survive the service
// container boundary as strings; the adapter reconstructs them from it.
const validationPrefix = "validation failed: "

// ValidationError reports a field constraint violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s%s: %s", validationPrefix, e.Field, e.Message)
}

func validateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must be at most %d characters", MaxTitleLength),
		}
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength),
		}
	}
	return nil
}

func validateStatus(status string) (domain.Status, error) {
	s := domain.Status(status)
	if !s.Valid() {
		return "", &ValidationError{
			Field:   "status",
			Message: "must be one of pending, in_progress, completed",
		}
	}
	return s, nil
}
