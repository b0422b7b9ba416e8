package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEntityNotFound *notFoundError
	ErrInvalidStatus  = errors.New("invalid status, must be one of 'Pending Review', 'Reviewed', 'Needs Revision', 'Challenge Complete'")
	ErrInvalidDay     = errors.New("day must be between 1 and 5")
)

type notFoundError struct {
	EntityType string
	ID         string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID)
}

func NewNotFoundError(entityType string, id string) error {
	return &notFoundError{
		EntityType: entityType,
		ID:         id,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFoundError *notFoundError
	return errors.As(err, &notFoundError)
}
