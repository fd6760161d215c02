package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/agrojobs/internal/model"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
)

// notFound turns a missing row into an error that matches both ErrNotFound
// and *model.ReferenceError.
func notFound(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, model.NewReferenceError(entity, id))
	}
	return err
}

func requireEditor(principal model.Principal) error {
	if !principal.CanEdit() {
		return ErrPermissionDenied
	}
	return nil
}
