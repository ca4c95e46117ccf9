package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/service"
)

var (
	ErrMissingSlug      = errors.New("practice not configured")
	ErrPracticeNotFound = errors.New("practice not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrSlotConflict     = errors.New("slot is no longer available")
	ErrBookingRejected  = errors.New("booking rejected by backend")
	ErrTransport        = errors.New("booking backend unavailable")
	ErrInvalidDuration  = errors.New("duration must be a positive number of minutes")
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrDateOutOfRange   = errors.New("date is outside the bookable window")
	ErrSessionNotFound  = errors.New("chat session not found")
)

// ValidationError reports the first invalid booking field, with a message
// ready to show to the patient.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SnapshotSource is the content cache as seen by the use cases.
type SnapshotSource interface {
	Get(ctx context.Context, slug string) (*entity.ContentSnapshot, error)
	Invalidate(ctx context.Context, slug string)
	ForSlug(slug string) service.SnapshotProvider
}

// contentError maps a snapshot lookup failure.
func contentError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPracticeNotFound
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
