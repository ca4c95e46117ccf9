package repository

import (
	"context"

	"clinic-site-api/internal/domain/entity"
)

// BookingRepository submits bookings to the external booking backend.
// A returned error means no structured outcome was received.
type BookingRepository interface {
	Submit(ctx context.Context, req *entity.BookingRequest) (*entity.BookingOutcome, error)
}
