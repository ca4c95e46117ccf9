package repository

import (
	"context"

	"clinic-site-api/internal/domain/entity"
)

// SlotQuery selects one doctor's availability on one date.
type SlotQuery struct {
	PracticeSlug    string
	DoctorID        string
	Date            string // Format: YYYY-MM-DD
	DurationMinutes int
}

type SlotRepository interface {
	FetchAvailableSlots(ctx context.Context, query SlotQuery) (*entity.AvailableSlotsResult, error)
}
