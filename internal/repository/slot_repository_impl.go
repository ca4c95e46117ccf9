package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"clinic-site-api/internal/domain/entity"
	domainRepo "clinic-site-api/internal/domain/repository"
)

type slotRepository struct {
	client *GemaClient
}

func NewSlotRepository(client *GemaClient) domainRepo.SlotRepository {
	return &slotRepository{client: client}
}

func (r *slotRepository) FetchAvailableSlots(ctx context.Context, q domainRepo.SlotQuery) (*entity.AvailableSlotsResult, error) {
	duration := q.DurationMinutes
	if duration <= 0 {
		duration = entity.DefaultBookingDuration
	}
	query := url.Values{
		"slug":      {q.PracticeSlug},
		"doctor_id": {q.DoctorID},
		"date":      {q.Date},
		"duration":  {strconv.Itoa(duration)},
	}.Encode()

	body, err := r.client.doJSON(ctx, http.MethodGet, endpointSlots, query, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch slots for doctor %s: %w", q.DoctorID, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch slots for doctor %s: %w", q.DoctorID, errEmptyResponse)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	if msg := env.errorMessage(); msg != "" {
		return nil, rejection(endpointSlots, msg)
	}

	var result entity.AvailableSlotsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	if result.Slots == nil {
		result.Slots = []entity.TimeSlot{}
	}
	return &result, nil
}
