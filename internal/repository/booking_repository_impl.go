package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-site-api/internal/domain/entity"
	domainRepo "clinic-site-api/internal/domain/repository"
)

type bookingRepository struct {
	client *GemaClient
}

func NewBookingRepository(client *GemaClient) domainRepo.BookingRepository {
	return &bookingRepository{client: client}
}

type bookingEnvelope struct {
	Success *bool           `json:"success"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// Submit reads the {success: ...} envelope on any status code, since the
// backend reports booking failures with 4xx codes and a structured body.
func (r *bookingRepository) Submit(ctx context.Context, req *entity.BookingRequest) (*entity.BookingOutcome, error) {
	status, body, err := r.client.do(ctx, http.MethodPost, endpointBooking, "", req)
	if err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}

	var env bookingEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Success == nil {
		r.client.log.Warnf("Unexpected booking response (status %d): %s", status, truncate(string(body)))
		if err == nil {
			err = fmt.Errorf("missing success flag")
		}
		return nil, fmt.Errorf("decode booking response (status %d): %w", status, err)
	}

	if *env.Success {
		var success entity.BookingSuccess
		if err := json.Unmarshal(body, &success); err != nil {
			return nil, fmt.Errorf("decode booking success: %w", err)
		}
		return &entity.BookingOutcome{Success: &success}, nil
	}

	kind := entity.FailureKind(rawMessage(env.Error))
	if !entity.KnownFailureKind(kind) {
		r.client.log.Warnf("Unknown booking failure kind %q, treating as %s", kind, entity.FailureInternalError)
		kind = entity.FailureInternalError
	}
	return entity.NewFailureOutcome(kind, env.Message), nil
}
