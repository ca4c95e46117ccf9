package service

import (
	"context"
	"errors"
	"testing"

	"clinic-site-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuditAction(t *testing.T) {
	success := &entity.BookingOutcome{Success: &entity.BookingSuccess{BookingID: "t-1"}}

	assert.Equal(t, entity.AuditActionBookingConfirmed, auditAction(BookingAttempt{Outcome: success}))
	assert.Equal(t, entity.AuditActionBookingRejected, auditAction(BookingAttempt{
		Outcome: entity.NewFailureOutcome(entity.FailureInvalidData, "bad"),
	}))
	assert.Equal(t, entity.AuditActionBookingFailed, auditAction(BookingAttempt{
		Outcome: entity.NewFailureOutcome(entity.FailureSlotNotAvailable, "taken"),
	}))
	assert.Equal(t, entity.AuditActionBookingTransport, auditAction(BookingAttempt{TransportErr: errors.New("timeout")}))
}

func TestAuditService_WithoutDatabaseOnlyLogs(t *testing.T) {
	svc := NewAuditService(nil, quietLogger(), nil)

	err := svc.LogBookingAttempt(context.Background(), BookingAttempt{
		CorrelationID: uuid.New(),
		Request:       &entity.BookingRequest{PracticeSlug: "sol", DoctorID: "doc-1"},
		Outcome:       entity.NewFailureOutcome(entity.FailureSlotNotAvailable, "taken"),
	})

	assert.NoError(t, err)
}
