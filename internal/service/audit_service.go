package service

import (
	"context"

	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingAttempt is what gets audited for one submission. Patient identity is
// never recorded.
type BookingAttempt struct {
	CorrelationID uuid.UUID
	Request       *entity.BookingRequest
	Outcome       *entity.BookingOutcome
	TransportErr  error
}

type AuditService interface {
	LogBookingAttempt(ctx context.Context, attempt BookingAttempt) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

// NewAuditService returns a service that only logs when db is nil.
func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogBookingAttempt(ctx context.Context, attempt BookingAttempt) error {
	auditLog := &entity.AuditLog{
		CorrelationID: attempt.CorrelationID,
		Action:        auditAction(attempt),
		Metadata:      entity.JSON{},
	}

	if req := attempt.Request; req != nil {
		auditLog.PracticeSlug = req.PracticeSlug
		auditLog.Metadata["doctor_id"] = req.DoctorID
		auditLog.Metadata["date"] = req.Date
		auditLog.Metadata["time"] = req.Time
		auditLog.Metadata["duration"] = req.DurationMinutes
	}

	switch {
	case attempt.TransportErr != nil:
		auditLog.Metadata["error"] = attempt.TransportErr.Error()
	case attempt.Outcome.Succeeded():
		auditLog.Metadata["booking_id"] = attempt.Outcome.Success.BookingID
		auditLog.Metadata["confirmation_code"] = attempt.Outcome.Success.ConfirmationCode
	case attempt.Outcome != nil && attempt.Outcome.Failure != nil:
		auditLog.Metadata["failure"] = string(attempt.Outcome.Failure.Kind)
	}

	if s.db == nil {
		s.log.WithFields(logrus.Fields{
			"correlation_id": auditLog.CorrelationID,
			"slug":           auditLog.PracticeSlug,
			"action":         auditLog.Action,
		}).Debug("Booking attempt")
		return nil
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

func auditAction(attempt BookingAttempt) string {
	switch {
	case attempt.TransportErr != nil:
		return entity.AuditActionBookingTransport
	case attempt.Outcome.Succeeded():
		return entity.AuditActionBookingConfirmed
	case attempt.Outcome.FailureKind() == entity.FailureInvalidData:
		return entity.AuditActionBookingRejected
	default:
		return entity.AuditActionBookingFailed
	}
}
