package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-site-api/config"
	"clinic-site-api/internal/converter"
	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/infrastructure/metrics"
	"clinic-site-api/internal/service"
	"clinic-site-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Recovery actions returned with a failed submission.
const (
	ActionReselectSlot   = "reselect_slot"
	ActionResetSelection = "reset_selection"
	ActionRetry          = "retry"
	ActionShowMessage    = "show_message"
)

const (
	msgSlotNotAvailable   = "Este horario ya no está disponible. Por favor seleccione otro horario."
	msgDoctorNotAvailable = "El médico seleccionado no está disponible. Por favor seleccione otro médico."
	msgBookingRetry       = "Ocurrió un error al reservar el turno. Por favor intente nuevamente."
	msgDateOutOfRange     = "La fecha seleccionada está fuera del período de reservas"
)

// fieldMessages maps struct fields to the JSON field and the patient-facing message.
var fieldMessages = map[string][2]string{
	"NationalID": {"dni", "Por favor ingrese su DNI"},
	"FirstName":  {"nombre", "Por favor ingrese su nombre"},
	"LastName":   {"apellido", "Por favor ingrese su apellido"},
	"Email":      {"email", "Por favor ingrese un email válido"},
	"DoctorID":   {"doctor_id", "Por favor seleccione un médico"},
	"Date":       {"date", "Por favor seleccione una fecha"},
	"Time":       {"time", "Por favor seleccione un horario"},
	"Duration":   {"duration", "Por favor seleccione una duración válida"},
}

type BookingUsecase interface {
	Submit(ctx context.Context, slug string, req *dto.CreateBookingRequest) (*dto.BookingSubmissionResponse, error)
}

type bookingUsecase struct {
	log          *logrus.Logger
	validate     *validator.CustomValidator
	content      SnapshotSource
	bookingRepo  repository.BookingRepository
	availability AvailabilityUsecase
	auditService service.AuditService
	metrics      *metrics.SiteMetrics
	phones       service.PhonePolicy
	cfg          config.BookingConfig
	window       bookingWindow
}

func NewBookingUsecase(
	log *logrus.Logger,
	validate *validator.CustomValidator,
	content SnapshotSource,
	bookingRepo repository.BookingRepository,
	availability AvailabilityUsecase,
	auditService service.AuditService,
	m *metrics.SiteMetrics,
	cfg config.BookingConfig,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		validate:     validate,
		content:      content,
		bookingRepo:  bookingRepo,
		availability: availability,
		auditService: auditService,
		metrics:      m,
		phones:       service.NewPhonePolicy(cfg.PhoneCountryCode),
		cfg:          cfg,
		window:       newBookingWindow(cfg),
	}
}

// Submit books one doctor+date+slot tuple for a patient.
//
// Flow:
// 1. Validate the form locally (no backend call on failure)
// 2. Lock the selection into a booking flow
// 3. Normalize the phone and resolve the insurance provider
// 4. Submit to the backend and translate the outcome
// 5. Recover: re-fetch slots on conflict, reset on a missing doctor
//
// A nil error with a Failure set means the backend answered; the caller
// decides the status code with SubmissionError.
func (u *bookingUsecase) Submit(ctx context.Context, slug string, req *dto.CreateBookingRequest) (*dto.BookingSubmissionResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrMissingSlug
	}

	// Step 1: local validation
	trimmed := converter.TrimmedBookingRequest(req)
	if err := u.validate.Validate(trimmed); err != nil {
		return nil, u.validationError(u.validate.FirstInvalidField(err))
	}
	date, err := u.window.parse(trimmed.Date)
	if err != nil {
		return nil, u.validationError("Date")
	}
	if !u.window.contains(date) {
		return nil, &ValidationError{Field: fieldMessages["Date"][0], Message: msgDateOutOfRange}
	}

	duration := trimmed.Duration
	if duration == 0 {
		duration = u.cfg.DefaultDuration
	}
	if duration <= 0 {
		duration = entity.DefaultBookingDuration
	}

	// Step 2: booking flow
	flow := u.lockSelection(trimmed, duration)
	doctorID, day, slot, err := flow.Submission()
	if err != nil {
		return nil, fmt.Errorf("lock booking selection: %w", err)
	}

	booking := converter.BookingRequestToEntity(slug, trimmed)
	booking.DoctorID = doctorID
	booking.Date = day
	booking.Time = slot.Start
	booking.DurationMinutes = duration

	// Step 3: patient data
	booking.Patient.Phone = u.phones.Normalize(req.Patient.Phone)
	if booking.Patient.InsuranceProviderID == "" && strings.TrimSpace(req.Patient.InsuranceName) != "" {
		booking.Patient.InsuranceProviderID = u.resolveInsurance(ctx, slug, req.Patient.InsuranceName)
	}

	// Step 4: submit
	correlationID := uuid.New()
	outcome, err := u.bookingRepo.Submit(ctx, booking)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		u.log.Warnf("Failed to submit booking %s: %+v", correlationID, err)
		u.audit(ctx, service.BookingAttempt{CorrelationID: correlationID, Request: booking, TransportErr: err})
		u.metrics.ObserveBookingOutcome("transport_error")
		outcome = entity.NewFailureOutcome(entity.FailureInternalError, msgBookingRetry)
	} else {
		u.audit(ctx, service.BookingAttempt{CorrelationID: correlationID, Request: booking, Outcome: outcome})
		u.metrics.ObserveBookingOutcome(outcomeLabel(outcome))
	}

	resp := &dto.BookingSubmissionResponse{
		CorrelationID: correlationID.String(),
		Patient:       req.Patient,
	}

	if outcome.Succeeded() {
		if err := flow.Complete(); err != nil {
			u.log.Warnf("Failed to complete booking flow %s: %+v", correlationID, err)
		}
		resp.Confirmation = converter.OutcomeToConfirmation(outcome)
		u.log.Infof("Booking confirmed: correlation_id=%s, turno_id=%s", correlationID, outcome.Success.BookingID)
		return resp, nil
	}

	// Step 5: recovery
	resp.Failure = &dto.BookingFailureResponse{
		Code:    string(outcome.Failure.Kind),
		Message: failureMessage(outcome.Failure),
	}
	resp.Recovery = u.recover(ctx, slug, flow, trimmed, duration, outcome.Failure.Kind)

	u.log.Infof("Booking failed: correlation_id=%s, code=%s, action=%s",
		correlationID, outcome.Failure.Kind, resp.Recovery.Action)
	return resp, nil
}

func (u *bookingUsecase) lockSelection(req *dto.CreateBookingRequest, duration int) *entity.BookingFlow {
	firstService := ""
	if len(req.ServiceIDs) > 0 {
		firstService = req.ServiceIDs[0]
	}
	flow := entity.NewBookingFlow(req.DoctorID, firstService)
	if firstService == "" {
		flow.WithoutService()
	}
	if err := flow.SelectDate(req.Date); err != nil {
		return flow
	}
	start, err := entity.ParseClock(req.Time)
	if err != nil {
		return flow
	}
	_ = flow.SelectSlot(entity.TimeSlot{
		Start:     entity.FormatClock(start),
		End:       entity.FormatClock(start + duration),
		Available: true,
	})
	return flow
}

func (u *bookingUsecase) recover(
	ctx context.Context,
	slug string,
	flow *entity.BookingFlow,
	req *dto.CreateBookingRequest,
	duration int,
	kind entity.FailureKind,
) *dto.BookingRecoveryResponse {
	switch kind {
	case entity.FailureSlotNotAvailable:
		if err := flow.Back(); err != nil {
			u.log.Warnf("Failed to return booking flow to slot selection: %+v", err)
		}
		recovery := &dto.BookingRecoveryResponse{Action: ActionReselectSlot, Step: string(flow.Step)}
		availability, err := u.availability.GetAvailableSlots(ctx, &dto.AvailableSlotsRequest{
			Slug:     slug,
			DoctorID: req.DoctorID,
			Date:     req.Date,
			Duration: duration,
		})
		if err != nil {
			u.log.Warnf("Failed to refresh slots after conflict: %+v", err)
		} else {
			recovery.Availability = availability
		}
		return recovery

	case entity.FailureDoctorNotFound:
		flow.ResetSelection()
		u.content.Invalidate(ctx, slug)
		return &dto.BookingRecoveryResponse{Action: ActionResetSelection, Step: string(flow.Step)}

	case entity.FailureInternalError:
		return &dto.BookingRecoveryResponse{Action: ActionRetry, Step: string(flow.Step)}

	default:
		return &dto.BookingRecoveryResponse{Action: ActionShowMessage, Step: string(flow.Step)}
	}
}

func (u *bookingUsecase) resolveInsurance(ctx context.Context, slug, name string) string {
	snapshot, err := u.content.Get(ctx, slug)
	if err != nil {
		u.log.Warnf("Failed to resolve insurance %q: %+v", name, err)
		return ""
	}
	if ins := snapshot.InsuranceByName(name); ins != nil {
		return ins.ID
	}
	return ""
}

func (u *bookingUsecase) audit(ctx context.Context, attempt service.BookingAttempt) {
	if err := u.auditService.LogBookingAttempt(ctx, attempt); err != nil {
		u.log.Warnf("Failed to audit booking attempt %s: %+v", attempt.CorrelationID, err)
	}
}

func (u *bookingUsecase) validationError(field string) error {
	if m, ok := fieldMessages[field]; ok {
		return &ValidationError{Field: m[0], Message: m[1]}
	}
	return &ValidationError{Field: strings.ToLower(field), Message: "Datos inválidos"}
}

func failureMessage(f *entity.BookingFailure) string {
	switch f.Kind {
	case entity.FailureSlotNotAvailable:
		return msgSlotNotAvailable
	case entity.FailureDoctorNotFound:
		return msgDoctorNotAvailable
	}
	if strings.TrimSpace(f.Message) != "" {
		return f.Message
	}
	return msgBookingRetry
}

func outcomeLabel(o *entity.BookingOutcome) string {
	if o.Succeeded() {
		return "confirmed"
	}
	return strings.ToLower(string(o.FailureKind()))
}

// SubmissionError classifies a submission response for status mapping.
// It returns nil for a confirmed booking.
func SubmissionError(resp *dto.BookingSubmissionResponse) error {
	if resp == nil || resp.Failure == nil {
		return nil
	}
	switch entity.FailureKind(resp.Failure.Code) {
	case entity.FailureSlotNotAvailable:
		return ErrSlotConflict
	case entity.FailureDoctorNotFound:
		return ErrDoctorNotFound
	case entity.FailureGroupNotFound:
		return ErrPracticeNotFound
	case entity.FailureInternalError:
		return ErrTransport
	default:
		return ErrBookingRejected
	}
}

// IsValidation reports whether err is a local form validation failure.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
