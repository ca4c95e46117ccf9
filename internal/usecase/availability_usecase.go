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
	"clinic-site-api/internal/service"

	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, req *dto.AvailableSlotsRequest) (*dto.AvailableSlotsResponse, error)
}

type availabilityUsecase struct {
	log      *logrus.Logger
	content  SnapshotSource
	slotRepo repository.SlotRepository
	cfg      config.BookingConfig
	window   bookingWindow
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	content SnapshotSource,
	slotRepo repository.SlotRepository,
	cfg config.BookingConfig,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:      log,
		content:  content,
		slotRepo: slotRepo,
		cfg:      cfg,
		window:   newBookingWindow(cfg),
	}
}

// GetAvailableSlots resolves one doctor's slots on one date.
//
// Flow:
// 1. Validate slug, date window and duration
// 2. Expand the doctor's weekly schedule from the content snapshot
// 3. Fetch the backend listing; only slots it offers as free stay bookable
// 4. Resolve conflicts and classify the empty states
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, req *dto.AvailableSlotsRequest) (*dto.AvailableSlotsResponse, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrMissingSlug
	}

	date, err := u.window.parse(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !u.window.contains(date) {
		return nil, ErrDateOutOfRange
	}

	duration := req.Duration
	if duration == 0 {
		duration = u.cfg.DefaultDuration
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	// Step 2: candidates from the published weekly schedule
	snapshot, err := u.content.Get(ctx, slug)
	if err != nil {
		u.log.Warnf("Failed to load content for %s: %+v", slug, err)
		return nil, contentError(err)
	}
	doctor := snapshot.FindDoctor(req.DoctorID)
	if doctor == nil || !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	entries := snapshot.SchedulesForDoctor(doctor.ID)
	candidates, skipped, err := service.GenerateSlots(entries, date, duration)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDuration) {
			return nil, ErrInvalidDuration
		}
		return nil, err
	}
	for _, s := range skipped {
		u.log.Warnf("Skipping malformed schedule entry for doctor %s: %+v", doctor.ID, s.Err)
	}

	// Step 3: the backend listing
	remote, err := u.slotRepo.FetchAvailableSlots(ctx, repository.SlotQuery{
		PracticeSlug:    slug,
		DoctorID:        doctor.ID,
		Date:            req.Date,
		DurationMinutes: duration,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to fetch occupied slots for doctor %s on %s: %+v", doctor.ID, req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	// Doctors without a published weekly schedule are listed by the backend only.
	if len(entries) == 0 {
		candidates = remote.Slots
	} else {
		candidates = service.ConfirmListed(candidates, remote)
	}

	name := doctor.Name
	if name == "" {
		name = remote.Doctor.Name
	}

	// Step 4: resolve
	result := service.ResolveAvailability(
		entity.DoctorRef{ID: doctor.ID, Name: name},
		req.Date,
		duration,
		candidates,
		service.TakenIntervals(remote.Slots),
	)
	if result.AvailableCount() == 0 && strings.TrimSpace(remote.Message) != "" {
		result.Message = remote.Message
	}

	u.log.Debugf("Resolved availability: doctor=%s, date=%s, slots=%d, free=%d, status=%s",
		doctor.ID, req.Date, len(result.Slots), result.AvailableCount(), result.Status)
	return converter.AvailabilityToResponse(result), nil
}
