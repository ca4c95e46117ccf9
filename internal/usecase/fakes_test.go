package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"clinic-site-api/config"
	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/service"

	"github.com/sirupsen/logrus"
)

// monday is 2024-06-03; testNow is the Saturday before it.
var testNow = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

var testBookingConfig = config.BookingConfig{
	DefaultDuration:  30,
	PhoneCountryCode: "54",
	MaxDaysAhead:     90,
	TimeZone:         "UTC",
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func strPtr(s string) *string { return &s }

func practiceSnapshot() *entity.ContentSnapshot {
	s := &entity.ContentSnapshot{
		Group: entity.MedicalGroup{Name: "Clínica del Sol", Slug: "clinica-del-sol"},
		Website: entity.Website{
			Widgets: &entity.Widgets{
				WhatsApp: &entity.WhatsAppWidget{Enabled: true, Phone: strPtr("+54 9 11 5555-0000"), Message: strPtr("Hola")},
			},
		},
		Doctors: []entity.Doctor{
			{ID: "doc-1", Name: "Dra. Ana Pérez", Specialty: strPtr("Cardiología"), IsActive: true},
			{ID: "doc-2", Name: "Dr. Luis Gómez", IsActive: false},
			{ID: "doc-3", Name: "Dr. Remoto", IsActive: true},
		},
		Insurance: []entity.Insurance{{ID: "ins-osde", Name: "OSDE"}},
		Schedules: []entity.WeeklyScheduleEntry{
			{DoctorID: "doc-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"},
			{DoctorID: "doc-1", DayOfWeek: 1, StartTime: "bad", EndTime: "12:00"},
			{DoctorID: "doc-2", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	s.Normalize()
	return s
}

type fakeSnapshots struct {
	mu          sync.Mutex
	snapshot    *entity.ContentSnapshot
	err         error
	gets        int
	invalidated []string
}

func (f *fakeSnapshots) Get(ctx context.Context, slug string) (*entity.ContentSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func (f *fakeSnapshots) ForSlug(slug string) service.SnapshotProvider {
	return snapshotFunc(func(ctx context.Context) (*entity.ContentSnapshot, error) {
		return f.Get(ctx, slug)
	})
}

type snapshotFunc func(ctx context.Context) (*entity.ContentSnapshot, error)

func (f snapshotFunc) Snapshot(ctx context.Context) (*entity.ContentSnapshot, error) {
	return f(ctx)
}

func (f *fakeSnapshots) Invalidate(ctx context.Context, slug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, slug)
}

type fakeSlotRepo struct {
	result  *entity.AvailableSlotsResult
	err     error
	queries []repository.SlotQuery
}

func (f *fakeSlotRepo) FetchAvailableSlots(ctx context.Context, q repository.SlotQuery) (*entity.AvailableSlotsResult, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &entity.AvailableSlotsResult{Doctor: entity.DoctorRef{ID: q.DoctorID}, Date: q.Date}, nil
	}
	return f.result, nil
}

type fakeBookingRepo struct {
	outcome  *entity.BookingOutcome
	err      error
	requests []*entity.BookingRequest
}

func (f *fakeBookingRepo) Submit(ctx context.Context, req *entity.BookingRequest) (*entity.BookingOutcome, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

type fakeAudit struct {
	attempts []service.BookingAttempt
}

func (f *fakeAudit) LogBookingAttempt(ctx context.Context, attempt service.BookingAttempt) error {
	f.attempts = append(f.attempts, attempt)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string][]byte
	saves    int

	// beforeUpdate simulates a concurrent writer between SendMessage's read and write.
	beforeUpdate func()
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string][]byte{}}
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *entity.ChatSession) error {
	data, err := entity.SerializeSession(session)
	if err != nil {
		return err
	}
	f.saves++
	f.sessions[session.ID] = data
	return nil
}

func (f *fakeSessionRepo) Find(ctx context.Context, id string) (*entity.ChatSession, error) {
	data, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return entity.DeserializeSession(data)
}

func (f *fakeSessionRepo) Update(ctx context.Context, id string, mutate func(*entity.ChatSession) error) (*entity.ChatSession, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	session, err := f.Find(ctx, id)
	if err != nil || session == nil {
		return nil, err
	}
	if err := mutate(session); err != nil {
		return nil, err
	}
	if err := f.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func newTestAvailability(content SnapshotSource, slots repository.SlotRepository) *availabilityUsecase {
	u := NewAvailabilityUsecase(quietLogger(), content, slots, testBookingConfig).(*availabilityUsecase)
	u.window.now = func() time.Time { return testNow }
	return u
}
