package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotsRequest(doctorID, date string) *dto.AvailableSlotsRequest {
	return &dto.AvailableSlotsRequest{Slug: "clinica-del-sol", DoctorID: doctorID, Date: date}
}

func TestAvailability_MarksBackendOccupiedSlots(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	slots := &fakeSlotRepo{result: &entity.AvailableSlotsResult{
		Slots: []entity.TimeSlot{
			{Start: "09:00", End: "09:30", Available: true},
			{Start: "09:30", End: "10:00", Available: false},
			{Start: "10:00", End: "10:30", Available: true},
		},
	}}
	u := newTestAvailability(content, slots)

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-1", "2024-06-03"))
	require.NoError(t, err)

	assert.Equal(t, "Dra. Ana Pérez", resp.DoctorName)
	assert.Equal(t, 30, resp.Duration)
	assert.Equal(t, string(entity.AvailabilityOpen), resp.Status)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "09:00", resp.Slots[0].Start)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)
	assert.Equal(t, 2, resp.AvailableCount)

	require.Len(t, slots.queries, 1)
	assert.Equal(t, repository.SlotQuery{
		PracticeSlug:    "clinica-del-sol",
		DoctorID:        "doc-1",
		Date:            "2024-06-03",
		DurationMinutes: 30,
	}, slots.queries[0])
}

func TestAvailability_FullyBooked(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	slots := &fakeSlotRepo{result: &entity.AvailableSlotsResult{
		Slots: []entity.TimeSlot{{Start: "09:00", End: "10:30", Available: false}},
	}}
	u := newTestAvailability(content, slots)

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-1", "2024-06-03"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AvailabilityFullyBooked), resp.Status)
	assert.Equal(t, entity.MessageFullyBooked, resp.Message)
	assert.Zero(t, resp.AvailableCount)
}

func TestAvailability_SlotsMissingFromBackendListingAreUnavailable(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	slots := &fakeSlotRepo{result: &entity.AvailableSlotsResult{
		Slots: []entity.TimeSlot{{Start: "10:00", End: "10:30", Available: true}},
	}}
	u := newTestAvailability(content, slots)

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-1", "2024-06-03"))
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.False(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)
	assert.Equal(t, 1, resp.AvailableCount)
	assert.Equal(t, string(entity.AvailabilityOpen), resp.Status)
}

func TestAvailability_EmptyBackendListingOnScheduledDay(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	slots := &fakeSlotRepo{result: &entity.AvailableSlotsResult{
		Slots:   []entity.TimeSlot{},
		Message: "Feriado",
	}}
	u := newTestAvailability(content, slots)

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-1", "2024-06-03"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AvailabilityFullyBooked), resp.Status)
	assert.Equal(t, "Feriado", resp.Message)
	assert.Zero(t, resp.AvailableCount)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Available, slot.Start)
	}
}

func TestAvailability_EmptyBackendListingWithoutMessage(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	u := newTestAvailability(content, &fakeSlotRepo{})

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-1", "2024-06-03"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AvailabilityFullyBooked), resp.Status)
	assert.Equal(t, entity.MessageFullyBooked, resp.Message)
}

func TestAvailability_BackendMessageWithoutScheduleOrListing(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	slots := &fakeSlotRepo{result: &entity.AvailableSlotsResult{Message: "Sin atención este día"}}
	u := newTestAvailability(content, slots)

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-3", "2024-06-03"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AvailabilityNoSchedule), resp.Status)
	assert.Equal(t, "Sin atención este día", resp.Message)
}

func TestAvailability_NoScheduleOnThatWeekday(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	u := newTestAvailability(content, &fakeSlotRepo{})

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-1", "2024-06-04"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AvailabilityNoSchedule), resp.Status)
	assert.Equal(t, entity.MessageNoSchedule, resp.Message)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestAvailability_UsesBackendSlotsWithoutPublishedSchedule(t *testing.T) {
	content := &fakeSnapshots{snapshot: practiceSnapshot()}
	slots := &fakeSlotRepo{result: &entity.AvailableSlotsResult{
		Slots: []entity.TimeSlot{
			{Start: "15:00", End: "15:30", Available: true},
			{Start: "15:30", End: "16:00", Available: false},
		},
	}}
	u := newTestAvailability(content, slots)

	resp, err := u.GetAvailableSlots(context.Background(), slotsRequest("doc-3", "2024-06-03"))
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
}

func TestAvailability_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.AvailableSlotsRequest
		content *fakeSnapshots
		slots   *fakeSlotRepo
		want    error
	}{
		{
			name:    "missing slug",
			req:     &dto.AvailableSlotsRequest{DoctorID: "doc-1", Date: "2024-06-03"},
			content: &fakeSnapshots{snapshot: practiceSnapshot()},
			want:    ErrMissingSlug,
		},
		{
			name:    "malformed date",
			req:     slotsRequest("doc-1", "03/06/2024"),
			content: &fakeSnapshots{snapshot: practiceSnapshot()},
			want:    ErrInvalidDate,
		},
		{
			name:    "past date",
			req:     slotsRequest("doc-1", "2024-05-31"),
			content: &fakeSnapshots{snapshot: practiceSnapshot()},
			want:    ErrDateOutOfRange,
		},
		{
			name:    "beyond booking window",
			req:     slotsRequest("doc-1", "2024-12-02"),
			content: &fakeSnapshots{snapshot: practiceSnapshot()},
			want:    ErrDateOutOfRange,
		},
		{
			name:    "unknown doctor",
			req:     slotsRequest("doc-9", "2024-06-03"),
			content: &fakeSnapshots{snapshot: practiceSnapshot()},
			want:    ErrDoctorNotFound,
		},
		{
			name:    "inactive doctor",
			req:     slotsRequest("doc-2", "2024-06-03"),
			content: &fakeSnapshots{snapshot: practiceSnapshot()},
			want:    ErrDoctorNotFound,
		},
		{
			name:    "unknown practice",
			req:     slotsRequest("doc-1", "2024-06-03"),
			content: &fakeSnapshots{err: repository.ErrNotFound},
			want:    ErrPracticeNotFound,
		},
		{
			name:    "backend down",
			req:     slotsRequest("doc-1", "2024-06-03"),
			content: &fakeSnapshots{snapshot: practiceSnapshot()},
			slots:   &fakeSlotRepo{err: errors.New("connection refused")},
			want:    ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := tt.slots
			if slots == nil {
				slots = &fakeSlotRepo{}
			}
			u := newTestAvailability(tt.content, slots)

			resp, err := u.GetAvailableSlots(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
