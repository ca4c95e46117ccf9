package service

import (
	"testing"

	"clinic-site-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDoctor = entity.DoctorRef{ID: "doc-1", Name: "Ana Pérez"}

func morningSlots(t *testing.T) []entity.TimeSlot {
	t.Helper()
	slots, _, err := GenerateSlots([]entity.WeeklyScheduleEntry{entry(1, "08:00", "12:00")}, monday, 30)
	require.NoError(t, err)
	return slots
}

func TestResolveAvailability_MarksOnlyOverlappingSlot(t *testing.T) {
	taken := []entity.Interval{{Start: 10 * 60, End: 10*60 + 30}}

	result := ResolveAvailability(testDoctor, "2024-06-03", 30, morningSlots(t), taken)

	require.Len(t, result.Slots, 8)
	for _, slot := range result.Slots {
		if slot.Start == "10:00" {
			assert.False(t, slot.Available, "10:00 should be taken")
			continue
		}
		assert.True(t, slot.Available, "%s should be free", slot.Start)
	}
	assert.Equal(t, entity.AvailabilityOpen, result.Status)
	assert.Empty(t, result.Message)
	assert.Equal(t, 7, result.AvailableCount())
}

func TestResolveAvailability_PartialOverlapBlocksBothNeighbours(t *testing.T) {
	taken := []entity.Interval{{Start: 9*60 + 15, End: 9*60 + 45}}

	result := ResolveAvailability(testDoctor, "2024-06-03", 30, morningSlots(t), taken)

	assert.False(t, result.HasSlot("09:00"))
	assert.False(t, result.HasSlot("09:30"))
	assert.True(t, result.HasSlot("08:30"))
	assert.True(t, result.HasSlot("10:00"))
}

func TestResolveAvailability_IsIdempotent(t *testing.T) {
	candidates := morningSlots(t)
	taken := []entity.Interval{{Start: 8 * 60, End: 9 * 60}}

	first := ResolveAvailability(testDoctor, "2024-06-03", 30, candidates, taken)
	second := ResolveAvailability(testDoctor, "2024-06-03", 30, candidates, taken)

	assert.Equal(t, first, second)
	assert.True(t, candidates[0].Available, "candidates must not be mutated")
}

func TestResolveAvailability_NoSchedule(t *testing.T) {
	result := ResolveAvailability(testDoctor, "2024-06-04", 30, nil, nil)

	assert.Equal(t, entity.AvailabilityNoSchedule, result.Status)
	assert.Equal(t, entity.MessageNoSchedule, result.Message)
	assert.NotNil(t, result.Slots)
	assert.Empty(t, result.Slots)
}

func TestResolveAvailability_FullyBooked(t *testing.T) {
	taken := []entity.Interval{{Start: 8 * 60, End: 12 * 60}}

	result := ResolveAvailability(testDoctor, "2024-06-03", 30, morningSlots(t), taken)

	assert.Equal(t, entity.AvailabilityFullyBooked, result.Status)
	assert.Equal(t, entity.MessageFullyBooked, result.Message)
	assert.Len(t, result.Slots, 8)
	assert.NotEqual(t, entity.MessageNoSchedule, result.Message)
}

func TestResolveAvailability_DuplicateStartsCollapse(t *testing.T) {
	candidates := []entity.TimeSlot{
		{Start: "08:00", End: "08:30", Available: true},
		{Start: "08:30", End: "09:00", Available: true},
		{Start: "08:30", End: "09:00", Available: false},
		{Start: "09:00", End: "09:30", Available: true},
	}

	result := ResolveAvailability(testDoctor, "2024-06-03", 30, candidates, nil)

	require.Len(t, result.Slots, 3)
	assert.Equal(t, []string{"08:00", "08:30", "09:00"}, starts(result.Slots))
	assert.False(t, result.Slots[1].Available)
}

func TestTakenIntervals_IgnoresFreeAndMalformedSlots(t *testing.T) {
	taken := TakenIntervals([]entity.TimeSlot{
		{Start: "08:00", End: "08:30", Available: true},
		{Start: "10:00", End: "10:30", Available: false},
		{Start: "bad", End: "10:30", Available: false},
	})

	assert.Equal(t, []entity.Interval{{Start: 600, End: 630}}, taken)
}

func TestConfirmListed_UnlistedCandidatesBecomeUnavailable(t *testing.T) {
	candidates := []entity.TimeSlot{
		{Start: "09:00", End: "09:30", Available: true},
		{Start: "09:30", End: "10:00", Available: true},
		{Start: "10:00", End: "10:30", Available: true},
	}
	listing := &entity.AvailableSlotsResult{Slots: []entity.TimeSlot{
		{Start: "09:00", End: "09:30", Available: true},
		{Start: "09:30", End: "10:00", Available: false},
	}}

	confirmed := ConfirmListed(candidates, listing)

	require.Len(t, confirmed, 3)
	assert.True(t, confirmed[0].Available)
	assert.False(t, confirmed[1].Available)
	assert.False(t, confirmed[2].Available)
	assert.True(t, candidates[2].Available, "input must not be mutated")
}

func TestConfirmListed_EmptyListingBlocksEverything(t *testing.T) {
	candidates := []entity.TimeSlot{{Start: "09:00", End: "09:30", Available: true}}

	assert.False(t, ConfirmListed(candidates, &entity.AvailableSlotsResult{})[0].Available)
	assert.False(t, ConfirmListed(candidates, nil)[0].Available)
}
