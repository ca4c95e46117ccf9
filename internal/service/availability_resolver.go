package service

import (
	"clinic-site-api/internal/domain/entity"
)

// ResolveAvailability marks candidate slots that overlap a taken interval as
// unavailable and collapses duplicate start times. A start time is available
// only if every duplicate of it is available.
//
// The function is pure: the same candidates and taken intervals always produce
// the same result.
func ResolveAvailability(
	doctor entity.DoctorRef,
	date string,
	durationMinutes int,
	candidates []entity.TimeSlot,
	taken []entity.Interval,
) *entity.AvailableSlotsResult {
	slots := make([]entity.TimeSlot, 0, len(candidates))
	index := make(map[string]int, len(candidates))

	for _, c := range candidates {
		interval, ok := entity.SlotInterval(c)
		if !ok {
			continue
		}

		available := c.Available
		for _, t := range taken {
			if interval.Overlaps(t) {
				available = false
				break
			}
		}

		if pos, dup := index[c.Start]; dup {
			slots[pos].Available = slots[pos].Available && available
			continue
		}
		index[c.Start] = len(slots)
		slots = append(slots, entity.TimeSlot{Start: c.Start, End: c.End, Available: available})
	}

	result := &entity.AvailableSlotsResult{
		Doctor:          doctor,
		Date:            date,
		DurationMinutes: durationMinutes,
		Slots:           slots,
		Status:          entity.AvailabilityOpen,
	}

	switch {
	case len(slots) == 0:
		result.Status = entity.AvailabilityNoSchedule
		result.Message = entity.MessageNoSchedule
	case result.AvailableCount() == 0:
		result.Status = entity.AvailabilityFullyBooked
		result.Message = entity.MessageFullyBooked
	}

	return result
}

// ConfirmListed keeps a generated candidate available only when the backend
// listing offers a free slot with the same start. Windows the backend leaves
// out (holidays, leave, hours already past) become unavailable.
func ConfirmListed(candidates []entity.TimeSlot, listing *entity.AvailableSlotsResult) []entity.TimeSlot {
	out := make([]entity.TimeSlot, len(candidates))
	for i, c := range candidates {
		c.Available = c.Available && listing != nil && listing.HasSlot(c.Start)
		out[i] = c
	}
	return out
}

// TakenIntervals extracts the occupied windows from a backend slots listing.
func TakenIntervals(slots []entity.TimeSlot) []entity.Interval {
	var taken []entity.Interval
	for _, s := range slots {
		if s.Available {
			continue
		}
		if interval, ok := entity.SlotInterval(s); ok {
			taken = append(taken, interval)
		}
	}
	return taken
}
