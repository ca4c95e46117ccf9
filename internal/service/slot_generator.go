package service

import (
	"errors"
	"sort"
	"time"

	"clinic-site-api/internal/domain/entity"
)

// ErrInvalidDuration is returned for a zero or negative slot duration.
var ErrInvalidDuration = errors.New("slot duration must be a positive number of minutes")

// SkippedEntry is a schedule entry for the requested day whose times could not be parsed.
type SkippedEntry struct {
	Entry entity.WeeklyScheduleEntry
	Err   error
}

type candidate struct {
	start int
	end   int
}

// GenerateSlots expands the weekly entries that apply to date into fixed-duration
// windows. Every returned slot is marked available; conflicts are resolved later.
//
// Entries are walked independently, so overlapping blocks may yield duplicate
// start times. Trailing windows that would run past the block end are dropped.
// Slots are ordered by start time, ties keeping the entry order. Malformed
// entries for the day are skipped and reported back to the caller.
func GenerateSlots(entries []entity.WeeklyScheduleEntry, date time.Time, durationMinutes int) ([]entity.TimeSlot, []SkippedEntry, error) {
	if durationMinutes <= 0 {
		return nil, nil, ErrInvalidDuration
	}

	var (
		candidates []candidate
		skipped    []SkippedEntry
	)
	for i := range entries {
		entry := &entries[i]
		if !entry.MatchesDay(date) {
			continue
		}
		start, end, err := entry.Window()
		if err != nil {
			// a malformed block must not hide the rest of the day
			skipped = append(skipped, SkippedEntry{Entry: *entry, Err: err})
			continue
		}
		for s := start; s+durationMinutes <= end; s += durationMinutes {
			candidates = append(candidates, candidate{start: s, end: s + durationMinutes})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].start < candidates[j].start
	})

	slots := make([]entity.TimeSlot, len(candidates))
	for i, c := range candidates {
		slots[i] = entity.TimeSlot{
			Start:     entity.FormatClock(c.start),
			End:       entity.FormatClock(c.end),
			Available: true,
		}
	}
	return slots, skipped, nil
}
