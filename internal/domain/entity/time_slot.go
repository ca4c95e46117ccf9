package entity

// TimeSlot is a fixed-duration candidate appointment window.
type TimeSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// Interval is a half-open [Start, End) range in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps uses the half-open test: a.start < b.end && b.start < a.end.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// SlotInterval converts a slot to minutes. Malformed slots yield ok=false.
func SlotInterval(slot TimeSlot) (Interval, bool) {
	start, err := ParseClock(slot.Start)
	if err != nil {
		return Interval{}, false
	}
	end, err := ParseClock(slot.End)
	if err != nil {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// AvailabilityStatus distinguishes the empty states of a slots result.
type AvailabilityStatus string

const (
	AvailabilityOpen        AvailabilityStatus = "available"
	AvailabilityNoSchedule  AvailabilityStatus = "no_schedule"
	AvailabilityFullyBooked AvailabilityStatus = "fully_booked"
)

const (
	MessageNoSchedule  = "El médico no tiene horarios configurados para esta fecha"
	MessageFullyBooked = "No hay turnos disponibles para esta fecha, todos los horarios están reservados"
)

// DoctorRef identifies the doctor a slots result belongs to.
type DoctorRef struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// AvailableSlotsResult is the resolved availability of one doctor on one date.
type AvailableSlotsResult struct {
	Doctor          DoctorRef          `json:"doctor"`
	Date            string             `json:"date"`
	DurationMinutes int                `json:"duration"`
	Slots           []TimeSlot         `json:"slots"`
	Status          AvailabilityStatus `json:"status"`
	Message         string             `json:"message,omitempty"`
}

// AvailableCount returns the number of free slots.
func (r *AvailableSlotsResult) AvailableCount() int {
	count := 0
	for _, slot := range r.Slots {
		if slot.Available {
			count++
		}
	}
	return count
}

// HasSlot reports whether start is a currently free slot.
func (r *AvailableSlotsResult) HasSlot(start string) bool {
	for _, slot := range r.Slots {
		if slot.Start == start && slot.Available {
			return true
		}
	}
	return false
}
