package entity

import (
	"fmt"
	"time"
)

// WeeklyScheduleEntry is one recurring availability block for a doctor.
// It is maintained by the practice-management backend and never written here.
type WeeklyScheduleEntry struct {
	DoctorID    string  `json:"doctor_id"`
	DoctorName  string  `json:"doctor_name"`
	DayOfWeek   int     `json:"dia_semana"`  // 0 = Sunday
	StartTime   string  `json:"hora_inicio"` // HH:MM
	EndTime     string  `json:"hora_fin"`    // HH:MM
	RoomName    *string `json:"consultorio_name"`
	RoomAddress *string `json:"consultorio_address"`
}

// DayNames are the Spanish weekday labels indexed by time.Weekday.
var DayNames = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// MatchesDay reports whether the entry applies to the weekday of date.
func (e *WeeklyScheduleEntry) MatchesDay(date time.Time) bool {
	return e.DayOfWeek == int(date.Weekday())
}

// Window parses the entry bounds as minutes from midnight.
func (e *WeeklyScheduleEntry) Window() (start, end int, err error) {
	start, err = ParseClock(e.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(e.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseClock converts "HH:MM" (or "HH:MM:SS" as Postgres time columns render) to minutes from midnight.
func ParseClock(value string) (int, error) {
	if value == "24:00" || value == "24:00:00" {
		return 24 * 60, nil
	}
	layout := "15:04"
	if len(value) == len("15:04:05") {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
