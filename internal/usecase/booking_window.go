package usecase

import (
	"time"

	"clinic-site-api/config"
)

// bookingWindow is the range of dates a visitor may book: today up to
// MaxDaysAhead days ahead, in the practice time zone.
type bookingWindow struct {
	loc          *time.Location
	maxDaysAhead int
	now          func() time.Time
}

func newBookingWindow(cfg config.BookingConfig) bookingWindow {
	return bookingWindow{
		loc:          cfg.Location(),
		maxDaysAhead: cfg.MaxDaysAhead,
		now:          time.Now,
	}
}

// parse reads a YYYY-MM-DD date as midnight in the practice time zone.
func (w bookingWindow) parse(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, w.loc)
}

func (w bookingWindow) contains(date time.Time) bool {
	now := w.now().In(w.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.loc)
	if date.Before(today) {
		return false
	}
	if w.maxDaysAhead > 0 && date.After(today.AddDate(0, 0, w.maxDaysAhead)) {
		return false
	}
	return true
}
