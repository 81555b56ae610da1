// Package schedule computes concrete doctor availability windows from the
// stored weekly recurrence (weekday pair + UTC wall-clock time pair).
package schedule

import (
	"time"

	"github.com/clinicagenda/clinic-api/internal/model"
)

// Window is a doctor's availability anchored to one calendar week. Callers
// must recompute per week; the window is not a recurring rule object.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// weekdayInWeek returns the occurrence of weekday (0=Sunday..6=Saturday)
// within the calendar week containing day. Weeks start on Sunday, matching
// the weekday encoding of the doctors table.
func weekdayInWeek(day time.Time, weekday int) time.Time {
	return day.AddDate(0, 0, weekday-int(day.Weekday()))
}

// Availability computes the current week's availability window for the
// doctor. Stored times are UTC wall clock; the result is converted to loc
// for display.
func Availability(doctor *model.Doctor, now time.Time, loc *time.Location) Window {
	utcNow := now.UTC()

	from := doctor.AvailableFromTime.On(weekdayInWeek(utcNow, doctor.AvailableFromWeekday))
	to := doctor.AvailableToTime.On(weekdayInWeek(utcNow, doctor.AvailableToWeekday))

	return Window{
		From: from.In(loc),
		To:   to.In(loc),
	}
}

// ToUTC converts a wall-clock time of day collected in loc into the UTC wall
// clock persisted in storage. The conversion is anchored on now's date in
// loc, so it reflects the zone offset in effect when the form was submitted.
func ToUTC(t model.TimeOfDay, now time.Time, loc *time.Location) model.TimeOfDay {
	utc := t.On(now.In(loc)).UTC()
	return model.TimeOfDay{Hour: utc.Hour(), Minute: utc.Minute()}
}
