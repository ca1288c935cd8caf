package timetable

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sahyadri/classai/core"
)

// Days in timetable order, Monday first.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayIndex returns the position of day in the week (Monday = 0), or -1
// for an unknown day name.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// Entry is one scheduled class. Times are zero-padded 24h "HH:MM"
// strings; their fixed width makes lexicographic comparison valid.
type Entry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Day       string    `json:"day" bson:"day"`
	StartTime string    `json:"start_time" bson:"start_time"`
	EndTime   string    `json:"end_time" bson:"end_time"`
	Subject   string    `json:"subject" bson:"subject"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"` // UTC
}

// Overlaps reports whether the two entries share a day and their time
// intervals intersect.
func (e *Entry) Overlaps(other Entry) bool {
	return e.Day == other.Day && e.StartTime < other.EndTime && other.StartTime < e.EndTime
}

// NewEntry contains information needed to schedule a new Entry.
type NewEntry struct {
	Day       string `json:"day" validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	Subject   string `json:"subject" validate:"required"`
}

func (ne *NewEntry) Validate(ctx context.Context, validate *validator.Validate) error {
	ne.Subject = core.CleanString(ne.Subject)
	return validate.StructCtx(ctx, ne)
}

// Live returns the first entry in todaysEntries whose interval contains
// now (start inclusive, end exclusive), or nil when no class is in
// session. Callers re-evaluate on a polling interval; classroom
// transitions are minute granularity.
func Live(todaysEntries []Entry, now time.Time) *Entry {
	hhmm := now.Format("15:04")
	for i := range todaysEntries {
		e := &todaysEntries[i]
		if e.StartTime <= hhmm && hhmm < e.EndTime {
			return e
		}
	}
	return nil
}
