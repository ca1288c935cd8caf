package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestLive(t *testing.T) {
	entries := []Entry{
		{Day: "Monday", StartTime: "09:00", EndTime: "09:45", Subject: "Math"},
		{Day: "Monday", StartTime: "10:00", EndTime: "10:30", Subject: "EVS"},
	}

	tests := []struct {
		name string
		now  time.Time
		want string // subject; "" means no live class
	}{
		{"before first class", at(8, 59), ""},
		{"start is inclusive", at(9, 0), "Math"},
		{"mid class", at(9, 30), "Math"},
		{"end is exclusive", at(9, 45), ""},
		{"gap between classes", at(9, 50), ""},
		{"second class", at(10, 0), "EVS"},
		{"after last class", at(10, 30), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := Live(entries, tt.now)
			if tt.want == "" {
				assert.Nil(t, live)
			} else {
				assert.NotNil(t, live)
				assert.Equal(t, tt.want, live.Subject)
			}
		})
	}

	t.Run("no entries", func(t *testing.T) {
		assert.Nil(t, Live(nil, at(9, 30)))
	})
}

func TestEntry_Overlaps(t *testing.T) {
	base := Entry{Day: "Monday", StartTime: "09:00", EndTime: "10:00"}

	tests := []struct {
		name  string
		other Entry
		want  bool
	}{
		{"identical", Entry{Day: "Monday", StartTime: "09:00", EndTime: "10:00"}, true},
		{"contained", Entry{Day: "Monday", StartTime: "09:15", EndTime: "09:45"}, true},
		{"partial front", Entry{Day: "Monday", StartTime: "08:30", EndTime: "09:30"}, true},
		{"partial back", Entry{Day: "Monday", StartTime: "09:30", EndTime: "10:30"}, true},
		{"back to back before", Entry{Day: "Monday", StartTime: "08:00", EndTime: "09:00"}, false},
		{"back to back after", Entry{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}, false},
		{"other day", Entry{Day: "Tuesday", StartTime: "09:00", EndTime: "10:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
		})
	}
}

func TestDayIndex(t *testing.T) {
	assert.Equal(t, 0, DayIndex("Monday"))
	assert.Equal(t, 6, DayIndex("Sunday"))
	assert.Equal(t, -1, DayIndex("Funday"))
}
