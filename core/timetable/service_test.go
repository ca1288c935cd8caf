package timetable_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/timetable"
	dummydb "github.com/sahyadri/classai/storage/database/dummy"
)

type stubResolver string

func (r stubResolver) DayOfWeek(context.Context) string { return string(r) }

func newTestService(t *testing.T, day string) timetable.Service {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	return timetable.NewService(dummydb.NewTimetableRepository(db), stubResolver(day), core.NopRevalidator())
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, "Monday")

	_, err := svc.Add(ctx, timetable.NewEntry{Day: "Monday", StartTime: "09:00", EndTime: "09:45", Subject: "Math"})
	require.NoError(t, err)

	t.Run("overlap on the same day is rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, timetable.NewEntry{Day: "Monday", StartTime: "09:30", EndTime: "10:15", Subject: "EVS"})
		require.Error(t, err)

		vErr, ok := errors.Cause(err).(*core.ValidationError)
		require.True(t, ok, "want a ValidationError, got %T", errors.Cause(err))
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "start_time", vErr.Fields[0].Field)
	})

	t.Run("same slot on another day is fine", func(t *testing.T) {
		_, err := svc.Add(ctx, timetable.NewEntry{Day: "Tuesday", StartTime: "09:00", EndTime: "09:45", Subject: "Math"})
		assert.NoError(t, err)
	})

	t.Run("back to back slots are fine", func(t *testing.T) {
		_, err := svc.Add(ctx, timetable.NewEntry{Day: "Monday", StartTime: "09:45", EndTime: "10:30", Subject: "Kannada"})
		assert.NoError(t, err)
	})
}

func TestService_QueryAll(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, "Monday")

	for _, ne := range []timetable.NewEntry{
		{Day: "Tuesday", StartTime: "09:00", EndTime: "09:45", Subject: "Math"},
		{Day: "Monday", StartTime: "10:00", EndTime: "10:45", Subject: "EVS"},
		{Day: "Monday", StartTime: "09:00", EndTime: "09:45", Subject: "Kannada"},
	} {
		_, err := svc.Add(ctx, ne)
		require.NoError(t, err)
	}

	entries, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// day order first, then start time
	assert.Equal(t, "Kannada", entries[0].Subject)
	assert.Equal(t, "EVS", entries[1].Subject)
	assert.Equal(t, "Math", entries[2].Subject)
}

func TestService_Today(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, "Wednesday")

	_, err := svc.Add(ctx, timetable.NewEntry{Day: "Wednesday", StartTime: "09:00", EndTime: "09:45", Subject: "Math"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, timetable.NewEntry{Day: "Thursday", StartTime: "09:00", EndTime: "09:45", Subject: "EVS"})
	require.NoError(t, err)

	entries, err := svc.Today(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Math", entries[0].Subject)
}
