package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahyadri/classai/core/timetable"
)

type timetableRepository struct {
	db *timetableTable
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db.timetable}
}

func (repo *timetableRepository) CreateEntry(ctx context.Context, e timetable.Entry) (timetable.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	e.ID = uuid.NewString()
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *timetableRepository) QueryAllEntries(ctx context.Context) ([]timetable.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]timetable.Entry, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		entries = append(entries, *e)
	}
	return entries, nil
}

func (repo *timetableRepository) QueryEntriesByDay(ctx context.Context, day string) ([]timetable.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var entries []timetable.Entry
	for _, e := range repo.db.table {
		if e.Day == day {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

func (repo *timetableRepository) DeleteEntriesByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
