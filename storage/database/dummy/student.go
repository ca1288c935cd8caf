package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahyadri/classai/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	st = cloneStudent(st)
	st.ID = uuid.NewString()
	repo.db.table[st.ID] = &st
	return cloneStudent(st), nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.table))
	for _, st := range repo.db.table {
		students = append(students, cloneStudent(*st))
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if st, ok := repo.db.table[id]; ok {
		return cloneStudent(*st), nil
	}
	return student.Student{}, student.ErrNotFound
}

// UpdateStudentsPerformance applies the whole batch under one write
// lock: all or none, matching the production store's transaction.
func (repo *studentRepository) UpdateStudentsPerformance(ctx context.Context, students ...student.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, st := range students {
		if _, ok := repo.db.table[st.ID]; !ok {
			return student.ErrNotFound
		}
	}
	for _, st := range students {
		st := cloneStudent(st)
		orig := repo.db.table[st.ID]
		orig.Performance = st.Performance
		orig.UpdatedAt = st.UpdatedAt
	}
	return nil
}

func (repo *studentRepository) UpdateStudentConsent(ctx context.Context, id string, consent bool) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	st, ok := repo.db.table[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	st.ParentConsent = consent
	return cloneStudent(*st), nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

// cloneStudent deep-copies the performance records so callers never
// share map headers with the stored record. Without this, folding into
// a fetched copy would mutate the store before the batch write.
func cloneStudent(st student.Student) student.Student {
	if st.Performance == nil {
		return st
	}
	perf := make([]student.WeeklyRecord, len(st.Performance))
	for i, rec := range st.Performance {
		subjects := make(map[string]student.PerformanceSubject, len(rec.Subjects))
		for subj, ps := range rec.Subjects {
			subjects[subj] = ps
		}
		perf[i] = student.WeeklyRecord{Week: rec.Week, Subjects: subjects}
	}
	st.Performance = perf
	return st
}
