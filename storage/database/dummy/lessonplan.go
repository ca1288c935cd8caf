package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/sahyadri/classai/core/lessonplan"
)

type lessonPlanRepository struct {
	db *lessonPlanTable
}

var _ lessonplan.Repository = (*lessonPlanRepository)(nil) // interface compliance check

func NewLessonPlanRepository(db *DB) lessonplan.Repository {
	return &lessonPlanRepository{db: db.lessonplan}
}

func (repo *lessonPlanRepository) CreateLessonPlan(ctx context.Context, lp lessonplan.LessonPlan) (lessonplan.LessonPlan, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	lp.ID = uuid.NewString()
	repo.db.table[lp.ID] = &lp
	return lp, nil
}

func (repo *lessonPlanRepository) QueryAllLessonPlans(ctx context.Context) ([]lessonplan.LessonPlan, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	plans := make([]lessonplan.LessonPlan, 0, len(repo.db.table))
	for _, lp := range repo.db.table {
		plans = append(plans, *lp)
	}
	// newest first
	sort.Slice(plans, func(i, j int) bool { return plans[i].CreatedAt.After(plans[j].CreatedAt) })
	return plans, nil
}

func (repo *lessonPlanRepository) DeleteLessonPlansByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
