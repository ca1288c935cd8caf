package lessonplan

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("lesson plan not found")
)

type (
	Repository interface {
		CreateLessonPlan(ctx context.Context, lp LessonPlan) (LessonPlan, error)
		// QueryAllLessonPlans returns all plans ordered newest first.
		QueryAllLessonPlans(ctx context.Context) ([]LessonPlan, error)
		DeleteLessonPlansByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		// Save stamps the creation time and persists the plan.
		Save(ctx context.Context, lp LessonPlan) (LessonPlan, error)
		QueryAll(ctx context.Context) ([]LessonPlan, error)
		// Latest returns the most recently saved plan for the pair.
		Latest(ctx context.Context, subject string, grade int) (LessonPlan, error)
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Save(ctx context.Context, lp LessonPlan) (LessonPlan, error) {
	lp.ID = ""
	lp.CreatedAt = time.Now().UTC()
	return svc.repo.CreateLessonPlan(ctx, lp)
}

func (svc *service) QueryAll(ctx context.Context) ([]LessonPlan, error) {
	return svc.repo.QueryAllLessonPlans(ctx)
}

func (svc *service) Latest(ctx context.Context, subject string, grade int) (LessonPlan, error) {
	plans, err := svc.repo.QueryAllLessonPlans(ctx)
	if err != nil {
		return LessonPlan{}, err
	}
	for _, lp := range plans {
		if lp.Subject == subject && lp.Grade == grade {
			return lp, nil
		}
	}
	return LessonPlan{}, ErrNotFound
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteLessonPlansByID(ctx, ids...)
}
