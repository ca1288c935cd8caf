package lessonplan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri/classai/core/lessonplan"
	dummydb "github.com/sahyadri/classai/storage/database/dummy"
)

func testRepoAndService(t *testing.T) (lessonplan.Repository, lessonplan.Service) {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)
	repo := dummydb.NewLessonPlanRepository(db)
	return repo, lessonplan.NewService(repo)
}

func TestService_Save(t *testing.T) {
	_, svc := testRepoAndService(t)
	ctx := context.Background()

	lp, err := svc.Save(ctx, lessonplan.LessonPlan{
		Board:      "Karnataka State Board",
		Grade:      4,
		Subject:    "EVS",
		LessonName: "Parts of a Plant",
		DailyBreakdown: []lessonplan.DailyPlan{
			{Day: "Day 1", LearningObjectives: []string{"Name the parts of a plant"}},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lp.ID)
	assert.False(t, lp.CreatedAt.IsZero())

	plans, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestService_Latest(t *testing.T) {
	repo, svc := testRepoAndService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// two generations for the same pair plus an unrelated pair
	old, err := repo.CreateLessonPlan(ctx, lessonplan.LessonPlan{
		Subject: "EVS", Grade: 4, LessonName: "Old Draft", CreatedAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = repo.CreateLessonPlan(ctx, lessonplan.LessonPlan{
		Subject: "EVS", Grade: 4, LessonName: "New Draft", CreatedAt: now,
	})
	require.NoError(t, err)
	_, err = repo.CreateLessonPlan(ctx, lessonplan.LessonPlan{
		Subject: "Math", Grade: 5, LessonName: "Fractions", CreatedAt: now,
	})
	require.NoError(t, err)

	lp, err := svc.Latest(ctx, "EVS", 4)
	require.NoError(t, err)
	assert.Equal(t, "New Draft", lp.LessonName)

	_, err = svc.Latest(ctx, "EVS", 9)
	assert.Equal(t, lessonplan.ErrNotFound, err)

	// deleting the newest plan falls back to the older one
	plans, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	var newestID string
	for _, p := range plans {
		if p.LessonName == "New Draft" {
			newestID = p.ID
		}
	}
	require.NoError(t, svc.Delete(ctx, newestID))

	lp, err = svc.Latest(ctx, "EVS", 4)
	require.NoError(t, err)
	assert.Equal(t, old.LessonName, lp.LessonName)
}
