package student_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/lessonplan"
	"github.com/sahyadri/classai/core/student"
	"github.com/sahyadri/classai/core/textbook"
	logsvc "github.com/sahyadri/classai/services/logger"
	dummydb "github.com/sahyadri/classai/storage/database/dummy"
)

type testDeps struct {
	repo          student.Repository
	svc           student.Service
	textbookSvc   textbook.Service
	lessonPlanSvc lessonplan.Service
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), &core.Config{})
	reval := core.NopRevalidator()

	repo := dummydb.NewStudentRepository(db)
	textbookSvc := textbook.NewService(dummydb.NewTextbookRepository(db), reval)
	lessonPlanSvc := lessonplan.NewService(dummydb.NewLessonPlanRepository(db))
	svc := student.NewService(repo, logger, reval, textbookSvc, lessonPlanSvc)

	return testDeps{repo: repo, svc: svc, textbookSvc: textbookSvc, lessonPlanSvc: lessonPlanSvc}
}

func TestService_Create(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	st, err := deps.svc.Create(ctx, student.NewStudent{Name: "Asha", Standard: "4"})
	require.NoError(t, err)

	assert.NotEmpty(t, st.ID)
	assert.Equal(t, student.PlaceholderPhoto, st.PhotoDataURI)
	assert.False(t, st.ParentConsent)

	// new students are seeded with one low EVS reading for the current
	// week so they surface on dashboards immediately
	require.Len(t, st.Performance, 1)
	assert.Equal(t, student.WeekKey(time.Now()), st.Performance[0].Week)
	assert.Equal(t,
		student.PerformanceSubject{Attention: student.AttentionLow, Score: 0, Readings: 1},
		st.Performance[0].Subjects["EVS"],
	)
}

func TestService_LogEngagement(t *testing.T) {
	ctx := context.Background()

	t.Run("subject is required", func(t *testing.T) {
		deps := newTestDeps(t)
		_, err := deps.svc.LogEngagement(ctx, "  ", []student.Observation{{StudentID: "x"}})
		assert.Equal(t, student.ErrMissingSubject, err)
	})

	t.Run("unrecognized observations are rejected", func(t *testing.T) {
		deps := newTestDeps(t)
		_, err := deps.svc.LogEngagement(ctx, "EVS", []student.Observation{{StudentID: ""}, {StudentID: ""}})
		assert.Equal(t, student.ErrNoObservations, err)
	})

	t.Run("unknown students are skipped", func(t *testing.T) {
		deps := newTestDeps(t)
		count, err := deps.svc.LogEngagement(ctx, "EVS", []student.Observation{
			{StudentID: "no-such-student", Level: student.LevelAttentive},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("folds the batch into the current week", func(t *testing.T) {
		deps := newTestDeps(t)

		asha, err := deps.svc.Create(ctx, student.NewStudent{Name: "Asha", Standard: "4"})
		require.NoError(t, err)
		ravi, err := deps.svc.Create(ctx, student.NewStudent{Name: "Ravi", Standard: "4"})
		require.NoError(t, err)

		count, err := deps.svc.LogEngagement(ctx, "Math", []student.Observation{
			{StudentID: asha.ID, Level: student.LevelAttentive},
			{StudentID: ravi.ID, Level: student.LevelDistracted},
			{StudentID: asha.ID, Level: student.LevelDistracted}, // same student twice in one batch
			{StudentID: "ghost", Level: student.LevelAttentive},  // skipped
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		week := student.WeekKey(time.Now())

		got, err := deps.svc.GetByID(ctx, asha.ID)
		require.NoError(t, err)
		require.Len(t, got.Performance, 1)
		assert.Equal(t,
			student.PerformanceSubject{Attention: student.AttentionMedium, Score: 50, Readings: 2},
			got.Performance[0].Subjects["Math"],
			"both observations of the same student must fold into one copy",
		)
		assert.Equal(t, week, got.Performance[0].Week)

		got, err = deps.svc.GetByID(ctx, ravi.ID)
		require.NoError(t, err)
		assert.Equal(t,
			student.PerformanceSubject{Attention: student.AttentionLow, Score: 0, Readings: 1},
			got.Performance[0].Subjects["Math"],
		)
	})
}

func TestService_Struggling(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	week := student.WeekKey(time.Now())

	mkStudent := func(name, standard string, score float64) student.Student {
		st, err := deps.repo.CreateStudent(ctx, student.Student{
			Name:     name,
			Standard: standard,
			Performance: []student.WeeklyRecord{
				{Week: week, Subjects: map[string]student.PerformanceSubject{
					"EVS": {Attention: student.AttentionFor(score), Score: score, Readings: 2},
				}},
			},
		})
		require.NoError(t, err)
		return st
	}

	asha := mkStudent("Asha", "4", 10)

	// no textbook and no lesson plan yet: nothing qualifies
	got, err := deps.svc.Struggling(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	// textbook alone is not enough
	_, err = deps.textbookSvc.Create(ctx, textbook.NewTextbook{
		Subject:     "EVS",
		Grade:       4,
		EnglishLink: "https://example.com/evs-en.pdf",
		KannadaLink: "https://example.com/evs-kn.pdf",
	})
	require.NoError(t, err)

	got, err = deps.svc.Struggling(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	// a lesson plan for the pair completes the gate
	_, err = deps.lessonPlanSvc.Save(ctx, lessonplan.LessonPlan{Subject: "EVS", Grade: 4, LessonName: "Plants"})
	require.NoError(t, err)

	got, err = deps.svc.Struggling(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, asha.ID, got[0].ID)
	assert.Equal(t, "EVS", got[0].Subject)
	assert.Equal(t, 4, got[0].Grade)
	assert.Equal(t, float64(10), got[0].Score)

	// the threshold itself and unparseable standards never qualify
	mkStudent("Ravi", "4", 35)
	mkStudent("Mala", "4th B", 5)

	// a lower score sorts first
	mina := mkStudent("Mina", "4", 2)

	got, err = deps.svc.Struggling(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, mina.ID, got[0].ID)
	assert.Equal(t, asha.ID, got[1].ID)
}
