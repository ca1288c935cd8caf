package digest_test

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/digest"
	"github.com/sahyadri/classai/core/lessonplan"
	"github.com/sahyadri/classai/core/student"
	"github.com/sahyadri/classai/core/textbook"
	emailsvc "github.com/sahyadri/classai/services/email"
	logsvc "github.com/sahyadri/classai/services/logger"
	dummydb "github.com/sahyadri/classai/storage/database/dummy"
)

func newConf() *core.Config {
	return &core.Config{
		AppName:           "ClassAI",
		DefaultFromEmail:  "noreply@localhost",
		TeacherInboxEmail: "teacher@school.test",
		FrontendBaseURL:   "http://localhost:3000",
	}
}

type testDeps struct {
	conf       *core.Config
	svc        digest.Service
	studentSvc student.Service

	textbookSvc   textbook.Service
	lessonPlanSvc lessonplan.Service
	repo          student.Repository
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)

	conf := newConf()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	reval := core.NopRevalidator()

	repo := dummydb.NewStudentRepository(db)
	textbookSvc := textbook.NewService(dummydb.NewTextbookRepository(db), reval)
	lessonPlanSvc := lessonplan.NewService(dummydb.NewLessonPlanRepository(db))
	studentSvc := student.NewService(repo, logger, reval, textbookSvc, lessonPlanSvc)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	return testDeps{
		conf:          conf,
		svc:           digest.NewService(conf, logger, mailSvc, studentSvc),
		studentSvc:    studentSvc,
		textbookSvc:   textbookSvc,
		lessonPlanSvc: lessonPlanSvc,
		repo:          repo,
	}
}

// seedStruggling enrolls one student who passes the selector's triple
// gate: low score plus both textbook links plus a lesson plan.
func seedStruggling(t *testing.T, deps testDeps) {
	t.Helper()
	ctx := context.Background()

	week := student.WeekKey(time.Now())
	_, err := deps.repo.CreateStudent(ctx, student.Student{
		Name:     "Asha",
		Standard: "4",
		Performance: []student.WeeklyRecord{
			{Week: week, Subjects: map[string]student.PerformanceSubject{
				"EVS": {Attention: student.AttentionLow, Score: 10, Readings: 2},
			}},
		},
	})
	require.NoError(t, err)

	_, err = deps.textbookSvc.Create(ctx, textbook.NewTextbook{
		Subject:     "EVS",
		Grade:       4,
		EnglishLink: "https://example.com/en.pdf",
		KannadaLink: "https://example.com/kn.pdf",
	})
	require.NoError(t, err)
	_, err = deps.lessonPlanSvc.Save(ctx, lessonplan.LessonPlan{Subject: "EVS", Grade: 4, LessonName: "Plants"})
	require.NoError(t, err)
}

func TestService_SendWeekly(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when no one is struggling", func(t *testing.T) {
		emailsvc.SentMessages = nil
		deps := newTestDeps(t)

		require.NoError(t, deps.svc.SendWeekly(ctx))
		assert.Empty(t, emailsvc.SentMessages)
	})

	t.Run("mails the teacher inbox", func(t *testing.T) {
		emailsvc.SentMessages = nil
		deps := newTestDeps(t)
		seedStruggling(t, deps)

		require.NoError(t, deps.svc.SendWeekly(ctx))

		require.Len(t, emailsvc.SentMessages, 1)
		msg := emailsvc.SentMessages[0]
		assert.Equal(t, "Struggling students this week", msg.Subject)
		require.Len(t, msg.To, 1)
		assert.Equal(t, "teacher@school.test", msg.To[0].Address)
		assert.Contains(t, msg.TextContent, "Asha")
		assert.Contains(t, msg.TextContent, "EVS")
	})

	t.Run("concurrent sends are safe", func(t *testing.T) {
		emailsvc.SentMessages = nil
		deps := newTestDeps(t)
		seedStruggling(t, deps)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, deps.svc.SendWeekly(ctx))
			}()
		}
		wg.Wait()
		assert.Len(t, emailsvc.SentMessages, 4)
	})
}
