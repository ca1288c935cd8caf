package assist_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/assist"
	"github.com/sahyadri/classai/core/lessonplan"
	"github.com/sahyadri/classai/core/student"
	"github.com/sahyadri/classai/core/textbook"
	dummygen "github.com/sahyadri/classai/services/gemini/dummy"
	logsvc "github.com/sahyadri/classai/services/logger"
	dummydb "github.com/sahyadri/classai/storage/database/dummy"
)

const snapshot = "data:image/jpeg;base64,c25hcHNob3Q="

type testDeps struct {
	gen         *dummygen.Generator
	svc         assist.Service
	studentSvc  student.Service
	textbookSvc textbook.Service
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), &core.Config{})
	reval := core.NopRevalidator()

	textbookSvc := textbook.NewService(dummydb.NewTextbookRepository(db), reval)
	lessonPlanSvc := lessonplan.NewService(dummydb.NewLessonPlanRepository(db))
	studentSvc := student.NewService(dummydb.NewStudentRepository(db), logger, reval, textbookSvc, lessonPlanSvc)

	gen := dummygen.NewGenerator()
	return testDeps{
		gen:         gen,
		svc:         assist.NewService(gen, logger, studentSvc, textbookSvc),
		studentSvc:  studentSvc,
		textbookSvc: textbookSvc,
	}
}

func (d testDeps) addTextbook(t *testing.T, subject string, grade int) {
	t.Helper()
	_, err := d.textbookSvc.Create(context.Background(), textbook.NewTextbook{
		Subject:     subject,
		Grade:       grade,
		EnglishLink: "https://example.com/en.pdf",
		KannadaLink: "https://example.com/kn.pdf",
	})
	require.NoError(t, err)
}

func TestService_AnalyzeEngagement(t *testing.T) {
	ctx := context.Background()

	t.Run("empty roster short-circuits", func(t *testing.T) {
		deps := newTestDeps(t)

		// placeholder photo, no consent: never sent to the model
		_, err := deps.studentSvc.Create(ctx, student.NewStudent{Name: "Asha", Standard: "4"})
		require.NoError(t, err)

		got, err := deps.svc.AnalyzeEngagement(ctx, snapshot)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Empty(t, deps.gen.Prompts, "the model must not be called without reference photos")
	})

	t.Run("recognized students are classified", func(t *testing.T) {
		deps := newTestDeps(t)

		asha, err := deps.studentSvc.Create(ctx, student.NewStudent{
			Name:         "Asha",
			Standard:     "4",
			PhotoDataURI: "data:image/png;base64,YXNoYQ==",
		})
		require.NoError(t, err)
		_, err = deps.studentSvc.SetConsent(ctx, asha.ID, true)
		require.NoError(t, err)

		// consented but placeholder photo: excluded from the roster
		ravi, err := deps.studentSvc.Create(ctx, student.NewStudent{Name: "Ravi", Standard: "4"})
		require.NoError(t, err)
		_, err = deps.studentSvc.SetConsent(ctx, ravi.ID, true)
		require.NoError(t, err)

		deps.gen.QueueJSON(fmt.Sprintf(
			`{"student_engagements":[{"student_id":%q,"student_name":"Asha","engagement_level":"Attentive"}]}`,
			asha.ID,
		))

		got, err := deps.svc.AnalyzeEngagement(ctx, snapshot)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, asha.ID, got[0].StudentID)
		assert.Equal(t, "attentive", got[0].NormalizedLevel())

		require.Len(t, deps.gen.Media, 1)
		assert.Equal(t, []string{snapshot, asha.PhotoDataURI}, deps.gen.Media[0],
			"snapshot first, then reference photos",
		)
	})
}

func TestService_LogPerformance(t *testing.T) {
	ctx := context.Background()

	engagements := func(ids ...string) []assist.Engagement {
		out := make([]assist.Engagement, 0, len(ids))
		for _, id := range ids {
			out = append(out, assist.Engagement{StudentID: id, Level: "Attentive"})
		}
		return out
	}

	t.Run("missing subject", func(t *testing.T) {
		deps := newTestDeps(t)
		res := deps.svc.LogPerformance(ctx, "", engagements("x"))
		assert.False(t, res.Success)
		assert.Equal(t, "No active class subject was provided. Cannot log performance.", res.Message)
	})

	t.Run("no engagements", func(t *testing.T) {
		deps := newTestDeps(t)
		res := deps.svc.LogPerformance(ctx, "EVS", nil)
		assert.False(t, res.Success)
		assert.Equal(t, "No students were provided to log performance for.", res.Message)
	})

	t.Run("no recognized students", func(t *testing.T) {
		deps := newTestDeps(t)
		res := deps.svc.LogPerformance(ctx, "EVS", engagements(""))
		assert.False(t, res.Success)
		assert.Equal(t, "No recognized students were found in the analysis.", res.Message)
	})

	t.Run("success", func(t *testing.T) {
		deps := newTestDeps(t)
		asha, err := deps.studentSvc.Create(ctx, student.NewStudent{Name: "Asha", Standard: "4"})
		require.NoError(t, err)

		res := deps.svc.LogPerformance(ctx, "EVS", engagements(asha.ID))
		assert.True(t, res.Success)
		assert.Equal(t, "Logged performance for 1 students in EVS.", res.Message)
		assert.Equal(t, "EVS", res.Subject)
	})
}

func TestService_GenerateLessonPlan(t *testing.T) {
	ctx := context.Background()

	req := assist.LessonPlanRequest{Subject: "EVS", Grade: 4, ChapterName: "Plants", Duration: 3}

	t.Run("missing textbook", func(t *testing.T) {
		deps := newTestDeps(t)
		_, err := deps.svc.GenerateLessonPlan(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `textbooks for subject "EVS" and grade 4 not found`)
	})

	t.Run("draft is returned, not saved", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.addTextbook(t, "EVS", 4)
		deps.gen.QueueJSON(`{
			"board": "Karnataka State Board",
			"grade": 4,
			"subject": "EVS",
			"lesson_name": "Plants",
			"daily_breakdown": [
				{"day": "Day 1", "learning_objectives": ["Identify plant parts"]}
			]
		}`)

		lp, err := deps.svc.GenerateLessonPlan(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, lp.ID)
		assert.Equal(t, "Plants", lp.LessonName)
		require.Len(t, lp.DailyBreakdown, 1)
		assert.Equal(t, []string{"Identify plant parts"}, lp.DailyBreakdown[0].LearningObjectives)
	})
}

func TestService_GenerateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("no image produced", func(t *testing.T) {
		deps := newTestDeps(t)
		_, err := deps.svc.GenerateImage(ctx, "a tree")
		assert.Equal(t, assist.ErrNoImage, errors.Cause(err))
	})

	t.Run("data URI returned", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.gen.QueueImage("data:image/png;base64,aW1n")

		uri, err := deps.svc.GenerateImage(ctx, "a tree")
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,aW1n", uri)
	})
}

func TestService_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog", func(t *testing.T) {
		deps := newTestDeps(t)
		answer, err := deps.svc.Chat(ctx, "What are plants?", nil)
		require.NoError(t, err)
		assert.Equal(t, "I'm sorry, no textbooks have been configured. Please ask the administrator to add some.", answer)
		assert.Empty(t, deps.gen.Prompts)
	})

	t.Run("conversational question", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.addTextbook(t, "EVS", 4)
		deps.gen.QueueJSON(`{"is_academic": false, "reasoning": "greeting"}`)
		deps.gen.QueueJSON(`{"answer": "Hello! How can I help you today?"}`)

		answer, err := deps.svc.Chat(ctx, "Hi there!", nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello! How can I help you today?", answer)
	})

	t.Run("academic question grounded in the textbook", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.addTextbook(t, "EVS", 4)
		deps.gen.QueueJSON(`{"is_academic": true, "subject": "EVS", "grade": 4, "reasoning": "plant biology"}`)
		deps.gen.QueueJSON(`{"answer": "Plants make their own food."}`)

		answer, err := deps.svc.Chat(ctx, "How do plants eat?", nil)
		require.NoError(t, err)
		assert.Equal(t, "Plants make their own food.", answer)

		require.Len(t, deps.gen.Media, 2)
		assert.Equal(t, []string{"https://example.com/en.pdf", "https://example.com/kn.pdf"}, deps.gen.Media[1],
			"the answer must be grounded in both textbook editions",
		)
	})

	t.Run("academic question without a resolvable context", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.addTextbook(t, "EVS", 4)
		deps.gen.QueueJSON(`{"is_academic": true, "subject": "", "grade": 0}`)

		answer, err := deps.svc.Chat(ctx, "Why?", nil)
		require.NoError(t, err)
		assert.Equal(t, "I'm sorry, I wasn't able to determine the correct subject for your question. Could you be more specific?", answer)
	})

	t.Run("selected textbook missing", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.addTextbook(t, "EVS", 4)
		deps.gen.QueueJSON(`{"is_academic": true, "subject": "Math", "grade": 6}`)

		answer, err := deps.svc.Chat(ctx, "What is algebra?", nil)
		require.NoError(t, err)
		assert.Equal(t, "I'm sorry, I could not find the right textbook for that question.", answer)
	})

	t.Run("context selection failure degrades gracefully", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.addTextbook(t, "EVS", 4)
		deps.gen.Fail(errors.New("model unavailable"))

		answer, err := deps.svc.Chat(ctx, "What are plants?", nil)
		require.NoError(t, err)
		assert.Equal(t, "I'm sorry, I had trouble understanding your question. Could you please rephrase it?", answer)
	})
}
