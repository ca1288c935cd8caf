package assist

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/lessonplan"
	"github.com/sahyadri/classai/core/student"
	"github.com/sahyadri/classai/core/textbook"
)

var (
	// errors
	ErrNoImage = errors.New("image generation failed to produce an image")
)

type (
	Service interface {
		// AnalyzeEngagement classifies per-student engagement from a
		// classroom snapshot. Students without a real reference photo or
		// without parental consent are never sent to the model; an empty
		// roster short-circuits to an empty result.
		AnalyzeEngagement(ctx context.Context, snapshotDataURI string) ([]Engagement, error)

		// LogPerformance folds analyzed engagements into the weekly
		// aggregates for the subject currently in session. Soft-failure
		// semantics: the outcome is always a LogResult, never an error.
		LogPerformance(ctx context.Context, subject string, engagements []Engagement) LogResult

		// GenerateLessonPlan drafts a day-by-day plan grounded in both
		// textbook editions; it errors when either edition is missing.
		// The caller decides whether to save the draft.
		GenerateLessonPlan(ctx context.Context, req LessonPlanRequest) (lessonplan.LessonPlan, error)

		// GeneratePracticeHandout drafts a bilingual remediation handout
		// for one struggling student.
		GeneratePracticeHandout(ctx context.Context, req HandoutRequest) (Handout, error)

		// GenerateBlackboardLayout renders a chalk-sketch layout image for
		// a lesson, returned as a data URI.
		GenerateBlackboardLayout(ctx context.Context, req BlackboardRequest) (string, error)

		// GenerateImage renders an image for a free-form prompt, returned
		// as a data URI.
		GenerateImage(ctx context.Context, prompt string) (string, error)

		// Chat answers a question, grounded in the textbook catalog when
		// the question is academic.
		Chat(ctx context.Context, question string, history []ChatMessage) (string, error)
	}

	service struct {
		gen    Generator
		logger core.Logger

		studentSvc  student.Service
		textbookSvc textbook.Service
	}
)

var _ Service = (*service)(nil)

func NewService(gen Generator, logger core.Logger, studentSvc student.Service, textbookSvc textbook.Service) Service {
	return &service{
		gen:         gen,
		logger:      logger,
		studentSvc:  studentSvc,
		textbookSvc: textbookSvc,
	}
}

func (svc *service) AnalyzeEngagement(ctx context.Context, snapshotDataURI string) ([]Engagement, error) {
	students, err := svc.studentSvc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]student.Student, 0, len(students))
	for _, st := range students {
		if !st.ParentConsent || !st.HasPhoto() {
			continue
		}
		roster = append(roster, st)
	}
	if len(roster) == 0 {
		// No usable reference photos; don't call the model blind.
		return []Engagement{}, nil
	}

	media := make([]string, 0, len(roster)+1)
	media = append(media, snapshotDataURI)
	for _, st := range roster {
		media = append(media, st.PhotoDataURI)
	}

	var out struct {
		StudentEngagements []Engagement `json:"student_engagements"`
	}
	if err := svc.gen.GenerateJSON(ctx, engagementPrompt(roster), media, &out); err != nil {
		return nil, errors.Wrap(err, "analyzing engagement")
	}
	return out.StudentEngagements, nil
}

func (svc *service) LogPerformance(ctx context.Context, subject string, engagements []Engagement) LogResult {
	if subject == "" {
		return LogResult{Message: "No active class subject was provided. Cannot log performance."}
	}
	if len(engagements) == 0 {
		return LogResult{Message: "No students were provided to log performance for.", Subject: subject}
	}

	observations := make([]student.Observation, 0, len(engagements))
	for _, e := range engagements {
		observations = append(observations, student.Observation{
			StudentID: e.StudentID,
			Level:     e.NormalizedLevel(),
		})
	}

	count, err := svc.studentSvc.LogEngagement(ctx, subject, observations)
	if err != nil {
		if errors.Cause(err) == student.ErrNoObservations {
			return LogResult{Message: "No recognized students were found in the analysis.", Subject: subject}
		}
		svc.logger.Error("logging student performance", err)
		return LogResult{Message: fmt.Sprintf("Failed to update student performance: %v", err), Subject: subject}
	}

	return LogResult{
		Success: true,
		Message: fmt.Sprintf("Logged performance for %d students in %s.", count, subject),
		Subject: subject,
	}
}

func (svc *service) GenerateLessonPlan(ctx context.Context, req LessonPlanRequest) (lessonplan.LessonPlan, error) {
	englishURL, kannadaURL, err := svc.textbookLinks(ctx, req.Subject, req.Grade)
	if err != nil {
		return lessonplan.LessonPlan{}, err
	}

	var lp lessonplan.LessonPlan
	if err := svc.gen.GenerateJSON(ctx, lessonPlanPrompt(req, englishURL, kannadaURL), nil, &lp); err != nil {
		return lessonplan.LessonPlan{}, errors.Wrap(err, "generating lesson plan")
	}
	return lp, nil
}

func (svc *service) GeneratePracticeHandout(ctx context.Context, req HandoutRequest) (Handout, error) {
	englishURL, kannadaURL, err := svc.textbookLinks(ctx, req.Subject, req.Grade)
	if err != nil {
		return Handout{}, err
	}

	var handout Handout
	if err := svc.gen.GenerateJSON(ctx, handoutPrompt(req, englishURL, kannadaURL), nil, &handout); err != nil {
		return Handout{}, errors.Wrap(err, "generating practice handout")
	}
	return handout, nil
}

func (svc *service) GenerateBlackboardLayout(ctx context.Context, req BlackboardRequest) (string, error) {
	return svc.GenerateImage(ctx, blackboardPrompt(req))
}

func (svc *service) GenerateImage(ctx context.Context, prompt string) (string, error) {
	uri, err := svc.gen.GenerateImage(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "generating image")
	}
	if uri == "" {
		return "", ErrNoImage
	}
	return uri, nil
}

func (svc *service) Chat(ctx context.Context, question string, history []ChatMessage) (string, error) {
	textbooks, err := svc.textbookSvc.QueryAll(ctx)
	if err != nil {
		return "", err
	}
	if len(textbooks) == 0 {
		return "I'm sorry, no textbooks have been configured. Please ask the administrator to add some.", nil
	}

	contexts, err := svc.textbookSvc.UniqueSubjectGrades(ctx)
	if err != nil {
		return "", err
	}

	var selection struct {
		IsAcademic bool   `json:"is_academic"`
		Subject    string `json:"subject"`
		Grade      int    `json:"grade"`
		Reasoning  string `json:"reasoning"`
	}
	if err := svc.gen.GenerateJSON(ctx, contextSelectionPrompt(question, contexts), nil, &selection); err != nil {
		svc.logger.Warn("chat context selection failed", err)
		return "I'm sorry, I had trouble understanding your question. Could you please rephrase it?", nil
	}

	var answer struct {
		Answer string `json:"answer"`
	}

	if !selection.IsAcademic {
		if err := svc.gen.GenerateJSON(ctx, conversationalPrompt(question, history), nil, &answer); err != nil {
			return "", errors.Wrap(err, "answering conversational question")
		}
		return answer.Answer, nil
	}

	if selection.Subject == "" || selection.Grade == 0 {
		return "I'm sorry, I wasn't able to determine the correct subject for your question. Could you be more specific?", nil
	}

	tb, err := svc.textbookSvc.GetBySubjectGrade(ctx, selection.Subject, selection.Grade)
	if err != nil {
		if errors.Cause(err) == textbook.ErrNotFound {
			return "I'm sorry, I could not find the right textbook for that question.", nil
		}
		return "", err
	}

	media := []string{tb.EnglishLink, tb.KannadaLink}
	if err := svc.gen.GenerateJSON(ctx, answerPrompt(question, tb, history), media, &answer); err != nil {
		svc.logger.Warn("chat answer generation failed", err)
		return "I'm sorry, I had trouble generating an answer. Please try again.", nil
	}
	return answer.Answer, nil
}

// textbookLinks resolves both language editions, erroring when either
// is missing since generated content must be grounded in both.
func (svc *service) textbookLinks(ctx context.Context, subject string, grade int) (english, kannada string, err error) {
	english, err = svc.textbookSvc.Link(ctx, subject, grade, textbook.LanguageEnglish)
	if err == nil && english != "" {
		kannada, err = svc.textbookSvc.Link(ctx, subject, grade, textbook.LanguageKannada)
	}
	if err != nil && errors.Cause(err) != textbook.ErrNotFound {
		return "", "", err
	}
	if english == "" || kannada == "" {
		return "", "", errors.Errorf("textbooks for subject %q and grade %d not found", subject, grade)
	}
	return english, kannada, nil
}
