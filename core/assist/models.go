package assist

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sahyadri/classai/core"
)

// Generator is any service that can render structured generative-model
// completions. It is the only seam to the AI provider; flows never see
// transport details.
type Generator interface {
	// GenerateJSON renders a completion for the prompt (plus optional
	// media parts, data URIs or https URLs) and decodes the JSON result
	// into out.
	GenerateJSON(ctx context.Context, prompt string, media []string, out interface{}) error

	// GenerateImage renders an image for the prompt and returns it as a
	// data URI.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Chat roles.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

type (
	// Engagement is one classified reading for one face detected in a
	// classroom snapshot. StudentID and StudentName are empty when the
	// face matched no known student.
	Engagement struct {
		StudentID   string `json:"student_id"`
		StudentName string `json:"student_name"`
		Level       string `json:"engagement_level"`
	}

	// LogResult is the soft-failure outcome of the performance-logging
	// flow: callers get a message either way, never an error.
	LogResult struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Subject string `json:"subject,omitempty"`
	}

	ChatMessage struct {
		Role    string `json:"role" validate:"required,oneof=user model"`
		Content string `json:"content" validate:"required"`
	}

	BilingualContent struct {
		English string `json:"english"`
		Kannada string `json:"kannada"`
	}

	VocabularyItem struct {
		Word               string `json:"word"`
		EnglishExplanation string `json:"english_explanation"`
		KannadaExplanation string `json:"kannada_explanation"`
	}

	// HandoutActivity is a hands-on activity with a prompt suitable for
	// the image generator.
	HandoutActivity struct {
		Title       BilingualContent `json:"title"`
		Description BilingualContent `json:"description"`
		ImagePrompt string           `json:"image_prompt"`
	}

	// Handout is a bilingual practice handout for a struggling student.
	Handout struct {
		ChapterTitle        BilingualContent   `json:"chapter_title"`
		Proverb             BilingualContent   `json:"proverb"`
		LearningObjective   BilingualContent   `json:"learning_objective"`
		KeyVocabulary       []VocabularyItem   `json:"key_vocabulary"`
		OpeningActivity     BilingualContent   `json:"opening_activity"`
		ConceptExplanation  BilingualContent   `json:"concept_explanation"`
		HandsOnActivities   []HandoutActivity  `json:"hands_on_activities"`
		AssessmentQuestions []BilingualContent `json:"assessment_questions"`
		Conclusion          BilingualContent   `json:"conclusion"`
	}
)

// NormalizedLevel lowercases the engagement level for score mapping.
func (e Engagement) NormalizedLevel() string {
	return strings.ToLower(strings.TrimSpace(e.Level))
}

// LessonPlanRequest contains information needed to generate a lesson
// plan.
type LessonPlanRequest struct {
	Subject     string `json:"subject" validate:"required"`
	Grade       int    `json:"grade" validate:"required,gt=0"`
	ChapterName string `json:"chapter_name" validate:"required"`
	Duration    int    `json:"duration" validate:"required,gt=0"` // days
}

func (r *LessonPlanRequest) Validate(ctx context.Context, validate *validator.Validate) error {
	r.Subject = core.CleanString(r.Subject)
	r.ChapterName = core.CleanString(r.ChapterName)
	return validate.StructCtx(ctx, r)
}

// HandoutRequest contains information needed to generate a practice
// handout for one student.
type HandoutRequest struct {
	StudentName       string `json:"student_name" validate:"required"`
	EngagementHistory string `json:"engagement_history" validate:"required"`
	Subject           string `json:"subject" validate:"required"`
	Grade             int    `json:"grade" validate:"required,gt=0"`
	Topic             string `json:"topic" validate:"required"`
}

func (r *HandoutRequest) Validate(ctx context.Context, validate *validator.Validate) error {
	r.StudentName = core.CleanString(r.StudentName)
	r.Subject = core.CleanString(r.Subject)
	r.Topic = core.CleanString(r.Topic)
	return validate.StructCtx(ctx, r)
}

// BlackboardRequest contains information needed to generate a
// blackboard layout image.
type BlackboardRequest struct {
	LessonTopic       string `json:"lesson_topic" validate:"required"`
	LessonDescription string `json:"lesson_description" validate:"required"`
}

func (r *BlackboardRequest) Validate(ctx context.Context, validate *validator.Validate) error {
	r.LessonTopic = core.CleanString(r.LessonTopic)
	r.LessonDescription = core.CleanString(r.LessonDescription)
	return validate.StructCtx(ctx, r)
}
