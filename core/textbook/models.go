package textbook

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sahyadri/classai/core"
)

// Textbook languages.
const (
	LanguageEnglish = "English"
	LanguageKannada = "Kannada"
)

type (
	// Textbook references the two language editions of one subject-grade
	// textbook. At most one entry may exist per (subject, grade) pair.
	Textbook struct {
		ID          string    `json:"id" bson:"_id,omitempty"`
		Subject     string    `json:"subject" bson:"subject"`
		Grade       int       `json:"grade" bson:"grade"`
		EnglishLink string    `json:"english_link" bson:"english_link"`
		KannadaLink string    `json:"kannada_link" bson:"kannada_link"`
		CreatedAt   time.Time `json:"created_at" bson:"created_at"` // UTC
	}

	UniqueSubjectGrade struct {
		Subject string `json:"subject"`
		Grade   int    `json:"grade"`
	}
)

// NewTextbook contains information needed to catalog a new Textbook.
type NewTextbook struct {
	Subject     string `json:"subject" validate:"required"`
	Grade       int    `json:"grade" validate:"required,gt=0"`
	EnglishLink string `json:"english_link" validate:"required,url"`
	KannadaLink string `json:"kannada_link" validate:"required,url"`
}

func (nt *NewTextbook) Validate(ctx context.Context, validate *validator.Validate) error {
	nt.Subject = core.CleanString(nt.Subject)
	nt.EnglishLink = core.CleanString(nt.EnglishLink)
	nt.KannadaLink = core.CleanString(nt.KannadaLink)
	return validate.StructCtx(ctx, nt)
}
