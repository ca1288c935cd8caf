package student

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sahyadri/classai/core"
)

// Attention labels derived from a weekly running-average score.
const (
	AttentionHigh   = "High"
	AttentionMedium = "Medium"
	AttentionLow    = "Low"
)

// Engagement levels as classified from a classroom snapshot.
const (
	LevelAttentive  = "attentive"
	LevelConfused   = "confused"
	LevelDistracted = "distracted"
)

// PlaceholderPhoto is a 1x1 transparent PNG used when a student has no
// reference photo yet. Students carrying it are excluded from snapshot
// analysis since they cannot be recognized.
const PlaceholderPhoto = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

type (
	// PerformanceSubject is one subject's running average for one week.
	// Score is the exact arithmetic mean of the Readings observations
	// folded in so far.
	PerformanceSubject struct {
		Attention string  `json:"attention" bson:"attention"`
		Score     float64 `json:"score" bson:"score"`
		Readings  int     `json:"readings" bson:"readings"`
	}

	// WeeklyRecord holds per-subject aggregates for one week key.
	WeeklyRecord struct {
		Week     string                        `json:"week" bson:"week"`
		Subjects map[string]PerformanceSubject `json:"subjects" bson:"subjects"`
	}

	Student struct {
		ID            string         `json:"id" bson:"_id,omitempty"`
		Name          string         `json:"name" bson:"name"`
		Standard      string         `json:"standard" bson:"standard"`
		PhotoDataURI  string         `json:"photo_data_uri" bson:"photo_data_uri"`
		ParentConsent bool           `json:"parent_consent" bson:"parent_consent"`
		Performance   []WeeklyRecord `json:"performance" bson:"performance"`
		CreatedAt     time.Time      `json:"created_at" bson:"created_at"` // UTC
		UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"` // UTC
	}

	// Observation is one classified attentiveness reading for one
	// recognized student from one camera snapshot. Ephemeral; folded
	// into the weekly aggregates and discarded.
	Observation struct {
		StudentID string `json:"student_id"`
		Level     string `json:"level"`
	}

	// StrugglingStudent is a selector result: a student-subject pair
	// whose current-week score is below threshold and for whom
	// remediation content can actually be generated.
	StrugglingStudent struct {
		ID           string  `json:"id"`
		Name         string  `json:"name"`
		PhotoDataURI string  `json:"photo_data_uri"`
		Subject      string  `json:"subject"`
		Score        float64 `json:"score"`
		Attention    string  `json:"attention"`
		Grade        int     `json:"grade"`
	}
)

// Grade parses the student's standard as an integer grade.
func (s *Student) Grade() (int, error) {
	return strconv.Atoi(strings.TrimSpace(s.Standard))
}

// HasPhoto reports whether the student carries a real reference photo.
func (s *Student) HasPhoto() bool {
	return s.PhotoDataURI != "" && s.PhotoDataURI != PlaceholderPhoto
}

// weekRecord returns the record matching the given week key, or nil.
func (s *Student) weekRecord(week string) *WeeklyRecord {
	for i := range s.Performance {
		if s.Performance[i].Week == week {
			return &s.Performance[i]
		}
	}
	return nil
}

// Score maps the observation level to a numeric engagement score.
// Unrecognized levels default to 50.
func (o Observation) Score() float64 {
	switch o.Level {
	case LevelAttentive:
		return 100
	case LevelDistracted:
		return 0
	case LevelConfused:
		return 50
	default:
		return 50
	}
}

// AttentionFor derives the categorical attention label from a score.
func AttentionFor(score float64) string {
	switch {
	case score > 75:
		return AttentionHigh
	case score > 35:
		return AttentionMedium
	default:
		return AttentionLow
	}
}

// WeekKey derives the week identifier for t. Weeks are keyed by the ISO
// week number qualified with the ISO year (Monday start) so that week 1
// of consecutive years cannot collide.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("week%d-%d", week, year)
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name         string `json:"name" validate:"required"`
	Standard     string `json:"standard" validate:"required"`
	PhotoDataURI string `json:"photo_data_uri"`
}

func (ns *NewStudent) Validate(ctx context.Context, validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Standard = core.CleanString(ns.Standard)
	return validate.StructCtx(ctx, ns)
}
