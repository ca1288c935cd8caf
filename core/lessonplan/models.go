package lessonplan

import "time"

type (
	// DailyPlan is one day of a lesson plan's breakdown.
	DailyPlan struct {
		Day                string   `json:"day" bson:"day"`
		LearningObjectives []string `json:"learning_objectives" bson:"learning_objectives"`
		TeachingActivities []string `json:"teaching_activities" bson:"teaching_activities"`
		LearningResources  []string `json:"learning_resources" bson:"learning_resources"`
		AssessmentHomework []string `json:"assessment_homework" bson:"assessment_homework"`
	}

	// LessonPlan is a generated day-by-day plan for one chapter.
	// CreatedAt is only used for newest-first selection per
	// (subject, grade).
	LessonPlan struct {
		ID             string      `json:"id" bson:"_id,omitempty"`
		Board          string      `json:"board" bson:"board"`
		Grade          int         `json:"grade" bson:"grade"`
		Subject        string      `json:"subject" bson:"subject"`
		LessonName     string      `json:"lesson_name" bson:"lesson_name"`
		DailyBreakdown []DailyPlan `json:"daily_breakdown" bson:"daily_breakdown"`
		CreatedAt      time.Time   `json:"created_at" bson:"created_at"` // UTC
	}
)
