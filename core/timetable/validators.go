package timetable

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/sahyadri/classai/core"
)

var (
	weekdayTag  = "weekday"
	weekdayText = "must be a day of the week (Monday to Sunday)"

	timeOrderTag  = "timeorder"
	timeOrderText = "end time must be after start time"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(validate, translator, weekdayTag, weekdayText)

	validate.RegisterStructValidation(entryStructValidation, NewEntry{})
	core.RegisterCustomTranslation(validate, translator, timeOrderTag, timeOrderText)
}

func weekdayValidation(fl validator.FieldLevel) bool {
	return DayIndex(fl.Field().String()) >= 0
}

// entryStructValidation checks that the entry interval is well formed.
// String comparison is valid for zero-padded HH:MM times.
func entryStructValidation(sl validator.StructLevel) {
	ne, ok := sl.Current().Interface().(NewEntry)
	if !ok {
		return
	}
	if ne.StartTime != "" && ne.EndTime != "" && ne.StartTime >= ne.EndTime {
		sl.ReportError(ne.EndTime, "end_time", "EndTime", timeOrderTag, "")
	}
}
