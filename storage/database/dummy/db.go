package dummydb

import (
	"sync"

	"github.com/sahyadri/classai/core/lessonplan"
	"github.com/sahyadri/classai/core/student"
	"github.com/sahyadri/classai/core/textbook"
	"github.com/sahyadri/classai/core/timetable"
	"github.com/sahyadri/classai/core/user"
)

type (
	DB struct {
		user       *userTable
		student    *studentTable
		timetable  *timetableTable
		textbook   *textbookTable
		lessonplan *lessonPlanTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	timetableTable struct {
		sync.RWMutex
		table map[string]*timetable.Entry
	}

	textbookTable struct {
		sync.RWMutex
		table map[string]*textbook.Textbook
	}

	lessonPlanTable struct {
		sync.RWMutex
		table map[string]*lessonplan.LessonPlan
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		student:    &studentTable{table: make(map[string]*student.Student)},
		timetable:  &timetableTable{table: make(map[string]*timetable.Entry)},
		textbook:   &textbookTable{table: make(map[string]*textbook.Textbook)},
		lessonplan: &lessonPlanTable{table: make(map[string]*lessonplan.LessonPlan)},
	}
	return db, nil
}
