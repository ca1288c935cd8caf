package student

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/lessonplan"
	"github.com/sahyadri/classai/core/textbook"
)

// strugglingThreshold is the current-week score below which a
// student-subject pair becomes a remediation candidate.
const strugglingThreshold = 35

var (
	// errors
	ErrNotFound = errors.New("student not found")

	// Both fail-fast conditions carry the "missing required context"
	// signal, distinguished by message for observability.
	ErrMissingSubject = errors.New("missing required context: subject is required")
	ErrNoObservations = errors.New("missing required context: no recognized students in observation batch")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		// UpdateStudentsPerformance persists the performance lists of all
		// given students as a single atomic batch: all or none.
		UpdateStudentsPerformance(ctx context.Context, students ...Student) error
		UpdateStudentConsent(ctx context.Context, id string, consent bool) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		Create(ctx context.Context, ns NewStudent) (Student, error)
		QueryAll(ctx context.Context) ([]Student, error)
		GetByID(ctx context.Context, id string) (Student, error)
		SetConsent(ctx context.Context, id string, consent bool) (Student, error)
		Delete(ctx context.Context, ids ...string) error

		// LogEngagement folds a batch of observations for one subject into
		// the current week's running averages and persists the affected
		// students atomically. It returns the number of students updated.
		LogEngagement(ctx context.Context, subject string, observations []Observation) (int, error)

		// Struggling recomputes the remediation candidate list from store
		// state; results are never cached across calls.
		Struggling(ctx context.Context) ([]StrugglingStudent, error)
	}

	service struct {
		repo   Repository
		logger core.Logger
		reval  core.Revalidator

		textbookSvc   textbook.Service
		lessonPlanSvc lessonplan.Service
	}
)

var _ Service = (*service)(nil)

func NewService(
	repo Repository,
	logger core.Logger,
	reval core.Revalidator,
	textbookSvc textbook.Service,
	lessonPlanSvc lessonplan.Service,
) Service {
	return &service{
		repo:          repo,
		logger:        logger,
		reval:         reval,
		textbookSvc:   textbookSvc,
		lessonPlanSvc: lessonPlanSvc,
	}
}

// Create enrolls a student with the placeholder photo when none is
// supplied and seeds the current week with a single EVS reading, so new
// students surface on dashboards immediately.
func (svc *service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	photo := ns.PhotoDataURI
	if photo == "" {
		photo = PlaceholderPhoto
	}

	now := time.Now().UTC()
	st := Student{
		Name:          ns.Name,
		Standard:      ns.Standard,
		PhotoDataURI:  photo,
		ParentConsent: false,
		Performance: []WeeklyRecord{
			{
				Week: WeekKey(now),
				Subjects: map[string]PerformanceSubject{
					"EVS": {Attention: AttentionLow, Score: 0, Readings: 1},
				},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	st, err := svc.repo.CreateStudent(ctx, st)
	if err != nil {
		return Student{}, err
	}
	svc.reval.Revalidate("/admin/students", "/admin/dashboard", "/teacher/dashboard")
	return st, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *service) SetConsent(ctx context.Context, id string, consent bool) (Student, error) {
	st, err := svc.repo.UpdateStudentConsent(ctx, id, consent)
	if err != nil {
		return Student{}, err
	}
	svc.reval.Revalidate("/admin/students")
	return st, nil
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	if err := svc.repo.DeleteStudentsByID(ctx, ids...); err != nil {
		return err
	}
	svc.reval.Revalidate("/admin/students", "/admin/dashboard")
	return nil
}

func (svc *service) LogEngagement(ctx context.Context, subject string, observations []Observation) (int, error) {
	if core.CleanString(subject) == "" {
		return 0, ErrMissingSubject
	}

	// Drop unrecognized entrants before touching the store.
	recognized := observations[:0:0]
	for _, obs := range observations {
		if obs.StudentID == "" {
			continue
		}
		recognized = append(recognized, obs)
	}
	if len(recognized) == 0 {
		return 0, ErrNoObservations
	}

	week := WeekKey(time.Now())

	// A student may appear more than once in a batch; fold into a single
	// in-memory copy so later observations see earlier ones.
	updated := make(map[string]*Student, len(recognized))
	var order []string

	for _, obs := range recognized {
		st, ok := updated[obs.StudentID]
		if !ok {
			fetched, err := svc.repo.GetStudentByID(ctx, obs.StudentID)
			if err != nil {
				if errors.Cause(err) == ErrNotFound {
					svc.logger.Warn("student not found, skipping performance update", "id", obs.StudentID)
					continue
				}
				return 0, err
			}
			st = &fetched
			updated[obs.StudentID] = st
			order = append(order, obs.StudentID)
		}
		st.Fold(week, subject, obs.Score())
		st.UpdatedAt = time.Now().UTC()
	}

	if len(updated) == 0 {
		return 0, nil
	}

	batch := make([]Student, 0, len(updated))
	for _, id := range order {
		batch = append(batch, *updated[id])
	}
	if err := svc.repo.UpdateStudentsPerformance(ctx, batch...); err != nil {
		return 0, err
	}

	svc.reval.Revalidate("/teacher/dashboard")
	return len(batch), nil
}

func (svc *service) Struggling(ctx context.Context) ([]StrugglingStudent, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	textbooks, err := svc.textbookSvc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := svc.lessonPlanSvc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}

	week := WeekKey(time.Now())

	var struggling []StrugglingStudent
	for i := range students {
		st := &students[i]

		rec := st.weekRecord(week)
		if rec == nil {
			continue
		}

		grade, err := st.Grade()
		if err != nil {
			continue // standard is not a valid grade number
		}

		for subject, perf := range rec.Subjects {
			if perf.Score >= strugglingThreshold {
				continue
			}

			// Only admit pairs for which remediation content can actually
			// be generated: both textbook links and a lesson plan.
			var hasEnglish, hasKannada bool
			for _, tb := range textbooks {
				if tb.Subject != subject || tb.Grade != grade {
					continue
				}
				if tb.EnglishLink != "" {
					hasEnglish = true
				}
				if tb.KannadaLink != "" {
					hasKannada = true
				}
			}
			if !hasEnglish || !hasKannada {
				continue
			}

			var hasPlan bool
			for _, lp := range plans {
				if lp.Subject == subject && lp.Grade == grade {
					hasPlan = true
					break
				}
			}
			if !hasPlan {
				continue
			}

			struggling = append(struggling, StrugglingStudent{
				ID:           st.ID,
				Name:         st.Name,
				PhotoDataURI: st.PhotoDataURI,
				Subject:      subject,
				Score:        perf.Score,
				Attention:    perf.Attention,
				Grade:        grade,
			})
		}
	}

	// Lowest score first.
	sort.SliceStable(struggling, func(i, j int) bool {
		return struggling[i].Score < struggling[j].Score
	})
	return struggling, nil
}
