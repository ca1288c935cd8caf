package textbook

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core"
)

var (
	// errors
	ErrNotFound       = errors.New("textbook not found")
	ErrTextbookExists = errors.New("a textbook for this subject and grade already exists")
)

type (
	Repository interface {
		// CreateTextbook inserts tb, failing with ErrTextbookExists when an
		// entry for the same (subject, grade) pair already exists. The
		// store enforces this, not a check-then-act lookup.
		CreateTextbook(ctx context.Context, tb Textbook) (Textbook, error)
		QueryAllTextbooks(ctx context.Context) ([]Textbook, error)
		GetTextbookBySubjectGrade(ctx context.Context, subject string, grade int) (Textbook, error)
		DeleteTextbooksByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		Create(ctx context.Context, nt NewTextbook) (Textbook, error)
		QueryAll(ctx context.Context) ([]Textbook, error)
		GetBySubjectGrade(ctx context.Context, subject string, grade int) (Textbook, error)
		Delete(ctx context.Context, ids ...string) error

		// Link returns the textbook link for the given language, or
		// ErrNotFound when no entry exists for the pair.
		Link(ctx context.Context, subject string, grade int, language string) (string, error)

		// UniqueSubjectGrades lists the distinct (subject, grade) pairs in
		// the catalog, for context pickers.
		UniqueSubjectGrades(ctx context.Context) ([]UniqueSubjectGrade, error)

		// Seed catalogs the initial EVS Grade 4 textbook if absent.
		// It reports whether anything was inserted.
		Seed(ctx context.Context) (bool, error)
	}

	service struct {
		repo  Repository
		reval core.Revalidator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, reval core.Revalidator) Service {
	return &service{repo: repo, reval: reval}
}

func (svc *service) Create(ctx context.Context, nt NewTextbook) (Textbook, error) {
	tb := Textbook{
		Subject:     nt.Subject,
		Grade:       nt.Grade,
		EnglishLink: nt.EnglishLink,
		KannadaLink: nt.KannadaLink,
		CreatedAt:   time.Now().UTC(),
	}
	tb, err := svc.repo.CreateTextbook(ctx, tb)
	if err != nil {
		if errors.Cause(err) == ErrTextbookExists {
			return Textbook{}, core.NewValidationError(err, core.FieldError{Field: "subject", Error: err.Error()})
		}
		return Textbook{}, err
	}
	svc.reval.Revalidate("/admin/textbooks", "/teacher/dashboard")
	return tb, nil
}

// QueryAll returns the catalog sorted by grade then subject. Sorting
// happens client side to keep the store free of composite indexes.
func (svc *service) QueryAll(ctx context.Context) ([]Textbook, error) {
	tbs, err := svc.repo.QueryAllTextbooks(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(tbs, func(i, j int) bool {
		if tbs[i].Grade != tbs[j].Grade {
			return tbs[i].Grade < tbs[j].Grade
		}
		return tbs[i].Subject < tbs[j].Subject
	})
	return tbs, nil
}

func (svc *service) GetBySubjectGrade(ctx context.Context, subject string, grade int) (Textbook, error) {
	return svc.repo.GetTextbookBySubjectGrade(ctx, subject, grade)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	if err := svc.repo.DeleteTextbooksByID(ctx, ids...); err != nil {
		return err
	}
	svc.reval.Revalidate("/admin/textbooks", "/teacher/dashboard")
	return nil
}

func (svc *service) Link(ctx context.Context, subject string, grade int, language string) (string, error) {
	tb, err := svc.repo.GetTextbookBySubjectGrade(ctx, subject, grade)
	if err != nil {
		return "", err
	}
	if language == LanguageKannada {
		return tb.KannadaLink, nil
	}
	return tb.EnglishLink, nil
}

func (svc *service) UniqueSubjectGrades(ctx context.Context) ([]UniqueSubjectGrade, error) {
	tbs, err := svc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[UniqueSubjectGrade]struct{}, len(tbs))
	pairs := make([]UniqueSubjectGrade, 0, len(tbs))
	for _, tb := range tbs {
		pair := UniqueSubjectGrade{Subject: tb.Subject, Grade: tb.Grade}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func (svc *service) Seed(ctx context.Context) (bool, error) {
	_, err := svc.Create(ctx, NewTextbook{
		Subject:     "EVS",
		Grade:       4,
		EnglishLink: "https://textbooks.karnataka.gov.in/uploads/pdf-files/2024-25%20Textbooks%20data/4th/4th%20Eng%20EVS%20Part-1%20%282024-25%29.pdf",
		KannadaLink: "https://textbooks.karnataka.gov.in/uploads/pdf-files/2024-25%20Textbooks%20data/4th/4th%20Kan%20EVS%20Part-1%20(2024-25).pdf",
	})
	if err != nil {
		if _, ok := errors.Cause(err).(*core.ValidationError); ok {
			return false, nil // already cataloged
		}
		return false, err
	}
	return true, nil
}
