package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahyadri/classai/core/textbook"
)

type textbookRepository struct {
	db *textbookTable
}

var _ textbook.Repository = (*textbookRepository)(nil) // interface compliance check

func NewTextbookRepository(db *DB) textbook.Repository {
	return &textbookRepository{db: db.textbook}
}

// CreateTextbook checks the (subject, grade) guard under the write
// lock, so the check and the insert are one atomic step.
func (repo *textbookRepository) CreateTextbook(ctx context.Context, tb textbook.Textbook) (textbook.Textbook, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.Subject == tb.Subject && existing.Grade == tb.Grade {
			return textbook.Textbook{}, textbook.ErrTextbookExists
		}
	}

	tb.ID = uuid.NewString()
	repo.db.table[tb.ID] = &tb
	return tb, nil
}

func (repo *textbookRepository) QueryAllTextbooks(ctx context.Context) ([]textbook.Textbook, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tbs := make([]textbook.Textbook, 0, len(repo.db.table))
	for _, tb := range repo.db.table {
		tbs = append(tbs, *tb)
	}
	return tbs, nil
}

func (repo *textbookRepository) GetTextbookBySubjectGrade(ctx context.Context, subject string, grade int) (textbook.Textbook, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tb := range repo.db.table {
		if tb.Subject == subject && tb.Grade == grade {
			return *tb, nil
		}
	}
	return textbook.Textbook{}, textbook.ErrNotFound
}

func (repo *textbookRepository) DeleteTextbooksByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
