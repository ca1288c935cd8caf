package textbook_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/textbook"
	dummydb "github.com/sahyadri/classai/storage/database/dummy"
)

func newTestService(t *testing.T) textbook.Service {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	return textbook.NewService(dummydb.NewTextbookRepository(db), core.NopRevalidator())
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	nt := textbook.NewTextbook{
		Subject:     "EVS",
		Grade:       4,
		EnglishLink: "https://example.com/evs-en.pdf",
		KannadaLink: "https://example.com/evs-kn.pdf",
	}

	tb, err := svc.Create(ctx, nt)
	require.NoError(t, err)
	assert.NotEmpty(t, tb.ID)

	t.Run("duplicate subject and grade is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, nt)
		require.Error(t, err)

		vErr, ok := errors.Cause(err).(*core.ValidationError)
		require.True(t, ok, "want a ValidationError, got %T", errors.Cause(err))
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "subject", vErr.Fields[0].Field)

		// no second record slipped in
		tbs, err := svc.QueryAll(ctx)
		require.NoError(t, err)
		assert.Len(t, tbs, 1)
	})

	t.Run("same subject other grade is fine", func(t *testing.T) {
		other := nt
		other.Grade = 5
		_, err := svc.Create(ctx, other)
		assert.NoError(t, err)
	})
}

func TestService_Link(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, textbook.NewTextbook{
		Subject:     "EVS",
		Grade:       4,
		EnglishLink: "https://example.com/evs-en.pdf",
		KannadaLink: "https://example.com/evs-kn.pdf",
	})
	require.NoError(t, err)

	link, err := svc.Link(ctx, "EVS", 4, textbook.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/evs-en.pdf", link)

	link, err = svc.Link(ctx, "EVS", 4, textbook.LanguageKannada)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/evs-kn.pdf", link)

	_, err = svc.Link(ctx, "Math", 4, textbook.LanguageEnglish)
	assert.Equal(t, textbook.ErrNotFound, errors.Cause(err))
}

func TestService_UniqueSubjectGrades(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, nt := range []textbook.NewTextbook{
		{Subject: "Math", Grade: 5, EnglishLink: "https://example.com/a.pdf", KannadaLink: "https://example.com/b.pdf"},
		{Subject: "EVS", Grade: 4, EnglishLink: "https://example.com/c.pdf", KannadaLink: "https://example.com/d.pdf"},
	} {
		_, err := svc.Create(ctx, nt)
		require.NoError(t, err)
	}

	pairs, err := svc.UniqueSubjectGrades(ctx)
	require.NoError(t, err)
	assert.Equal(t, []textbook.UniqueSubjectGrade{
		{Subject: "EVS", Grade: 4},
		{Subject: "Math", Grade: 5},
	}, pairs)
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	// idempotent
	seeded, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	tbs, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, tbs, 1)
	assert.Equal(t, "EVS", tbs[0].Subject)
	assert.Equal(t, 4, tbs[0].Grade)
}
