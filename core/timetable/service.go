package timetable

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core"
)

var (
	// errors
	ErrNotFound     = errors.New("timetable entry not found")
	ErrEntryOverlap = errors.New("another class is already scheduled in this time slot")
)

type (
	// DayResolver resolves today's day-of-week name, preferring an
	// authoritative external time source and degrading to the local
	// clock when it is unavailable.
	DayResolver interface {
		DayOfWeek(ctx context.Context) string
	}

	Repository interface {
		CreateEntry(ctx context.Context, e Entry) (Entry, error)
		QueryAllEntries(ctx context.Context) ([]Entry, error)
		QueryEntriesByDay(ctx context.Context, day string) ([]Entry, error)
		DeleteEntriesByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		// Add schedules a new entry, rejecting any entry that overlaps an
		// existing same-day interval.
		Add(ctx context.Context, ne NewEntry) (Entry, error)
		QueryAll(ctx context.Context) ([]Entry, error)
		Today(ctx context.Context) ([]Entry, error)
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		repo     Repository
		resolver DayResolver
		reval    core.Revalidator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, resolver DayResolver, reval core.Revalidator) Service {
	return &service{repo: repo, resolver: resolver, reval: reval}
}

func (svc *service) Add(ctx context.Context, ne NewEntry) (Entry, error) {
	entry := Entry{
		Day:       ne.Day,
		StartTime: ne.StartTime,
		EndTime:   ne.EndTime,
		Subject:   ne.Subject,
		CreatedAt: time.Now().UTC(),
	}

	sameDay, err := svc.repo.QueryEntriesByDay(ctx, entry.Day)
	if err != nil {
		return Entry{}, err
	}
	for _, existing := range sameDay {
		if entry.Overlaps(existing) {
			return Entry{}, core.NewValidationError(ErrEntryOverlap,
				core.FieldError{Field: "start_time", Error: ErrEntryOverlap.Error()})
		}
	}

	entry, err = svc.repo.CreateEntry(ctx, entry)
	if err != nil {
		return Entry{}, err
	}
	svc.reval.Revalidate("/admin/timetable")
	return entry, nil
}

// QueryAll returns the weekly timetable sorted by day order then start
// time.
func (svc *service) QueryAll(ctx context.Context) ([]Entry, error) {
	entries, err := svc.repo.QueryAllEntries(ctx)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

func (svc *service) Today(ctx context.Context) ([]Entry, error) {
	day := svc.resolver.DayOfWeek(ctx)
	entries, err := svc.repo.QueryEntriesByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	if err := svc.repo.DeleteEntriesByID(ctx, ids...); err != nil {
		return err
	}
	svc.reval.Revalidate("/admin/timetable")
	return nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if di, dj := DayIndex(entries[i].Day), DayIndex(entries[j].Day); di != dj {
			return di < dj
		}
		return entries[i].StartTime < entries[j].StartTime
	})
}
