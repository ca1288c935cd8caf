package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sahyadri/classai/core/timetable"
)

type timetableRepository struct {
	coll *mongo.Collection
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{coll: db.db.Collection(timetablesCollection)}
}

func (repo *timetableRepository) CreateEntry(ctx context.Context, e timetable.Entry) (timetable.Entry, error) {
	e.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, e); err != nil {
		return timetable.Entry{}, errors.Wrap(err, "inserting timetable entry")
	}
	return e, nil
}

func (repo *timetableRepository) QueryAllEntries(ctx context.Context) ([]timetable.Entry, error) {
	return repo.query(ctx, bson.M{})
}

func (repo *timetableRepository) QueryEntriesByDay(ctx context.Context, day string) ([]timetable.Entry, error) {
	return repo.query(ctx, bson.M{"day": day})
}

func (repo *timetableRepository) query(ctx context.Context, filter bson.M) ([]timetable.Entry, error) {
	cur, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying timetable entries")
	}
	entries := make([]timetable.Entry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(err, "decoding timetable entries")
	}
	return entries, nil
}

func (repo *timetableRepository) DeleteEntriesByID(ctx context.Context, ids ...string) error {
	_, err := repo.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return errors.Wrap(err, "deleting timetable entries")
}
