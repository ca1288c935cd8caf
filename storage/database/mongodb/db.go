package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names. The classai_ prefix keeps the app's collections
// grouped when the database is shared.
const (
	usersCollection       = "classai_users"
	studentsCollection    = "classai_students"
	timetablesCollection  = "classai_timetables"
	textbooksCollection   = "classai_textbooks"
	lessonPlansCollection = "classai_lessonplans"
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the MongoDB deployment at uri and pings it to fail
// fast on bad credentials.
func Open(ctx context.Context, uri, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging mongodb")
	}
	return &DB{client: client, db: client.Database(name)}, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on:
// the unique (subject, grade) textbook guard and unique user lookups.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.db.Collection(textbooksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subject", Value: 1}, {Key: "grade", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "creating textbook index")
	}

	sparseUnique := options.Index().SetUnique(true).SetSparse(true)
	_, err = d.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: sparseUnique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: sparseUnique},
	})
	if err != nil {
		return errors.Wrap(err, "creating user indexes")
	}

	_, err = d.db.Collection(timetablesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "day", Value: 1}},
	})
	return errors.Wrap(err, "creating timetable index")
}
