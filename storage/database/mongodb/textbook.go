package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sahyadri/classai/core/textbook"
)

type textbookRepository struct {
	coll *mongo.Collection
}

var _ textbook.Repository = (*textbookRepository)(nil) // interface compliance check

func NewTextbookRepository(db *DB) textbook.Repository {
	return &textbookRepository{coll: db.db.Collection(textbooksCollection)}
}

// CreateTextbook relies on the unique (subject, grade) index rather
// than a check-then-act lookup, so concurrent inserts cannot race.
func (repo *textbookRepository) CreateTextbook(ctx context.Context, tb textbook.Textbook) (textbook.Textbook, error) {
	tb.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, tb); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return textbook.Textbook{}, textbook.ErrTextbookExists
		}
		return textbook.Textbook{}, errors.Wrap(err, "inserting textbook")
	}
	return tb, nil
}

func (repo *textbookRepository) QueryAllTextbooks(ctx context.Context) ([]textbook.Textbook, error) {
	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying textbooks")
	}
	tbs := make([]textbook.Textbook, 0)
	if err := cur.All(ctx, &tbs); err != nil {
		return nil, errors.Wrap(err, "decoding textbooks")
	}
	return tbs, nil
}

func (repo *textbookRepository) GetTextbookBySubjectGrade(ctx context.Context, subject string, grade int) (textbook.Textbook, error) {
	var tb textbook.Textbook
	err := repo.coll.FindOne(ctx, bson.M{"subject": subject, "grade": grade}).Decode(&tb)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return textbook.Textbook{}, textbook.ErrNotFound
		}
		return textbook.Textbook{}, errors.Wrap(err, "getting textbook")
	}
	return tb, nil
}

func (repo *textbookRepository) DeleteTextbooksByID(ctx context.Context, ids ...string) error {
	_, err := repo.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return errors.Wrap(err, "deleting textbooks")
}
