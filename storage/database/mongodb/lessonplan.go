package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahyadri/classai/core/lessonplan"
)

type lessonPlanRepository struct {
	coll *mongo.Collection
}

var _ lessonplan.Repository = (*lessonPlanRepository)(nil) // interface compliance check

func NewLessonPlanRepository(db *DB) lessonplan.Repository {
	return &lessonPlanRepository{coll: db.db.Collection(lessonPlansCollection)}
}

func (repo *lessonPlanRepository) CreateLessonPlan(ctx context.Context, lp lessonplan.LessonPlan) (lessonplan.LessonPlan, error) {
	lp.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, lp); err != nil {
		return lessonplan.LessonPlan{}, errors.Wrap(err, "inserting lesson plan")
	}
	return lp, nil
}

func (repo *lessonPlanRepository) QueryAllLessonPlans(ctx context.Context) ([]lessonplan.LessonPlan, error) {
	cur, err := repo.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "querying lesson plans")
	}
	plans := make([]lessonplan.LessonPlan, 0)
	if err := cur.All(ctx, &plans); err != nil {
		return nil, errors.Wrap(err, "decoding lesson plans")
	}
	return plans, nil
}

func (repo *lessonPlanRepository) DeleteLessonPlansByID(ctx context.Context, ids ...string) error {
	_, err := repo.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return errors.Wrap(err, "deleting lesson plans")
}
