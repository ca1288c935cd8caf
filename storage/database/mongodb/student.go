package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahyadri/classai/core/student"
)

type studentRepository struct {
	coll   *mongo.Collection
	client *mongo.Client
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{coll: db.db.Collection(studentsCollection), client: db.client}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	st.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, st); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0)
	if err := cur.All(ctx, &students); err != nil {
		return nil, errors.Wrap(err, "decoding students")
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var st student.Student
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return st, nil
}

// UpdateStudentsPerformance writes all performance lists in one bulk
// write inside a session transaction: all or none.
func (repo *studentRepository) UpdateStudentsPerformance(ctx context.Context, students ...student.Student) error {
	if len(students) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(students))
	for _, st := range students {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": st.ID}).
			SetUpdate(bson.M{"$set": bson.M{
				"performance": st.Performance,
				"updated_at":  st.UpdatedAt,
			}}))
	}

	session, err := repo.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "starting session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return repo.coll.BulkWrite(sc, models, options.BulkWrite().SetOrdered(true))
	})
	return errors.Wrap(err, "updating students performance")
}

func (repo *studentRepository) UpdateStudentConsent(ctx context.Context, id string, consent bool) (student.Student, error) {
	var st student.Student
	err := repo.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"parent_consent": consent}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&st)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "updating student consent")
	}
	return st, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	_, err := repo.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return errors.Wrap(err, "deleting students")
}
