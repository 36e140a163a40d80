package repository

import (
	"context"
	"errors"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StudentRepository persists student documents. regNo carries a unique index.
type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository(col *mongo.Collection) *StudentRepository {
	return &StudentRepository{col: col}
}

func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var s models.Student
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Clone(errs.ErrNotFound, "student not found")
		}
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find student")
	}
	return &s, nil
}

func (r *StudentRepository) FindByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	var s models.Student
	err := r.col.FindOne(ctx, bson.M{"regNo": regNo}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Clone(errs.ErrNotFound, "student not found")
		}
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find student")
	}
	return &s, nil
}

// List returns students matching the filter, passwords excluded.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := bson.M{}
	if filter.Batch != "" {
		query["batch"] = filter.Batch
	}
	if filter.Location != "" {
		query["location"] = filter.Location
	}
	return r.findAll(ctx, query)
}

// FindByModule returns every student enrolled in the module (the roster).
func (r *StudentRepository) FindByModule(ctx context.Context, moduleID primitive.ObjectID) ([]models.Student, error) {
	return r.findAll(ctx, bson.M{"trainings.moduleId": moduleID})
}

// ByLocationAndModule narrows the roster to one training location.
func (r *StudentRepository) ByLocationAndModule(ctx context.Context, location string, moduleID primitive.ObjectID) ([]models.Student, error) {
	return r.findAll(ctx, bson.M{"location": location, "trainings.moduleId": moduleID})
}

func (r *StudentRepository) findAll(ctx context.Context, query bson.M) ([]models.Student, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find students")
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "decode students")
	}
	return students, nil
}

// EnrolledIDs returns just the ids of the module roster.
func (r *StudentRepository) EnrolledIDs(ctx context.Context, moduleID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.col.Find(ctx, bson.M{"trainings.moduleId": moduleID}, opts)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find roster")
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		ids = append(ids, row.ID)
	}
	return ids, cursor.Err()
}

// IDByRegNo resolves a registration number to a student id.
func (r *StudentRepository) IDByRegNo(ctx context.Context, regNo string) (primitive.ObjectID, error) {
	var row struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.col.FindOne(ctx, bson.M{"regNo": regNo}, options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, errs.Clone(errs.ErrNotFound, "student not found")
		}
		return primitive.NilObjectID, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find student")
	}
	return row.ID, nil
}

// ExistingRegNos reports which of the given regNos are already taken.
func (r *StudentRepository) ExistingRegNos(ctx context.Context, regNos []string) (map[string]bool, error) {
	opts := options.Find().SetProjection(bson.M{"regNo": 1})
	cursor, err := r.col.Find(ctx, bson.M{"regNo": bson.M{"$in": regNos}}, opts)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "check existing regNos")
	}
	defer cursor.Close(ctx)

	existing := make(map[string]bool)
	for cursor.Next(ctx) {
		var row struct {
			RegNo string `bson:"regNo"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		existing[row.RegNo] = true
	}
	return existing, cursor.Err()
}

func (r *StudentRepository) Insert(ctx context.Context, s *models.Student) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.Trainings == nil {
		s.Trainings = []models.Training{}
	}
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Clone(errs.ErrDuplicate, "student already exists")
		}
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "insert student")
	}
	return nil
}

// InsertMany performs an unordered bulk insert and returns how many rows
// landed. With the unique regNo index a duplicate inside the batch fails
// only its own row.
func (r *StudentRepository) InsertMany(ctx context.Context, students []models.Student) (int, error) {
	docs := make([]interface{}, 0, len(students))
	for i := range students {
		if students[i].ID.IsZero() {
			students[i].ID = primitive.NewObjectID()
		}
		if students[i].Trainings == nil {
			students[i].Trainings = []models.Training{}
		}
		docs = append(docs, students[i])
	}

	res, err := r.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			// partial success; the caller reports the per-row shortfall
			return inserted, nil
		}
		return inserted, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "bulk insert students")
	}
	return inserted, nil
}

// PushTraining appends a module enrollment to every listed student.
func (r *StudentRepository) PushTraining(ctx context.Context, ids []primitive.ObjectID, moduleID primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$push": bson.M{"trainings": bson.M{"moduleId": moduleID}}},
	)
	if err != nil {
		return 0, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "enroll students")
	}
	return res.ModifiedCount, nil
}

// UpdateBatch reassigns the batch label for the listed students.
func (r *StudentRepository) UpdateBatch(ctx context.Context, ids []primitive.ObjectID, batch string) (matched, modified int64, err error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"batch": batch}},
	)
	if err != nil {
		return 0, 0, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "update student batches")
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// IncTrainingsCompleted bumps one student's completed-training counter.
func (r *StudentRepository) IncTrainingsCompleted(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"numTrainingsCompleted": 1}},
	)
	if err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "increment completed trainings")
	}
	if res.MatchedCount == 0 {
		return errs.Clone(errs.ErrNotFound, "student not found")
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var s models.Student
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Clone(errs.ErrNotFound, "student not found")
		}
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "delete student")
	}
	return &s, nil
}
