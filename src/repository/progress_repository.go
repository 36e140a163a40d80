package repository

import (
	"context"
	"errors"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProgressRepository persists TrainingProgress documents. The collection
// carries a unique compound index on (student, training); Insert surfaces a
// violation as errs.ErrDuplicate so callers can fall back to the winner.
type ProgressRepository struct {
	col *mongo.Collection
}

func NewProgressRepository(col *mongo.Collection) *ProgressRepository {
	return &ProgressRepository{col: col}
}

func (r *ProgressRepository) FindByPair(ctx context.Context, studentID, trainingID primitive.ObjectID) (*models.TrainingProgress, error) {
	var p models.TrainingProgress
	err := r.col.FindOne(ctx, bson.M{"student": studentID, "training": trainingID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Clone(errs.ErrNotFound, "no training progress found")
		}
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find training progress")
	}
	return &p, nil
}

func (r *ProgressRepository) FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.TrainingProgress, error) {
	return r.findAll(ctx, bson.M{"student": studentID})
}

func (r *ProgressRepository) FindByTraining(ctx context.Context, trainingID primitive.ObjectID) ([]models.TrainingProgress, error) {
	return r.findAll(ctx, bson.M{"training": trainingID})
}

func (r *ProgressRepository) findAll(ctx context.Context, filter bson.M) ([]models.TrainingProgress, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find training progress")
	}
	defer cursor.Close(ctx)

	var records []models.TrainingProgress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "decode training progress")
	}
	return records, nil
}

func (r *ProgressRepository) Insert(ctx context.Context, p *models.TrainingProgress) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Clone(errs.ErrDuplicate, "training progress already exists for this student and module")
		}
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "insert training progress")
	}
	return nil
}

func (r *ProgressRepository) Replace(ctx context.Context, p *models.TrainingProgress) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "save training progress")
	}
	if res.MatchedCount == 0 {
		return errs.Clone(errs.ErrNotFound, "training progress no longer exists")
	}
	return nil
}

func (r *ProgressRepository) DeleteByStudent(ctx context.Context, studentID primitive.ObjectID) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"student": studentID}); err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "delete training progress")
	}
	return nil
}

// AverageByStudent aggregates each student's mean progress average, feeding
// the overall leaderboard.
func (r *ProgressRepository) AverageByStudent(ctx context.Context) (map[primitive.ObjectID]float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$student",
			"averageScore": bson.M{"$avg": "$averageScore"},
		}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "aggregate averages")
	}
	defer cursor.Close(ctx)

	averages := make(map[primitive.ObjectID]float64)
	for cursor.Next(ctx) {
		var row struct {
			Student primitive.ObjectID `bson:"_id"`
			Average float64            `bson:"averageScore"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		averages[row.Student] = row.Average
	}
	return averages, cursor.Err()
}
