package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StaffRepository persists staff documents. email carries a unique index.
type StaffRepository struct {
	col *mongo.Collection
}

func NewStaffRepository(col *mongo.Collection) *StaffRepository {
	return &StaffRepository{col: col}
}

func (r *StaffRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *StaffRepository) findOne(ctx context.Context, query bson.M) (*models.Staff, error) {
	var s models.Staff
	err := r.col.FindOne(ctx, query).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Clone(errs.ErrNotFound, "staff not found")
		}
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find staff")
	}
	return &s, nil
}

func (r *StaffRepository) All(ctx context.Context) ([]models.Staff, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find staff")
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "decode staff")
	}
	return staff, nil
}

func (r *StaffRepository) Insert(ctx context.Context, s *models.Staff) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.Role == "" {
		s.Role = "staff"
	}
	if s.Modules == nil {
		s.Modules = []primitive.ObjectID{}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Clone(errs.ErrDuplicate, "staff with this email already exists")
		}
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "insert staff")
	}
	return nil
}

// Delete removes the staff document. Module.staffAssigned references are not
// cleaned up here; see DESIGN.md.
func (r *StaffRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "delete staff")
	}
	if res.DeletedCount == 0 {
		return errs.Clone(errs.ErrNotFound, "staff not found")
	}
	return nil
}

// AddModule records the module assignment on the staff side, set semantics.
func (r *StaffRepository) AddModule(ctx context.Context, staffID, moduleID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": staffID},
		bson.M{"$addToSet": bson.M{"modules": moduleID}},
	)
	if err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "assign module to staff")
	}
	if res.MatchedCount == 0 {
		return errs.Clone(errs.ErrNotFound, "staff not found")
	}
	return nil
}

func (r *StaffRepository) SetProfilePicture(ctx context.Context, id primitive.ObjectID, url string) (*models.Staff, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profilePicture": url}},
	)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "update profile picture")
	}
	if res.MatchedCount == 0 {
		return nil, errs.Clone(errs.ErrNotFound, "staff not found")
	}
	return r.FindByID(ctx, id)
}
