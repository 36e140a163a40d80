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
)

// ModuleRepository persists training modules.
type ModuleRepository struct {
	col *mongo.Collection
}

func NewModuleRepository(col *mongo.Collection) *ModuleRepository {
	return &ModuleRepository{col: col}
}

func (r *ModuleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error) {
	var m models.Module
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Clone(errs.ErrNotFound, "module not found")
		}
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find module")
	}
	return &m, nil
}

func (r *ModuleRepository) All(ctx context.Context) ([]models.Module, error) {
	return r.findAll(ctx, bson.M{})
}

// ByStaff returns modules the given staff member is assigned to.
func (r *ModuleRepository) ByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Module, error) {
	return r.findAll(ctx, bson.M{"staffAssigned": staffID})
}

func (r *ModuleRepository) findAll(ctx context.Context, query bson.M) ([]models.Module, error) {
	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find modules")
	}
	defer cursor.Close(ctx)

	var modules []models.Module
	if err := cursor.All(ctx, &modules); err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "decode modules")
	}
	return modules, nil
}

func (r *ModuleRepository) Insert(ctx context.Context, m *models.Module) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.StaffAssigned == nil {
		m.StaffAssigned = []primitive.ObjectID{}
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "insert module")
	}
	return nil
}

// UpdateDetails edits the mutable module fields and returns the new state.
func (r *ModuleRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Module, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "update module")
	}
	if res.MatchedCount == 0 {
		return nil, errs.Clone(errs.ErrNotFound, "module not found")
	}
	return r.FindByID(ctx, id)
}

// AddStaff assigns a staff member with set semantics, no duplicates.
func (r *ModuleRepository) AddStaff(ctx context.Context, moduleID, staffID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": moduleID},
		bson.M{"$addToSet": bson.M{"staffAssigned": staffID}},
	)
	if err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "assign staff to module")
	}
	if res.MatchedCount == 0 {
		return errs.Clone(errs.ErrNotFound, "module not found")
	}
	return nil
}

// SetCompleted flips the one-way completion flag. Setting it again on an
// already-complete module is a no-op on the flag.
func (r *ModuleRepository) SetCompleted(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isCompleted": true}},
	)
	if err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "complete module")
	}
	if res.MatchedCount == 0 {
		return errs.Clone(errs.ErrNotFound, "module not found")
	}
	return nil
}
