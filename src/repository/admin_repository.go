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

// AdminRepository persists admin documents. email carries a unique index.
type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(col *mongo.Collection) *AdminRepository {
	return &AdminRepository{col: col}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Clone(errs.ErrNotFound, "admin not found")
		}
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "find admin")
	}
	return &a, nil
}

func (r *AdminRepository) Insert(ctx context.Context, a *models.Admin) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Clone(errs.ErrDuplicate, "admin with this email already exists")
		}
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "insert admin")
	}
	return nil
}
