package admins

import (
	"context"
	"strings"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Store is the slice of the admin repository this service needs.
type Store interface {
	Insert(ctx context.Context, a *models.Admin) error
}

type Service struct {
	store    Store
	validate *validator.Validate
}

func NewService(store Store) *Service {
	return &Service{store: store, validate: validator.New()}
}

type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an admin account. Emails are stored lowercase so the
// login lookup, which lowercases its input, always matches.
func (s *Service) Register(ctx context.Context, req RegisterAdminRequest) (*models.Admin, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, errs.Wrap(err, errs.ErrValidation.Code, errs.ErrValidation.Status, "missing required admin fields")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "hash password")
	}

	admin := models.Admin{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
	}
	if err := s.store.Insert(ctx, &admin); err != nil {
		if errs.Is(err, errs.ErrDuplicate) {
			return nil, errs.Clone(errs.ErrDuplicate, "Admin already exists")
		}
		return nil, err
	}
	admin.Password = ""
	return &admin, nil
}
