package staffs

import (
	"context"
	"strings"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// defaultPassword is the initial credential every staff account starts
// with; staff are expected to change it on first login.
const defaultPassword = "12345"

// Store is the slice of the staff repository this service needs.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	All(ctx context.Context) ([]models.Staff, error)
	Insert(ctx context.Context, st *models.Staff) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetProfilePicture(ctx context.Context, id primitive.ObjectID, path string) (*models.Staff, error)
}

// ModuleDirectory resolves the modules a staff member is assigned to.
type ModuleDirectory interface {
	ByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.Module, error)
}

// StudentRoster narrows students to a location and module for staff views.
type StudentRoster interface {
	ByLocationAndModule(ctx context.Context, location string, moduleID primitive.ObjectID) ([]models.Student, error)
}

type Service struct {
	store    Store
	modules  ModuleDirectory
	students StudentRoster
	validate *validator.Validate
}

func NewService(store Store, modules ModuleDirectory, students StudentRoster) *Service {
	return &Service{store: store, modules: modules, students: students, validate: validator.New()}
}

type RegisterStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location" validate:"required"`
}

// Register creates a staff account. Emails are stored lowercase so the
// login lookup, which lowercases its input, always matches.
func (s *Service) Register(ctx context.Context, req RegisterStaffRequest) (*models.Staff, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, errs.Wrap(err, errs.ErrValidation.Code, errs.ErrValidation.Status, "missing required staff fields")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "hash password")
	}

	staff := models.Staff{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		Location: req.Location,
	}
	if err := s.store.Insert(ctx, &staff); err != nil {
		if errs.Is(err, errs.ErrDuplicate) {
			return nil, errs.Clone(errs.ErrDuplicate, "Staff already exists")
		}
		return nil, err
	}
	staff.Password = ""
	return &staff, nil
}

func (s *Service) All(ctx context.Context) ([]models.Staff, error) {
	return s.store.All(ctx)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}

// Profile returns the staff record without the credential hash.
func (s *Service) Profile(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	staff, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff.Password = ""
	return staff, nil
}

// AssignedModules lists the modules the staff member teaches.
func (s *Service) AssignedModules(ctx context.Context, staffID primitive.ObjectID) ([]models.Module, error) {
	if _, err := s.store.FindByID(ctx, staffID); err != nil {
		return nil, err
	}
	return s.modules.ByStaff(ctx, staffID)
}

// StudentsForModule lists a module's roster restricted to the staff
// member's own location.
func (s *Service) StudentsForModule(ctx context.Context, staffID, moduleID primitive.ObjectID) ([]models.Student, error) {
	staff, err := s.store.FindByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return s.students.ByLocationAndModule(ctx, staff.Location, moduleID)
}

// UpdateProfilePicture stores the uploaded picture path on the staff record.
func (s *Service) UpdateProfilePicture(ctx context.Context, staffID primitive.ObjectID, path string) (*models.Staff, error) {
	staff, err := s.store.SetProfilePicture(ctx, staffID, path)
	if err != nil {
		return nil, err
	}
	staff.Password = ""
	return staff, nil
}
