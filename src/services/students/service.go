package students

import (
	"context"
	"log"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Store is the slice of the student repository this service needs.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	FindByRegNo(ctx context.Context, regNo string) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	ExistingRegNos(ctx context.Context, regNos []string) (map[string]bool, error)
	Insert(ctx context.Context, s *models.Student) error
	InsertMany(ctx context.Context, students []models.Student) (int, error)
	UpdateBatch(ctx context.Context, ids []primitive.ObjectID, batch string) (matched, modified int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
}

// ProgressCleaner removes a student's progress records on delete.
type ProgressCleaner interface {
	DeleteByStudent(ctx context.Context, studentID primitive.ObjectID) error
}

// ModuleDirectory resolves a student's enrolled modules for the details view.
type ModuleDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error)
}

type Service struct {
	store    Store
	progress ProgressCleaner
	modules  ModuleDirectory
	validate *validator.Validate
}

func NewService(store Store, progress ProgressCleaner, modules ModuleDirectory) *Service {
	return &Service{store: store, progress: progress, modules: modules, validate: validator.New()}
}

// RegisterStudentRequest is the single-register payload. The initial
// credential is derived from the registration number.
type RegisterStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	RegNo       string `json:"regNo" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Batch       string `json:"batch" validate:"required"`
	PassoutYear string `json:"passoutYear" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

func (s *Service) Register(ctx context.Context, req RegisterStudentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return errs.Wrap(err, errs.ErrValidation.Code, errs.ErrValidation.Status, "missing required student fields")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.RegNo), bcrypt.DefaultCost)
	if err != nil {
		return errs.Wrap(err, errs.ErrStoreFailure.Code, errs.ErrStoreFailure.Status, "hash password")
	}

	student := models.Student{
		Name:        req.Name,
		RegNo:       req.RegNo,
		Email:       req.Email,
		Password:    string(hashed),
		Batch:       req.Batch,
		PassoutYear: req.PassoutYear,
		Department:  req.Department,
		Location:    req.Location,
	}
	if err := s.store.Insert(ctx, &student); err != nil {
		if errs.Is(err, errs.ErrDuplicate) {
			return errs.Clone(errs.ErrDuplicate, "Student already exists")
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return s.store.List(ctx, filter)
}

// Details returns a student together with the modules they are enrolled in.
func (s *Service) Details(ctx context.Context, id primitive.ObjectID) (*models.Student, []models.Module, error) {
	student, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	modules := []models.Module{}
	for _, t := range student.Trainings {
		m, err := s.modules.FindByID(ctx, t.ModuleID)
		if err != nil {
			continue // stale enrollment, skip
		}
		modules = append(modules, *m)
	}
	return student, modules, nil
}

// BulkImport creates students from spreadsheet rows: trim, batch-code
// mapping, empty-row skip, required-field checks, then one unordered batch
// insert. regNos already registered are rejected before the insert; rows
// never abort each other.
func (s *Service) BulkImport(ctx context.Context, rows []map[string]string) (*models.ImportReport, error) {
	candidates, rowErrors := validateImportRows(rows)

	inserted := 0
	if len(candidates) > 0 {
		regNos := make([]string, 0, len(candidates))
		for _, c := range candidates {
			regNos = append(regNos, c.RegNo)
		}
		existing, err := s.store.ExistingRegNos(ctx, regNos)
		if err != nil {
			return nil, err
		}

		toInsert := make([]models.Student, 0, len(candidates))
		for _, c := range candidates {
			if existing[c.RegNo] {
				rowErrors = append(rowErrors, models.ImportRowError{
					Row:   0,
					Error: "Student already exists",
					Data:  c.Raw,
				})
				continue
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(c.RegNo), bcrypt.DefaultCost)
			if err != nil {
				rowErrors = append(rowErrors, models.ImportRowError{
					Row:   0,
					Error: "Failed to derive credential",
					Data:  c.Raw,
				})
				continue
			}
			toInsert = append(toInsert, models.Student{
				Name:        c.Name,
				RegNo:       c.RegNo,
				Email:       c.Email,
				Password:    string(hashed),
				Batch:       c.Batch,
				PassoutYear: c.PassoutYear,
				Department:  c.Department,
				Location:    c.Location,
			})
		}

		if len(toInsert) > 0 {
			inserted, err = s.store.InsertMany(ctx, toInsert)
			if err != nil {
				return nil, err
			}
			// the unique regNo index may still drop rows that raced a
			// concurrent register; they count as errors without a row number
			for i := 0; i < len(toInsert)-inserted; i++ {
				rowErrors = append(rowErrors, models.ImportRowError{
					Row:   0,
					Error: "Student already exists",
					Data:  map[string]string{},
				})
			}
		}
	}

	if rowErrors == nil {
		rowErrors = []models.ImportRowError{}
	}
	return &models.ImportReport{
		Message:      "Bulk upload completed",
		SuccessCount: inserted,
		ErrorCount:   len(rowErrors),
		Errors:       rowErrors,
	}, nil
}

// UpdateBatchForStudents reassigns the batch label for the listed students.
func (s *Service) UpdateBatchForStudents(ctx context.Context, ids []primitive.ObjectID, newBatch string) (matched, modified int64, err error) {
	if len(ids) == 0 {
		return 0, 0, errs.Clone(errs.ErrValidation, "studentIds must be a non-empty array")
	}
	if newBatch == "" {
		return 0, 0, errs.Clone(errs.ErrValidation, "newBatch must be a non-empty string")
	}

	matched, modified, err = s.store.UpdateBatch(ctx, ids, newBatch)
	if err != nil {
		return 0, 0, err
	}
	if matched == 0 {
		return 0, 0, errs.Clone(errs.ErrNotFound, "None of the provided student IDs exist")
	}
	return matched, modified, nil
}

// Delete removes the student and cascades their progress records. A cascade
// failure is logged, not surfaced - the student is already gone.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	student, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.progress.DeleteByStudent(ctx, id); err != nil {
		log.Println("warning: failed to delete training progress for student", id.Hex(), ":", err)
	}
	return student, nil
}
