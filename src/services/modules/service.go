package modules

import (
	"context"
	"log"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the slice of the module repository this service needs.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error)
	All(ctx context.Context) ([]models.Module, error)
	Insert(ctx context.Context, m *models.Module) error
	UpdateDetails(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Module, error)
	AddStaff(ctx context.Context, moduleID, staffID primitive.ObjectID) error
	SetCompleted(ctx context.Context, id primitive.ObjectID) error
}

// Enrollment is the student-side view the module workflows need.
type Enrollment interface {
	PushTraining(ctx context.Context, ids []primitive.ObjectID, moduleID primitive.ObjectID) (int64, error)
	EnrolledIDs(ctx context.Context, moduleID primitive.ObjectID) ([]primitive.ObjectID, error)
	FindByModule(ctx context.Context, moduleID primitive.ObjectID) ([]models.Student, error)
	IncTrainingsCompleted(ctx context.Context, id primitive.ObjectID) error
}

// ProgressLedger seeds and reads progress records for module rosters.
type ProgressLedger interface {
	FindOrCreate(ctx context.Context, studentID, moduleID primitive.ObjectID, examsCount int) (*models.TrainingProgress, error)
	Performance(ctx context.Context, studentID, moduleID primitive.ObjectID) (*models.TrainingProgress, error)
}

// StaffDirectory is the staff-side half of a staff assignment.
type StaffDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	AddModule(ctx context.Context, staffID, moduleID primitive.ObjectID) error
}

type Service struct {
	store    Store
	students Enrollment
	progress ProgressLedger
	staff    StaffDirectory
}

func NewService(store Store, students Enrollment, progress ProgressLedger, staff StaffDirectory) *Service {
	return &Service{store: store, students: students, progress: progress, staff: staff}
}

// CreateModuleRequest carries a new module plus the students to enroll.
type CreateModuleRequest struct {
	Title        string
	Description  string
	DurationDays int
	ExamsCount   int
	Location     string
	StudentIDs   []primitive.ObjectID
}

// Create inserts the module, enrolls the listed students and seeds one
// progress record per student with examsCount zero slots. Seeding is
// best-effort per student; a failed seed is logged and skipped.
func (s *Service) Create(ctx context.Context, req CreateModuleRequest) (*models.Module, int64, error) {
	if len(req.StudentIDs) == 0 {
		return nil, 0, errs.Clone(errs.ErrValidation, "Student IDs array is required")
	}
	if req.Location == "" {
		return nil, 0, errs.Clone(errs.ErrValidation, "Location is required")
	}

	module := models.Module{
		Title:        req.Title,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		ExamsCount:   req.ExamsCount,
		Location:     req.Location,
	}
	if err := s.store.Insert(ctx, &module); err != nil {
		return nil, 0, err
	}

	assigned, err := s.students.PushTraining(ctx, req.StudentIDs, module.ID)
	if err != nil {
		return nil, 0, err
	}
	if assigned == 0 {
		return nil, 0, errs.Clone(errs.ErrValidation, "No students were updated")
	}

	for _, studentID := range req.StudentIDs {
		if _, err := s.progress.FindOrCreate(ctx, studentID, module.ID, req.ExamsCount); err != nil {
			log.Println("warning: failed to seed training progress for student", studentID.Hex(), ":", err)
		}
	}

	return &module, assigned, nil
}

func (s *Service) All(ctx context.Context) ([]models.Module, error) {
	return s.store.All(ctx)
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Module, error) {
	return s.store.FindByID(ctx, id)
}

// UpdateModuleRequest edits module details. Completion cannot be revoked
// through this path - the flag only ever moves to true.
type UpdateModuleRequest struct {
	Title        string
	Description  string
	DurationDays int
	ExamsCount   int
	IsCompleted  bool
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, req UpdateModuleRequest) (*models.Module, error) {
	if req.Title == "" || req.Description == "" || req.DurationDays == 0 || req.ExamsCount == 0 {
		return nil, errs.Clone(errs.ErrValidation, "Missing required fields: title, description, durationDays, and examsCount are required")
	}

	set := bson.M{
		"title":        req.Title,
		"description":  req.Description,
		"durationDays": req.DurationDays,
		"examsCount":   req.ExamsCount,
	}
	if req.IsCompleted {
		set["isCompleted"] = true
	}
	return s.store.UpdateDetails(ctx, id, set)
}

// Complete sets the one-way completion flag and bumps every enrolled
// student's completed-training counter. The flag set is idempotent; the
// counter increments are NOT - completing an already-complete module bumps
// every counter again. That mirrors the behavior clients have grown to rely
// on; see DESIGN.md before changing it.
func (s *Service) Complete(ctx context.Context, id primitive.ObjectID) (*models.Module, int, error) {
	module, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if err := s.store.SetCompleted(ctx, id); err != nil {
		return nil, 0, err
	}
	module.IsCompleted = true

	roster, err := s.students.EnrolledIDs(ctx, id)
	if err != nil {
		return module, 0, nil
	}

	updated := 0
	for _, studentID := range roster {
		if err := s.students.IncTrainingsCompleted(ctx, studentID); err != nil {
			log.Println("warning: failed to bump completed count for student", studentID.Hex(), ":", err)
			continue
		}
		updated++
	}
	return module, updated, nil
}

// StudentWithProgress pairs a roster member with their progress record,
// nil when none exists yet.
type StudentWithProgress struct {
	Student          models.Student           `json:"student"`
	TrainingProgress *models.TrainingProgress `json:"trainingProgress"`
}

// StudentsWithProgress returns the module roster annotated with progress.
func (s *Service) StudentsWithProgress(ctx context.Context, moduleID primitive.ObjectID) ([]StudentWithProgress, error) {
	students, err := s.students.FindByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, errs.Clone(errs.ErrNotFound, "No students found for this module")
	}

	result := make([]StudentWithProgress, 0, len(students))
	for _, st := range students {
		entry := StudentWithProgress{Student: st}
		if p, err := s.progress.Performance(ctx, st.ID, moduleID); err == nil {
			entry.TrainingProgress = p
		}
		result = append(result, entry)
	}
	return result, nil
}

// AssignStaff links a staff member and a module on both sides with set
// semantics, so repeating the assignment never duplicates references.
func (s *Service) AssignStaff(ctx context.Context, moduleID, staffID primitive.ObjectID) error {
	if _, err := s.store.FindByID(ctx, moduleID); err != nil {
		return err
	}
	if _, err := s.staff.FindByID(ctx, staffID); err != nil {
		return err
	}

	if err := s.store.AddStaff(ctx, moduleID, staffID); err != nil {
		return err
	}
	return s.staff.AddModule(ctx, staffID, moduleID)
}
