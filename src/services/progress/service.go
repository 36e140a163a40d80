package progress

import (
	"context"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the slice of the progress repository this service needs.
type Store interface {
	FindByPair(ctx context.Context, studentID, trainingID primitive.ObjectID) (*models.TrainingProgress, error)
	FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.TrainingProgress, error)
	FindByTraining(ctx context.Context, trainingID primitive.ObjectID) ([]models.TrainingProgress, error)
	Insert(ctx context.Context, p *models.TrainingProgress) error
	Replace(ctx context.Context, p *models.TrainingProgress) error
}

// StudentDirectory resolves students for batch fan-out and report views.
type StudentDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	IDByRegNo(ctx context.Context, regNo string) (primitive.ObjectID, error)
	EnrolledIDs(ctx context.Context, moduleID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// ModuleDirectory resolves modules for titles and exam counts.
type ModuleDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error)
}

// Service owns the training-progress ledger: one record per (student,
// training) pair, attendance upserts and exam-score updates with the average
// kept consistent.
type Service struct {
	store    Store
	students StudentDirectory
	modules  ModuleDirectory
}

func NewService(store Store, students StudentDirectory, modules ModuleDirectory) *Service {
	return &Service{store: store, students: students, modules: modules}
}

// FindOrCreate returns the progress record for the pair, creating one with
// examsCount zero slots when missing. Creation races are resolved by the
// unique (student, training) index: the loser re-reads the winner's record.
func (s *Service) FindOrCreate(ctx context.Context, studentID, moduleID primitive.ObjectID, examsCount int) (*models.TrainingProgress, error) {
	p, err := s.store.FindByPair(ctx, studentID, moduleID)
	if err == nil {
		return p, nil
	}
	if !errs.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	p = &models.TrainingProgress{
		Student:    studentID,
		Training:   moduleID,
		Attendance: []models.AttendanceEntry{},
		ExamScores: NewExamScores(examsCount),
	}
	if insErr := s.store.Insert(ctx, p); insErr != nil {
		if errs.Is(insErr, errs.ErrDuplicate) {
			return s.store.FindByPair(ctx, studentID, moduleID)
		}
		return nil, insErr
	}
	return p, nil
}

// UpdateExamScore is the single-score path: the raw value is stored without
// any transform.
func (s *Service) UpdateExamScore(ctx context.Context, studentID, moduleID primitive.ObjectID, examNumber int, score float64) (*models.TrainingProgress, error) {
	p, err := s.store.FindByPair(ctx, studentID, moduleID)
	if err != nil {
		return nil, err
	}
	if err := ApplyExamScore(p, examNumber, score, nil); err != nil {
		return nil, err
	}
	if err := s.store.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Performance returns the raw progress record for one pair.
func (s *Service) Performance(ctx context.Context, studentID, moduleID primitive.ObjectID) (*models.TrainingProgress, error) {
	return s.store.FindByPair(ctx, studentID, moduleID)
}

// AttendanceFilter narrows attendance views. Nil fields are ignored; End is
// inclusive of its whole calendar day.
type AttendanceFilter struct {
	ModuleID *primitive.ObjectID
	Start    *time.Time
	End      *time.Time
}

// StudentAttendance flattens a student's progress records into per-day logs.
func (s *Service) StudentAttendance(ctx context.Context, studentID primitive.ObjectID, filter AttendanceFilter) ([]models.AttendanceLog, error) {
	records, err := s.store.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	titles := make(map[primitive.ObjectID]string)
	logs := []models.AttendanceLog{}
	for _, rec := range records {
		if filter.ModuleID != nil && rec.Training != *filter.ModuleID {
			continue
		}
		title, ok := titles[rec.Training]
		if !ok {
			title = "Unknown Module"
			if m, err := s.modules.FindByID(ctx, rec.Training); err == nil {
				title = m.Title
			}
			titles[rec.Training] = title
		}
		for _, entry := range rec.Attendance {
			// compare day-truncated on both sides so an entry stored with a
			// time of day still falls inside a range ending on its own day
			day := DayOf(entry.Date)
			if filter.Start != nil && day.Before(DayOf(*filter.Start)) {
				continue
			}
			if filter.End != nil && day.After(DayOf(*filter.End)) {
				continue
			}
			logs = append(logs, models.AttendanceLog{
				Date:        entry.Date,
				Status:      statusOf(entry.Present),
				ModuleID:    rec.Training,
				ModuleTitle: title,
				StudentID:   studentID,
				Remarks:     entry.Remarks,
			})
		}
	}
	return logs, nil
}

// ModuleAttendance flattens every roster member's attendance for one module.
func (s *Service) ModuleAttendance(ctx context.Context, moduleID primitive.ObjectID) ([]models.AttendanceLog, error) {
	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindByTraining(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	logs := []models.AttendanceLog{}
	for _, rec := range records {
		name := "Unknown Student"
		if st, err := s.students.FindByID(ctx, rec.Student); err == nil {
			name = st.Name
		}
		for _, entry := range rec.Attendance {
			logs = append(logs, models.AttendanceLog{
				Date:        entry.Date,
				Status:      statusOf(entry.Present),
				ModuleID:    moduleID,
				ModuleTitle: module.Title,
				StudentID:   rec.Student,
				StudentName: name,
				Remarks:     entry.Remarks,
			})
		}
	}
	return logs, nil
}

func statusOf(present bool) string {
	if present {
		return "present"
	}
	return "absent"
}
