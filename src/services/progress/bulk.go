package progress

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Batch operations. Every bulk path shares the same contract: items are
// processed independently and concurrently, one item's failure never aborts
// the batch, and the caller gets a per-item report.

var requiredScoreColumns = []string{"regNo", "name", "mark"}

// BulkUpdateAttendance marks the listed students with isPresent and every
// other roster member with the opposite, so binary attendance is total over
// the module roster for that day.
func (s *Service) BulkUpdateAttendance(ctx context.Context, moduleID primitive.ObjectID, targetIDs []primitive.ObjectID, date time.Time, isPresent bool) (*models.AttendanceReport, error) {
	roster, err := s.students.EnrolledIDs(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	targets := make(map[primitive.ObjectID]bool, len(targetIDs))
	for _, id := range targetIDs {
		targets[id] = true
	}
	var complement []primitive.ObjectID
	for _, id := range roster {
		if !targets[id] {
			complement = append(complement, id)
		}
	}

	presentIDs, absentIDs := targetIDs, complement
	if !isPresent {
		presentIDs, absentIDs = complement, targetIDs
	}

	details := make([]models.AttendanceDetail, len(presentIDs)+len(absentIDs))
	var wg sync.WaitGroup
	mark := func(slot int, id primitive.ObjectID, present bool) {
		defer wg.Done()
		details[slot] = s.markAttendance(ctx, id, moduleID, date, present, "")
	}
	for i, id := range presentIDs {
		wg.Add(1)
		go mark(i, id, true)
	}
	for i, id := range absentIDs {
		wg.Add(1)
		go mark(len(presentIDs)+i, id, false)
	}
	wg.Wait()

	successful := 0
	for _, d := range details {
		if d.Status == "success" {
			successful++
		}
	}

	return &models.AttendanceReport{
		Message:           "Attendance update completed",
		TotalStudents:     len(roster),
		SuccessfulUpdates: successful,
		FailedUpdates:     len(roster) - successful,
		Details:           details,
	}, nil
}

// MarkAttendanceForStudents is the staff path: only the listed students are
// marked, with a progress record created on the fly for late enrollments.
func (s *Service) MarkAttendanceForStudents(ctx context.Context, moduleID primitive.ObjectID, studentIDs []primitive.ObjectID, date time.Time, present bool, remarks string) (*models.AttendanceReport, error) {
	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	details := make([]models.AttendanceDetail, len(studentIDs))
	var wg sync.WaitGroup
	for i, id := range studentIDs {
		wg.Add(1)
		go func(slot int, studentID primitive.ObjectID) {
			defer wg.Done()
			p, err := s.FindOrCreate(ctx, studentID, moduleID, module.ExamsCount)
			if err != nil {
				details[slot] = models.AttendanceDetail{
					StudentID: studentID.Hex(),
					Status:    "failed",
					Message:   errs.FromError(err).Message,
				}
				return
			}
			UpsertAttendance(p, date, present, remarks)
			if err := s.store.Replace(ctx, p); err != nil {
				details[slot] = models.AttendanceDetail{
					StudentID: studentID.Hex(),
					Status:    "failed",
					Message:   errs.FromError(err).Message,
				}
				return
			}
			marked := present
			details[slot] = models.AttendanceDetail{StudentID: studentID.Hex(), Status: "success", Present: &marked}
		}(i, id)
	}
	wg.Wait()

	successful := 0
	for _, d := range details {
		if d.Status == "success" {
			successful++
		}
	}

	return &models.AttendanceReport{
		Message:           "Attendance updated successfully",
		TotalStudents:     len(studentIDs),
		SuccessfulUpdates: successful,
		FailedUpdates:     len(studentIDs) - successful,
		Details:           details,
	}, nil
}

// markAttendance is one read-modify-write of a single progress record. There
// is no progress creation here: students without a record for the module
// fail individually.
func (s *Service) markAttendance(ctx context.Context, studentID, moduleID primitive.ObjectID, date time.Time, present bool, remarks string) models.AttendanceDetail {
	p, err := s.store.FindByPair(ctx, studentID, moduleID)
	if err != nil {
		return models.AttendanceDetail{
			StudentID: studentID.Hex(),
			Status:    "failed",
			Message:   "No training progress found",
		}
	}

	UpsertAttendance(p, date, present, remarks)
	if err := s.store.Replace(ctx, p); err != nil {
		return models.AttendanceDetail{
			StudentID: studentID.Hex(),
			Status:    "failed",
			Message:   errs.FromError(err).Message,
		}
	}

	marked := present
	return models.AttendanceDetail{StudentID: studentID.Hex(), Status: "success", Present: &marked}
}

// BulkUploadScores applies one exam's marks from spreadsheet rows. The
// upload path doubles every mark (DoubleScore); the whole batch is rejected
// up front when the first row lacks the required columns.
func (s *Service) BulkUploadScores(ctx context.Context, moduleID primitive.ObjectID, examNumber int, rows []map[string]string) (*models.ScoreReport, error) {
	if len(rows) == 0 {
		return nil, errs.Clone(errs.ErrMalformedInput, "spreadsheet has no data rows")
	}
	for _, col := range requiredScoreColumns {
		if _, ok := rows[0][col]; !ok {
			return nil, errs.Clone(errs.ErrMalformedInput, "spreadsheet must contain regNo, name, and mark columns")
		}
	}

	details := make([]models.ScoreDetail, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(slot int, row map[string]string) {
			defer wg.Done()
			details[slot] = s.applyScoreRow(ctx, moduleID, examNumber, row)
		}(i, row)
	}
	wg.Wait()

	successful := 0
	for _, d := range details {
		if d.Status == "success" {
			successful++
		}
	}

	return &models.ScoreReport{
		Message:           "Scores uploaded successfully",
		TotalRecords:      len(rows),
		SuccessfulUpdates: successful,
		FailedUpdates:     len(rows) - successful,
		Details:           details,
	}, nil
}

func (s *Service) applyScoreRow(ctx context.Context, moduleID primitive.ObjectID, examNumber int, row map[string]string) models.ScoreDetail {
	regNo := strings.TrimSpace(row["regNo"])
	fail := func(reason string, studentID primitive.ObjectID) models.ScoreDetail {
		return models.ScoreDetail{RegNo: regNo, StudentID: studentID, Status: "failed", Reason: reason}
	}

	studentID, err := s.students.IDByRegNo(ctx, regNo)
	if err != nil {
		return fail("student not found", primitive.NilObjectID)
	}

	p, err := s.store.FindByPair(ctx, studentID, moduleID)
	if err != nil {
		return fail("no training progress found", studentID)
	}

	mark, err := strconv.ParseFloat(strings.TrimSpace(row["mark"]), 64)
	if err != nil {
		return fail("mark is not numeric", studentID)
	}

	if err := ApplyExamScore(p, examNumber, mark, DoubleScore); err != nil {
		return fail(errs.FromError(err).Message, studentID)
	}
	if err := s.store.Replace(ctx, p); err != nil {
		return fail(errs.FromError(err).Message, studentID)
	}

	return models.ScoreDetail{
		RegNo:      regNo,
		StudentID:  studentID,
		Status:     "success",
		ExamScores: append([]models.ExamScore(nil), p.ExamScores...),
	}
}
