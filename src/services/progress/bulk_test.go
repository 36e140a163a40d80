package progress

import (
	"context"
	"testing"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedProgress(store *fakeStore, studentID, moduleID primitive.ObjectID, exams int) {
	store.put(models.TrainingProgress{
		ID:         primitive.NewObjectID(),
		Student:    studentID,
		Training:   moduleID,
		Attendance: []models.AttendanceEntry{},
		ExamScores: NewExamScores(exams),
	})
}

func detailFor(details []models.AttendanceDetail, id primitive.ObjectID) *models.AttendanceDetail {
	for i := range details {
		if details[i].StudentID == id.Hex() {
			return &details[i]
		}
	}
	return nil
}

func TestBulkUpdateAttendance(t *testing.T) {
	day := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	setup := func() (*Service, *fakeStore, primitive.ObjectID, []primitive.ObjectID) {
		store := newFakeStore()
		students := newFakeStudents()
		modules := newFakeModules()
		moduleID := modules.add("Aptitude", 2)

		var roster []primitive.ObjectID
		for _, name := range []string{"A", "B", "C", "D"} {
			id := students.add(name, "REG"+name)
			roster = append(roster, id)
			seedProgress(store, id, moduleID, 2)
		}
		students.enrolled[moduleID] = roster

		return NewService(store, students, modules), store, moduleID, roster
	}

	t.Run("ListedPresentRestAbsent", func(t *testing.T) {
		svc, store, moduleID, roster := setup()

		report, err := svc.BulkUpdateAttendance(context.Background(), moduleID, roster[:2], day, true)
		require.NoError(t, err)

		assert.Equal(t, 4, report.TotalStudents)
		assert.Equal(t, 4, report.SuccessfulUpdates)
		assert.Equal(t, 0, report.FailedUpdates)

		for i, id := range roster {
			rec, ok := store.get(id, moduleID)
			require.True(t, ok)
			require.Len(t, rec.Attendance, 1)
			assert.Equal(t, i < 2, rec.Attendance[0].Present, "roster slot %d", i)
		}
	})

	t.Run("ListedAbsentRestPresent", func(t *testing.T) {
		svc, store, moduleID, roster := setup()

		report, err := svc.BulkUpdateAttendance(context.Background(), moduleID, roster[:1], day, false)
		require.NoError(t, err)
		assert.Equal(t, 4, report.SuccessfulUpdates)

		rec, _ := store.get(roster[0], moduleID)
		assert.False(t, rec.Attendance[0].Present)
		for _, id := range roster[1:] {
			rec, _ := store.get(id, moduleID)
			assert.True(t, rec.Attendance[0].Present)
		}
	})

	t.Run("MissingProgressFailsThatStudentOnly", func(t *testing.T) {
		store := newFakeStore()
		students := newFakeStudents()
		modules := newFakeModules()
		moduleID := modules.add("Aptitude", 2)

		withRecord := students.add("A", "REGA")
		withoutRecord := students.add("B", "REGB")
		students.enrolled[moduleID] = []primitive.ObjectID{withRecord, withoutRecord}
		seedProgress(store, withRecord, moduleID, 2)

		svc := NewService(store, students, modules)
		report, err := svc.BulkUpdateAttendance(context.Background(), moduleID, []primitive.ObjectID{withRecord, withoutRecord}, day, true)
		require.NoError(t, err)

		assert.Equal(t, 2, report.TotalStudents)
		assert.Equal(t, 1, report.SuccessfulUpdates)
		assert.Equal(t, 1, report.FailedUpdates)

		failed := detailFor(report.Details, withoutRecord)
		require.NotNil(t, failed)
		assert.Equal(t, "failed", failed.Status)
		assert.Equal(t, "No training progress found", failed.Message)
	})

	t.Run("SecondRunSameDayOverwrites", func(t *testing.T) {
		svc, store, moduleID, roster := setup()

		_, err := svc.BulkUpdateAttendance(context.Background(), moduleID, roster[:2], day, true)
		require.NoError(t, err)
		_, err = svc.BulkUpdateAttendance(context.Background(), moduleID, roster[2:], day, true)
		require.NoError(t, err)

		for i, id := range roster {
			rec, _ := store.get(id, moduleID)
			require.Len(t, rec.Attendance, 1, "roster slot %d", i)
			assert.Equal(t, i >= 2, rec.Attendance[0].Present)
		}
	})
}

func TestMarkAttendanceForStudents(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("OnlyListedStudentsTouched", func(t *testing.T) {
		store := newFakeStore()
		students := newFakeStudents()
		modules := newFakeModules()
		moduleID := modules.add("SQL", 3)

		listed := students.add("A", "REGA")
		unlisted := students.add("B", "REGB")
		students.enrolled[moduleID] = []primitive.ObjectID{listed, unlisted}
		seedProgress(store, listed, moduleID, 3)
		seedProgress(store, unlisted, moduleID, 3)

		svc := NewService(store, students, modules)
		report, err := svc.MarkAttendanceForStudents(context.Background(), moduleID, []primitive.ObjectID{listed}, day, true, "late arrival")
		require.NoError(t, err)

		assert.Equal(t, 1, report.TotalStudents)
		assert.Equal(t, 1, report.SuccessfulUpdates)

		rec, _ := store.get(listed, moduleID)
		require.Len(t, rec.Attendance, 1)
		assert.Equal(t, "late arrival", rec.Attendance[0].Remarks)

		rec, _ = store.get(unlisted, moduleID)
		assert.Empty(t, rec.Attendance)
	})

	t.Run("CreatesRecordForLateEnrollment", func(t *testing.T) {
		store := newFakeStore()
		students := newFakeStudents()
		modules := newFakeModules()
		moduleID := modules.add("SQL", 3)

		newcomer := students.add("A", "REGA")
		students.enrolled[moduleID] = []primitive.ObjectID{newcomer}

		svc := NewService(store, students, modules)
		report, err := svc.MarkAttendanceForStudents(context.Background(), moduleID, []primitive.ObjectID{newcomer}, day, false, "")
		require.NoError(t, err)
		assert.Equal(t, 1, report.SuccessfulUpdates)

		rec, ok := store.get(newcomer, moduleID)
		require.True(t, ok)
		assert.Len(t, rec.ExamScores, 3)
		require.Len(t, rec.Attendance, 1)
		assert.False(t, rec.Attendance[0].Present)
	})

	t.Run("UnknownModule", func(t *testing.T) {
		svc := NewService(newFakeStore(), newFakeStudents(), newFakeModules())
		_, err := svc.MarkAttendanceForStudents(context.Background(), primitive.NewObjectID(), nil, day, true, "")
		assert.Error(t, err)
	})
}

func TestBulkUploadScores(t *testing.T) {
	setup := func() (*Service, *fakeStore, *fakeStudents, primitive.ObjectID) {
		store := newFakeStore()
		students := newFakeStudents()
		modules := newFakeModules()
		moduleID := modules.add("Aptitude", 2)
		return NewService(store, students, modules), store, students, moduleID
	}

	t.Run("MarksAreDoubled", func(t *testing.T) {
		svc, store, students, moduleID := setup()
		id := students.add("A", "REG1")
		seedProgress(store, id, moduleID, 2)

		report, err := svc.BulkUploadScores(context.Background(), moduleID, 1, []map[string]string{
			{"regNo": "REG1", "name": "A", "mark": "40"},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, report.TotalRecords)
		assert.Equal(t, 1, report.SuccessfulUpdates)
		assert.Equal(t, 0, report.FailedUpdates)

		rec, _ := store.get(id, moduleID)
		assert.Equal(t, 80.0, rec.ExamScores[0].Score)
		assert.Equal(t, 40.0, rec.AverageScore)
	})

	t.Run("RowFailuresCarryReasons", func(t *testing.T) {
		svc, store, students, moduleID := setup()
		known := students.add("A", "REG1")
		seedProgress(store, known, moduleID, 2)
		students.add("B", "REG2") // enrolled nowhere, no progress record

		report, err := svc.BulkUploadScores(context.Background(), moduleID, 1, []map[string]string{
			{"regNo": "REG1", "name": "A", "mark": "35"},
			{"regNo": "NOPE", "name": "X", "mark": "10"},
			{"regNo": "REG2", "name": "B", "mark": "10"},
			{"regNo": "REG1", "name": "A", "mark": "abc"},
		})
		require.NoError(t, err)

		assert.Equal(t, 4, report.TotalRecords)
		assert.Equal(t, 1, report.SuccessfulUpdates)
		assert.Equal(t, 3, report.FailedUpdates)

		reasons := make(map[string]string)
		for _, d := range report.Details {
			if d.Status == "failed" {
				reasons[d.RegNo+"/"+d.Reason] = d.Reason
			}
		}
		assert.Contains(t, reasons, "NOPE/student not found")
		assert.Contains(t, reasons, "REG2/no training progress found")
		assert.Contains(t, reasons, "REG1/mark is not numeric")
	})

	t.Run("InvalidExamNumberFailsRows", func(t *testing.T) {
		svc, store, students, moduleID := setup()
		id := students.add("A", "REG1")
		seedProgress(store, id, moduleID, 2)

		report, err := svc.BulkUploadScores(context.Background(), moduleID, 9, []map[string]string{
			{"regNo": "REG1", "name": "A", "mark": "40"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, report.FailedUpdates)
	})

	t.Run("MissingColumnsRejectWholeBatch", func(t *testing.T) {
		svc, _, _, moduleID := setup()

		_, err := svc.BulkUploadScores(context.Background(), moduleID, 1, []map[string]string{
			{"regNo": "REG1", "mark": "40"},
		})
		assert.Error(t, err)

		_, err = svc.BulkUploadScores(context.Background(), moduleID, 1, nil)
		assert.Error(t, err)
	})
}
