package progress

import (
	"context"
	"testing"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFindOrCreate(t *testing.T) {
	t.Run("CreatesWithZeroSlots", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store, newFakeStudents(), newFakeModules())

		studentID, moduleID := primitive.NewObjectID(), primitive.NewObjectID()
		p, err := svc.FindOrCreate(context.Background(), studentID, moduleID, 3)
		require.NoError(t, err)
		assert.Len(t, p.ExamScores, 3)
		assert.Empty(t, p.Attendance)
		assert.Equal(t, 1, store.inserted)
	})

	t.Run("ReturnsExistingWithoutInsert", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store, newFakeStudents(), newFakeModules())

		studentID, moduleID := primitive.NewObjectID(), primitive.NewObjectID()
		existing := models.TrainingProgress{
			ID:         primitive.NewObjectID(),
			Student:    studentID,
			Training:   moduleID,
			ExamScores: NewExamScores(2),
		}
		store.put(existing)

		p, err := svc.FindOrCreate(context.Background(), studentID, moduleID, 5)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, p.ID)
		assert.Len(t, p.ExamScores, 2)
		assert.Zero(t, store.inserted)
	})

	t.Run("LosingARaceReReadsTheWinner", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store, newFakeStudents(), newFakeModules())

		studentID, moduleID := primitive.NewObjectID(), primitive.NewObjectID()
		winner := models.TrainingProgress{
			ID:         primitive.NewObjectID(),
			Student:    studentID,
			Training:   moduleID,
			ExamScores: NewExamScores(2),
		}
		// the winner lands between our read and our insert
		store.insertErr = errs.Clone(errs.ErrDuplicate, "progress record already exists")
		store.put(winner)

		p, err := svc.FindOrCreate(context.Background(), studentID, moduleID, 2)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, p.ID)
	})
}

func TestUpdateExamScore(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, newFakeStudents(), newFakeModules())
	studentID, moduleID := primitive.NewObjectID(), primitive.NewObjectID()
	store.put(models.TrainingProgress{
		ID:         primitive.NewObjectID(),
		Student:    studentID,
		Training:   moduleID,
		ExamScores: NewExamScores(2),
	})

	t.Run("StoresRawValue", func(t *testing.T) {
		p, err := svc.UpdateExamScore(context.Background(), studentID, moduleID, 2, 45)
		require.NoError(t, err)
		assert.Equal(t, 45.0, p.ExamScores[1].Score)
		assert.Equal(t, 22.5, p.AverageScore)

		rec, _ := store.get(studentID, moduleID)
		assert.Equal(t, 45.0, rec.ExamScores[1].Score)
	})

	t.Run("NoRecordIsNotFound", func(t *testing.T) {
		_, err := svc.UpdateExamScore(context.Background(), primitive.NewObjectID(), moduleID, 1, 50)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("BadExamNumber", func(t *testing.T) {
		_, err := svc.UpdateExamScore(context.Background(), studentID, moduleID, 7, 50)
		assert.True(t, errs.Is(err, errs.ErrInvalidExamIndex))
	})
}

func TestStudentAttendance(t *testing.T) {
	store := newFakeStore()
	students := newFakeStudents()
	modules := newFakeModules()
	sqlID := modules.add("SQL", 1)
	aptID := modules.add("Aptitude", 1)
	studentID := students.add("A", "REG1")

	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	store.put(models.TrainingProgress{
		ID: primitive.NewObjectID(), Student: studentID, Training: sqlID,
		Attendance: []models.AttendanceEntry{
			{Date: day(1), Present: true},
			{Date: day(2), Present: false, Remarks: "sick"},
		},
	})
	store.put(models.TrainingProgress{
		ID: primitive.NewObjectID(), Student: studentID, Training: aptID,
		Attendance: []models.AttendanceEntry{{Date: day(3), Present: true}},
	})

	svc := NewService(store, students, modules)

	t.Run("AllModules", func(t *testing.T) {
		logs, err := svc.StudentAttendance(context.Background(), studentID, AttendanceFilter{})
		require.NoError(t, err)
		assert.Len(t, logs, 3)

		titles := make(map[string]bool)
		for _, l := range logs {
			titles[l.ModuleTitle] = true
		}
		assert.True(t, titles["SQL"])
		assert.True(t, titles["Aptitude"])
	})

	t.Run("ModuleFilter", func(t *testing.T) {
		logs, err := svc.StudentAttendance(context.Background(), studentID, AttendanceFilter{ModuleID: &sqlID})
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("DateRangeIsInclusive", func(t *testing.T) {
		start, end := day(2), day(3)
		logs, err := svc.StudentAttendance(context.Background(), studentID, AttendanceFilter{Start: &start, End: &end})
		require.NoError(t, err)
		assert.Len(t, logs, 2)
		for _, l := range logs {
			assert.False(t, l.Date.Before(start))
			assert.False(t, l.Date.After(end))
		}
	})

	t.Run("TimedEntriesMatchOnCalendarDay", func(t *testing.T) {
		// entries written with a time of day must still fall inside a
		// range that starts or ends on their calendar day
		other := students.add("B", "REG2")
		store.put(models.TrainingProgress{
			ID: primitive.NewObjectID(), Student: other, Training: sqlID,
			Attendance: []models.AttendanceEntry{
				{Date: time.Date(2025, 6, 4, 0, 30, 0, 0, time.UTC), Present: true},
				{Date: time.Date(2025, 6, 5, 23, 0, 0, 0, time.UTC), Present: true},
			},
		})

		start, end := day(4), day(5)
		logs, err := svc.StudentAttendance(context.Background(), other, AttendanceFilter{Start: &start, End: &end})
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("StatusStrings", func(t *testing.T) {
		logs, err := svc.StudentAttendance(context.Background(), studentID, AttendanceFilter{ModuleID: &sqlID})
		require.NoError(t, err)
		statuses := map[string]string{}
		for _, l := range logs {
			statuses[l.Date.Format("2006-01-02")] = l.Status
		}
		assert.Equal(t, "present", statuses["2025-06-01"])
		assert.Equal(t, "absent", statuses["2025-06-02"])
	})
}

func TestModuleAttendance(t *testing.T) {
	store := newFakeStore()
	students := newFakeStudents()
	modules := newFakeModules()
	moduleID := modules.add("SQL", 1)
	a := students.add("Asha", "REG1")
	b := students.add("Binu", "REG2")

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store.put(models.TrainingProgress{
		ID: primitive.NewObjectID(), Student: a, Training: moduleID,
		Attendance: []models.AttendanceEntry{{Date: day, Present: true}},
	})
	store.put(models.TrainingProgress{
		ID: primitive.NewObjectID(), Student: b, Training: moduleID,
		Attendance: []models.AttendanceEntry{{Date: day, Present: false}},
	})

	svc := NewService(store, students, modules)
	logs, err := svc.ModuleAttendance(context.Background(), moduleID)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	names := map[string]string{}
	for _, l := range logs {
		names[l.StudentName] = l.Status
		assert.Equal(t, "SQL", l.ModuleTitle)
	}
	assert.Equal(t, "present", names["Asha"])
	assert.Equal(t, "absent", names["Binu"])

	_, err = svc.ModuleAttendance(context.Background(), primitive.NewObjectID())
	assert.Error(t, err)
}
