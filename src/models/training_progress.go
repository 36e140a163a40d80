package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceEntry is one calendar day inside a progress record. A progress
// record never holds two entries for the same day - a second mark for a day
// overwrites the first.
type AttendanceEntry struct {
	Date    time.Time `bson:"date" json:"date"`
	Present bool      `bson:"present" json:"present"`
	Remarks string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// ExamScore is one exam slot. Exam is the 1-based exam number, fixed at
// module-assignment time.
type ExamScore struct {
	Exam  int     `bson:"exam" json:"exam"`
	Score float64 `bson:"score" json:"score"`
}

// TrainingProgress is the aggregate for one (student, training) pair; the
// pair is unique (enforced by a compound index). AverageScore always equals
// the mean of ExamScores, 0 when the list is empty.
type TrainingProgress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Student      primitive.ObjectID `bson:"student" json:"student"`
	Training     primitive.ObjectID `bson:"training" json:"training"`
	Attendance   []AttendanceEntry  `bson:"attendance" json:"attendance"`
	ExamScores   []ExamScore        `bson:"examScores" json:"examScores"`
	AverageScore float64            `bson:"averageScore" json:"averageScore"`
}

// AttendanceLog is the flattened read shape served to clients.
type AttendanceLog struct {
	Date        time.Time          `json:"date"`
	Status      string             `json:"status"` // "present" or "absent"
	ModuleID    primitive.ObjectID `json:"moduleId,omitempty"`
	ModuleTitle string             `json:"moduleTitle"`
	StudentID   primitive.ObjectID `json:"studentId,omitempty"`
	StudentName string             `json:"studentName,omitempty"`
	Remarks     string             `json:"remarks"`
}
