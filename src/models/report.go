package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Batch operation reports. Field names are part of the API contract and must
// not be renamed.

// ImportRowError describes one rejected spreadsheet row. Row is the
// spreadsheet row number (header row is 1, so data starts at 2).
type ImportRowError struct {
	Row   int               `json:"row"`
	Error string            `json:"error"`
	Data  map[string]string `json:"data"`
}

// ImportReport summarises a bulk student import.
type ImportReport struct {
	Message      string           `json:"message"`
	SuccessCount int              `json:"successCount"`
	ErrorCount   int              `json:"errorCount"`
	Errors       []ImportRowError `json:"errors"`
}

// ScoreDetail is the per-row outcome of a bulk score upload. ExamScores is
// populated only for successful rows; Reason only for failed ones.
type ScoreDetail struct {
	RegNo      string             `json:"regNo"`
	StudentID  primitive.ObjectID `json:"studentId,omitempty"`
	Status     string             `json:"status"`
	Reason     string             `json:"reason,omitempty"`
	ExamScores []ExamScore        `json:"examScores,omitempty"`
}

// ScoreReport summarises a bulk score upload.
type ScoreReport struct {
	Message           string        `json:"message"`
	TotalRecords      int           `json:"totalRecords"`
	SuccessfulUpdates int           `json:"successfulUpdates"`
	FailedUpdates     int           `json:"failedUpdates"`
	Details           []ScoreDetail `json:"details"`
}

// AttendanceDetail is the per-student outcome of a bulk attendance update.
type AttendanceDetail struct {
	StudentID string `json:"studentId"`
	Status    string `json:"status"`
	Present   *bool  `json:"present,omitempty"`
	Message   string `json:"message,omitempty"`
}

// AttendanceReport summarises a bulk attendance update over a module roster.
type AttendanceReport struct {
	Message           string             `json:"message"`
	TotalStudents     int                `json:"totalStudents"`
	SuccessfulUpdates int                `json:"successfulUpdates"`
	FailedUpdates     int                `json:"failedUpdates"`
	Details           []AttendanceDetail `json:"details"`
}

// LeaderboardEntry is one ranked row. Ranks are dense 1-based positions in
// score order; tied scores get distinct successive ranks.
type LeaderboardEntry struct {
	StudentID    primitive.ObjectID `json:"studentId"`
	Name         string             `json:"name"`
	RegNo        string             `json:"regNo"`
	Department   string             `json:"department"`
	AverageScore float64            `json:"averageScore"`
	Rank         int                `json:"rank"`
}
