package progress

import (
	"fmt"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"
)

// ScoreTransform adjusts a raw mark before it is stored. The bulk upload
// path doubles marks (sheets carry half marks); the single-score path stores
// the raw value. Keeping the rule pluggable keeps it out of the ledger.
type ScoreTransform func(raw float64) float64

// DoubleScore is the bulk-upload marking policy.
func DoubleScore(raw float64) float64 {
	return raw * 2
}

// DayOf strips the time-of-day so attendance entries compare at calendar-day
// granularity. All dates are kept in UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UpsertAttendance marks a day on the progress record. A second mark for the
// same calendar day overwrites present (and remarks, when supplied) instead
// of appending, so the list never holds two entries for one day.
func UpsertAttendance(p *models.TrainingProgress, date time.Time, present bool, remarks string) {
	day := DayOf(date)
	for i := range p.Attendance {
		if DayOf(p.Attendance[i].Date).Equal(day) {
			p.Attendance[i].Present = present
			if remarks != "" {
				p.Attendance[i].Remarks = remarks
			}
			return
		}
	}
	p.Attendance = append(p.Attendance, models.AttendanceEntry{
		Date:    day,
		Present: present,
		Remarks: remarks,
	})
}

// ApplyExamScore writes a score into the slot whose 1-based exam number
// matches examNumber and recomputes the average. Slots are fixed at
// assignment time; an unknown number is an InvalidExamIndex error.
func ApplyExamScore(p *models.TrainingProgress, examNumber int, raw float64, transform ScoreTransform) error {
	idx := -1
	for i := range p.ExamScores {
		if p.ExamScores[i].Exam == examNumber {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errs.Clone(errs.ErrInvalidExamIndex, fmt.Sprintf("no exam %d in this module", examNumber))
	}

	score := raw
	if transform != nil {
		score = transform(raw)
	}
	p.ExamScores[idx].Score = score
	RecomputeAverage(p)
	return nil
}

// RecomputeAverage keeps AverageScore equal to the mean of ExamScores,
// 0 when the list is empty.
func RecomputeAverage(p *models.TrainingProgress) {
	if len(p.ExamScores) == 0 {
		p.AverageScore = 0
		return
	}
	var total float64
	for _, s := range p.ExamScores {
		total += s.Score
	}
	p.AverageScore = total / float64(len(p.ExamScores))
}

// NewExamScores builds n zero-initialized slots numbered 1..n.
func NewExamScores(n int) []models.ExamScore {
	scores := make([]models.ExamScore, 0, n)
	for i := 1; i <= n; i++ {
		scores = append(scores, models.ExamScore{Exam: i, Score: 0})
	}
	return scores
}
