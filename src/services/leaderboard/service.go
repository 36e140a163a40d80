package leaderboard

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	cacheKeyOverall      = "leaderboard:overall"
	cacheKeyModulePrefix = "leaderboard:module:"
	cacheTTL             = 60 * time.Second
)

// ProgressAggregator supplies the score data the rankings are built from.
type ProgressAggregator interface {
	AverageByStudent(ctx context.Context) (map[primitive.ObjectID]float64, error)
	FindByTraining(ctx context.Context, trainingID primitive.ObjectID) ([]models.TrainingProgress, error)
}

// StudentDirectory resolves student identities for leaderboard rows.
type StudentDirectory interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
}

// Service builds score leaderboards, with a short-lived Redis cache in
// front when a client is available. A nil cache disables caching.
type Service struct {
	progress ProgressAggregator
	students StudentDirectory
	cache    *redis.Client
}

func NewService(progress ProgressAggregator, students StudentDirectory, cache *redis.Client) *Service {
	return &Service{progress: progress, students: students, cache: cache}
}

// Rank sorts entries by average score descending and assigns 1-based
// ranks in order. Equal averages still get successive ranks; order among
// ties follows the sort, which is stable over the input order.
func Rank(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AverageScore > entries[j].AverageScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Overall ranks every student by their mean average score across all
// trainings. Students with no progress records rank at 0.
func (s *Service) Overall(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if cached, ok := s.fromCache(ctx, cacheKeyOverall); ok {
		return cached, nil
	}

	averages, err := s.progress.AverageByStudent(ctx)
	if err != nil {
		return nil, err
	}
	studentList, err := s.students.List(ctx, models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(studentList))
	for _, st := range studentList {
		avg := averages[st.ID]
		entries = append(entries, models.LeaderboardEntry{
			StudentID:    st.ID,
			Name:         st.Name,
			RegNo:        st.RegNo,
			Department:   st.Department,
			AverageScore: avg,
		})
	}
	entries = Rank(entries)

	s.toCache(ctx, cacheKeyOverall, entries)
	return entries, nil
}

// ForModule ranks one module's roster by their average score in that module.
func (s *Service) ForModule(ctx context.Context, moduleID primitive.ObjectID) ([]models.LeaderboardEntry, error) {
	key := cacheKeyModulePrefix + moduleID.Hex()
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	records, err := s.progress.FindByTraining(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(records))
	for _, rec := range records {
		entry := models.LeaderboardEntry{
			StudentID:    rec.Student,
			AverageScore: rec.AverageScore,
		}
		if st, err := s.students.FindByID(ctx, rec.Student); err == nil {
			entry.Name = st.Name
			entry.RegNo = st.RegNo
			entry.Department = st.Department
		}
		entries = append(entries, entry)
	}
	entries = Rank(entries)

	s.toCache(ctx, key, entries)
	return entries, nil
}

func (s *Service) fromCache(ctx context.Context, key string) ([]models.LeaderboardEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *Service) toCache(ctx context.Context, key string, entries []models.LeaderboardEntry) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, raw, cacheTTL)
}
