package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
)

const LeaderboardSize = 10

// calendarDay truncates t to its local calendar day.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpdateStreak applies a reading activity at `now` to the user's streak.
// Same calendar day: no change. Exactly one day after the last activity:
// current streak +1. Longer gap: reset to 1. Longest is a running max.
// Last-writer-wins; no cross-row locking, this runs once per request.
func UpdateStreak(db *gorm.DB, userID uuid.UUID, now time.Time) (*models.ReadingStreak, error) {
	today := calendarDay(now)

	var streak models.ReadingStreak
	err := db.First(&streak, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = models.ReadingStreak{
			UserID:           userID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: today,
		}
		if err := db.Create(&streak).Error; err != nil {
			return nil, err
		}
		return &streak, nil
	}
	if err != nil {
		return nil, err
	}

	last := calendarDay(streak.LastActivityDate.In(now.Location()))
	days := int(today.Sub(last).Hours() / 24)

	switch {
	case days <= 0:
		// Already counted today (or clock went backwards); nothing to do.
		return &streak, nil
	case days == 1:
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastActivityDate = today

	if err := db.Save(&streak).Error; err != nil {
		return nil, err
	}
	return &streak, nil
}

// GetStreak returns the user's streak, zero-valued if none exists yet.
func GetStreak(db *gorm.DB, userID uuid.UUID) (*models.ReadingStreak, error) {
	var streak models.ReadingStreak
	err := db.First(&streak, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ReadingStreak{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// BooksReadThisYear recomputes the yearly completion count from the
// canonical reading_histories rows instead of keeping a mutable counter.
func BooksReadThisYear(db *gorm.DB, userID uuid.UUID, now time.Time) (int64, error) {
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	var count int64
	err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ? AND completed_at IS NOT NULL AND completed_at >= ?", userID, startOfYear).
		Count(&count).Error
	return count, err
}

// UserStats are the aggregates the achievement predicates and the /me
// endpoint are computed from.
type UserStats struct {
	BooksCompleted int64 `json:"booksCompleted"`
	BooksStarted   int64 `json:"booksStarted"`
	Bookmarks      int64 `json:"bookmarks"`
	CurrentStreak  int   `json:"currentStreak"`
	LongestStreak  int   `json:"longestStreak"`
}

func ComputeUserStats(db *gorm.DB, userID uuid.UUID) (*UserStats, error) {
	var stats UserStats
	if err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&stats.BooksCompleted).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ?", userID).
		Count(&stats.BooksStarted).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ? AND is_bookmarked = ?", userID, true).
		Count(&stats.Bookmarks).Error; err != nil {
		return nil, err
	}
	streak, err := GetStreak(db, userID)
	if err != nil {
		return nil, err
	}
	stats.CurrentStreak = streak.CurrentStreak
	stats.LongestStreak = streak.LongestStreak
	return &stats, nil
}

type AchievementDef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	unlocked    func(s *UserStats) bool
}

// Fixed achievement table. IDs are stable; unlock rows reference them.
var achievementDefs = []AchievementDef{
	{"first-book", "First Chapter", "Complete your first book",
		func(s *UserStats) bool { return s.BooksCompleted >= 1 }},
	{"bookworm", "Bookworm", "Complete 10 books",
		func(s *UserStats) bool { return s.BooksCompleted >= 10 }},
	{"scholar", "Scholar", "Complete 25 books",
		func(s *UserStats) bool { return s.BooksCompleted >= 25 }},
	{"explorer", "Explorer", "Start reading 5 different books",
		func(s *UserStats) bool { return s.BooksStarted >= 5 }},
	{"week-streak", "Consistent Reader", "Read 7 days in a row",
		func(s *UserStats) bool { return s.LongestStreak >= 7 }},
	{"month-streak", "Reading Habit", "Read 30 days in a row",
		func(s *UserStats) bool { return s.LongestStreak >= 30 }},
}

type EarnedAchievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// EvaluateAchievements recomputes which predicates the user satisfies,
// persists first-satisfaction times and returns the unlocked set.
// Repeated calls never change EarnedAt or produce duplicates. If stats
// cannot be computed it returns an empty list rather than failing.
func EvaluateAchievements(db *gorm.DB, userID uuid.UUID, now time.Time) []EarnedAchievement {
	earned := []EarnedAchievement{}

	stats, err := ComputeUserStats(db, userID)
	if err != nil {
		return earned
	}

	var existing []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return earned
	}
	earnedAt := make(map[string]time.Time, len(existing))
	for _, a := range existing {
		earnedAt[a.AchievementID] = a.EarnedAt
	}

	for _, def := range achievementDefs {
		at, already := earnedAt[def.ID]
		if !already {
			if !def.unlocked(stats) {
				continue
			}
			at = now
			record := models.UserAchievement{UserID: userID, AchievementID: def.ID, EarnedAt: at}
			if err := db.Create(&record).Error; err != nil {
				continue
			}
		}
		earned = append(earned, EarnedAchievement{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			EarnedAt:    at,
		})
	}
	return earned
}

type TopReaderEntry struct {
	UserID         uuid.UUID `json:"userId"`
	Name           string    `json:"name"`
	BooksCompleted int64     `json:"booksCompleted"`
}

// TopReaders ranks users by completed-book count. Ties break by user id
// ascending so the ordering is deterministic.
func TopReaders(db *gorm.DB) ([]TopReaderEntry, error) {
	entries := []TopReaderEntry{}
	err := db.Table("reading_histories").
		Select("reading_histories.user_id, users.name, COUNT(*) AS books_completed").
		Joins("JOIN users ON users.id = reading_histories.user_id").
		Where("reading_histories.completed_at IS NOT NULL").
		Group("reading_histories.user_id, users.name").
		Order("books_completed DESC, reading_histories.user_id ASC").
		Limit(LeaderboardSize).
		Scan(&entries).Error
	return entries, err
}

type StreakLeaderEntry struct {
	UserID        uuid.UUID `json:"userId"`
	Name          string    `json:"name"`
	LongestStreak int       `json:"longestStreak"`
	CurrentStreak int       `json:"currentStreak"`
}

func StreakLeaders(db *gorm.DB) ([]StreakLeaderEntry, error) {
	entries := []StreakLeaderEntry{}
	err := db.Table("reading_streaks").
		Select("reading_streaks.user_id, users.name, reading_streaks.longest_streak, reading_streaks.current_streak").
		Joins("JOIN users ON users.id = reading_streaks.user_id").
		Order("reading_streaks.longest_streak DESC, reading_streaks.current_streak DESC, reading_streaks.user_id ASC").
		Limit(LeaderboardSize).
		Scan(&entries).Error
	return entries, err
}

type TopReviewerEntry struct {
	UserID  uuid.UUID `json:"userId"`
	Name    string    `json:"name"`
	Reviews int       `json:"reviews"`
}

// TopReviewers reads the externally maintained review counter; users
// without one simply rank at 0.
func TopReviewers(db *gorm.DB) ([]TopReviewerEntry, error) {
	entries := []TopReviewerEntry{}
	err := db.Table("users").
		Select("users.id AS user_id, users.name, COALESCE(users.review_count, 0) AS reviews").
		Order("reviews DESC, users.id ASC").
		Limit(LeaderboardSize).
		Scan(&entries).Error
	return entries, err
}
