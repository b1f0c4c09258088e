package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amravati-mc/e-library-backend/config"
	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	user := models.User{Name: name, Email: name + "@example.com", Password: "unused"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedCompletion(t *testing.T, db *gorm.DB, userID uuid.UUID, completedAt time.Time) {
	t.Helper()
	book := models.Book{Title: uuid.NewString(), Author: "Author"}
	require.NoError(t, db.Create(&book).Error)
	history := models.ReadingHistory{
		UserID:         userID,
		BookID:         book.ID,
		Progress:       100,
		LastAccessedAt: completedAt,
		CompletedAt:    &completedAt,
	}
	require.NoError(t, db.Create(&history).Error)
}

func TestUpdateStreakDayRules(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "streaker")

	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 14, 30, 0, 0, time.Local)
	}

	// First activity starts the streak at 1.
	streak, err := services.UpdateStreak(db, userID, day(1))
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.LongestStreak)

	// Same calendar day, later hour: unchanged.
	streak, err = services.UpdateStreak(db, userID, day(1).Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)

	// Next day extends.
	streak, err = services.UpdateStreak(db, userID, day(2))
	require.NoError(t, err)
	assert.Equal(t, 2, streak.CurrentStreak)
	assert.Equal(t, 2, streak.LongestStreak)

	streak, err = services.UpdateStreak(db, userID, day(3))
	require.NoError(t, err)
	assert.Equal(t, 3, streak.CurrentStreak)

	// A gap resets current but keeps longest.
	streak, err = services.UpdateStreak(db, userID, day(10))
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)

	// Longest never decreases as a new run grows.
	streak, err = services.UpdateStreak(db, userID, day(11))
	require.NoError(t, err)
	assert.Equal(t, 2, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
}

func TestUpdateStreakEarlyMorningAfterLateNight(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "nightowl")

	lateNight := time.Date(2026, time.March, 1, 23, 55, 0, 0, time.Local)
	earlyMorning := time.Date(2026, time.March, 2, 0, 10, 0, 0, time.Local)

	_, err := services.UpdateStreak(db, userID, lateNight)
	require.NoError(t, err)

	// Fifteen minutes later is still the next calendar day.
	streak, err := services.UpdateStreak(db, userID, earlyMorning)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.CurrentStreak)
}

func TestGetStreakMissingIsZero(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "nobody")

	streak, err := services.GetStreak(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak.CurrentStreak)
	assert.Equal(t, 0, streak.LongestStreak)
}

func TestBooksReadThisYearBoundary(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "boundary")

	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.Local)
	seedCompletion(t, db, userID, time.Date(2026, time.February, 1, 10, 0, 0, 0, time.Local))
	seedCompletion(t, db, userID, time.Date(2026, time.January, 1, 0, 0, 1, 0, time.Local))
	// Last year's completion must not count.
	seedCompletion(t, db, userID, time.Date(2025, time.December, 31, 23, 59, 0, 0, time.Local))

	count, err := services.BooksReadThisYear(db, userID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestEvaluateAchievementsIdempotent(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "achiever")
	seedCompletion(t, db, userID, time.Now())

	first := services.EvaluateAchievements(db, userID, time.Now())
	require.Len(t, first, 1)
	assert.Equal(t, "first-book", first[0].ID)

	second := services.EvaluateAchievements(db, userID, time.Now().Add(time.Hour))
	require.Len(t, second, 1)
	assert.WithinDuration(t, first[0].EarnedAt, second[0].EarnedAt, time.Second)

	// Exactly one row persisted.
	var count int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEvaluateAchievementsThresholds(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "bookworm")

	for i := 0; i < 10; i++ {
		seedCompletion(t, db, userID, time.Now())
	}

	earned := services.EvaluateAchievements(db, userID, time.Now())
	ids := make([]string, 0, len(earned))
	for _, a := range earned {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "first-book")
	assert.Contains(t, ids, "bookworm")
	assert.Contains(t, ids, "explorer") // 10 distinct books started
	assert.NotContains(t, ids, "scholar")
	assert.NotContains(t, ids, "week-streak")
}

func TestComputeUserStats(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "stats")

	seedCompletion(t, db, userID, time.Now())
	book := models.Book{Title: "In Progress", Author: "Author"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Create(&models.ReadingHistory{
		UserID:         userID,
		BookID:         book.ID,
		Progress:       40,
		IsBookmarked:   true,
		LastAccessedAt: time.Now(),
	}).Error)

	stats, err := services.ComputeUserStats(db, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.BooksCompleted)
	assert.Equal(t, int64(2), stats.BooksStarted)
	assert.Equal(t, int64(1), stats.Bookmarks)
}
