package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
)

func TestLeaderboardsEmptyDatabase(t *testing.T) {
	r, _ := newTestEnv(t)

	for _, path := range []string{
		"/api/leaderboard/top-readers",
		"/api/leaderboard/streak-leaders",
	} {
		w := doJSON(t, r, "GET", path, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Len(t, decodeBody(t, w)["data"], 0, path)
	}
}

func TestTopReadersRanksByCompletions(t *testing.T) {
	r, db := newTestEnv(t)

	avid := registerUser(t, r, "Avid", "avid@example.com")
	casual := registerUser(t, r, "Casual", "casual@example.com")

	books := make([]models.Book, 3)
	for i, title := range []string{"One", "Two", "Three"} {
		books[i] = createBook(t, db, title)
	}

	complete := func(cookies []*http.Cookie, book models.Book) {
		w := doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
			"bookId": book.ID.String(), "progress": 100,
		}, cookies)
		require.Equal(t, http.StatusOK, w.Code)
	}
	complete(avid, books[0])
	complete(avid, books[1])
	complete(casual, books[2])

	w := doJSON(t, r, "GET", "/api/leaderboard/top-readers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 2)

	top := data[0].(map[string]interface{})
	assert.Equal(t, "Avid", top["name"])
	assert.Equal(t, float64(2), top["booksCompleted"])
	assert.Equal(t, "Casual", data[1].(map[string]interface{})["name"])
}

func TestTopReadersTieBreaksByUserID(t *testing.T) {
	r, db := newTestEnv(t)

	// Fixed IDs so the tie-break direction is observable.
	low := seedUserWithID(t, db, "00000000-0000-4000-8000-000000000001", "Low", "low@example.com")
	high := seedUserWithID(t, db, "ffffffff-ffff-4fff-bfff-ffffffffffff", "High", "high@example.com")
	book := createBook(t, db, "Shared Favorite")

	for _, userID := range []uuid.UUID{low, high} {
		completed := time.Now()
		history := models.ReadingHistory{
			UserID:         userID,
			BookID:         book.ID,
			Progress:       100,
			LastAccessedAt: completed,
			CompletedAt:    &completed,
		}
		require.NoError(t, db.Create(&history).Error)
	}

	w := doJSON(t, r, "GET", "/api/leaderboard/top-readers", nil, nil)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Low", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "High", data[1].(map[string]interface{})["name"])
}

func TestStreakLeadersOrdering(t *testing.T) {
	r, db := newTestEnv(t)

	veteran := seedUserWithID(t, db, "00000000-0000-4000-8000-00000000000a", "Veteran", "veteran@example.com")
	newcomer := seedUserWithID(t, db, "00000000-0000-4000-8000-00000000000b", "Newcomer", "newcomer@example.com")

	require.NoError(t, db.Create(&models.ReadingStreak{
		UserID: veteran, CurrentStreak: 2, LongestStreak: 15, LastActivityDate: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.ReadingStreak{
		UserID: newcomer, CurrentStreak: 8, LongestStreak: 8, LastActivityDate: time.Now(),
	}).Error)

	w := doJSON(t, r, "GET", "/api/leaderboard/streak-leaders", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 2)

	// Longest streak wins even when the current streak is lower.
	assert.Equal(t, "Veteran", data[0].(map[string]interface{})["name"])
	assert.Equal(t, float64(15), data[0].(map[string]interface{})["longestStreak"])
}

func TestMostReviewersOrdering(t *testing.T) {
	r, db := newTestEnv(t)

	registerUser(t, r, "Quiet", "quiet@example.com")
	registerUser(t, r, "Vocal", "vocal@example.com")
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "vocal@example.com").
		Update("review_count", 7).Error)

	w := doJSON(t, r, "GET", "/api/leaderboard/most-reviewers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Vocal", data[0].(map[string]interface{})["name"])
	assert.Equal(t, float64(7), data[0].(map[string]interface{})["reviews"])
	assert.Equal(t, float64(0), data[1].(map[string]interface{})["reviews"])
}

func seedUserWithID(t *testing.T, db *gorm.DB, id, name, email string) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:       uuid.MustParse(id),
		Name:     name,
		Email:    email,
		Password: "unused",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}
