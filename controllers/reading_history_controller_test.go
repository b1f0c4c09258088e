package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amravati-mc/e-library-backend/models"
)

func TestSaveProgressUpsertsSingleRow(t *testing.T) {
	r, db := newTestEnv(t)

	cookies := registerUser(t, r, "Reader", "reader@example.com")
	book := createBook(t, db, "Concepts of Physics")

	w := doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
		"bookId": book.ID.String(), "progress": 45, "lastReadPage": 120,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "GET", "/api/reading-history", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	history := decodeBody(t, w)["history"].([]interface{})
	require.Len(t, history, 1)
	row := history[0].(map[string]interface{})
	assert.Equal(t, float64(45), row["progress"])
	assert.Equal(t, float64(120), row["lastReadPage"])
	assert.Nil(t, row["completedAt"])

	// Second update for the same book mutates the row, never adds one.
	w = doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
		"bookId": book.ID.String(), "progress": 60,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.ReadingHistory{}).Where("book_id = ?", book.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var stored models.ReadingHistory
	require.NoError(t, db.First(&stored, "book_id = ?", book.ID).Error)
	assert.Equal(t, 60, stored.Progress)
}

func TestCompletionIsOneWayAndIdempotent(t *testing.T) {
	r, db := newTestEnv(t)

	cookies := registerUser(t, r, "Finisher", "finisher@example.com")
	book := createBook(t, db, "Indian Polity")

	w := doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
		"bookId": book.ID.String(), "progress": 100,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var first models.ReadingHistory
	require.NoError(t, db.First(&first, "book_id = ?", book.ID).Error)
	require.NotNil(t, first.CompletedAt)
	completedAt := *first.CompletedAt

	// Completing again must not move completedAt.
	w = doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
		"bookId": book.ID.String(), "progress": 100,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var second models.ReadingHistory
	require.NoError(t, db.First(&second, "book_id = ?", book.ID).Error)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, completedAt.Equal(*second.CompletedAt))

	// And the yearly counter reflects exactly one completion.
	w = doJSON(t, r, "GET", "/api/user/reading-goal", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["booksRead"])
}

func TestBookmarkToggleIsItsOwnInverse(t *testing.T) {
	r, db := newTestEnv(t)

	cookies := registerUser(t, r, "Bookmarker", "bookmark@example.com")
	book := createBook(t, db, "Godan")

	// First toggle creates a zero-progress row.
	w := doJSON(t, r, "POST", "/api/reading-history/bookmark/"+book.ID.String(), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var row models.ReadingHistory
	require.NoError(t, db.First(&row, "book_id = ?", book.ID).Error)
	assert.True(t, row.IsBookmarked)
	assert.Equal(t, 0, row.Progress)

	w = doJSON(t, r, "POST", "/api/reading-history/bookmark/"+book.ID.String(), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&row, "book_id = ?", book.ID).Error)
	assert.False(t, row.IsBookmarked)
}

func TestHistoryOrderedByRecency(t *testing.T) {
	r, db := newTestEnv(t)

	cookies := registerUser(t, r, "Orderly", "order@example.com")
	first := createBook(t, db, "Book One")
	second := createBook(t, db, "Book Two")

	for _, book := range []string{first.ID.String(), second.ID.String()} {
		w := doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
			"bookId": book, "progress": 10,
		}, cookies)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Age the first book's access so the ordering is unambiguous.
	require.NoError(t, db.Model(&models.ReadingHistory{}).
		Where("book_id = ?", first.ID).
		Update("last_accessed_at", time.Now().Add(-time.Hour)).Error)

	w := doJSON(t, r, "GET", "/api/reading-history", nil, cookies)
	history := decodeBody(t, w)["history"].([]interface{})
	require.Len(t, history, 2)
	assert.Equal(t, second.ID.String(), history[0].(map[string]interface{})["bookId"])

	// Re-reading the older book moves it back to the front: recency, not
	// insertion order.
	w = doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
		"bookId": first.ID.String(), "progress": 20,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/reading-history", nil, cookies)
	history = decodeBody(t, w)["history"].([]interface{})
	assert.Equal(t, first.ID.String(), history[0].(map[string]interface{})["bookId"])
}

func TestRecentReadsHonorsLimit(t *testing.T) {
	r, db := newTestEnv(t)

	cookies := registerUser(t, r, "Recent", "recent@example.com")
	for _, title := range []string{"A", "B", "C"} {
		book := createBook(t, db, title)
		w := doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
			"bookId": book.ID.String(), "progress": 5,
		}, cookies)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, "GET", "/api/reading-history/recent?limit=2", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["recent"], 2)
}

func TestProgressValidation(t *testing.T) {
	r, db := newTestEnv(t)

	cookies := registerUser(t, r, "Validator", "valid@example.com")
	book := createBook(t, db, "Real Book")

	for _, progress := range []int{-1, 101} {
		w := doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
			"bookId": book.ID.String(), "progress": progress,
		}, cookies)
		assert.Equal(t, http.StatusBadRequest, w.Code, "progress %d", progress)
	}

	// Unknown book is a validation failure, not a 500.
	w := doJSON(t, r, "POST", "/api/reading-history", map[string]interface{}{
		"bookId": "7b1f8b2e-0000-0000-0000-000000000000", "progress": 50,
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryRequiresSession(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doJSON(t, r, "GET", "/api/reading-history", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
