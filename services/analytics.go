package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
)

// Read-only rollups for the admin dashboard and the report exports.
// Every function tolerates empty tables and returns zeros/empty series.

type AnalyticsSummary struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalBooks  int64 `json:"totalBooks"`
	TodayVisits int64 `json:"todayVisits"`
	ActiveUsers int64 `json:"activeUsers"`
}

func GetAnalyticsSummary(db *gorm.DB) AnalyticsSummary {
	var s AnalyticsSummary
	db.Model(&models.User{}).Count(&s.TotalUsers)
	db.Model(&models.Book{}).Count(&s.TotalBooks)

	startOfDay := calendarDay(time.Now())
	db.Model(&models.AccessLog{}).Where("created_at >= ?", startOfDay).Count(&s.TodayVisits)

	s.ActiveUsers = CountActiveSessions(db)
	return s
}

type DailyVisitPoint struct {
	Date   string `json:"date"` // "2006-01-02"
	Visits int64  `json:"visits"`
}

// DailyVisits returns one point per day for the last `days` days,
// including empty days, oldest first.
func DailyVisits(db *gorm.DB, days int) []DailyVisitPoint {
	today := calendarDay(time.Now())
	points := make([]DailyVisitPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		from := today.AddDate(0, 0, -i)
		to := from.AddDate(0, 0, 1)
		var count int64
		db.Model(&models.AccessLog{}).
			Where("created_at >= ? AND created_at < ?", from, to).
			Count(&count)
		points = append(points, DailyVisitPoint{Date: from.Format("2006-01-02"), Visits: count})
	}
	return points
}

type CategoryStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// CategoryStats counts books per category, largest first.
func CategoryStats(db *gorm.DB) []CategoryStat {
	stats := []CategoryStat{}
	db.Table("categories").
		Select("categories.name, COUNT(books.id) AS count").
		Joins("LEFT JOIN books ON books.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("count DESC, categories.name ASC").
		Scan(&stats)
	return stats
}

type TopBookStat struct {
	BookID uuid.UUID `json:"bookId"`
	Title  string    `json:"title"`
	Reads  int64     `json:"reads"`
}

// TopBooks ranks books by how many users have a history row for them.
func TopBooks(db *gorm.DB, limit int) []TopBookStat {
	stats := []TopBookStat{}
	db.Table("books").
		Select("books.id AS book_id, books.title, COUNT(reading_histories.id) AS reads").
		Joins("LEFT JOIN reading_histories ON reading_histories.book_id = books.id").
		Group("books.id, books.title").
		Order("reads DESC, books.title ASC").
		Limit(limit).
		Scan(&stats)
	return stats
}

type ActivityPoint struct {
	Label  string `json:"label"`
	Visits int64  `json:"visits"`
}

// VisitSeries buckets access-log counts for the admin user-activity view.
// Buckets are computed in Go so the query stays portable across drivers.
func VisitSeries(db *gorm.DB, period string) []ActivityPoint {
	now := time.Now()
	today := calendarDay(now)

	type bucket struct {
		label    string
		from, to time.Time
	}
	var buckets []bucket

	switch period {
	case "daily":
		for i := 6; i >= 0; i-- {
			from := today.AddDate(0, 0, -i)
			buckets = append(buckets, bucket{from.Format("2006-01-02"), from, from.AddDate(0, 0, 1)})
		}
	case "weekly":
		for i := 7; i >= 0; i-- {
			from := today.AddDate(0, 0, -7*(i+1)+1)
			buckets = append(buckets, bucket{"week of " + from.Format("2006-01-02"), from, from.AddDate(0, 0, 7)})
		}
	case "monthly":
		for i := 11; i >= 0; i-- {
			from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
			buckets = append(buckets, bucket{from.Format("2006-01"), from, from.AddDate(0, 1, 0)})
		}
	case "yearly":
		for i := 4; i >= 0; i-- {
			from := time.Date(now.Year()-i, time.January, 1, 0, 0, 0, 0, now.Location())
			buckets = append(buckets, bucket{from.Format("2006"), from, from.AddDate(1, 0, 0)})
		}
	}

	points := make([]ActivityPoint, 0, len(buckets))
	for _, b := range buckets {
		var count int64
		db.Model(&models.AccessLog{}).
			Where("created_at >= ? AND created_at < ?", b.from, b.to).
			Count(&count)
		points = append(points, ActivityPoint{Label: b.label, Visits: count})
	}
	return points
}

type ActivityLogEntry struct {
	UserName  string    `json:"userName"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecentActivityLogs returns the newest access-log entries with user
// names resolved; anonymous visits show an empty name.
func RecentActivityLogs(db *gorm.DB, limit int) []ActivityLogEntry {
	logs := []ActivityLogEntry{}
	db.Table("access_logs").
		Select("COALESCE(users.name, '') AS user_name, access_logs.method, access_logs.path, access_logs.status, access_logs.created_at").
		Joins("LEFT JOIN users ON users.id = access_logs.user_id").
		Order("access_logs.created_at DESC").
		Limit(limit).
		Scan(&logs)
	return logs
}
