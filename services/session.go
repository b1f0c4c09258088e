package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/models"
)

const (
	SessionCookieName = "elibrary_session"

	SessionTTL = 30 * 24 * time.Hour

	// A session counts as "active" if it was used within this window.
	ActiveSessionWindow = 30 * time.Minute
)

var ErrSessionExpired = errors.New("session expired")

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// CreateSession issues a fresh server-side session for the user.
func CreateSession(db *gorm.DB, user *models.User) (*models.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sess := &models.Session{
		ID:         token,
		UserID:     user.ID,
		Role:       user.Role,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(SessionTTL),
	}
	if err := db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession looks up a live session by token. Expired sessions are
// removed on sight and reported as expired.
func GetSession(db *gorm.DB, token string) (*models.Session, error) {
	var sess models.Session
	if err := db.First(&sess, "id = ?", token).Error; err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		db.Delete(&models.Session{}, "id = ?", sess.ID)
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// TouchSession slides the expiry window forward.
func TouchSession(db *gorm.DB, sess *models.Session) error {
	now := time.Now()
	return db.Model(&models.Session{}).Where("id = ?", sess.ID).
		Updates(map[string]interface{}{
			"last_seen_at": now,
			"expires_at":   now.Add(SessionTTL),
		}).Error
}

func DeleteSession(db *gorm.DB, token string) error {
	return db.Delete(&models.Session{}, "id = ?", token).Error
}

// CountActiveSessions is the number broadcast over the websocket channel
// and shown on the admin dashboard.
func CountActiveSessions(db *gorm.DB) int64 {
	now := time.Now()
	var count int64
	db.Model(&models.Session{}).
		Where("last_seen_at > ? AND expires_at > ?", now.Add(-ActiveSessionWindow), now).
		Count(&count)
	return count
}

type ActiveSessionInfo struct {
	UserID     uuid.UUID `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// ActiveSessions lists currently active sessions with user identity for
// the admin back office.
func ActiveSessions(db *gorm.DB) ([]ActiveSessionInfo, error) {
	now := time.Now()
	sessions := []ActiveSessionInfo{}
	err := db.Table("sessions").
		Select("sessions.user_id, users.name, users.email, sessions.created_at, sessions.last_seen_at").
		Joins("JOIN users ON users.id = sessions.user_id").
		Where("sessions.last_seen_at > ? AND sessions.expires_at > ?", now.Add(-ActiveSessionWindow), now).
		Order("sessions.last_seen_at DESC").
		Scan(&sessions).Error
	return sessions, err
}

// CleanupExpiredSessions removes dead session rows; wired to the periodic
// cleanup job in utils.
func CleanupExpiredSessions(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
