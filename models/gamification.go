package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Per-user streak state. LastActivityDate is a calendar day in server
// local time; the update rules live in services.UpdateStreak.
type ReadingStreak struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	CurrentStreak    int       `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int       `gorm:"default:0" json:"longestStreak"`
	LastActivityDate time.Time `json:"lastActivityDate"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Only the target is stored. Books read this year is always recomputed
// from reading_histories so the two can never drift apart.
type ReadingGoal struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	TargetBooks int       `gorm:"default:0" json:"targetBooks"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Unlock record for a fixed achievement definition. EarnedAt is the
// first-satisfaction time and is never rewritten.
type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID string    `gorm:"size:50;not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`
}

func (a *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
