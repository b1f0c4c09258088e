package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One row per handled API request; feeds the visit analytics.
type AccessLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"` // nil for anonymous visits
	Method    string     `gorm:"size:10" json:"method"`
	Path      string     `gorm:"size:255" json:"path"`
	Status    int        `json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (l *AccessLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
