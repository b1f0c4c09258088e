package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One row per (user, book). Progress is a percentage; CompletedAt is set
// the first time progress reaches 100 and is never cleared afterwards.
type ReadingHistory struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_book" json:"userId"`
	BookID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_book" json:"bookId"`

	Progress       int        `gorm:"default:0" json:"progress"` // 0-100
	LastReadPage   int        `gorm:"default:0" json:"lastReadPage"`
	IsBookmarked   bool       `gorm:"default:false" json:"isBookmarked"`
	LastAccessedAt time.Time  `gorm:"index" json:"lastAccessedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book"`
}

func (h *ReadingHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
