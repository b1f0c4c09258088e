package models

import (
	"time"

	"github.com/google/uuid"
)

// Server-side session referenced by a cookie-delivered token. Expiry is
// sliding: every authenticated request pushes ExpiresAt forward.
type Session struct {
	ID         string    `gorm:"size:64;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Role       UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	LastSeenAt time.Time `gorm:"index" json:"lastSeenAt"`
	ExpiresAt  time.Time `gorm:"index" json:"expiresAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
