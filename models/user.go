package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"   // back-office staff
	RoleCitizen UserRole = "citizen" // regular library member
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:150;not null" json:"name"`
	Email    string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Phone    string    `gorm:"size:20" json:"phone,omitempty"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Role     UserRole  `gorm:"type:varchar(20);not null;default:'citizen'" json:"role"`
	Blocked  bool      `gorm:"default:false" json:"blocked"`

	// ReviewCount is maintained by the review subsystem; we only read it
	// for the most-reviewers leaderboard.
	ReviewCount int `gorm:"default:0" json:"reviewCount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
