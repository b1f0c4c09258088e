package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Author      string     `gorm:"size:255;not null" json:"author"`
	CategoryID  *uuid.UUID `gorm:"type:uuid" json:"categoryId"` // nullable, cleared when category is deleted
	Description string     `gorm:"type:text" json:"description"`
	CoverURL    string     `gorm:"type:text" json:"coverUrl"`
	PdfURL      string     `gorm:"type:text" json:"pdfUrl"`
	ISBN        string     `gorm:"size:20" json:"isbn,omitempty"`
	Year        int        `json:"year,omitempty"`
	Pages       int        `json:"pages,omitempty"`
	Language    string     `gorm:"size:50" json:"language,omitempty"`

	AISummary          *string    `gorm:"type:text" json:"aiSummary,omitempty"`
	SummaryGeneratedAt *time.Time `json:"summaryGeneratedAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
