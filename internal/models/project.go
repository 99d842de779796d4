package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project belongs to exactly one profile. Position keeps the order the
// projects were submitted in.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ProfileID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position    int       `gorm:"not null" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	TechStack   *string   `gorm:"type:text" json:"tech_stack"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
