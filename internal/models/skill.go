package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is shared by every profile that lists it. Name always holds the
// canonical form.
type Skill struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:255;not null;uniqueIndex:idx_skills_name" json:"name"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ProfileSkill is the join row between profiles and skills.
type ProfileSkill struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SkillID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ProfileSkill) TableName() string {
	return "profile_skills"
}
