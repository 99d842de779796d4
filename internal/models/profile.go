package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the central entity. Email is unique and never changes after
// creation; skills and projects are recomputed wholesale on update.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_profiles_email" json:"email"`
	Education *string   `gorm:"type:text" json:"education"`
	Work      *string   `gorm:"type:text" json:"work"`
	Links     *string   `gorm:"type:text" json:"links"`
	Skills    []Skill   `gorm:"many2many:profile_skills" json:"skills"`
	Projects  []Project `gorm:"constraint:OnDelete:CASCADE" json:"projects"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SkillNames returns the names of the loaded skills in their loaded order.
func (p *Profile) SkillNames() []string {
	names := make([]string, len(p.Skills))
	for i, s := range p.Skills {
		names[i] = s.Name
	}
	return names
}

// ProjectTitles returns the titles of the loaded projects in their loaded order.
func (p *Profile) ProjectTitles() []string {
	titles := make([]string, len(p.Projects))
	for i, pr := range p.Projects {
		titles[i] = pr.Title
	}
	return titles
}
