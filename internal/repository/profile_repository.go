package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// ProfileRepository persists profiles, their projects and their skill
// associations. Use Transaction to run several calls atomically.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

// Transaction runs fn against a repository bound to a single transaction.
// Any error returned by fn rolls the whole transaction back.
func (r *ProfileRepository) Transaction(ctx context.Context, fn func(repo *ProfileRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// CreateProfile inserts the profile row, its projects in slice order and
// its skill links.
func (r *ProfileRepository) CreateProfile(ctx context.Context, p *models.Profile, skillIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(p).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := r.ReplaceProjects(ctx, p.ID, p.Projects); err != nil {
		return err
	}
	return r.ReplaceSkills(ctx, p.ID, skillIDs)
}

// FindByID loads a profile with skills sorted by name and projects in
// position order.
func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).Scopes(withAssociations).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// UpdateFields overwrites the given columns and bumps updated_at.
func (r *ProfileRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceProjects deletes every project owned by the profile and inserts
// projects in order. The slice elements get their ProfileID, Position and
// ID filled in.
func (r *ProfileRepository) ReplaceProjects(ctx context.Context, profileID uuid.UUID, projects []models.Project) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("profile_id = ?", profileID).Delete(&models.Project{}).Error; err != nil {
		return fmt.Errorf("failed to delete projects: %w", err)
	}
	if len(projects) == 0 {
		return nil
	}

	for i := range projects {
		projects[i].ID = uuid.Nil
		projects[i].ProfileID = profileID
		projects[i].Position = i
	}
	if err := db.Create(&projects).Error; err != nil {
		return fmt.Errorf("failed to create projects: %w", err)
	}
	return nil
}

// ReplaceSkills swaps the profile's skill links for skillIDs.
func (r *ProfileRepository) ReplaceSkills(ctx context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("profile_id = ?", profileID).Delete(&models.ProfileSkill{}).Error; err != nil {
		return fmt.Errorf("failed to delete skill links: %w", err)
	}
	if len(skillIDs) == 0 {
		return nil
	}

	links := make([]models.ProfileSkill, len(skillIDs))
	for i, id := range skillIDs {
		links[i] = models.ProfileSkill{ProfileID: profileID, SkillID: id}
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to create skill links: %w", err)
	}
	return nil
}

// GetOrCreateSkill returns the skill called name, inserting it first if it
// does not exist. The insert runs under a savepoint so that losing a race
// on the unique name only rolls back the insert; the winner's row is then
// re-read.
func (r *ProfileRepository) GetOrCreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	db := r.db.WithContext(ctx)

	if skill, err := r.findSkill(db, name); err == nil || !errors.Is(err, ErrNotFound) {
		return skill, err
	}

	skill := models.Skill{Name: name}
	err := db.Transaction(func(sp *gorm.DB) error {
		return sp.Create(&skill).Error
	})
	if err == nil {
		return &skill, nil
	}
	if !IsUniqueViolation(err) {
		return nil, fmt.Errorf("failed to create skill %q: %w", name, err)
	}

	existing, err := r.findSkill(db, name)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read skill %q after conflict: %w", name, err)
	}
	return existing, nil
}

// GetOrCreateSkills resolves every name and returns the skills in the same
// order.
func (r *ProfileRepository) GetOrCreateSkills(ctx context.Context, names []string) ([]models.Skill, error) {
	out := make([]models.Skill, 0, len(names))
	for _, name := range names {
		skill, err := r.GetOrCreateSkill(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *skill)
	}
	return out, nil
}

func (r *ProfileRepository) findSkill(db *gorm.DB, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := db.Where("name = ?", name).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up skill %q: %w", name, err)
	}
	return &skill, nil
}

// List returns one page of profiles ordered by creation time, plus the total
// number of profiles.
func (r *ProfileRepository) List(ctx context.Context, offset, limit int) ([]models.Profile, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	var profiles []models.Profile
	err := db.Scopes(withAssociations, inListOrder).
		Offset(offset).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchBySkillTerms returns every profile linked to at least one skill
// whose name contains any of terms, case-insensitively.
func (r *ProfileRepository) SearchBySkillTerms(ctx context.Context, terms []string) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if len(terms) == 0 {
		return profiles, nil
	}
	db := r.db.WithContext(ctx)

	matching := db.Model(&models.ProfileSkill{}).
		Select("profile_skills.profile_id").
		Joins("JOIN skills ON skills.id = profile_skills.skill_id")
	for i, term := range terms {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		if i == 0 {
			matching = matching.Where(`LOWER(skills.name) LIKE ? ESCAPE '\'`, pattern)
		} else {
			matching = matching.Or(`LOWER(skills.name) LIKE ? ESCAPE '\'`, pattern)
		}
	}

	err := db.Scopes(withAssociations, inListOrder).
		Where("id IN (?)", matching).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	return profiles, nil
}

// IsUniqueViolation reports whether err comes from a unique constraint.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("skills.name ASC")
		}).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.position ASC")
		})
}

func inListOrder(db *gorm.DB) *gorm.DB {
	return db.Order("profiles.created_at ASC").Order("profiles.id ASC")
}
