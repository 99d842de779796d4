package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/events"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/repository"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/skills"
	"github.com/google/uuid"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrEmailTaken      = errors.New("profile with this email already exists")
	ErrProfileNotFound = errors.New("profile not found")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ProjectInput struct {
	Title       string
	Description *string
	TechStack   *string
}

type CreateProfileInput struct {
	Name      string
	Email     string
	Education *string
	Work      *string
	Links     *string
	Skills    []string
	Projects  []ProjectInput
}

// UpdateProfileInput describes a partial update. Nil fields are left
// untouched. A non-nil empty Projects slice removes every project.
type UpdateProfileInput struct {
	Name      *string
	Education *string
	Work      *string
	Links     *string
	Skills    []string
	Projects  []ProjectInput
}

// ProfileEditView is the flattened profile used to prefill an edit form.
type ProfileEditView struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Education *string
	Work      *string
	Links     *string
	Skills    []string
	Projects  []ProjectInput
}

type ProfilePage struct {
	Profiles   []models.Profile
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

type ProfileService struct {
	repo      *repository.ProfileRepository
	publisher events.Publisher
}

func NewProfileService(repo *repository.ProfileRepository, publisher events.Publisher) *ProfileService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ProfileService{repo: repo, publisher: publisher}
}

func (s *ProfileService) Create(ctx context.Context, in CreateProfileInput) (*models.Profile, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validateProjects(in.Projects); err != nil {
		return nil, err
	}

	projects := toProjectModels(in.Projects)
	skillNames := resolveSkillNames(in.Skills, projects)

	profile := &models.Profile{
		Name:      in.Name,
		Email:     email,
		Education: in.Education,
		Work:      in.Work,
		Links:     in.Links,
		Projects:  projects,
	}

	var created *models.Profile
	err := s.repo.Transaction(ctx, func(repo *repository.ProfileRepository) error {
		found, err := repo.GetOrCreateSkills(ctx, skillNames)
		if err != nil {
			return err
		}
		if err := repo.CreateProfile(ctx, profile, skillIDs(found)); err != nil {
			return err
		}
		created, err = repo.FindByID(ctx, profile.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	slog.Info("profile created", "profile_id", created.ID.String(), "skills", len(created.Skills), "projects", len(created.Projects))
	s.publish(ctx, events.ProfileCreated, created)
	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*models.Profile, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be blank", ErrValidation)
	}
	if err := validateProjects(in.Projects); err != nil {
		return nil, err
	}

	var updated *models.Profile
	err := s.repo.Transaction(ctx, func(repo *repository.ProfileRepository) error {
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := repo.UpdateFields(ctx, id, scalarUpdates(in)); err != nil {
			return err
		}

		projects := current.Projects
		if in.Projects != nil {
			projects = toProjectModels(in.Projects)
			if err := repo.ReplaceProjects(ctx, id, projects); err != nil {
				return err
			}
		}

		if in.Skills != nil || in.Projects != nil {
			found, err := repo.GetOrCreateSkills(ctx, resolveSkillNames(in.Skills, projects))
			if err != nil {
				return err
			}
			if err := repo.ReplaceSkills(ctx, id, skillIDs(found)); err != nil {
				return err
			}
		}

		updated, err = repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	slog.Info("profile updated", "profile_id", id.String(), "skills", len(updated.Skills), "projects", len(updated.Projects))
	s.publish(ctx, events.ProfileUpdated, updated)
	return updated, nil
}

func (s *ProfileService) GetForEdit(ctx context.Context, id uuid.UUID) (*ProfileEditView, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	view := &ProfileEditView{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Education: p.Education,
		Work:      p.Work,
		Links:     p.Links,
		Skills:    p.SkillNames(),
		Projects:  make([]ProjectInput, len(p.Projects)),
	}
	for i, proj := range p.Projects {
		view.Projects[i] = ProjectInput{Title: proj.Title, Description: proj.Description, TechStack: proj.TechStack}
	}
	return view, nil
}

// List returns one page of profiles. page is clamped to at least 1 and
// pageSize to [1, MaxPageSize]; a non-positive pageSize means the default.
// Pages past the end are empty.
func (s *ProfileService) List(ctx context.Context, page, pageSize int) (*ProfilePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	// Keep (page-1)*pageSize inside int.
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}

	profiles, total, err := s.repo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &ProfilePage{
		Profiles:   profiles,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// SearchBySkill matches the query's canonical form and all of its aliases
// against stored skill names by substring.
func (s *ProfileService) SearchBySkill(ctx context.Context, query string) ([]models.Profile, error) {
	terms := skills.SearchTerms(query)
	if len(terms) == 0 {
		return []models.Profile{}, nil
	}
	return s.repo.SearchBySkillTerms(ctx, terms)
}

func (s *ProfileService) publish(ctx context.Context, eventType string, p *models.Profile) {
	event := events.ProfileEvent{
		Type:         eventType,
		ProfileID:    p.ID,
		Email:        p.Email,
		Skills:       p.SkillNames(),
		ProjectCount: len(p.Projects),
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish profile event", "action", eventType, "profile_id", p.ID.String(), "error", err.Error())
	}
}

func validateProjects(projects []ProjectInput) error {
	for i, proj := range projects {
		if strings.TrimSpace(proj.Title) == "" {
			return fmt.Errorf("%w: projects[%d].title is required", ErrValidation, i)
		}
	}
	return nil
}

func toProjectModels(in []ProjectInput) []models.Project {
	out := make([]models.Project, len(in))
	for i, proj := range in {
		out[i] = models.Project{
			Title:       proj.Title,
			Description: proj.Description,
			TechStack:   proj.TechStack,
		}
	}
	return out
}

// resolveSkillNames is the normalized explicit skills plus everything the
// extractor finds in the projects' tech stacks and descriptions.
func resolveSkillNames(explicit []string, projects []models.Project) []string {
	set := skills.Set{}
	for _, name := range skills.NormalizeAll(explicit) {
		set.Add(name)
	}
	for _, proj := range projects {
		set.Union(skills.Infer(proj.TechStack, proj.Description))
	}
	return set.Sorted()
}

func skillIDs(found []models.Skill) []uuid.UUID {
	ids := make([]uuid.UUID, len(found))
	for i, skill := range found {
		ids[i] = skill.ID
	}
	return ids
}

func scalarUpdates(in UpdateProfileInput) map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Education != nil {
		fields["education"] = *in.Education
	}
	if in.Work != nil {
		fields["work"] = *in.Work
	}
	if in.Links != nil {
		fields["links"] = *in.Links
	}
	return fields
}
