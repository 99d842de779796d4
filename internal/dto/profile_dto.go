package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/services"
	"github.com/google/uuid"
)

type ProjectRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TechStack   *string `json:"tech_stack"`
}

type CreateProfileRequest struct {
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Education *string          `json:"education"`
	Work      *string          `json:"work"`
	Links     *string          `json:"links"`
	Skills    []string         `json:"skills"`
	Projects  []ProjectRequest `json:"projects"`
}

func (r *CreateProfileRequest) ToInput() services.CreateProfileInput {
	return services.CreateProfileInput{
		Name:      r.Name,
		Email:     r.Email,
		Education: r.Education,
		Work:      r.Work,
		Links:     r.Links,
		Skills:    r.Skills,
		Projects:  toProjectInputs(r.Projects),
	}
}

// UpdateProfileRequest has no email field; an email sent by the client is
// dropped during decoding.
type UpdateProfileRequest struct {
	Name      *string          `json:"name"`
	Education *string          `json:"education"`
	Work      *string          `json:"work"`
	Links     *string          `json:"links"`
	Skills    []string         `json:"skills"`
	Projects  []ProjectRequest `json:"projects"`
}

func (r *UpdateProfileRequest) ToInput() services.UpdateProfileInput {
	return services.UpdateProfileInput{
		Name:      r.Name,
		Education: r.Education,
		Work:      r.Work,
		Links:     r.Links,
		Skills:    r.Skills,
		Projects:  toProjectInputs(r.Projects),
	}
}

// toProjectInputs keeps nil and empty apart: nil means "not sent".
func toProjectInputs(in []ProjectRequest) []services.ProjectInput {
	if in == nil {
		return nil
	}
	out := make([]services.ProjectInput, len(in))
	for i, p := range in {
		out[i] = services.ProjectInput{Title: p.Title, Description: p.Description, TechStack: p.TechStack}
	}
	return out
}

type ProjectResponse struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TechStack   *string `json:"tech_stack"`
}

type ProfileResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Education *string           `json:"education"`
	Work      *string           `json:"work"`
	Links     *string           `json:"links"`
	Skills    []string          `json:"skills"`
	Projects  []ProjectResponse `json:"projects"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	projects := make([]ProjectResponse, len(p.Projects))
	for i, proj := range p.Projects {
		projects[i] = ProjectResponse{Title: proj.Title, Description: proj.Description, TechStack: proj.TechStack}
	}
	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Education: p.Education,
		Work:      p.Work,
		Links:     p.Links,
		Skills:    p.SkillNames(),
		Projects:  projects,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type UpdateProfileResponse struct {
	Message  string    `json:"message"`
	ID       uuid.UUID `json:"id"`
	Skills   []string  `json:"skills"`
	Projects []string  `json:"projects"`
}

func NewUpdateProfileResponse(p *models.Profile) UpdateProfileResponse {
	return UpdateProfileResponse{
		Message:  "Profile updated successfully",
		ID:       p.ID,
		Skills:   p.SkillNames(),
		Projects: p.ProjectTitles(),
	}
}

type ProfileEditResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Education *string           `json:"education"`
	Work      *string           `json:"work"`
	Links     *string           `json:"links"`
	Skills    []string          `json:"skills"`
	Projects  []ProjectResponse `json:"projects"`
}

func NewProfileEditResponse(v *services.ProfileEditView) ProfileEditResponse {
	projects := make([]ProjectResponse, len(v.Projects))
	for i, proj := range v.Projects {
		projects[i] = ProjectResponse{Title: proj.Title, Description: proj.Description, TechStack: proj.TechStack}
	}
	return ProfileEditResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Education: v.Education,
		Work:      v.Work,
		Links:     v.Links,
		Skills:    v.Skills,
		Projects:  projects,
	}
}

type ProfileSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Skills   []string  `json:"skills"`
	Projects []string  `json:"projects"`
}

type SearchResult struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Skills []string  `json:"skills"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type ProfileListResponse struct {
	Data ProfileListData `json:"data"`
}

type ProfileListData struct {
	Profiles   []ProfileSummary `json:"profiles"`
	Pagination Pagination       `json:"pagination"`
}

func NewProfileListResponse(page *services.ProfilePage) ProfileListResponse {
	summaries := make([]ProfileSummary, len(page.Profiles))
	for i := range page.Profiles {
		p := &page.Profiles[i]
		summaries[i] = ProfileSummary{ID: p.ID, Name: p.Name, Skills: p.SkillNames(), Projects: p.ProjectTitles()}
	}
	return ProfileListResponse{Data: ProfileListData{
		Profiles: summaries,
		Pagination: Pagination{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}}
}

type SearchResponse struct {
	Data SearchData `json:"data"`
}

type SearchData struct {
	Profiles []SearchResult `json:"profiles"`
}

func NewSearchResponse(profiles []models.Profile) SearchResponse {
	results := make([]SearchResult, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		results[i] = SearchResult{ID: p.ID, Name: p.Name, Email: p.Email, Skills: p.SkillNames()}
	}
	return SearchResponse{Data: SearchData{Profiles: results}}
}
