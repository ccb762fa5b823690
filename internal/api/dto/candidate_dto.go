package dto

import (
	"time"

	"github.com/talentdesk/candidate-tracker/internal/domain"
	"github.com/talentdesk/candidate-tracker/internal/validation"
)

// CandidateRequest payload for create and update.
type CandidateRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Area             string `json:"area"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registrationDate"`
}

// Form converts the payload for the validator.
func (r CandidateRequest) Form() validation.CandidateForm {
	return validation.CandidateForm{
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Area:             r.Area,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
	}
}

// CandidateResponse is the wire shape of a candidate.
type CandidateResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	Area             domain.Area            `json:"area"`
	Status           domain.CandidateStatus `json:"status"`
	RegistrationDate string                 `json:"registrationDate"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// CandidateListMeta describes a projection.
type CandidateListMeta struct {
	Total int               `json:"total"`
	Count int               `json:"count"`
	Query map[string]string `json:"query"`
}

// MetaResponse exposes the enumerations used by forms and filters.
type MetaResponse struct {
	Areas      []string `json:"areas"`
	Statuses   []string `json:"statuses"`
	SortFields []string `json:"sort_fields"`
}

// NewCandidateResponse maps a domain candidate.
func NewCandidateResponse(c *domain.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Area:             c.Area,
		Status:           c.Status,
		RegistrationDate: c.RegistrationDate.Format(domain.DateLayout),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
