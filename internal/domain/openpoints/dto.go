package openpoints

import (
	"time"

	"github.com/eximdesk/exim-backend-go/internal/pkg/validator"
)

type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	MemberIDs   []string `json:"member_ids,omitempty"`
}

func (r CreateProjectRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "Project name is required"}}
	}
	return nil
}

type CreatePointRequest struct {
	ProjectID      string        `json:"project_id"`
	Description    string        `json:"description"`
	Responsibility string        `json:"responsibility"`
	Status         PointStatus   `json:"status"`
	Priority       PointPriority `json:"priority"`
	TargetDate     *string       `json:"target_date,omitempty"`
	Remarks        *string       `json:"remarks,omitempty"`
}

func (r CreatePointRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{Field: "project_id", Message: "Project is required"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "Description is required"})
	}
	if validator.IsEmpty(r.Responsibility) {
		errs = append(errs, validator.ValidationError{Field: "responsibility", Message: "Responsibility is required"})
	}
	if !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "Status must be Red, Yellow, Orange or Green"})
	}
	if !r.Priority.Valid() {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "Priority must be Emergency, High, Medium or Low"})
	}
	if r.TargetDate != nil {
		if _, ok := validator.IsValidDate(*r.TargetDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "target_date", Message: "Target date must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePointRequest carries only the fields being changed.
type UpdatePointRequest struct {
	Description    *string        `json:"description,omitempty"`
	Responsibility *string        `json:"responsibility,omitempty"`
	Status         *PointStatus   `json:"status,omitempty"`
	Priority       *PointPriority `json:"priority,omitempty"`
	TargetDate     *string        `json:"target_date,omitempty"`
	Remarks        *string        `json:"remarks,omitempty"`
}

func (r UpdatePointRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Status != nil && !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "Status must be Red, Yellow, Orange or Green"})
	}
	if r.Priority != nil && !r.Priority.Valid() {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "Priority must be Emergency, High, Medium or Low"})
	}
	if r.Description != nil && validator.IsEmpty(*r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "Description cannot be empty"})
	}
	if r.TargetDate != nil && *r.TargetDate != "" {
		if _, ok := validator.IsValidDate(*r.TargetDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "target_date", Message: "Target date must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MemberRequest struct {
	UserID string `json:"user_id"`
}

func (r MemberRequest) Validate() error {
	if validator.IsEmpty(r.UserID) {
		return validator.ValidationErrors{{Field: "user_id", Message: "User is required"}}
	}
	return nil
}

type PointResponse struct {
	ID             string        `json:"id"`
	ProjectID      string        `json:"project_id"`
	Description    string        `json:"description"`
	Responsibility string        `json:"responsibility"`
	Status         PointStatus   `json:"status"`
	Priority       PointPriority `json:"priority"`
	TargetDate     *time.Time    `json:"target_date,omitempty"`
	Remarks        *string       `json:"remarks,omitempty"`
	CreatedBy      string        `json:"created_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (p Point) ToResponse() PointResponse {
	return PointResponse{
		ID:             p.ID,
		ProjectID:      p.ProjectID,
		Description:    p.Description,
		Responsibility: p.Responsibility,
		Status:         p.Status,
		Priority:       p.Priority,
		TargetDate:     p.TargetDate,
		Remarks:        p.Remarks,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   *string   `json:"owner_name,omitempty"`
	MemberIDs   []string  `json:"member_ids"`
	MemberNames []string  `json:"member_names,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p Project) ToResponse() ProjectResponse {
	members := p.MemberIDs
	if members == nil {
		members = []string{}
	}
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		OwnerName:   p.OwnerName,
		MemberIDs:   members,
		MemberNames: p.MemberNames,
		CreatedAt:   p.CreatedAt,
	}
}
