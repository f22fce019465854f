package feedback

import (
	"github.com/eximdesk/exim-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Module      string `json:"module"`
	Description string `json:"description"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Module) {
		errs = append(errs, validator.ValidationError{Field: "module", Message: "Module is required"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "Description is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest: authors may edit their description; admins set status and
// response.
type UpdateRequest struct {
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Response    *string `json:"response,omitempty"`
}

func (r UpdateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Status != nil && !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "Status must be open, in_progress or resolved"})
	}
	if r.Description != nil && validator.IsEmpty(*r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "Description cannot be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
