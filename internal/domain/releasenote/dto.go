package releasenote

import (
	"github.com/eximdesk/exim-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Version     string   `json:"version"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Changes     []string `json:"changes"`
	Published   bool     `json:"published"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Version) {
		errs = append(errs, validator.ValidationError{Field: "version", Message: "Version is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "Title is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Changes     []string `json:"changes,omitempty"`
	Published   *bool    `json:"published,omitempty"`
}

func (r UpdateRequest) Validate() error {
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		return validator.ValidationErrors{{Field: "title", Message: "Title cannot be empty"}}
	}
	return nil
}
