package response

import (
	"errors"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/auth"
	"github.com/eximdesk/exim-backend-go/internal/domain/feedback"
	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
	"github.com/eximdesk/exim-backend-go/internal/domain/openpoints"
	"github.com/eximdesk/exim-backend-go/internal/domain/releasenote"
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/eximdesk/exim-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Invalid credentials are
// a 400 (the login form treats them as a field error), a deactivated
// account a 403, and the overwrite-style conflicts a 409 so the client can
// offer the destructive confirmation dialog.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var summaryErr *kpi.SummaryValidationError
	if errors.As(err, &summaryErr) {
		details := make(map[string]string, len(summaryErr.Missing))
		for _, field := range summaryErr.Missing {
			details[field] = "This field is required before submission"
		}
		BadRequest(w, "Summary is incomplete", details)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// KPI domain errors
	case errors.Is(err, kpi.ErrSheetNotFound),
		errors.Is(err, kpi.ErrTemplateNotFound),
		errors.Is(err, kpi.ErrRowNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, kpi.ErrSheetExists),
		errors.Is(err, kpi.ErrTemplateNameTaken),
		errors.Is(err, kpi.ErrTemplateInUse),
		errors.Is(err, kpi.ErrSheetLocked),
		errors.Is(err, kpi.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, kpi.ErrNotSheetOwner),
		errors.Is(err, kpi.ErrNotSignatory):
		Forbidden(w, err.Error())
	case errors.Is(err, kpi.ErrCommentsRequired),
		errors.Is(err, kpi.ErrRowNotCustom),
		errors.Is(err, kpi.ErrInvalidDay),
		errors.Is(err, kpi.ErrInvalidDayType),
		errors.Is(err, kpi.ErrInvalidRowValue):
		BadRequest(w, err.Error(), nil)

	// Open points domain errors
	case errors.Is(err, openpoints.ErrProjectNotFound),
		errors.Is(err, openpoints.ErrPointNotFound),
		errors.Is(err, openpoints.ErrMemberNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, openpoints.ErrNotProjectMember):
		Forbidden(w, err.Error())
	case errors.Is(err, openpoints.ErrMemberExists):
		Conflict(w, err.Error())
	case errors.Is(err, openpoints.ErrCannotRemoveOwner):
		BadRequest(w, err.Error(), nil)

	// Feedback domain errors
	case errors.Is(err, feedback.ErrFeedbackNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, feedback.ErrNotFeedbackOwner):
		Forbidden(w, err.Error())

	// Release note domain errors
	case errors.Is(err, releasenote.ErrNoteNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, releasenote.ErrVersionExists):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
