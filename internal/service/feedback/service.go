package feedback

import (
	"context"

	"github.com/eximdesk/exim-backend-go/internal/domain/feedback"
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
)

type FeedbackServiceImpl struct {
	feedback.Repository
}

func NewFeedbackService(feedbackRepository feedback.Repository) feedback.FeedbackService {
	return &FeedbackServiceImpl{Repository: feedbackRepository}
}

// Create implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) Create(ctx context.Context, username string, req feedback.CreateRequest) (feedback.Feedback, error) {
	if err := req.Validate(); err != nil {
		return feedback.Feedback{}, err
	}
	return s.Repository.Create(ctx, feedback.Feedback{
		Username:    username,
		Module:      req.Module,
		Description: req.Description,
		Status:      feedback.StatusOpen,
	})
}

// List implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) List(ctx context.Context) ([]feedback.Feedback, error) {
	return s.Repository.List(ctx)
}

// ListByUsername implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) ListByUsername(ctx context.Context, username string) ([]feedback.Feedback, error) {
	return s.Repository.ListByUsername(ctx, username)
}

// Update implements feedback.FeedbackService. Authors may edit their own
// description; status and response are admin-only triage fields.
func (s *FeedbackServiceImpl) Update(ctx context.Context, actor feedback.Actor, id string, req feedback.UpdateRequest) (feedback.Feedback, error) {
	if err := req.Validate(); err != nil {
		return feedback.Feedback{}, err
	}

	fb, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return feedback.Feedback{}, err
	}

	if !actor.IsAdmin && fb.Username != actor.Username {
		return feedback.Feedback{}, feedback.ErrNotFeedbackOwner
	}
	if !actor.IsAdmin && (req.Status != nil || req.Response != nil) {
		return feedback.Feedback{}, user.ErrAdminPrivilegeRequired
	}

	if req.Description != nil {
		fb.Description = *req.Description
	}
	if req.Status != nil {
		fb.Status = *req.Status
	}
	if req.Response != nil {
		fb.Response = req.Response
	}

	if err := s.Repository.Update(ctx, fb); err != nil {
		return feedback.Feedback{}, err
	}
	return fb, nil
}

// Delete implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) Delete(ctx context.Context, actor feedback.Actor, id string) error {
	fb, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && fb.Username != actor.Username {
		return feedback.ErrNotFeedbackOwner
	}
	return s.Repository.Delete(ctx, id)
}
