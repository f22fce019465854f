package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/feedback"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/middleware"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type FeedbackHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type FeedbackHandlerImpl struct {
	feedbackService feedback.FeedbackService
}

func NewFeedbackHandler(feedbackService feedback.FeedbackService) FeedbackHandler {
	return &FeedbackHandlerImpl{feedbackService: feedbackService}
}

func actorFromSession(session middleware.Session) feedback.Actor {
	return feedback.Actor{
		Username: session.Username,
		IsAdmin:  session.IsAdmin(),
	}
}

// List implements FeedbackHandler. Admin only.
func (h *FeedbackHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedbackService.List(r.Context())
	if err != nil {
		slog.Error("List feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// ListByUser implements FeedbackHandler.
func (h *FeedbackHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedbackService.ListByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		slog.Error("ListByUser feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// Create implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq feedback.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create feedback decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.feedbackService.Create(r.Context(), session.Username, createReq)
	if err != nil {
		slog.Error("Create feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Feedback submitted successfully", created)
}

// Update implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq feedback.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update feedback decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.feedbackService.Update(r.Context(), actorFromSession(session), chi.URLParam(r, "id"), updateReq)
	if err != nil {
		slog.Error("Update feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// Delete implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.feedbackService.Delete(r.Context(), actorFromSession(session), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Feedback deleted successfully", nil)
}
