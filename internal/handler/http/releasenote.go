package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/releasenote"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/middleware"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReleaseNoteHandler interface {
	ListPublished(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ReleaseNoteHandlerImpl struct {
	noteService releasenote.ReleaseNoteService
}

func NewReleaseNoteHandler(noteService releasenote.ReleaseNoteService) ReleaseNoteHandler {
	return &ReleaseNoteHandlerImpl{noteService: noteService}
}

// ListPublished implements ReleaseNoteHandler.
func (h *ReleaseNoteHandlerImpl) ListPublished(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListPublished(r.Context())
	if err != nil {
		slog.Error("ListPublished release notes service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, notes)
}

// ListAll implements ReleaseNoteHandler. Admin only; includes drafts.
func (h *ReleaseNoteHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListAll(r.Context())
	if err != nil {
		slog.Error("ListAll release notes service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, notes)
}

// Create implements ReleaseNoteHandler. Admin only.
func (h *ReleaseNoteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq releasenote.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create release note decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.noteService.Create(r.Context(), session.UserID, createReq)
	if err != nil {
		slog.Error("Create release note service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Release note created successfully", created)
}

// Update implements ReleaseNoteHandler. Admin only.
func (h *ReleaseNoteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq releasenote.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update release note decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.noteService.Update(r.Context(), chi.URLParam(r, "id"), updateReq)
	if err != nil {
		slog.Error("Update release note service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// Delete implements ReleaseNoteHandler. Admin only.
func (h *ReleaseNoteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete release note service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Release note deleted successfully", nil)
}
