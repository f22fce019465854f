package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/openpoints"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/middleware"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OpenPointHandler interface {
	MyProjects(w http.ResponseWriter, r *http.Request)
	CreateProject(w http.ResponseWriter, r *http.Request)
	GetProject(w http.ResponseWriter, r *http.Request)
	ListPoints(w http.ResponseWriter, r *http.Request)
	CreatePoint(w http.ResponseWriter, r *http.Request)
	UpdatePoint(w http.ResponseWriter, r *http.Request)
	DeletePoint(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
}

type OpenPointHandlerImpl struct {
	openPointService openpoints.OpenPointService
}

func NewOpenPointHandler(openPointService openpoints.OpenPointService) OpenPointHandler {
	return &OpenPointHandlerImpl{openPointService: openPointService}
}

// MyProjects implements OpenPointHandler.
func (h *OpenPointHandlerImpl) MyProjects(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	projects, err := h.openPointService.MyProjects(r.Context(), session.UserID)
	if err != nil {
		slog.Error("MyProjects service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, projects)
}

// CreateProject implements OpenPointHandler.
func (h *OpenPointHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq openpoints.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateProject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	project, err := h.openPointService.CreateProject(r.Context(), session.UserID, createReq)
	if err != nil {
		slog.Error("CreateProject service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Project created successfully", project)
}

// GetProject implements OpenPointHandler.
func (h *OpenPointHandlerImpl) GetProject(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	project, err := h.openPointService.GetProject(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("GetProject service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, project)
}

// ListPoints implements OpenPointHandler. The payload bundles the point list
// with its per-responsibility summary.
func (h *OpenPointHandlerImpl) ListPoints(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	points, err := h.openPointService.ListPoints(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("ListPoints service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, points)
}

// CreatePoint implements OpenPointHandler.
func (h *OpenPointHandlerImpl) CreatePoint(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq openpoints.CreatePointRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreatePoint decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	point, err := h.openPointService.CreatePoint(r.Context(), session.UserID, createReq)
	if err != nil {
		slog.Error("CreatePoint service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Point created successfully", point)
}

// UpdatePoint implements OpenPointHandler.
func (h *OpenPointHandlerImpl) UpdatePoint(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq openpoints.UpdatePointRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdatePoint decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	point, err := h.openPointService.UpdatePoint(r.Context(), session.UserID, chi.URLParam(r, "id"), updateReq)
	if err != nil {
		slog.Error("UpdatePoint service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, point)
}

// DeletePoint implements OpenPointHandler.
func (h *OpenPointHandlerImpl) DeletePoint(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.openPointService.DeletePoint(r.Context(), session.UserID, chi.URLParam(r, "id")); err != nil {
		slog.Error("DeletePoint service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Point deleted successfully", nil)
}

// AddMember implements OpenPointHandler.
func (h *OpenPointHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var memberReq openpoints.MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&memberReq); err != nil {
		slog.Error("AddMember decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.openPointService.AddMember(r.Context(), session.UserID, chi.URLParam(r, "id"), memberReq); err != nil {
		slog.Error("AddMember service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Member added successfully", nil)
}

// RemoveMember implements OpenPointHandler.
func (h *OpenPointHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var memberReq openpoints.MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&memberReq); err != nil {
		slog.Error("RemoveMember decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.openPointService.RemoveMember(r.Context(), session.UserID, chi.URLParam(r, "id"), memberReq); err != nil {
		slog.Error("RemoveMember service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Member removed successfully", nil)
}
