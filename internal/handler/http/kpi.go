package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/middleware"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type KPIHandler interface {
	ListTemplates(w http.ResponseWriter, r *http.Request)
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)

	ListSheets(w http.ResponseWriter, r *http.Request)
	GetSheet(w http.ResponseWriter, r *http.Request)
	GenerateSheet(w http.ResponseWriter, r *http.Request)
	SetEntry(w http.ResponseWriter, r *http.Request)
	ToggleDay(w http.ResponseWriter, r *http.Request)
	AddRow(w http.ResponseWriter, r *http.Request)
	RemoveRow(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	DeleteSheet(w http.ResponseWriter, r *http.Request)

	AdminStats(w http.ResponseWriter, r *http.Request)
	AllSheets(w http.ResponseWriter, r *http.Request)
	PendingReviews(w http.ResponseWriter, r *http.Request)
}

type KPIHandlerImpl struct {
	kpiService kpi.KPIService
}

func NewKPIHandler(kpiService kpi.KPIService) KPIHandler {
	return &KPIHandlerImpl{kpiService: kpiService}
}

func reviewerFromSession(session middleware.Session) kpi.Reviewer {
	return kpi.Reviewer{
		ID:      session.UserID,
		Name:    session.Name,
		IsAdmin: session.IsAdmin(),
	}
}

// ListTemplates implements KPIHandler.
func (h *KPIHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.kpiService.ListTemplates(r.Context())
	if err != nil {
		slog.Error("ListTemplates service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, templates)
}

// CreateTemplate implements KPIHandler. Admin only.
func (h *KPIHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq kpi.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateTemplate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tpl, err := h.kpiService.CreateTemplate(r.Context(), session.UserID, createReq)
	if err != nil {
		slog.Error("CreateTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Template created successfully", tpl)
}

// DeleteTemplate implements KPIHandler. Admin only.
func (h *KPIHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.kpiService.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Template deleted successfully", nil)
}

// yearParam reads the ?year= query, defaulting to the current year.
func yearParam(r *http.Request) int {
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			return year
		}
	}
	return time.Now().UTC().Year()
}

// ListSheets implements KPIHandler. Lists the caller's own sheets.
func (h *KPIHandlerImpl) ListSheets(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sheets, err := h.kpiService.ListSheets(r.Context(), session.UserID, yearParam(r))
	if err != nil {
		slog.Error("ListSheets service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheets)
}

// GetSheet implements KPIHandler.
func (h *KPIHandlerImpl) GetSheet(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sheet, err := h.kpiService.GetSheet(r.Context(), reviewerFromSession(session), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("GetSheet service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheet)
}

// GenerateSheet implements KPIHandler. Responds 409 when a sheet already
// exists for the month and the request did not ask to overwrite.
func (h *KPIHandlerImpl) GenerateSheet(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var generateReq kpi.GenerateSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("GenerateSheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.kpiService.GenerateSheet(r.Context(), session.UserID, generateReq)
	if err != nil {
		slog.Error("GenerateSheet service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Sheet generated successfully", sheet)
}

// SetEntry implements KPIHandler.
func (h *KPIHandlerImpl) SetEntry(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var entryReq kpi.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&entryReq); err != nil {
		slog.Error("SetEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.kpiService.SetEntry(r.Context(), session.UserID, entryReq)
	if err != nil {
		slog.Error("SetEntry service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheet)
}

// ToggleDay implements KPIHandler.
func (h *KPIHandlerImpl) ToggleDay(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var dayReq kpi.DayStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&dayReq); err != nil {
		slog.Error("ToggleDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.kpiService.ToggleDay(r.Context(), session.UserID, dayReq)
	if err != nil {
		slog.Error("ToggleDay service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheet)
}

// AddRow implements KPIHandler.
func (h *KPIHandlerImpl) AddRow(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var rowReq kpi.AddRowRequest
	if err := json.NewDecoder(r.Body).Decode(&rowReq); err != nil {
		slog.Error("AddRow decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.kpiService.AddRow(r.Context(), session.UserID, rowReq)
	if err != nil {
		slog.Error("AddRow service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheet)
}

// RemoveRow implements KPIHandler.
func (h *KPIHandlerImpl) RemoveRow(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sheet, err := h.kpiService.RemoveRow(r.Context(), session.UserID,
		chi.URLParam(r, "sheetId"), chi.URLParam(r, "rowId"))
	if err != nil {
		slog.Error("RemoveRow service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheet)
}

// Submit implements KPIHandler.
func (h *KPIHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var submitReq kpi.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.kpiService.Submit(r.Context(), session.UserID, submitReq)
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sheet submitted successfully", sheet)
}

// Review implements KPIHandler.
func (h *KPIHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var reviewReq kpi.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.kpiService.Review(r.Context(), reviewerFromSession(session), reviewReq)
	if err != nil {
		slog.Error("Review service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Review recorded successfully", sheet)
}

// DeleteSheet implements KPIHandler. Admin only.
func (h *KPIHandlerImpl) DeleteSheet(w http.ResponseWriter, r *http.Request) {
	if err := h.kpiService.DeleteSheet(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteSheet service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sheet deleted successfully", nil)
}

// AdminStats implements KPIHandler. Admin only.
func (h *KPIHandlerImpl) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.kpiService.AdminStats(r.Context())
	if err != nil {
		slog.Error("AdminStats service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// AllSheets implements KPIHandler. Admin only.
func (h *KPIHandlerImpl) AllSheets(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.kpiService.AllSheets(r.Context(), yearParam(r))
	if err != nil {
		slog.Error("AllSheets service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheets)
}

// PendingReviews implements KPIHandler. Lists sheets waiting on the caller's
// stage of the review chain.
func (h *KPIHandlerImpl) PendingReviews(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sheets, err := h.kpiService.PendingForReviewer(r.Context(), session.UserID)
	if err != nil {
		slog.Error("PendingReviews service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheets)
}
