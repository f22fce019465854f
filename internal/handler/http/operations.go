package http

import (
	"log/slog"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/operations"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OperationsHandler interface {
	Years(w http.ResponseWriter, r *http.Request)
	Completed(w http.ResponseWriter, r *http.Request)
	PlanningJobs(w http.ResponseWriter, r *http.Request)
	PlanningList(w http.ResponseWriter, r *http.Request)
}

type OperationsHandlerImpl struct {
	operationsService operations.OperationsService
}

func NewOperationsHandler(operationsService operations.OperationsService) OperationsHandler {
	return &OperationsHandlerImpl{operationsService: operationsService}
}

// Years implements OperationsHandler.
func (h *OperationsHandlerImpl) Years(w http.ResponseWriter, r *http.Request) {
	years, err := h.operationsService.Years(r.Context())
	if err != nil {
		slog.Error("Years service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, years)
}

// Completed implements OperationsHandler.
func (h *OperationsHandlerImpl) Completed(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.operationsService.CompletedByUser(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		slog.Error("Completed operations service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, jobs)
}

// PlanningJobs implements OperationsHandler.
func (h *OperationsHandlerImpl) PlanningJobs(w http.ResponseWriter, r *http.Request) {
	items, err := h.operationsService.PlanningJobs(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		slog.Error("PlanningJobs service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// PlanningList implements OperationsHandler.
func (h *OperationsHandlerImpl) PlanningList(w http.ResponseWriter, r *http.Request) {
	items, err := h.operationsService.PlanningList(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		slog.Error("PlanningList service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}
