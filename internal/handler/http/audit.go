package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/eximdesk/exim-backend-go/internal/domain/audit"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByJob(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &AuditHandlerImpl{auditService: auditService}
}

func auditFilterFromQuery(r *http.Request) audit.Filter {
	query := r.URL.Query()
	filter := audit.Filter{
		Username: query.Get("username"),
		Module:   query.Get("module"),
		Action:   query.Get("action"),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if from, err := time.Parse("2006-01-02", query.Get("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", query.Get("to")); err == nil {
		end := to.Add(24*time.Hour - time.Second)
		filter.To = &end
	}
	return filter
}

// List implements AuditHandler.
func (h *AuditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.auditService.List(r.Context(), auditFilterFromQuery(r))
	if err != nil {
		slog.Error("List audit trail service error", "error", err)
		response.HandleError(w, err)
		return
	}

	totalPages := int((listing.Total + int64(listing.Limit) - 1) / int64(listing.Limit))
	response.SuccessWithMeta(w, listing.Entries, &response.Meta{
		Page:       listing.Page,
		Limit:      listing.Limit,
		TotalItems: listing.Total,
		TotalPages: totalPages,
	})
}

// ListByJob implements AuditHandler.
func (h *AuditHandlerImpl) ListByJob(w http.ResponseWriter, r *http.Request) {
	entries, err := h.auditService.ListByJob(r.Context(), chi.URLParam(r, "jobNo"), chi.URLParam(r, "year"))
	if err != nil {
		slog.Error("ListByJob audit trail service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

// Stats implements AuditHandler.
func (h *AuditHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.auditService.Stats(r.Context())
	if err != nil {
		slog.Error("Stats audit trail service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}
