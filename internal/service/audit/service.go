package audit

import (
	"context"
	"fmt"

	"github.com/eximdesk/exim-backend-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	audit.Repository
}

func NewAuditService(auditRepository audit.Repository) audit.AuditService {
	return &AuditServiceImpl{Repository: auditRepository}
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, filter audit.Filter) (audit.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}

	entries, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return audit.ListResponse{}, fmt.Errorf("failed to list audit entries: %w", err)
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.ToResponse())
	}
	return audit.ListResponse{
		Entries: responses,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}

// ListByJob implements audit.AuditService.
func (s *AuditServiceImpl) ListByJob(ctx context.Context, jobNo, year string) ([]audit.EntryResponse, error) {
	entries, err := s.Repository.ListByJob(ctx, jobNo, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for job: %w", err)
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.ToResponse())
	}
	return responses, nil
}

// Stats implements audit.AuditService.
func (s *AuditServiceImpl) Stats(ctx context.Context) (audit.Stats, error) {
	return s.Repository.Stats(ctx)
}
