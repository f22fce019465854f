package operations

import (
	"context"

	"github.com/eximdesk/exim-backend-go/internal/domain/operations"
)

type OperationsServiceImpl struct {
	operations.Repository
}

func NewOperationsService(operationsRepository operations.Repository) operations.OperationsService {
	return &OperationsServiceImpl{Repository: operationsRepository}
}

// Years implements operations.OperationsService.
func (s *OperationsServiceImpl) Years(ctx context.Context) ([]string, error) {
	return s.Repository.GetYears(ctx)
}

// CompletedByUser implements operations.OperationsService.
func (s *OperationsServiceImpl) CompletedByUser(ctx context.Context, username string) ([]operations.Job, error) {
	return s.Repository.ListCompletedByUser(ctx, username)
}

// PlanningJobs implements operations.OperationsService.
func (s *OperationsServiceImpl) PlanningJobs(ctx context.Context, username string) ([]operations.PlanningItem, error) {
	return s.Repository.ListPlanningJobs(ctx, username)
}

// PlanningList implements operations.OperationsService.
func (s *OperationsServiceImpl) PlanningList(ctx context.Context, username string) ([]operations.PlanningItem, error) {
	return s.Repository.ListPlanningList(ctx, username)
}
