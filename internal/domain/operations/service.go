package operations

import "context"

type OperationsService interface {
	Years(ctx context.Context) ([]string, error)
	CompletedByUser(ctx context.Context, username string) ([]Job, error)
	PlanningJobs(ctx context.Context, username string) ([]PlanningItem, error)
	PlanningList(ctx context.Context, username string) ([]PlanningItem, error)
}
