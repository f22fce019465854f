package operations

import "context"

type Repository interface {
	GetYears(ctx context.Context) ([]string, error)
	ListCompletedByUser(ctx context.Context, username string) ([]Job, error)
	ListPlanningJobs(ctx context.Context, username string) ([]PlanningItem, error)
	ListPlanningList(ctx context.Context, username string) ([]PlanningItem, error)
}
