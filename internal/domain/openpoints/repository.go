package openpoints

import "context"

// ProjectRepository - interface for open_point_projects and its member table
type ProjectRepository interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	ListByMember(ctx context.Context, userID string) ([]Project, error)
	AddMember(ctx context.Context, projectID, userID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}

// PointRepository - interface for open_points table
type PointRepository interface {
	Create(ctx context.Context, point Point) (Point, error)
	GetByID(ctx context.Context, id string) (Point, error)
	ListByProject(ctx context.Context, projectID string) ([]Point, error)
	Update(ctx context.Context, point Point) error
	Delete(ctx context.Context, id string) error
}
