package openpoints

import "context"

// ProjectPoints bundles a project's point list with its derived summary.
type ProjectPoints struct {
	Points  []PointResponse `json:"points"`
	Summary Summary         `json:"summary"`
}

type OpenPointService interface {
	MyProjects(ctx context.Context, userID string) ([]ProjectResponse, error)
	CreateProject(ctx context.Context, ownerID string, req CreateProjectRequest) (ProjectResponse, error)
	GetProject(ctx context.Context, userID, projectID string) (ProjectResponse, error)
	ListPoints(ctx context.Context, userID, projectID string) (ProjectPoints, error)
	CreatePoint(ctx context.Context, userID string, req CreatePointRequest) (PointResponse, error)
	UpdatePoint(ctx context.Context, userID, pointID string, req UpdatePointRequest) (PointResponse, error)
	DeletePoint(ctx context.Context, userID, pointID string) error
	AddMember(ctx context.Context, userID, projectID string, req MemberRequest) error
	RemoveMember(ctx context.Context, userID, projectID string, req MemberRequest) error
}
