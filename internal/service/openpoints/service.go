package openpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/eximdesk/exim-backend-go/internal/domain/openpoints"
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/eximdesk/exim-backend-go/internal/pkg/validator"
)

type OpenPointServiceImpl struct {
	projects openpoints.ProjectRepository
	points   openpoints.PointRepository
	users    user.Repository
}

func NewOpenPointService(
	projectRepository openpoints.ProjectRepository,
	pointRepository openpoints.PointRepository,
	userRepository user.Repository,
) openpoints.OpenPointService {
	return &OpenPointServiceImpl{
		projects: projectRepository,
		points:   pointRepository,
		users:    userRepository,
	}
}

// MyProjects implements openpoints.OpenPointService.
func (s *OpenPointServiceImpl) MyProjects(ctx context.Context, userID string) ([]openpoints.ProjectResponse, error) {
	projects, err := s.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]openpoints.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, project.ToResponse())
	}
	return responses, nil
}

// CreateProject implements openpoints.OpenPointService.
func (s *OpenPointServiceImpl) CreateProject(ctx context.Context, ownerID string, req openpoints.CreateProjectRequest) (openpoints.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return openpoints.ProjectResponse{}, err
	}

	for _, memberID := range req.MemberIDs {
		if _, err := s.users.GetByID(ctx, memberID); err != nil {
			return openpoints.ProjectResponse{}, fmt.Errorf("member %s: %w", memberID, err)
		}
	}

	created, err := s.projects.Create(ctx, openpoints.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		return openpoints.ProjectResponse{}, err
	}

	// Re-read for the joined owner and member names.
	project, err := s.projects.GetByID(ctx, created.ID)
	if err != nil {
		return openpoints.ProjectResponse{}, err
	}
	return project.ToResponse(), nil
}

// memberProject loads a project and enforces team membership.
func (s *OpenPointServiceImpl) memberProject(ctx context.Context, userID, projectID string) (openpoints.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return openpoints.Project{}, err
	}
	if !project.IsMember(userID) {
		return openpoints.Project{}, openpoints.ErrNotProjectMember
	}
	return project, nil
}

// GetProject implements openpoints.OpenPointService.
func (s *OpenPointServiceImpl) GetProject(ctx context.Context, userID, projectID string) (openpoints.ProjectResponse, error) {
	project, err := s.memberProject(ctx, userID, projectID)
	if err != nil {
		return openpoints.ProjectResponse{}, err
	}
	return project.ToResponse(), nil
}

// ListPoints implements openpoints.OpenPointService. The summary is derived
// fresh from the full point list on every read.
func (s *OpenPointServiceImpl) ListPoints(ctx context.Context, userID, projectID string) (openpoints.ProjectPoints, error) {
	if _, err := s.memberProject(ctx, userID, projectID); err != nil {
		return openpoints.ProjectPoints{}, err
	}

	points, err := s.points.ListByProject(ctx, projectID)
	if err != nil {
		return openpoints.ProjectPoints{}, fmt.Errorf("failed to list points: %w", err)
	}

	responses := make([]openpoints.PointResponse, 0, len(points))
	for _, point := range points {
		responses = append(responses, point.ToResponse())
	}
	return openpoints.ProjectPoints{
		Points:  responses,
		Summary: openpoints.CalculateSummary(points),
	}, nil
}

// CreatePoint implements openpoints.OpenPointService.
func (s *OpenPointServiceImpl) CreatePoint(ctx context.Context, userID string, req openpoints.CreatePointRequest) (openpoints.PointResponse, error) {
	if err := req.Validate(); err != nil {
		return openpoints.PointResponse{}, err
	}
	if _, err := s.memberProject(ctx, userID, req.ProjectID); err != nil {
		return openpoints.PointResponse{}, err
	}

	point := openpoints.Point{
		ProjectID:      req.ProjectID,
		Description:    req.Description,
		Responsibility: req.Responsibility,
		Status:         req.Status,
		Priority:       req.Priority,
		Remarks:        req.Remarks,
		CreatedBy:      userID,
	}
	if req.TargetDate != nil {
		parsed, _ := validator.IsValidDate(*req.TargetDate)
		point.TargetDate = &parsed
	}

	created, err := s.points.Create(ctx, point)
	if err != nil {
		return openpoints.PointResponse{}, err
	}
	return created.ToResponse(), nil
}

// UpdatePoint implements openpoints.OpenPointService. Any team member may
// change any field; there are no per-field transition rules.
func (s *OpenPointServiceImpl) UpdatePoint(ctx context.Context, userID, pointID string, req openpoints.UpdatePointRequest) (openpoints.PointResponse, error) {
	if err := req.Validate(); err != nil {
		return openpoints.PointResponse{}, err
	}

	point, err := s.points.GetByID(ctx, pointID)
	if err != nil {
		return openpoints.PointResponse{}, err
	}
	if _, err := s.memberProject(ctx, userID, point.ProjectID); err != nil {
		return openpoints.PointResponse{}, err
	}

	if req.Description != nil {
		point.Description = *req.Description
	}
	if req.Responsibility != nil {
		point.Responsibility = *req.Responsibility
	}
	if req.Status != nil {
		point.Status = *req.Status
	}
	if req.Priority != nil {
		point.Priority = *req.Priority
	}
	if req.TargetDate != nil {
		if *req.TargetDate == "" {
			point.TargetDate = nil
		} else {
			parsed, _ := validator.IsValidDate(*req.TargetDate)
			point.TargetDate = &parsed
		}
	}
	if req.Remarks != nil {
		point.Remarks = req.Remarks
	}

	if err := s.points.Update(ctx, point); err != nil {
		return openpoints.PointResponse{}, err
	}
	return point.ToResponse(), nil
}

// DeletePoint implements openpoints.OpenPointService.
func (s *OpenPointServiceImpl) DeletePoint(ctx context.Context, userID, pointID string) error {
	point, err := s.points.GetByID(ctx, pointID)
	if err != nil {
		return err
	}
	if _, err := s.memberProject(ctx, userID, point.ProjectID); err != nil {
		return err
	}
	return s.points.Delete(ctx, pointID)
}

// AddMember implements openpoints.OpenPointService.
func (s *OpenPointServiceImpl) AddMember(ctx context.Context, userID, projectID string, req openpoints.MemberRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	project, err := s.memberProject(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if project.IsMember(req.UserID) {
		return openpoints.ErrMemberExists
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return err
	}
	return s.projects.AddMember(ctx, projectID, req.UserID)
}

// RemoveMember implements openpoints.OpenPointService.
func (s *OpenPointServiceImpl) RemoveMember(ctx context.Context, userID, projectID string, req openpoints.MemberRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	project, err := s.memberProject(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if req.UserID == project.OwnerID {
		return openpoints.ErrCannotRemoveOwner
	}
	if err := s.projects.RemoveMember(ctx, projectID, req.UserID); err != nil {
		if errors.Is(err, openpoints.ErrNotProjectMember) {
			return openpoints.ErrMemberNotFound
		}
		return err
	}
	return nil
}
