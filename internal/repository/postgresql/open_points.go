package postgresql

import (
	"context"
	"errors"

	"github.com/eximdesk/exim-backend-go/internal/domain/openpoints"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type openPointProjectRepositoryImpl struct {
	db *database.DB
}

func NewOpenPointProjectRepository(db *database.DB) openpoints.ProjectRepository {
	return &openPointProjectRepositoryImpl{db: db}
}

func (r *openPointProjectRepositoryImpl) Create(ctx context.Context, project openpoints.Project) (openpoints.Project, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		query := `
			INSERT INTO open_point_projects (id, name, description, owner_id, created_at, updated_at)
			VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(txCtx, query, project.Name, project.Description, project.OwnerID).
			Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return err
		}
		for _, memberID := range project.MemberIDs {
			if err := addProjectMember(txCtx, q, project.ID, memberID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return openpoints.Project{}, err
	}
	return project, nil
}

func addProjectMember(ctx context.Context, q database.Querier, projectID, userID string) error {
	query := `
		INSERT INTO open_point_project_members (project_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (project_id, user_id) DO NOTHING
	`
	_, err := q.Exec(ctx, query, projectID, userID)
	return err
}

func (r *openPointProjectRepositoryImpl) loadMembers(ctx context.Context, project openpoints.Project) (openpoints.Project, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT m.user_id, u.full_name
		FROM open_point_project_members m
		INNER JOIN users u ON m.user_id = u.id
		WHERE m.project_id = $1
		ORDER BY u.full_name
	`
	rows, err := q.Query(ctx, query, project.ID)
	if err != nil {
		return openpoints.Project{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return openpoints.Project{}, err
		}
		project.MemberIDs = append(project.MemberIDs, id)
		project.MemberNames = append(project.MemberNames, name)
	}
	return project, rows.Err()
}

func (r *openPointProjectRepositoryImpl) GetByID(ctx context.Context, id string) (openpoints.Project, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at, u.full_name
		FROM open_point_projects p
		INNER JOIN users u ON p.owner_id = u.id
		WHERE p.id = $1
	`
	var project openpoints.Project
	err := q.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.Description, &project.OwnerID,
		&project.CreatedAt, &project.UpdatedAt, &project.OwnerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return openpoints.Project{}, openpoints.ErrProjectNotFound
	}
	if err != nil {
		return openpoints.Project{}, err
	}
	return r.loadMembers(ctx, project)
}

func (r *openPointProjectRepositoryImpl) ListByMember(ctx context.Context, userID string) ([]openpoints.Project, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT DISTINCT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at, u.full_name
		FROM open_point_projects p
		INNER JOIN users u ON p.owner_id = u.id
		LEFT JOIN open_point_project_members m ON p.id = m.project_id
		WHERE p.owner_id = $1 OR m.user_id = $1
		ORDER BY p.name
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []openpoints.Project
	for rows.Next() {
		var project openpoints.Project
		if err := rows.Scan(
			&project.ID, &project.Name, &project.Description, &project.OwnerID,
			&project.CreatedAt, &project.UpdatedAt, &project.OwnerName,
		); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, project := range projects {
		loaded, err := r.loadMembers(ctx, project)
		if err != nil {
			return nil, err
		}
		projects[i] = loaded
	}
	return projects, nil
}

func (r *openPointProjectRepositoryImpl) AddMember(ctx context.Context, projectID, userID string) error {
	q := GetQuerier(ctx, r.db)
	return addProjectMember(ctx, q, projectID, userID)
}

func (r *openPointProjectRepositoryImpl) RemoveMember(ctx context.Context, projectID, userID string) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM open_point_project_members WHERE project_id = $1 AND user_id = $2`
	tag, err := q.Exec(ctx, query, projectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return openpoints.ErrNotProjectMember
	}
	return nil
}

type openPointRepositoryImpl struct {
	db *database.DB
}

func NewOpenPointRepository(db *database.DB) openpoints.PointRepository {
	return &openPointRepositoryImpl{db: db}
}

const pointColumns = `id, project_id, description, responsibility, status, priority, target_date, remarks, created_by, created_at, updated_at`

func scanPoint(row pgx.Row) (openpoints.Point, error) {
	var point openpoints.Point
	err := row.Scan(
		&point.ID,
		&point.ProjectID,
		&point.Description,
		&point.Responsibility,
		&point.Status,
		&point.Priority,
		&point.TargetDate,
		&point.Remarks,
		&point.CreatedBy,
		&point.CreatedAt,
		&point.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return openpoints.Point{}, openpoints.ErrPointNotFound
	}
	if err != nil {
		return openpoints.Point{}, err
	}
	return point, nil
}

func (r *openPointRepositoryImpl) Create(ctx context.Context, point openpoints.Point) (openpoints.Point, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO open_points (id, project_id, description, responsibility, status, priority, target_date, remarks, created_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		point.ProjectID, point.Description, point.Responsibility, point.Status,
		point.Priority, point.TargetDate, point.Remarks, point.CreatedBy,
	).Scan(&point.ID, &point.CreatedAt, &point.UpdatedAt)
	if err != nil {
		return openpoints.Point{}, err
	}
	return point, nil
}

func (r *openPointRepositoryImpl) GetByID(ctx context.Context, id string) (openpoints.Point, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + pointColumns + ` FROM open_points WHERE id = $1`
	return scanPoint(q.QueryRow(ctx, query, id))
}

func (r *openPointRepositoryImpl) ListByProject(ctx context.Context, projectID string) ([]openpoints.Point, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + pointColumns + ` FROM open_points WHERE project_id = $1 ORDER BY created_at`

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []openpoints.Point
	for rows.Next() {
		point, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, rows.Err()
}

func (r *openPointRepositoryImpl) Update(ctx context.Context, point openpoints.Point) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE open_points
		SET description = $2, responsibility = $3, status = $4, priority = $5,
		    target_date = $6, remarks = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		point.ID, point.Description, point.Responsibility, point.Status,
		point.Priority, point.TargetDate, point.Remarks,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return openpoints.ErrPointNotFound
	}
	return nil
}

func (r *openPointRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM open_points WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return openpoints.ErrPointNotFound
	}
	return nil
}
