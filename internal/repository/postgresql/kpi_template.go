package postgresql

import (
	"context"
	"errors"

	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type kpiTemplateRepositoryImpl struct {
	db *database.DB
}

func NewKPITemplateRepository(db *database.DB) kpi.TemplateRepository {
	return &kpiTemplateRepositoryImpl{db: db}
}

func (r *kpiTemplateRepositoryImpl) Create(ctx context.Context, tpl kpi.Template) (kpi.Template, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO kpi_templates (id, name, rows, created_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, tpl.Name, tpl.Rows, tpl.CreatedBy).
		Scan(&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return kpi.Template{}, kpi.ErrTemplateNameTaken
		}
		return kpi.Template{}, err
	}
	return tpl, nil
}

func scanTemplate(row pgx.Row) (kpi.Template, error) {
	var tpl kpi.Template
	err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Rows, &tpl.CreatedBy, &tpl.CreatedAt, &tpl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return kpi.Template{}, kpi.ErrTemplateNotFound
	}
	if err != nil {
		return kpi.Template{}, err
	}
	return tpl, nil
}

func (r *kpiTemplateRepositoryImpl) GetByID(ctx context.Context, id string) (kpi.Template, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT id, name, rows, created_by, created_at, updated_at FROM kpi_templates WHERE id = $1`
	return scanTemplate(q.QueryRow(ctx, query, id))
}

func (r *kpiTemplateRepositoryImpl) GetByName(ctx context.Context, name string) (kpi.Template, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT id, name, rows, created_by, created_at, updated_at FROM kpi_templates WHERE name = $1`
	return scanTemplate(q.QueryRow(ctx, query, name))
}

func (r *kpiTemplateRepositoryImpl) List(ctx context.Context) ([]kpi.Template, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT id, name, rows, created_by, created_at, updated_at FROM kpi_templates ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []kpi.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (r *kpiTemplateRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM kpi_templates WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return kpi.ErrTemplateInUse
		}
		return err
	}
	if tag.RowsAffected() != 1 {
		return kpi.ErrTemplateNotFound
	}
	return nil
}
