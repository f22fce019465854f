package postgresql

import (
	"context"
	"errors"

	"github.com/eximdesk/exim-backend-go/internal/domain/feedback"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type feedbackRepositoryImpl struct {
	db *database.DB
}

func NewFeedbackRepository(db *database.DB) feedback.Repository {
	return &feedbackRepositoryImpl{db: db}
}

const feedbackColumns = `id, username, module, description, status, response, created_at, updated_at`

func scanFeedback(row pgx.Row) (feedback.Feedback, error) {
	var fb feedback.Feedback
	err := row.Scan(
		&fb.ID,
		&fb.Username,
		&fb.Module,
		&fb.Description,
		&fb.Status,
		&fb.Response,
		&fb.CreatedAt,
		&fb.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return feedback.Feedback{}, feedback.ErrFeedbackNotFound
	}
	if err != nil {
		return feedback.Feedback{}, err
	}
	return fb, nil
}

func (r *feedbackRepositoryImpl) Create(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO feedback (id, username, module, description, status, response, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, fb.Username, fb.Module, fb.Description, fb.Status, fb.Response).
		Scan(&fb.ID, &fb.CreatedAt, &fb.UpdatedAt)
	if err != nil {
		return feedback.Feedback{}, err
	}
	return fb, nil
}

func (r *feedbackRepositoryImpl) GetByID(ctx context.Context, id string) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`
	return scanFeedback(q.QueryRow(ctx, query, id))
}

func (r *feedbackRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []feedback.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

func (r *feedbackRepositoryImpl) List(ctx context.Context) ([]feedback.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *feedbackRepositoryImpl) ListByUsername(ctx context.Context, username string) ([]feedback.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE username = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, username)
}

func (r *feedbackRepositoryImpl) Update(ctx context.Context, fb feedback.Feedback) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE feedback
		SET description = $2, status = $3, response = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, fb.ID, fb.Description, fb.Status, fb.Response)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return feedback.ErrFeedbackNotFound
	}
	return nil
}

func (r *feedbackRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return feedback.ErrFeedbackNotFound
	}
	return nil
}
