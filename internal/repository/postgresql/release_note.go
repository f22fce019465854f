package postgresql

import (
	"context"
	"errors"

	"github.com/eximdesk/exim-backend-go/internal/domain/releasenote"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type releaseNoteRepositoryImpl struct {
	db *database.DB
}

func NewReleaseNoteRepository(db *database.DB) releasenote.Repository {
	return &releaseNoteRepositoryImpl{db: db}
}

const releaseNoteColumns = `id, version, title, description, changes, published, created_by, created_at, updated_at`

func scanReleaseNote(row pgx.Row) (releasenote.ReleaseNote, error) {
	var note releasenote.ReleaseNote
	err := row.Scan(
		&note.ID,
		&note.Version,
		&note.Title,
		&note.Description,
		&note.Changes,
		&note.Published,
		&note.CreatedBy,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return releasenote.ReleaseNote{}, releasenote.ErrNoteNotFound
	}
	if err != nil {
		return releasenote.ReleaseNote{}, err
	}
	return note, nil
}

func (r *releaseNoteRepositoryImpl) Create(ctx context.Context, note releasenote.ReleaseNote) (releasenote.ReleaseNote, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO release_notes (id, version, title, description, changes, published, created_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		note.Version, note.Title, note.Description, note.Changes, note.Published, note.CreatedBy,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return releasenote.ReleaseNote{}, releasenote.ErrVersionExists
		}
		return releasenote.ReleaseNote{}, err
	}
	return note, nil
}

func (r *releaseNoteRepositoryImpl) GetByID(ctx context.Context, id string) (releasenote.ReleaseNote, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + releaseNoteColumns + ` FROM release_notes WHERE id = $1`
	return scanReleaseNote(q.QueryRow(ctx, query, id))
}

func (r *releaseNoteRepositoryImpl) list(ctx context.Context, query string) ([]releasenote.ReleaseNote, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []releasenote.ReleaseNote
	for rows.Next() {
		note, err := scanReleaseNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *releaseNoteRepositoryImpl) ListPublished(ctx context.Context) ([]releasenote.ReleaseNote, error) {
	query := `SELECT ` + releaseNoteColumns + ` FROM release_notes WHERE published ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *releaseNoteRepositoryImpl) ListAll(ctx context.Context) ([]releasenote.ReleaseNote, error) {
	query := `SELECT ` + releaseNoteColumns + ` FROM release_notes ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *releaseNoteRepositoryImpl) Update(ctx context.Context, note releasenote.ReleaseNote) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE release_notes
		SET version = $2, title = $3, description = $4, changes = $5, published = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		note.ID, note.Version, note.Title, note.Description, note.Changes, note.Published,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return releasenote.ErrVersionExists
		}
		return err
	}
	if tag.RowsAffected() != 1 {
		return releasenote.ErrNoteNotFound
	}
	return nil
}

func (r *releaseNoteRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM release_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return releasenote.ErrNoteNotFound
	}
	return nil
}
