package postgresql

import (
	"context"
	"errors"

	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type kpiSheetRepositoryImpl struct {
	db *database.DB
}

func NewKPISheetRepository(db *database.DB) kpi.SheetRepository {
	return &kpiSheetRepositoryImpl{db: db}
}

func (r *kpiSheetRepositoryImpl) Create(ctx context.Context, sheet kpi.Sheet) (kpi.Sheet, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		query := `
			INSERT INTO kpi_sheets (
				id, owner_id, template_id, year, month, status,
				day_marks, summary, checked_by, verified_by, approved_by,
				created_at, updated_at
			) VALUES (
				uuidv7(), $1, $2, $3, $4, $5,
				$6, $7, $8, $9, $10,
				NOW(), NOW()
			) RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(txCtx, query,
			sheet.OwnerID, sheet.TemplateID, sheet.Year, sheet.Month, sheet.Status,
			sheet.Marks, sheet.Summary,
			sheet.Signatories.CheckedBy, sheet.Signatories.VerifiedBy, sheet.Signatories.ApprovedBy,
		).Scan(&sheet.ID, &sheet.CreatedAt, &sheet.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return kpi.ErrSheetExists
			}
			return err
		}
		return insertRows(txCtx, q, sheet.ID, sheet.Rows)
	})
	if err != nil {
		return kpi.Sheet{}, err
	}
	return sheet, nil
}

func insertRows(ctx context.Context, q database.Querier, sheetID string, rows []kpi.Row) error {
	query := `
		INSERT INTO kpi_sheet_rows (sheet_id, row_id, label, row_type, daily_values, is_custom, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, row := range rows {
		if _, err := q.Exec(ctx, query,
			sheetID, row.RowID, row.Label, row.Type, row.DailyValues, row.IsCustom, row.Position,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertHistory(ctx context.Context, q database.Querier, sheetID string, history []kpi.ApprovalEntry) error {
	query := `
		INSERT INTO kpi_approval_history (id, sheet_id, action, actor_id, actor_name, comments, acted_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
	`
	for _, entry := range history {
		if _, err := q.Exec(ctx, query,
			sheetID, entry.Action, entry.By, entry.ByName, entry.Comments, entry.Date,
		); err != nil {
			return err
		}
	}
	return nil
}

const sheetColumns = `
	s.id, s.owner_id, s.template_id, s.year, s.month, s.status,
	s.day_marks, s.summary, s.checked_by, s.verified_by, s.approved_by,
	s.created_at, s.updated_at, u.full_name
`

func scanSheet(row pgx.Row) (kpi.Sheet, error) {
	var sheet kpi.Sheet
	err := row.Scan(
		&sheet.ID,
		&sheet.OwnerID,
		&sheet.TemplateID,
		&sheet.Year,
		&sheet.Month,
		&sheet.Status,
		&sheet.Marks,
		&sheet.Summary,
		&sheet.Signatories.CheckedBy,
		&sheet.Signatories.VerifiedBy,
		&sheet.Signatories.ApprovedBy,
		&sheet.CreatedAt,
		&sheet.UpdatedAt,
		&sheet.OwnerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return kpi.Sheet{}, kpi.ErrSheetNotFound
	}
	if err != nil {
		return kpi.Sheet{}, err
	}
	return sheet, nil
}

// loadAggregate attaches rows and approval history to a scanned sheet.
func (r *kpiSheetRepositoryImpl) loadAggregate(ctx context.Context, sheet kpi.Sheet) (kpi.Sheet, error) {
	q := GetQuerier(ctx, r.db)

	rowQuery := `
		SELECT row_id, label, row_type, daily_values, is_custom, position
		FROM kpi_sheet_rows
		WHERE sheet_id = $1
		ORDER BY position
	`
	rows, err := q.Query(ctx, rowQuery, sheet.ID)
	if err != nil {
		return kpi.Sheet{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var row kpi.Row
		if err := rows.Scan(&row.RowID, &row.Label, &row.Type, &row.DailyValues, &row.IsCustom, &row.Position); err != nil {
			return kpi.Sheet{}, err
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return kpi.Sheet{}, err
	}

	historyQuery := `
		SELECT action, actor_id, actor_name, comments, acted_at
		FROM kpi_approval_history
		WHERE sheet_id = $1
		ORDER BY acted_at
	`
	hrows, err := q.Query(ctx, historyQuery, sheet.ID)
	if err != nil {
		return kpi.Sheet{}, err
	}
	defer hrows.Close()

	for hrows.Next() {
		var entry kpi.ApprovalEntry
		if err := hrows.Scan(&entry.Action, &entry.By, &entry.ByName, &entry.Comments, &entry.Date); err != nil {
			return kpi.Sheet{}, err
		}
		sheet.History = append(sheet.History, entry)
	}
	return sheet, hrows.Err()
}

func (r *kpiSheetRepositoryImpl) GetByID(ctx context.Context, id string) (kpi.Sheet, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + sheetColumns + `
		FROM kpi_sheets s
		INNER JOIN users u ON s.owner_id = u.id
		WHERE s.id = $1
	`
	sheet, err := scanSheet(q.QueryRow(ctx, query, id))
	if err != nil {
		return kpi.Sheet{}, err
	}
	return r.loadAggregate(ctx, sheet)
}

func (r *kpiSheetRepositoryImpl) GetByOwnerPeriod(ctx context.Context, ownerID string, year, month int) (kpi.Sheet, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + sheetColumns + `
		FROM kpi_sheets s
		INNER JOIN users u ON s.owner_id = u.id
		WHERE s.owner_id = $1 AND s.year = $2 AND s.month = $3
	`
	sheet, err := scanSheet(q.QueryRow(ctx, query, ownerID, year, month))
	if err != nil {
		return kpi.Sheet{}, err
	}
	return r.loadAggregate(ctx, sheet)
}

const listColumns = `s.id, s.owner_id, u.full_name, s.year, s.month, s.status, s.updated_at`

func (r *kpiSheetRepositoryImpl) listItems(ctx context.Context, query string, args ...interface{}) ([]kpi.SheetListItem, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []kpi.SheetListItem
	for rows.Next() {
		var item kpi.SheetListItem
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.OwnerName, &item.Year, &item.Month, &item.Status, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *kpiSheetRepositoryImpl) ListByOwnerYear(ctx context.Context, ownerID string, year int) ([]kpi.SheetListItem, error) {
	query := `
		SELECT ` + listColumns + `
		FROM kpi_sheets s
		INNER JOIN users u ON s.owner_id = u.id
		WHERE s.owner_id = $1 AND s.year = $2
		ORDER BY s.month
	`
	return r.listItems(ctx, query, ownerID, year)
}

func (r *kpiSheetRepositoryImpl) ListAll(ctx context.Context, year int) ([]kpi.SheetListItem, error) {
	query := `
		SELECT ` + listColumns + `
		FROM kpi_sheets s
		INNER JOIN users u ON s.owner_id = u.id
		WHERE s.year = $1
		ORDER BY u.full_name, s.month
	`
	return r.listItems(ctx, query, year)
}

// ListPendingFor returns sheets whose current stage is assigned to the given
// signatory: SUBMITTED waits on checked_by, CHECKED on verified_by, VERIFIED
// on approved_by.
func (r *kpiSheetRepositoryImpl) ListPendingFor(ctx context.Context, signatoryID string) ([]kpi.SheetListItem, error) {
	query := `
		SELECT ` + listColumns + `
		FROM kpi_sheets s
		INNER JOIN users u ON s.owner_id = u.id
		WHERE (s.status = 'SUBMITTED' AND s.checked_by = $1)
		   OR (s.status = 'CHECKED' AND s.verified_by = $1)
		   OR (s.status = 'VERIFIED' AND s.approved_by = $1)
		ORDER BY s.updated_at
	`
	return r.listItems(ctx, query, signatoryID)
}

// Save persists the aggregate's mutable parts. Rows and history are
// replaced wholesale inside the transaction; the in-memory aggregate is the
// source of truth.
func (r *kpiSheetRepositoryImpl) Save(ctx context.Context, sheet kpi.Sheet) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		query := `
			UPDATE kpi_sheets
			SET status = $2, day_marks = $3, summary = $4, updated_at = NOW()
			WHERE id = $1
		`
		tag, err := q.Exec(txCtx, query, sheet.ID, sheet.Status, sheet.Marks, sheet.Summary)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != 1 {
			return kpi.ErrSheetNotFound
		}

		if _, err := q.Exec(txCtx, `DELETE FROM kpi_sheet_rows WHERE sheet_id = $1`, sheet.ID); err != nil {
			return err
		}
		if err := insertRows(txCtx, q, sheet.ID, sheet.Rows); err != nil {
			return err
		}

		if _, err := q.Exec(txCtx, `DELETE FROM kpi_approval_history WHERE sheet_id = $1`, sheet.ID); err != nil {
			return err
		}
		return insertHistory(txCtx, q, sheet.ID, sheet.History)
	})
}

// Replace rewrites the whole sheet under its existing id, used by the
// explicit overwrite flow of sheet generation.
func (r *kpiSheetRepositoryImpl) Replace(ctx context.Context, sheet kpi.Sheet) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		query := `
			UPDATE kpi_sheets
			SET template_id = $2, status = $3, day_marks = $4, summary = $5,
			    checked_by = $6, verified_by = $7, approved_by = $8, updated_at = NOW()
			WHERE id = $1
		`
		tag, err := q.Exec(txCtx, query,
			sheet.ID, sheet.TemplateID, sheet.Status, sheet.Marks, sheet.Summary,
			sheet.Signatories.CheckedBy, sheet.Signatories.VerifiedBy, sheet.Signatories.ApprovedBy,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != 1 {
			return kpi.ErrSheetNotFound
		}

		if _, err := q.Exec(txCtx, `DELETE FROM kpi_sheet_rows WHERE sheet_id = $1`, sheet.ID); err != nil {
			return err
		}
		if err := insertRows(txCtx, q, sheet.ID, sheet.Rows); err != nil {
			return err
		}

		if _, err := q.Exec(txCtx, `DELETE FROM kpi_approval_history WHERE sheet_id = $1`, sheet.ID); err != nil {
			return err
		}
		return insertHistory(txCtx, q, sheet.ID, sheet.History)
	})
}

func (r *kpiSheetRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM kpi_sheets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return kpi.ErrSheetNotFound
	}
	return nil
}

func (r *kpiSheetRepositoryImpl) Stats(ctx context.Context) (kpi.AdminStats, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT status, COUNT(*) FROM kpi_sheets GROUP BY status`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return kpi.AdminStats{}, err
	}
	defer rows.Close()

	stats := kpi.AdminStats{ByStatus: make(map[kpi.SheetStatus]int64)}
	for rows.Next() {
		var status kpi.SheetStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return kpi.AdminStats{}, err
		}
		stats.ByStatus[status] = count
		stats.TotalSheets += count
		switch status {
		case kpi.StatusSubmitted, kpi.StatusChecked, kpi.StatusVerified:
			stats.PendingReviews += count
		}
	}
	return stats, rows.Err()
}

func (r *kpiSheetRepositoryImpl) ListUnsubmitted(ctx context.Context, year, month int) ([]kpi.UnsubmittedSheet, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT s.id, s.owner_id, u.full_name, u.email, s.year, s.month, s.status
		FROM kpi_sheets s
		INNER JOIN users u ON s.owner_id = u.id
		WHERE s.year = $1 AND s.month = $2 AND s.status IN ('DRAFT', 'REJECTED')
	`
	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []kpi.UnsubmittedSheet
	for rows.Next() {
		var item kpi.UnsubmittedSheet
		if err := rows.Scan(&item.SheetID, &item.OwnerID, &item.OwnerName, &item.OwnerEmail, &item.Year, &item.Month, &item.Status); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
