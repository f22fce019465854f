package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/eximdesk/exim-backend-go/internal/domain/audit"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Append(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO audit_trail (id, username, module, action, job_no, year, details, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := q.Exec(ctx, query,
		entry.Username, entry.Module, entry.Action, entry.JobNo, entry.Year, entry.Details,
	)
	return err
}

const auditColumns = `id, username, module, action, job_no, year, details, created_at`

func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.Username != "" {
		addCondition("username = $%d", filter.Username)
	}
	if filter.Module != "" {
		addCondition("module = $%d", filter.Module)
	}
	if filter.Action != "" {
		addCondition("action = $%d", filter.Action)
	}
	if filter.From != nil {
		addCondition("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("created_at <= $%d", *filter.To)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_trail ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf(
		`SELECT %s FROM audit_trail %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		auditColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		if err := rows.Scan(
			&entry.ID, &entry.Username, &entry.Module, &entry.Action,
			&entry.JobNo, &entry.Year, &entry.Details, &entry.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

func (r *auditRepositoryImpl) ListByJob(ctx context.Context, jobNo, year string) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + auditColumns + `
		FROM audit_trail
		WHERE job_no = $1 AND year = $2
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, jobNo, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		if err := rows.Scan(
			&entry.ID, &entry.Username, &entry.Module, &entry.Action,
			&entry.JobNo, &entry.Year, &entry.Details, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *auditRepositoryImpl) Stats(ctx context.Context) (audit.Stats, error) {
	q := GetQuerier(ctx, r.db)
	stats := audit.Stats{
		ByAction: make(map[string]int64),
		ByModule: make(map[string]int64),
		ByDay:    make(map[string]int64),
	}

	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_trail`).Scan(&stats.Total); err != nil {
		return audit.Stats{}, err
	}

	if err := r.countInto(ctx, `SELECT action, COUNT(*) FROM audit_trail GROUP BY action`, stats.ByAction); err != nil {
		return audit.Stats{}, err
	}
	if err := r.countInto(ctx, `SELECT module, COUNT(*) FROM audit_trail GROUP BY module`, stats.ByModule); err != nil {
		return audit.Stats{}, err
	}

	// Last 30 days of activity for the viewer's chart.
	dayQuery := `
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD'), COUNT(*)
		FROM audit_trail
		WHERE created_at >= NOW() - INTERVAL '30 days'
		GROUP BY 1
	`
	if err := r.countInto(ctx, dayQuery, stats.ByDay); err != nil {
		return audit.Stats{}, err
	}
	return stats, nil
}

func (r *auditRepositoryImpl) countInto(ctx context.Context, query string, dest map[string]int64) error {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}
