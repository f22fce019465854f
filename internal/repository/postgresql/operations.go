package postgresql

import (
	"context"

	"github.com/eximdesk/exim-backend-go/internal/domain/operations"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
)

// operationsRepositoryImpl reads from the jobs table maintained by the
// upstream job system; nothing here writes to it.
type operationsRepositoryImpl struct {
	db *database.DB
}

func NewOperationsRepository(db *database.DB) operations.Repository {
	return &operationsRepositoryImpl{db: db}
}

func (r *operationsRepositoryImpl) GetYears(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT DISTINCT year FROM jobs ORDER BY year DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var year string
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

func (r *operationsRepositoryImpl) ListCompletedByUser(ctx context.Context, username string) ([]operations.Job, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT job_no, year, importer_name, custom_house, container_count,
		       be_date, examination_date, pcv_date, out_of_charge, completed_at,
		       detailed_status, assigned_to
		FROM jobs
		WHERE assigned_to = $1 AND completed_at IS NOT NULL
		ORDER BY completed_at DESC
	`
	rows, err := q.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []operations.Job
	for rows.Next() {
		var job operations.Job
		if err := rows.Scan(
			&job.JobNo, &job.Year, &job.ImporterName, &job.CustomHouse, &job.ContainerCount,
			&job.BEDate, &job.ExaminationDate, &job.PCVDate, &job.OutOfCharge, &job.CompletedAt,
			&job.DetailedStatus, &job.AssignedTo,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *operationsRepositoryImpl) listPlanning(ctx context.Context, query, username string) ([]operations.PlanningItem, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []operations.PlanningItem
	for rows.Next() {
		var item operations.PlanningItem
		if err := rows.Scan(
			&item.JobNo, &item.Year, &item.ImporterName, &item.ContainerCount,
			&item.ExaminationDate, &item.DetailedStatus,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListPlanningJobs returns jobs awaiting an examination slot.
func (r *operationsRepositoryImpl) ListPlanningJobs(ctx context.Context, username string) ([]operations.PlanningItem, error) {
	query := `
		SELECT job_no, year, importer_name, container_count, examination_date, detailed_status
		FROM jobs
		WHERE assigned_to = $1 AND completed_at IS NULL AND examination_date IS NULL
		ORDER BY be_date
	`
	return r.listPlanning(ctx, query, username)
}

// ListPlanningList returns scheduled jobs still in flight.
func (r *operationsRepositoryImpl) ListPlanningList(ctx context.Context, username string) ([]operations.PlanningItem, error) {
	query := `
		SELECT job_no, year, importer_name, container_count, examination_date, detailed_status
		FROM jobs
		WHERE assigned_to = $1 AND completed_at IS NULL AND examination_date IS NOT NULL
		ORDER BY examination_date
	`
	return r.listPlanning(ctx, query, username)
}
