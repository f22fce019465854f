package cron

import (
	"context"
	"time"
)

// DeadlineReminderService is implemented by the KPI sheet service.
type DeadlineReminderService interface {
	SendDeadlineReminders(ctx context.Context) error
}

// KPIJobs contains KPI-related cron jobs
type KPIJobs struct {
	sheets DeadlineReminderService
}

// NewKPIJobs creates KPI cron jobs
func NewKPIJobs(sheets DeadlineReminderService) *KPIJobs {
	return &KPIJobs{sheets: sheets}
}

// RegisterJobs registers all KPI-related cron jobs
func (j *KPIJobs) RegisterJobs(scheduler *Scheduler) {
	// Remind owners of unsubmitted sheets as the monthly lock approaches
	scheduler.AddJob(
		"kpi_deadline_reminders",
		12*time.Hour,
		j.SendDeadlineReminders,
	)
}

// SendDeadlineReminders mails owners whose current-month sheet is still in
// DRAFT or REJECTED close to the last working day.
func (j *KPIJobs) SendDeadlineReminders(ctx context.Context) error {
	return j.sheets.SendDeadlineReminders(ctx)
}
