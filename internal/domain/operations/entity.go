package operations

import "time"

// Job is the read model over the upstream import jobs table. This service
// only serves the operations-team listings; job writes happen elsewhere.
type Job struct {
	JobNo           string
	Year            string
	ImporterName    string
	CustomHouse     *string
	ContainerCount  int
	BEDate          *time.Time
	ExaminationDate *time.Time
	PCVDate         *time.Time
	OutOfCharge     *time.Time
	CompletedAt     *time.Time
	DetailedStatus  *string
	AssignedTo      *string
}

// PlanningItem is one row of an operations planning list.
type PlanningItem struct {
	JobNo           string     `json:"job_no"`
	Year            string     `json:"year"`
	ImporterName    string     `json:"importer_name"`
	ContainerCount  int        `json:"container_count"`
	ExaminationDate *time.Time `json:"examination_date,omitempty"`
	DetailedStatus  *string    `json:"detailed_status,omitempty"`
}
