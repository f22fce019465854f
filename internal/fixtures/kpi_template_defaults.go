package fixtures

import (
	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
)

// DefaultKPITemplateName is seeded on first start so new users can generate
// a sheet before any admin has curated templates.
const DefaultKPITemplateName = "Operations Monthly KPI"

// GetDefaultKPITemplateRows returns the standard daily-tracking rows for the
// operations team.
func GetDefaultKPITemplateRows() kpi.TemplateRows {
	return kpi.TemplateRows{
		{RowID: "jobs_filed", Label: "Jobs filed", Type: kpi.RowTypeNumeric},
		{RowID: "checklists_prepared", Label: "Checklists prepared", Type: kpi.RowTypeNumeric},
		{RowID: "be_filed", Label: "Bills of entry filed", Type: kpi.RowTypeNumeric},
		{RowID: "duty_paid", Label: "Duty payments processed", Type: kpi.RowTypeNumeric},
		{RowID: "examinations_attended", Label: "Examinations attended", Type: kpi.RowTypeNumeric},
		{RowID: "ooc_obtained", Label: "Out of charge obtained", Type: kpi.RowTypeNumeric},
		{RowID: "queries_resolved", Label: "Customs queries resolved", Type: kpi.RowTypeNumeric},
		{RowID: "dsr_sent", Label: "Daily status report sent", Type: kpi.RowTypeCheckbox},
	}
}
