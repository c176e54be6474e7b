package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

// Reporter outputs period summaries to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(summary domain.PeriodSummary) error {
	tmpl := `
Reporting period: {{.Period.StartDate.Format "2006-01-02"}} to {{.Period.EndDate.Format "2006-01-02"}}

Reporting items: {{.TotalItems}}
  Incoming: {{.Incoming}}
  Outgoing: {{.Outgoing}}

Distinct end users: {{.DistinctEndUsers}}
End user countries: {{.DistinctCountries}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}
