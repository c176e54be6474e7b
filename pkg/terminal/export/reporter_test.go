package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	period, err := domain.NewReportPeriod(
		time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err = reporter.Handle(domain.PeriodSummary{
		Period:            period,
		TotalItems:        5,
		Incoming:          2,
		Outgoing:          3,
		DistinctEndUsers:  4,
		DistinctCountries: 2,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Reporting period: 2023-06-01 to 2023-06-30")
	assert.Contains(t, out, "Reporting items: 5")
	assert.Contains(t, out, "Incoming: 2")
	assert.Contains(t, out, "Outgoing: 3")
	assert.Contains(t, out, "Distinct end users: 4")
	assert.Contains(t, out, "End user countries: 2")
}

func TestReporter_DefaultsToStdout(t *testing.T) {
	reporter := NewReporter(nil)
	assert.NotNil(t, reporter.writer)
}
