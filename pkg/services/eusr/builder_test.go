package eusr

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

func TestBuilder_MonthlyReport(t *testing.T) {
	list, err := NewItemList(
		testItem(t, domain.DirectionReceiving, "DT1", "PR1", "FI", "u1"),
		testItem(t, domain.DirectionReceiving, "DT1", "PR1", "DE", "u2"),
	)
	require.NoError(t, err)

	report, err := NewBuilder().
		MonthOf(time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)).
		ReporterID("POP000001").
		Items(list).
		Build()
	require.NoError(t, err)

	assert.Equal(t, CustomizationID, report.CustomizationID)
	assert.Equal(t, ProfileID, report.ProfileID)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), report.Header.ReportPeriod.StartDate)
	assert.Equal(t, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), report.Header.ReportPeriod.EndDate)
	assert.Equal(t, domain.ServiceProviderIDScheme, report.Header.ReporterID.SchemeID)
	assert.Equal(t, big.NewInt(2), report.FullSet.ReceivingEndUsers)
	assert.NotEmpty(t, report.Subsets)
}

func TestBuilder_EmptyListBuilds(t *testing.T) {
	list, err := NewItemList()
	require.NoError(t, err)

	report, err := NewBuilder().
		MonthOf(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)).
		ReporterID("POP000001").
		Items(list).
		Build()
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(0), report.FullSet.SendingEndUsers)
	assert.Equal(t, big.NewInt(0), report.FullSet.SendingOrReceivingEndUsers)
	assert.Empty(t, report.Subsets)
}

func TestBuilder_IncompleteConfiguration(t *testing.T) {
	var buf bytes.Buffer

	b := NewBuilder().
		MonthOf(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)).
		ReporterID("POP000001").
		Logger(zerolog.New(&buf))

	assert.Equal(t, b.IsComplete(false), b.IsComplete(true))
	assert.Contains(t, buf.String(), "reporting item list is missing")

	report, err := b.Build()
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, domain.ErrIncompleteConfiguration))
}
