package eusr

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

// Identifiers mandated by the end user statistics reporting schema.
const (
	CustomizationID = "urn:fdc:peppol.eu:edec:trns:end-user-statistics-reporting:1.1"
	ProfileID       = "urn:fdc:peppol.eu:edec:bis:reporting:1.0"
)

// Builder accumulates the configuration of one end user statistics report.
// Builders are single-owner values and not safe for concurrent use.
type Builder struct {
	customizationID  string
	profileID        string
	startDate        time.Time
	endDate          time.Time
	reporterIDScheme string
	reporterID       string
	items            *ItemList
	logger           zerolog.Logger
}

// NewBuilder returns a Builder preloaded with the schema customization ID,
// profile ID and the default reporter ID scheme. Diagnostics are discarded
// until a logger is set.
func NewBuilder() *Builder {
	return &Builder{
		customizationID:  CustomizationID,
		profileID:        ProfileID,
		reporterIDScheme: domain.ServiceProviderIDScheme,
		logger:           zerolog.Nop(),
	}
}

func (b *Builder) CustomizationID(id string) *Builder {
	b.customizationID = id
	return b
}

func (b *Builder) ProfileID(id string) *Builder {
	b.profileID = id
	return b
}

// StartDate sets the first day of the reporting period. The time of day of
// t is discarded.
func (b *Builder) StartDate(t time.Time) *Builder {
	b.startDate = domain.DateOf(t)
	return b
}

// EndDate sets the last day of the reporting period. The time of day of t
// is discarded.
func (b *Builder) EndDate(t time.Time) *Builder {
	b.endDate = domain.DateOf(t)
	return b
}

// MonthOf sets the reporting period to the calendar month containing t.
func (b *Builder) MonthOf(t time.Time) *Builder {
	p := domain.MonthOf(t)
	b.startDate = p.StartDate
	b.endDate = p.EndDate
	return b
}

func (b *Builder) ReporterIDScheme(scheme string) *Builder {
	b.reporterIDScheme = scheme
	return b
}

func (b *Builder) ReporterID(id string) *Builder {
	b.reporterID = id
	return b
}

func (b *Builder) Items(items *ItemList) *Builder {
	b.items = items
	return b
}

// Logger sets the destination for the diagnostics emitted by IsComplete
// and Build.
func (b *Builder) Logger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// IsComplete reports whether every mandatory field is set and consistent.
// Checks run in a fixed order and stop at the first failure; with
// logFailures the failing field is also written to the configured logger.
// Logging never changes the result.
func (b *Builder) IsComplete(logFailures bool) bool {
	logger := b.logger
	if !logFailures {
		logger = zerolog.Nop()
	}

	if b.customizationID == "" {
		logger.Warn().Msg("customization ID is missing")
		return false
	}
	if b.profileID == "" {
		logger.Warn().Msg("profile ID is missing")
		return false
	}
	if b.startDate.IsZero() {
		logger.Warn().Msg("start date is missing")
		return false
	}
	if b.endDate.IsZero() {
		logger.Warn().Msg("end date is missing")
		return false
	}
	if b.endDate.Before(b.startDate) {
		logger.Warn().Msg("end date must not be before the start date")
		return false
	}
	if b.reporterIDScheme == "" {
		logger.Warn().Msg("reporter ID scheme is missing")
		return false
	}
	if b.reporterID == "" {
		logger.Warn().Msg("reporter ID is missing")
		return false
	}
	if b.items == nil {
		logger.Warn().Msg("reporting item list is missing")
		return false
	}

	logger.Trace().Msg("end user statistics configuration is complete")
	return true
}

// Build assembles the report from the accumulated configuration. A missing
// mandatory field fails the build without producing a partial report;
// IsComplete names the field on the configured logger.
func (b *Builder) Build() (*domain.EndUserStatisticsReport, error) {
	if !b.IsComplete(true) {
		return nil, fmt.Errorf("end user statistics report: %w", domain.ErrIncompleteConfiguration)
	}

	return &domain.EndUserStatisticsReport{
		CustomizationID: b.customizationID,
		ProfileID:       b.profileID,
		Header: domain.ReportHeader{
			ReportPeriod: domain.ReportPeriod{StartDate: b.startDate, EndDate: b.endDate},
			ReporterID:   domain.ScopedID{SchemeID: b.reporterIDScheme, Value: b.reporterID},
		},
		FullSet: b.items.FullSet(),
		Subsets: b.items.Subsets(),
	}, nil
}
