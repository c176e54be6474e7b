package reports

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/services/eusr"
	"github.com/edec-tools/peppol-reporting/pkg/services/tsr"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

// Config wires a Generator to its storage backend and the identity of the
// service provider the reports are submitted for.
type Config struct {
	Store    backend.Store
	Reporter domain.ScopedID

	// ScopeToReporter restricts loads to items recorded for the reporter,
	// for backends shared by several service providers.
	ScopeToReporter bool
}

// Generator materializes one reporting period from the backend and builds
// the periodic reports of a single service provider.
type Generator struct {
	store    backend.Store
	reporter domain.ScopedID
	scoped   bool
}

func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("storage backend is required")
	}
	if cfg.Reporter.Value == "" {
		return nil, fmt.Errorf("reporter ID is required")
	}
	reporter := cfg.Reporter
	if reporter.SchemeID == "" {
		reporter.SchemeID = domain.ServiceProviderIDScheme
	}
	return &Generator{
		store:    cfg.Store,
		reporter: reporter,
		scoped:   cfg.ScopeToReporter,
	}, nil
}

func (g *Generator) load(ctx context.Context, period domain.ReportPeriod) ([]domain.ReportingItem, error) {
	f := backend.Filter{Period: period}
	if g.scoped {
		f.ServiceProviderID = g.reporter.Value
	}

	items, err := backend.LoadItems(ctx, g.store, f)
	if err != nil {
		return nil, fmt.Errorf("load reporting items for %s: %w", period, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("period", period.String()).
		Int("items", len(items)).
		Msg("reporting items loaded")
	return items, nil
}

// TransactionStatistics builds the TSR for the period.
func (g *Generator) TransactionStatistics(ctx context.Context, period domain.ReportPeriod) (*domain.TransactionStatisticsReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	items, err := g.load(ctx, period)
	if err != nil {
		return nil, err
	}

	list, err := tsr.NewItemList(items...)
	if err != nil {
		return nil, err
	}
	return tsr.NewBuilder().
		StartDate(period.StartDate).
		EndDate(period.EndDate).
		ReporterIDScheme(g.reporter.SchemeID).
		ReporterID(g.reporter.Value).
		Items(list).
		Logger(*zerolog.Ctx(ctx)).
		Build()
}

// EndUserStatistics builds the EUSR for the period.
func (g *Generator) EndUserStatistics(ctx context.Context, period domain.ReportPeriod) (*domain.EndUserStatisticsReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	items, err := g.load(ctx, period)
	if err != nil {
		return nil, err
	}

	list, err := eusr.NewItemList(items...)
	if err != nil {
		return nil, err
	}
	return eusr.NewBuilder().
		StartDate(period.StartDate).
		EndDate(period.EndDate).
		ReporterIDScheme(g.reporter.SchemeID).
		ReporterID(g.reporter.Value).
		Items(list).
		Logger(*zerolog.Ctx(ctx)).
		Build()
}

// Summary computes the operational overview of the period.
func (g *Generator) Summary(ctx context.Context, period domain.ReportPeriod) (domain.PeriodSummary, error) {
	if err := period.Validate(); err != nil {
		return domain.PeriodSummary{}, err
	}
	items, err := g.load(ctx, period)
	if err != nil {
		return domain.PeriodSummary{}, err
	}

	messages, err := tsr.NewItemList(items...)
	if err != nil {
		return domain.PeriodSummary{}, err
	}
	users, err := eusr.NewItemList(items...)
	if err != nil {
		return domain.PeriodSummary{}, err
	}

	countries := make(map[string]struct{})
	for _, item := range items {
		countries[item.EndUserCountry()] = struct{}{}
	}

	return domain.PeriodSummary{
		Period:            period,
		TotalItems:        int64(len(items)),
		Incoming:          messages.TotalIncomingCount(),
		Outgoing:          messages.TotalOutgoingCount(),
		DistinctEndUsers:  users.SendingOrReceivingEndUserCount(),
		DistinctCountries: int64(len(countries)),
	}, nil
}
