package backend

import (
	"context"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

// Filter bounds a read to one reporting period, optionally narrowed to the
// items recorded for a single service provider.
type Filter struct {
	Period domain.ReportPeriod

	// ServiceProviderID keeps only items whose reporting side carries this
	// identifier. Empty means no scoping.
	ServiceProviderID string
}

// Matches reports whether the item falls inside the filter.
func (f Filter) Matches(item domain.ReportingItem) bool {
	if !f.Period.Contains(item.ExchangeTime()) {
		return false
	}
	if f.ServiceProviderID != "" && item.ReportingServiceProvider().Value != f.ServiceProviderID {
		return false
	}
	return true
}

// Store persists reporting items and streams them back per period. The
// report builders never touch a Store themselves; callers materialize the
// period first and hand the batch over.
type Store interface {
	// StoreItem persists one validated reporting item.
	StoreItem(ctx context.Context, item domain.ReportingItem) error

	// ForEachItem invokes fn for every item matching the filter, in the
	// backend's stable order. An error from fn aborts the scan.
	ForEachItem(ctx context.Context, f Filter, fn func(domain.ReportingItem) error) error

	Close() error
}

// LoadItems materializes a filtered scan into a slice.
func LoadItems(ctx context.Context, s Store, f Filter) ([]domain.ReportingItem, error) {
	var items []domain.ReportingItem
	err := s.ForEachItem(ctx, f, func(item domain.ReportingItem) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
