package commands

import (
	"fmt"

	"github.com/edec-tools/peppol-reporting/pkg/services/config"
	"github.com/edec-tools/peppol-reporting/pkg/services/reports"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

// openStore resolves the effective configuration and opens the selected
// storage backend. The caller owns the returned store.
func openStore(registry backend.Registry, configPath, propertiesPath string) (*config.Config, backend.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if propertiesPath != "" {
		if err := config.ApplyProperties(cfg, propertiesPath); err != nil {
			return nil, nil, err
		}
	}

	store, err := registry.Open(cfg.Backend)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %q backend: %w", cfg.Backend.Type, err)
	}
	return cfg, store, nil
}

func newGenerator(cfg *config.Config, store backend.Store) (*reports.Generator, error) {
	return reports.NewGenerator(reports.Config{
		Store:    store,
		Reporter: cfg.ReporterID(),
	})
}
