package commands

import (
	"fmt"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
	"github.com/edec-tools/peppol-reporting/pkg/terminal/export"

	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	configPath     string
	propertiesPath string
	month          string
	registry       backend.Registry
	reporter       *export.Reporter
}

func NewSummaryCmd(registry backend.Registry, reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the counts overview of a reporting month",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.configPath, "config", "", "Path to the reporting config file")
	cmd.Flags().StringVar(&sc.propertiesPath, "properties", "", "Path to an application.properties overrides file")
	cmd.Flags().StringVar(&sc.month, "month", "", "Reporting month in YYYY-MM form")

	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	period, err := domain.ParseMonth(sc.month)
	if err != nil {
		return err
	}

	cfg, store, err := openStore(sc.registry, sc.configPath, sc.propertiesPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	generator, err := newGenerator(cfg, store)
	if err != nil {
		return err
	}

	summary, err := generator.Summary(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to build period summary: %w", err)
	}

	return sc.reporter.Handle(summary)
}
