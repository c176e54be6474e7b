package commands

import (
	"fmt"
	"os"

	"github.com/edec-tools/peppol-reporting/pkg/export"
	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"

	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	configPath     string
	propertiesPath string
	report         string
	month          string
	outPath        string
	registry       backend.Registry
}

func NewGenerateCmd(registry backend.Registry) *cobra.Command {
	gc := &GenerateCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a periodic report as XML",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.configPath, "config", "", "Path to the reporting config file")
	cmd.Flags().StringVar(&gc.propertiesPath, "properties", "", "Path to an application.properties overrides file")
	cmd.Flags().StringVar(&gc.report, "report", "tsr", "Report to generate (tsr or eusr)")
	cmd.Flags().StringVar(&gc.month, "month", "", "Reporting month in YYYY-MM form")
	cmd.Flags().StringVar(&gc.outPath, "out", "", "Output file (defaults to stdout)")

	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	period, err := domain.ParseMonth(gc.month)
	if err != nil {
		return err
	}

	cfg, store, err := openStore(gc.registry, gc.configPath, gc.propertiesPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	generator, err := newGenerator(cfg, store)
	if err != nil {
		return err
	}

	var payload []byte
	switch gc.report {
	case "tsr":
		report, err := generator.TransactionStatistics(ctx, period)
		if err != nil {
			return fmt.Errorf("failed to build transaction statistics report: %w", err)
		}
		payload, err = export.TransactionStatisticsXML(report)
		if err != nil {
			return err
		}
	case "eusr":
		report, err := generator.EndUserStatistics(ctx, period)
		if err != nil {
			return fmt.Errorf("failed to build end user statistics report: %w", err)
		}
		payload, err = export.EndUserStatisticsXML(report)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown report type %q. Supported types: tsr, eusr", gc.report)
	}

	if gc.outPath == "" {
		_, err = cmd.OutOrStdout().Write(payload)
		return err
	}
	return os.WriteFile(gc.outPath, payload, 0o644)
}
