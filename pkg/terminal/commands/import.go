package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/edec-tools/peppol-reporting/pkg/adapters"
	"github.com/edec-tools/peppol-reporting/pkg/models/api"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"

	"github.com/spf13/cobra"
)

type ImportCmd struct {
	configPath     string
	propertiesPath string
	filePath       string
	registry       backend.Registry
}

func NewImportCmd(registry backend.Registry) *cobra.Command {
	ic := &ImportCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import reporting items from a JSON lines file",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.configPath, "config", "", "Path to the reporting config file")
	cmd.Flags().StringVar(&ic.propertiesPath, "properties", "", "Path to an application.properties overrides file")
	cmd.Flags().StringVar(&ic.filePath, "file", "", "Path to a file with one JSON reporting item per line")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	file, err := os.Open(ic.filePath)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, store, err := openStore(ic.registry, ic.configPath, ic.propertiesPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imported := 0
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		var payload api.ReportingItem
		if err := json.Unmarshal(text, &payload); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		item, err := adapters.MapReportingItemApiToDomain(payload)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if err := store.StoreItem(ctx, item); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d reporting items\n", imported)
	return nil
}
