package terminal

import (
	"io"
	"os"

	"github.com/edec-tools/peppol-reporting/pkg/terminal/commands"
	"github.com/edec-tools/peppol-reporting/pkg/terminal/export"

	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry backend.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry backend.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peppol-reporting",
		Short: "Peppol transaction statistics reporting tool",
	}

	cmd.AddCommand(commands.NewGenerateCmd(cli.registry))
	cmd.AddCommand(commands.NewImportCmd(cli.registry))
	cmd.AddCommand(commands.NewSummaryCmd(cli.registry, cli.reporter))

	return cmd
}
