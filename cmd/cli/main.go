package main

import (
	"fmt"
	"os"

	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
	"github.com/edec-tools/peppol-reporting/pkg/store/memory"
	"github.com/edec-tools/peppol-reporting/pkg/store/redisdb"
	"github.com/edec-tools/peppol-reporting/pkg/store/sqldb"
	"github.com/edec-tools/peppol-reporting/pkg/terminal"
)

func main() {
	registry, err := backend.NewRegistry(map[string]backend.Factory{
		"memory":   memory.Factory,
		"sqlite":   sqldb.SQLiteFactory,
		"postgres": sqldb.PostgresFactory,
		"redis":    redisdb.Factory,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
