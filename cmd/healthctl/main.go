package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "healthctl",
		Short:        "Operator tool for the smart healthcare services",
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(checkCmd())
	return root
}
