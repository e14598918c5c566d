package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "time/tzdata"
)

var (
	Version    = "dev"
	configPath string
)

func main() {
	root := &cobra.Command{
		Use:     "booking-server",
		Short:   "Doctor appointment booking API",
		Version: Version,
		RunE:    runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")

	root.AddCommand(serveCmd, migrateCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
