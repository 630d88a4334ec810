package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "status-dashboard",
		Short:         "Station status chart renderer",
		Long:          `Renders Missing/Partial/Complete/No Signal bar charts into dashboard pages, as SVG or PNG, for left-to-right and right-to-left layouts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(chartCmd())
	cmd.AddCommand(sampleCmd())
	return cmd
}
