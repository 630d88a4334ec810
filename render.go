package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"status-dashboard/charting"
	"status-dashboard/dashboard"
)

func renderCmd() *cobra.Command {
	var (
		inPath, outPath string
		dir             string
		opts            = dashboard.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every chart container of an HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "auto" {
				opts.AutoDirection = true
			} else {
				d, err := charting.ParseDirection(dir)
				if err != nil {
					return err
				}
				opts.Direction = d
			}

			in := cmd.InOrStdin()
			if inPath != "" && inPath != "-" {
				f, err := os.Open(inPath)
				if err != nil {
					return fmt.Errorf("failed to open page: %w", err)
				}
				defer f.Close()
				in = f
			}

			var out bytes.Buffer
			report, err := dashboard.RenderPage(in, &out, opts)
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), outPath, out.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %d/%d charts (%s)\n", report.Rendered, report.Containers, report.Direction)
			for _, f := range report.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "  chart %d: %s\n", f.Index, f.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "-", "Input HTML page (- for stdin)")
	cmd.Flags().StringVar(&outPath, "out", "-", "Output HTML page (- for stdout)")
	cmd.Flags().StringVar(&dir, "dir", "ltr", "Direction: ltr, rtl or auto (read <html dir>)")
	cmd.Flags().StringVar(&opts.MarkerClass, "marker-class", dashboard.DefaultMarkerClass, "Class marking chart containers")
	cmd.Flags().StringVar(&opts.DataAttribute, "data-attribute", dashboard.DefaultDataAttribute, "Attribute holding the chart payload")
	return cmd
}

func chartCmd() *cobra.Command {
	var dir, format, outPath string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a single chart payload read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := charting.ParseDirection(dir)
			if err != nil {
				return err
			}
			f, err := charting.ParseFormat(format)
			if err != nil {
				return err
			}

			payload, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}
			in, err := charting.ParseInput(payload)
			if err != nil {
				return err
			}

			data, err := charting.NewGenerator().Generate(in, d, f)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outPath, data)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "ltr", "Direction: ltr or rtl")
	cmd.Flags().StringVar(&format, "format", "svg", "Output format: svg or png")
	cmd.Flags().StringVar(&outPath, "out", "-", "Output file (- for stdout)")
	return cmd
}

func sampleCmd() *cobra.Command {
	var (
		cfg     = dashboard.DefaultSampleConfig()
		dir     string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample dashboard page with chart containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := charting.ParseDirection(dir)
			if err != nil {
				return err
			}
			cfg.Direction = d

			page, err := dashboard.SamplePage(cfg)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outPath, page)
		},
	}

	cmd.Flags().IntVar(&cfg.Charts, "count", cfg.Charts, "Number of chart containers")
	cmd.Flags().IntVar(&cfg.Stations, "stations", cfg.Stations, "Stations counted per chart")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	cmd.Flags().StringVar(&dir, "dir", "ltr", "Page direction written to <html dir>")
	cmd.Flags().StringVar(&outPath, "out", "-", "Output file (- for stdout)")
	return cmd
}

// writeOutput writes to path, or to w when path is "" or "-"
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
