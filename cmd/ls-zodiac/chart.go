package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/logging"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print body placements for a date without starting the TUI",
	Example: `  ls-zodiac chart --date 2024-03-21
  ls-zodiac chart --traditional --wheel
  ls-zodiac chart --format json --bodies sun,moon`,
	RunE: runChart,
}

func init() {
	f := chartCmd.Flags()
	f.String("date", "", "instant to chart (YYYY-MM-DD[ HH:MM] or RFC3339, default now)")
	f.String("format", "text", "output format (text, json, yaml)")
	f.Bool("traditional", false, "use the traditional 30° signs")
	f.Bool("wheel", false, "draw the wheel below the summary (text only)")
	f.StringSlice("bodies", nil, "bodies to chart (default all)")

	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dateFlag, _ := cmd.Flags().GetString("date")
	formatFlag, _ := cmd.Flags().GetString("format")
	traditional, _ := cmd.Flags().GetBool("traditional")
	wheel, _ := cmd.Flags().GetBool("wheel")
	bodyNames, _ := cmd.Flags().GetStringSlice("bodies")

	when, err := parseWhen(dateFlag)
	if err != nil {
		return err
	}
	format, err := chart.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	bodies := ephem.AllBodies()
	if len(bodyNames) > 0 {
		if bodies, err = ephem.ParseBodies(bodyNames); err != nil {
			return err
		}
	}
	stars, err := astro.DefaultStarCatalog().Select(cfg.FixedStars)
	if err != nil {
		return err
	}

	convention := cfg.ZodiacConvention()
	if traditional {
		convention = zodiac.ConventionTraditional
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	defer logger.Sync()

	positions, err := ephem.Sample(newOracle(cfg, logger), bodies, when)
	if err != nil {
		return fmt.Errorf("sampling positions: %w", err)
	}

	out := cmd.OutOrStdout()
	if format != chart.FormatText {
		c := chart.Build(when, convention.Table(), positions, stars)
		return chart.Export(out, c, format)
	}

	r := &chart.TextRenderer{Out: out, Stars: stars, Wheel: wheel}
	r.Render(convention.Table(), positions)
	if err := r.Err(); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}
