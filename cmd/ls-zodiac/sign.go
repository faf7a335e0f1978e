package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-zodiac/internal/zodiac"
)

var signCmd = &cobra.Command{
	Use:   "sign <longitude>",
	Short: "Classify an ecliptic longitude in both conventions",
	Long:  "Classify an ecliptic longitude in both conventions. Any real value is accepted and wrapped into [0, 360), including negative ones.",
	Example: `  ls-zodiac sign 355
  ls-zodiac sign -5`,

	// Flag parsing would read a negative longitude as a shorthand flag.
	DisableFlagParsing: true,
	Args: func(cmd *cobra.Command, args []string) error {
		return cobra.ExactArgs(1)(cmd, signArgs(args))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		args = signArgs(args)
		if args[0] == "-h" || args[0] == "--help" {
			return cmd.Help()
		}

		lon, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("longitude %q: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		for _, conv := range []zodiac.Convention{zodiac.ConventionTrue, zodiac.ConventionTraditional} {
			c := zodiac.Classify(lon, conv.Table())
			flag := ""
			if c.Degraded {
				flag = " ?"
			}
			fmt.Fprintf(out, "%-12s %s %-12s %6.2f° into sign [%.1f°–%.1f°)%s\n",
				conv, c.Sign.Glyph, c.Sign.Name, c.Sign.DegreesInto(c.Longitude),
				c.Sign.Start, c.Sign.End, flag)
		}
		return nil
	},
}

// signArgs drops a leading "--" separator.
func signArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

func init() {
	rootCmd.AddCommand(signCmd)
}
