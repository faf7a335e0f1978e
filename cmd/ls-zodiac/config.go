package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-zodiac/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ls-zodiac config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the built-in defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("locating home directory: %w", err)
			}
		}
		force, _ := cmd.Flags().GetBool("force")

		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "convention     %s\n", cfg.Convention)
		fmt.Fprintf(out, "transition_ms  %d\n", cfg.TransitionMS)
		fmt.Fprintf(out, "ephemeris      %s\n", cfg.Ephemeris)
		fmt.Fprintf(out, "vsop87_dir     %s\n", cfg.VSOP87Dir)
		fmt.Fprintf(out, "fixed_stars    %v\n", cfg.FixedStars)
		fmt.Fprintf(out, "log_level      %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_file       %s\n", cfg.LogFile)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
