package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/config"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/logging"
	"github.com/litescript/ls-zodiac/internal/state"
	"github.com/litescript/ls-zodiac/internal/ui"
	"github.com/litescript/ls-zodiac/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "ls-zodiac",
	Short:   "Terminal zodiac wheel with true-sky and traditional signs",
	Long:    "ls-zodiac draws the Sun, Moon and classical planets on a zodiac wheel and animates between the true-sky constellation boundaries and the traditional 30° signs.",
	Version: version.Version,
	RunE:    runTUI,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// configReadErr is set when a config file exists but cannot be read.
var configReadErr error

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default ~/"+config.FileName+")")
	pf.String("convention", "", "zodiac convention (true, traditional)")
	pf.String("ephemeris", "", "position source (auto, precise, approximate)")
	pf.String("vsop87-dir", "", "directory holding VSOP87B planet files")
	pf.String("log-level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("convention", pf.Lookup("convention"))
	_ = viper.BindPFlag("ephemeris", pf.Lookup("ephemeris"))
	_ = viper.BindPFlag("vsop87_dir", pf.Lookup("vsop87-dir"))
	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))

	rootCmd.Flags().String("date", "", "start date (YYYY-MM-DD[ HH:MM], default now)")
}

func initConfig() {
	configReadErr = nil
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType("toml")
	} else {
		viper.SetConfigName(strings.TrimSuffix(config.FileName, ".toml"))
		viper.SetConfigType("toml")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// A missing config file is fine; built-in defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configReadErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

// loadConfig returns the merged configuration for a command.
func loadConfig() (config.Config, error) {
	if configReadErr != nil {
		return config.Config{}, configReadErr
	}
	return config.Load()
}

// newOracle builds the position oracle selected by cfg.
func newOracle(cfg config.Config, logger *logging.Logger) ephem.Oracle {
	return ephem.NewOracle(ephem.ParseMode(cfg.Ephemeris), ephem.Options{
		VSOP87Dir: cfg.VSOP87Dir,
		Logger:    logger,
	})
}

// parseWhen reads an instant from a flag. Empty means now.
func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return ui.ParseDate(s)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use `ls-zodiac chart` for text output")
	}

	var start time.Time
	if s, _ := cmd.Flags().GetString("date"); s != "" {
		if start, err = parseWhen(s); err != nil {
			return err
		}
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	stars, err := astro.DefaultStarCatalog().Select(cfg.FixedStars)
	if err != nil {
		return err
	}

	stateCfg := state.DefaultConfig()
	stateCfg.Convention = cfg.ZodiacConvention()
	stateCfg.Stars = stars
	stateCfg.Logger = logger
	stateMgr := state.NewManager(stateCfg)

	opts := ui.Options{
		State:      stateMgr,
		Oracle:     newOracle(cfg, logger),
		Transition: cfg.TransitionDuration(),
		Start:      start,
		Logger:     logger,
	}

	if path := viper.ConfigFileUsed(); path != "" {
		// Reloads are compared against the file alone so that flag and
		// environment overrides survive an unrelated edit.
		if fileCfg, err := config.LoadFile(path); err == nil {
			opts.Config = fileCfg
		}

		w, err := config.NewWatcher(path)
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else if err := w.Start(); err != nil {
			logger.Warn("config watch disabled: %v", err)
			w.Stop()
		} else {
			defer w.Stop()
			opts.ConfigChanges = w.Changes
			logger.Debug("watching %s", w.Path)
		}
	}

	logger.Info("ls-zodiac %s starting (%s, %s)", version.Version, cfg.Convention, cfg.Ephemeris)

	p := tea.NewProgram(ui.New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// openLogFile returns a logger writing to cfg.LogFile, or to ls-zodiac.log
// in the user cache directory when unset.
func openLogFile(cfg config.Config) (*logging.Logger, func(), error) {
	path := cfg.LogFile
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return logging.Discard(), func() {}, nil
		}
		path = filepath.Join(dir, "ls-zodiac", "ls-zodiac.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	logger.SetOutput(f)
	return logger, func() {
		_ = logger.Sync()
		f.Close()
	}, nil
}
