// arcade is a terminal host for hardcore mode: save files that are deleted
// the moment their player dies.
//
// Usage:
//
//	arcade slots                 - List save slots
//	arcade new <slot> [name]     - Create a save file
//	arcade delete <slot>         - Delete a save file
//	arcade play                  - Pick a file and play interactively
//	arcade classify              - Check whether a death would be hardcore
//	arcade deaths                - Show the death log
//	arcade debug [mode]          - Show or change the debug mode setting
//	arcade serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config)
//	--db <path>           - Set database path (default: ~/.arcade/hardcore.db)
//	--config <path>       - Use a custom hardcore.yaml
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
	"github.com/vovakirdan/hardcore-arcade/internal/core"
	"github.com/vovakirdan/hardcore-arcade/internal/hardcore"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Hardcore Arcade - one life per save file",
	Long: `Hardcore Arcade hosts save files in hardcore mode: a qualifying death
deletes the file for good.

Available commands:
  slots     - List save slots
  new       - Create a save file
  delete    - Delete a save file
  play      - Interactive file select and level runner
  classify  - Check whether a death would be hardcore
  deaths    - Show the death log
  debug     - Show or change the debug mode setting
  serve     - Start SSH server for remote play

Examples:
  arcade new 0 Madeline --hardcore
  arcade play
  arcade deaths --slot 0
  arcade serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/hardcore.db", "Path to save database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom hardcore config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config)")

	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(deathsCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the hardcore config, exiting on a bad custom file.
func loadConfig() config.Hardcore {
	cfg, err := config.LoadHardcore(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}
	return cfg
}

// newLogger creates the stderr logger at the flag or config level.
func newLogger(cfg config.Hardcore, prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	level := cfg.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			logger.Warn("unknown log level, using info", "level", level)
			lvl = log.InfoLevel
		}
		logger.SetLevel(lvl)
	}
	return logger
}

// mustOpenStore opens the save database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// newContext builds a hardcore context over the store for one command.
func newContext(store *storage.Store, cfg config.Hardcore, logger *log.Logger) *hardcore.Context {
	return hardcore.New(hardcore.Deps{Store: store, Logger: logger}, cfg)
}

// runtimeConfig sizes the runtime to the terminal.
func runtimeConfig(cfg config.Hardcore) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Gameplay.TickRate
	rc.TimeRate = cfg.Gameplay.SlowMotion
	return rc
}

// parseSlot converts a slot argument, checked against the configured count.
func parseSlot(arg string, cfg config.Hardcore) int {
	slot, err := strconv.Atoi(arg)
	if err != nil || slot < 0 || slot >= cfg.Gameplay.Slots {
		fmt.Fprintf(os.Stderr, "Error: slot must be between 0 and %d, got %q\n", cfg.Gameplay.Slots-1, arg)
		os.Exit(1)
	}
	return slot
}
