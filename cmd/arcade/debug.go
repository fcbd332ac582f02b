package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardcore-arcade/internal/debugmode"
)

var flagDebugRestore bool

var debugCmd = &cobra.Command{
	Use:   "debug [default|never|always]",
	Short: "Show or change the debug mode setting",
	Long: `Show the stored debug mode, or set it.

Hardcore runs force debug mode off and put the player's setting back when
they leave. If the arcade exits in between, the saved setting stays in the
database; --restore puts it back.

Examples:
  arcade debug
  arcade debug always
  arcade debug --restore`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDebug,
}

func init() {
	debugCmd.Flags().BoolVar(&flagDebugRestore, "restore", false, "Restore the setting saved by an interrupted hardcore run")
}

func runDebug(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, "debug")
	store := mustOpenStore()
	defer store.Close()

	settings, err := debugmode.NewStoreSettings(store)
	if err != nil {
		logger.Warn("stored debug mode is unreadable, treating it as default", "error", err)
	}

	switch {
	case flagDebugRestore:
		guard := debugmode.NewGuard(settings, logger)
		if !guard.ForcedOff() {
			fmt.Println("Nothing to restore.")
			return
		}
		if err := guard.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error restoring debug mode: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Debug mode restored to %s\n", guard.Saved())

	case len(args) == 1:
		mode, err := debugmode.Parse(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings.SetDebugMode(mode)
		if err := settings.SaveSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Debug mode set to %s\n", mode)

	default:
		fmt.Printf("Debug mode: %s\n", settings.DebugMode())
		if snap, ok := settings.Snapshot(); ok {
			fmt.Printf("Saved by an interrupted hardcore run: %s (run 'arcade debug --restore')\n", snap)
		}
	}
}
