package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardcore-arcade/internal/platform/tui"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a save file and play",
	Long: `Start the file select screen, then play the chosen file.

File select:
  Up/Down/j/k  - Choose slot
  T            - Toggle hardcore on an empty slot
  Enter        - Continue or create the file
  Tab          - Death log
  Q            - Quit

In a level:
  D            - Die
  S            - Cycle player state
  N            - Next room
  P            - Pause (R retries, Esc saves and quits)
  Esc          - Save & quit
  C            - Back to file select
  Q/Ctrl+C     - Save & exit

Examples:
  arcade play
  arcade play --fps 30
  arcade play --db ./saves.db --config ./hardcore.yaml`,
	Run: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, "arcade")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage, the menu reports it.
		logger.Warn("could not open save database", "error", err)
		store = nil
	}

	app := tui.App{
		Store:   store,
		Config:  cfg,
		Runtime: runtimeConfig(cfg),
		Logger:  logger,
	}
	runErr := tui.Run(app)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running arcade: %v\n", runErr)
		os.Exit(1)
	}
}
