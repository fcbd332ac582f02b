package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List save slots",
	Long:  `Shows every save slot with its file name, death count and mode.`,
	Run:   runSlots,
}

func runSlots(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, "slots")
	store := mustOpenStore()
	defer store.Close()

	files, err := store.Files()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading save files: %v\n", err)
		os.Exit(1)
	}
	bySlot := make(map[int]storage.SaveFile, len(files))
	for _, f := range files {
		bySlot[f.Slot] = f
	}

	hc := newContext(store, cfg, logger)

	fmt.Println("Save slots:")
	fmt.Println()
	fmt.Printf("  %-4s  %-12s  %-6s  %-10s  %s\n", "Slot", "Name", "Deaths", "Mode", "Room")
	fmt.Printf("  %-4s  %-12s  %-6s  %-10s  %s\n", "----", "----", "------", "----", "----")

	for slot := 0; slot < cfg.Gameplay.Slots; slot++ {
		f, ok := bySlot[slot]
		if !ok {
			fmt.Printf("  %-4d  %-12s  %-6s  %-10s  %s\n", slot, "-", "-", "empty", "-")
			continue
		}

		mode := "normal"
		switch {
		case hc.IsHardcoreFile(slot):
			mode = "HARDCORE"
		case f.AssistMode:
			mode = "assist"
		}
		fmt.Printf("  %-4d  %-12s  %-6d  %-10s  %d/%s\n", slot, f.Name, f.Deaths, mode, f.AreaID, f.Level)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play' to pick a file.")
}
