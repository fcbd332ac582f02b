package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

var flagNewHardcore bool

var newCmd = &cobra.Command{
	Use:   "new <slot> [name]",
	Short: "Create a save file",
	Long: `Create a save file in an empty slot.

With --hardcore the file is a hardcore file: assist mode is locked off and
the first qualifying death deletes it. The mode of a file is fixed once it
exists.

Examples:
  arcade new 0
  arcade new 1 Theo --hardcore`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runNew,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save file",
	Long: `Delete the save file in a slot, as the file select's delete option does.

Examples:
  arcade delete 2`,
	Args: cobra.ExactArgs(1),
	Run:  runDelete,
}

func init() {
	newCmd.Flags().BoolVar(&flagNewHardcore, "hardcore", false, "Create a hardcore file")
}

func runNew(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, "new")
	slot := parseSlot(args[0], cfg)
	name := "Madeline"
	if len(args) > 1 {
		name = args[1]
	}

	store := mustOpenStore()
	defer store.Close()

	if store.FileExists(slot) {
		fmt.Fprintf(os.Stderr, "Error: slot %d already holds a file\n", slot)
		os.Exit(1)
	}

	hc := newContext(store, cfg, logger)
	hc.OnSlotSelected(slot, false)
	if flagNewHardcore {
		hc.ToggleNewFile(slot)
	}

	if err := store.CreateFile(slot, name); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}
	if err := hc.OnNewGame(slot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mode := "normal"
	if hc.IsHardcoreFile(slot) {
		mode = "hardcore"
	}
	fmt.Printf("Created %s file %q in slot %d\n", mode, name, slot)
}

func runDelete(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, "delete")
	slot := parseSlot(args[0], cfg)

	store := mustOpenStore()
	defer store.Close()

	hc := newContext(store, cfg, logger)
	if err := hc.Registry().DeleteFile(slot); err != nil {
		if errors.Is(err, storage.ErrNoSuchFile) {
			fmt.Fprintf(os.Stderr, "Error: slot %d is empty\n", slot)
		} else {
			fmt.Fprintf(os.Stderr, "Error deleting file: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Deleted the file in slot %d\n", slot)
}
