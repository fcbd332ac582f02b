package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDeathSlot  int
	flagDeathLimit int
)

var deathsCmd = &cobra.Command{
	Use:   "deaths",
	Short: "Show the death log",
	Long: `Display the most recent deaths, newest first, with what each one cost.

Examples:
  arcade deaths
  arcade deaths --slot 1 --limit 50`,
	Run: runDeaths,
}

func init() {
	deathsCmd.Flags().IntVar(&flagDeathSlot, "slot", -1, "Only show deaths in this slot (-1 = all)")
	deathsCmd.Flags().IntVar(&flagDeathLimit, "limit", 20, "Number of deaths to show")
}

func runDeaths(cmd *cobra.Command, args []string) {
	store := mustOpenStore()

	deaths, err := store.RecentDeaths(flagDeathSlot, flagDeathLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving deaths: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("Death Log")
	fmt.Println()

	if len(deaths) == 0 {
		fmt.Println("No deaths recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-4s  %-18s  %-14s  %s\n", "Date", "Slot", "Room", "State", "Outcome")
	fmt.Printf("  %-16s  %-4s  %-18s  %-14s  %s\n", "----", "----", "----", "-----", "-------")

	var deleted int
	for _, d := range deaths {
		outcome := "-"
		switch {
		case d.Deleted:
			outcome = "file deleted"
			deleted++
		case d.Hardcore:
			outcome = "deletion failed"
		case d.Reason != "":
			outcome = "spared: " + d.Reason
		}
		room := fmt.Sprintf("%s/%d/%s", d.LevelSet, d.AreaID, d.Level)
		fmt.Printf("  %-16s  %-4d  %-18s  %-14s  %s\n",
			d.CreatedAt.Format("2006-01-02 15:04"), d.Slot, room, d.PlayerState, outcome)
	}

	fmt.Println()
	fmt.Printf("Files lost: %d\n", deleted)
}
