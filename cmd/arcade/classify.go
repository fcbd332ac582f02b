package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardcore-arcade/internal/death"
)

var (
	flagLevelSet   string
	flagArea       int
	flagLevel      string
	flagState      string
	flagGateOff    bool
	flagListStates bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Check whether a death would be hardcore",
	Long: `Classify a death the way a hardcore file would see it, and name the
rule that decided.

Examples:
  arcade classify --level a-02 --state dash
  arcade classify --area 10 --level j-17
  arcade classify --state intro-walk
  arcade classify --states`,
	Run: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&flagLevelSet, "level-set", "Celeste", "Level set of the area")
	classifyCmd.Flags().IntVar(&flagArea, "area", 1, "Area number")
	classifyCmd.Flags().StringVar(&flagLevel, "level", "a-00", "Room name")
	classifyCmd.Flags().StringVar(&flagState, "state", "normal", "Player state at death")
	classifyCmd.Flags().BoolVar(&flagGateOff, "normal-file", false, "Classify for a normal (non-hardcore) file")
	classifyCmd.Flags().BoolVar(&flagListStates, "states", false, "List player states and exit")
}

func runClassify(cmd *cobra.Command, args []string) {
	if flagListStates {
		for _, s := range death.States() {
			marker := ""
			if death.IsNoControl(s) {
				marker = "  (no control)"
			}
			fmt.Printf("  %s%s\n", s, marker)
		}
		return
	}

	state, err := death.ParseState(flagState)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arcade classify --states' to see player states.")
		os.Exit(1)
	}

	ctx := death.Context{
		HardcoreEnabled: !flagGateOff,
		LevelSetID:      flagLevelSet,
		AreaID:          flagArea,
		LevelID:         flagLevel,
		PlayerState:     state,
	}

	classifier := death.DefaultClassifier()
	hardcore, reason := classifier.Verdict(ctx)

	fmt.Printf("Death in %s/%d/%s while %s\n", ctx.LevelSetID, ctx.AreaID, ctx.LevelID, ctx.PlayerState)
	if hardcore {
		fmt.Println("Verdict: HARDCORE - the file would be deleted")
		return
	}
	fmt.Printf("Verdict: spared (%s)\n", reason)
	fmt.Println()
	fmt.Println("Exemptions, in order:")
	for _, name := range classifier.Exemptions() {
		fmt.Printf("  %s\n", name)
	}
}
