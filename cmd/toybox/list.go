package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered simulation with its legal actions.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Actions")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "-------")

	for _, g := range games {
		actions := "?"
		if sim, err := registry.Create(g.ID, simOptions()); err == nil {
			actions = fmt.Sprintf("%d", len(sim.LegalActions()))
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.ID, g.Title, actions)
	}

	fmt.Println()
	fmt.Println("Run 'toybox play <id>' to play a game.")
}
