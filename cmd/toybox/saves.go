package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagDeleteSave string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List or delete saved games",
	Long: `Saved games are written by F5 in the terminal client and by the
save commands of the WebSocket and MCP transports.

Examples:
  toybox saves
  toybox saves --delete quicksave`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSave, "delete", "", "Delete the named save")
}

func runSaves(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	if flagDeleteSave != "" {
		if err := store.DeleteSave(flagDeleteSave); err != nil {
			fatal("deleting %q: %v", flagDeleteSave, err)
		}
		fmt.Printf("Deleted %s.\n", flagDeleteSave)
		return
	}

	saves, err := store.ListSaves()
	if err != nil {
		fatal("listing saves: %v", err)
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, s := range saves {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, "Name", "Game", "Updated")
	fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, "----", "----", "-------")
	for _, s := range saves {
		fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, s.Name, s.GameID, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Resume one with 'toybox play --load <name>'.")
}
