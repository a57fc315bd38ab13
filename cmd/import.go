package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studybuddyai/studybuddy/internal/flashcards"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a flashcard deck",
	Long: "Validates a JSON flashcard file and installs it as the active study\n" +
		"deck in the data directory.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		n, err := flashcards.Import(args[0], dataDir)
		if err != nil {
			return fmt.Errorf("import deck: %w", err)
		}

		fmt.Printf("Imported %d flashcards into %s\n", n, dataDir)
		return nil
	},
}
