package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studybuddyai/studybuddy/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a student profile",
	Long:  "Removes the stored learner model for a student. Session history and audit events are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("refusing to delete profile %q without --yes", studentID)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		if err := st.Profiles().Delete(context.Background(), studentID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		fmt.Printf("Profile %q deleted.\n", studentID)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("student", "default", "Student profile to delete")
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
