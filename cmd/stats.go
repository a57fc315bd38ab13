package cmd

import (
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/studybuddyai/studybuddy/internal/store"
)

var (
	statsTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	statsLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
	statsDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		s, err := st.Profiles().Get(ctx, studentID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if s == nil {
			fmt.Println(statsDim.Render(fmt.Sprintf("No profile found for %q. Run a session first.", studentID)))
			return nil
		}

		fmt.Println(statsTitle.Render("Student Profile: " + s.ID))
		fmt.Printf("  %s %.1f%%\n", statsLabel.Render("Knowledge Level:"), s.Cognitive.KnowledgeLevel*100)
		fmt.Printf("  %s %.1f%%\n", statsLabel.Render("Engagement:"), s.Affective.Engagement*100)
		fmt.Printf("  %s %.1f%%\n", statsLabel.Render("Motivation:"), s.Affective.Motivation*100)
		fmt.Printf("  %s %d\n", statsLabel.Render("Sessions:"), s.SessionCount)
		fmt.Printf("  %s %.1f minutes\n", statsLabel.Render("Total Study Time:"), s.TotalStudyTime)
		fmt.Printf("  %s %d/%d", statsLabel.Render("Answers:"), s.Cognitive.CorrectCount, s.Cognitive.TotalCount)
		if s.Cognitive.TotalCount > 0 {
			fmt.Printf(" (%.0f%%)", s.Cognitive.Accuracy()*100)
		}
		fmt.Println()
		if len(s.Cognitive.Mastered) > 0 {
			fmt.Printf("  %s %s\n", statsLabel.Render("Mastered:"), strings.Join(s.Cognitive.Mastered, ", "))
		}
		if len(s.Cognitive.Struggling) > 0 {
			fmt.Printf("  %s %s\n", statsLabel.Render("Struggling:"), strings.Join(s.Cognitive.Struggling, ", "))
		}
		if len(s.LearningGoals) > 0 {
			fmt.Printf("  %s %s\n", statsLabel.Render("Goals:"), strings.Join(s.LearningGoals, "; "))
		}

		sessions, err := st.Sessions().History(ctx, studentID, 5)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(sessions) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println(statsTitle.Render("Recent Sessions"))
		for _, sess := range sessions {
			fmt.Printf("  %s  %.1f min, %d/%d correct\n",
				statsDim.Render(sess.StartedAt.Local().Format("2006-01-02 15:04")),
				sess.DurationMinutes,
				sess.QuestionsCorrect,
				sess.QuestionsAsked,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("student", "default", "Student profile to show")
}
