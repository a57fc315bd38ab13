package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/studybuddyai/studybuddy/internal/llm"
	"github.com/studybuddyai/studybuddy/internal/mcp"
	"github.com/studybuddyai/studybuddy/internal/store"
	"github.com/studybuddyai/studybuddy/internal/tutor"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Start an interactive study session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTutor(cmd)
	},
}

func init() {
	tutorCmd.Flags().String("student", "default", "Student profile to study as")
	tutorCmd.Flags().StringArray("goal", nil, "Learning goal (repeatable)")
}

// runTutor spawns the worker under supervision and drives a study session
// through it.
func runTutor(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	workerArgs := []string{"serve"}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		workerArgs = append(workerArgs, "--db", dbPath)
	}

	sup, err := mcp.StartSupervisor(ctx, log, exe, workerArgs...)
	if err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	defer sup.Close()

	// The client audits its own LLM traffic in the shared database. WAL
	// mode keeps the two processes from blocking each other.
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	events, err := st.Events()
	if err != nil {
		return fmt.Errorf("events repo: %w", err)
	}
	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), events)
	if err != nil {
		return fmt.Errorf("configure LLM provider: %w", err)
	}

	studentID, _ := cmd.Flags().GetString("student")
	goals, _ := cmd.Flags().GetStringArray("goal")

	loop := tutor.New(
		sup,
		provider,
		tutor.NewLineTranscriber(os.Stdin, os.Stdout),
		os.Stdout,
		tutor.Config{StudentID: studentID, Goals: goals},
		log,
	)
	return loop.Run(ctx)
}
