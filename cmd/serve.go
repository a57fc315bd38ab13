package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studybuddyai/studybuddy/internal/analysis"
	"github.com/studybuddyai/studybuddy/internal/llm"
	"github.com/studybuddyai/studybuddy/internal/store"
	"github.com/studybuddyai/studybuddy/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tutoring worker over stdin/stdout",
	Long: "Starts the worker process that owns the student model and serves tool\n" +
		"calls as newline-delimited JSON-RPC frames. Normally spawned by the\n" +
		"tutor command, not run by hand.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	// The judge degrades to keyword heuristics when no provider is
	// configured; the worker still serves every tool.
	var provider llm.Provider
	events, err := st.Events()
	if err == nil {
		provider, err = llm.NewProvider(cmd.Context(), llm.ConfigFromEnv(), events)
	}
	if err != nil {
		log.Warn("LLM provider unavailable, judge falls back to heuristics", zap.Error(err))
		provider = nil
	}

	cache := worker.NewProfileCache(st.Profiles(), log)
	handlers := worker.NewHandlers(cache, st.Profiles(), st.Sessions(), analysis.NewJudge(provider, log), dataDir, log)

	log.Info("worker starting", zap.String("db", dbPath), zap.String("data_dir", dataDir))
	return worker.NewServer(handlers, cache, log).Run()
}
