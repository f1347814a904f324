package cmd

import (
	"fmt"

	"github.com/rkapur/pathwise/internal/app"
	"github.com/rkapur/pathwise/internal/journey"
	"github.com/rkapur/pathwise/internal/llm"
	"github.com/rkapur/pathwise/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("no LLM provider configured: %w\n\nSet one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY", err)
	}

	return app.Run(app.Options{
		Provider:  provider,
		EventRepo: eventRepo,
		Config:    journey.DefaultConfig(),
	})
}
