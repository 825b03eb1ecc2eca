package cmd

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethanolivertroy/nist-grc/internal/agent"
	"github.com/ethanolivertroy/nist-grc/internal/chat"
	"github.com/ethanolivertroy/nist-grc/internal/llm"
)

// RunAgent runs the agent mode - interactive chat TUI if no args, one-shot
// query if args are provided.
func RunAgent(dataDir string, args []string) error {
	// Validate LLM config
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		provider := cfg.Provider
		if provider == "" {
			provider = "gemini"
		}
		if provider == "gemini" {
			return fmt.Errorf("LLM configuration error: %w\n\nFor Gemini, set:\n  export GEMINI_API_KEY=your-api-key\n\nFor Ollama (local), set:\n  export LLM_PROVIDER=ollama", err)
		}
		return fmt.Errorf("LLM configuration error: %w", err)
	}

	store, err := LoadStore(dataDir)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Create the agent
	fmt.Printf("Initializing GRC agent (%s/%s)...\n", cfg.Provider, cfg.Model)
	grcAgent, err := agent.NewWithConfig(ctx, store, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	// If args provided, run one-shot query (no TUI)
	if len(args) > 0 {
		query := strings.Join(args, " ")
		if query == "" {
			return fmt.Errorf("query cannot be empty")
		}
		fmt.Printf("Query: %s\n\n", query)
		response, err := grcAgent.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		fmt.Println(response)
		return nil
	}

	// Interactive mode - use Bubble Tea TUI
	model := chat.NewModel(ctx, grcAgent)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
