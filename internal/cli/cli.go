package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cnaples79/ai-calendar/internal/assistant"
	"github.com/cnaples79/ai-calendar/internal/config"
	"github.com/cnaples79/ai-calendar/internal/logger"
	"github.com/cnaples79/ai-calendar/internal/openrouter"
	"github.com/cnaples79/ai-calendar/internal/store"
)

var (
	flagConfig  string
	flagAPIKey  string
	flagModel   string
	flagBaseURL string
	flagOnce    string
	flagSeed    bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai-calendar",
		Short: "Manage your calendar by chatting with an AI assistant",
		Long: `An AI-powered calendar you talk to.
Messages go to a language model that either chats back or manages
your events (create, look up, update, delete). Events live in memory
for the session; use /export to save them as an .ics file.`,
		RunE:         runChat,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", defaultConfigPath(), "Path to the YAML config file")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "OpenRouter API key (or env: OPENROUTER_API_KEY)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model identifier (overrides config)")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides config)")
	cmd.Flags().StringVar(&flagOnce, "once", "", "Send a single message and exit")
	cmd.Flags().BoolVar(&flagSeed, "seed", false, "Start with a couple of demo events")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	env, err := resolveEnv(cfg)
	if err != nil {
		return err
	}

	client, err := openrouter.NewClient(env, cfg.SystemPrompt)
	if err != nil {
		return fmt.Errorf("initializing model client: %w", err)
	}

	st := store.New()
	if flagSeed {
		seed(st)
	}
	asst := assistant.New(client, st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagOnce != "" {
		printReply(os.Stdout, asst.HandleMessage(ctx, flagOnce))
		return nil
	}
	return runREPL(ctx, asst, st)
}

// resolveEnv merges flags, OPENROUTER_* environment variables, and the
// config file, in that order of precedence.
func resolveEnv(cfg *config.Config) (*openrouter.Env, error) {
	env, err := openrouter.LoadEnv()
	if err != nil {
		return nil, err
	}

	if env.Model == "" {
		env.Model = cfg.Model
	}
	if env.BaseURL == "" {
		env.BaseURL = cfg.BaseURL
	}
	if flagAPIKey != "" {
		env.APIKey = flagAPIKey
	}
	if flagModel != "" {
		env.Model = flagModel
	}
	if flagBaseURL != "" {
		env.BaseURL = flagBaseURL
	}

	if env.APIKey == "" {
		return nil, fmt.Errorf("an OpenRouter API key is required (use --api-key or OPENROUTER_API_KEY)")
	}
	return env, nil
}

func runREPL(ctx context.Context, asst *assistant.Assistant, st *store.Store) error {
	sub := st.Subscribe(func(c store.Change) {
		fmt.Printf("(calendar updated: %s %q)\n", c.Op, c.Event.Title)
	})
	defer sub.Cancel()

	fmt.Println("AI Calendar. Type a message, /help for commands, /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runLocalCommand(os.Stdout, st, line); quit {
				return nil
			}
			continue
		}

		printReply(os.Stdout, asst.HandleMessage(ctx, line))
	}
	return scanner.Err()
}

// seed mirrors the demo data the app first shipped with.
func seed(st *store.Store) {
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	st.Create("Team Meeting", "Discuss project progress.", tomorrow, tomorrow.Add(time.Hour))

	inFiveDays := tomorrow.AddDate(0, 0, 4)
	st.Create("Doctor Appointment", "", inFiveDays, inFiveDays.Add(time.Hour))
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "ai-calendar", "config.yaml")
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
