/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/longkey1/askgpt/internal/askgpt/chat"
	"github.com/longkey1/askgpt/internal/askgpt/config"
	"github.com/longkey1/askgpt/internal/askgpt/history"
	"github.com/longkey1/askgpt/internal/askgpt/prompt"
	"github.com/longkey1/askgpt/internal/openai"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "askgpt [prompt...]",
	Short: "Ask a chat-completion model a question from the command line",
	Long: `askgpt sends its arguments, joined with spaces, as a prompt to a chat-completion API
and streams the reply to standard output as it is generated.

Files are read from $HOME/.config/AskGPT (or $ASKGPT_CONFIG_DIR):
  apikey.txt     API key (required)
  prompt.json    JSON array of {role, content} messages sent before every prompt (optional)
  prompt.toml    [[messages]] tables, used when prompt.json is absent (optional)
  history.jsonl  the last 100 turns; turns from the last 15 minutes are sent as context
  config.toml    model, endpoint, history_window, history_limit and [logging] settings (optional)

Every argument is prompt text; askgpt has no flags.

Example:
  askgpt Hello, how are you?`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), promptArgs(args), cmd.OutOrStdout())
	},
}

// argsTerminator is put in front of the user's arguments so cobra never
// resolves a prompt word such as "__complete" to a command.
const argsTerminator = "--"

// Execute runs the root command and exits with status 1 on any error.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		printError(os.Stderr, err, colorEnabled(os.Stderr))
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(append([]string{argsTerminator}, args...))
	return rootCmd.ExecuteContext(ctx)
}

// promptArgs drops the terminator added by execute. A "--" typed by the
// user stays part of the prompt.
func promptArgs(args []string) []string {
	if len(args) > 0 && args[0] == argsTerminator {
		return args[1:]
	}
	return args
}

// run wires configuration, logging, the history log and the API client
// together and performs one exchange.
func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load(config.NewViper())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	token, err := cfg.LoadAPIKey()
	if err != nil {
		return err
	}

	logger.Debug("configuration",
		zap.String("dir", cfg.Dir),
		zap.String("model", cfg.Model),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("api_key", config.MaskToken(token)),
		zap.Duration("history_window", cfg.HistoryWindow),
		zap.Int("history_limit", cfg.HistoryLimit))

	client := openai.NewClient(cfg.Endpoint, token, logger)
	client.SetRequestID(runID)

	runner := &chat.Runner{
		Model:    cfg.Model,
		Window:   cfg.HistoryWindow,
		Limit:    cfg.HistoryLimit,
		Priming:  prompt.LoadPriming(cfg.PrimingPath(), cfg.PrimingTOMLPath(), logger),
		History:  history.NewFileStore(cfg.HistoryPath(), logger),
		Provider: client,
		Out:      out,
		Logger:   logger,
	}
	return runner.Run(ctx, args)
}

// printError writes the error message, in red when colored is set.
func printError(w io.Writer, err error, colored bool) {
	c := color.New(color.FgRed)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	fmt.Fprintln(w, c.Sprint(err.Error()))
}

// colorEnabled reports whether f is a terminal that should get colored
// output. NO_COLOR and TERM=dumb turn color off.
func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
