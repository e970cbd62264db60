// Package chat runs one prompt/reply exchange: it loads the history log,
// sends the recent part of it along with the new prompt, streams the reply
// and records both turns.
package chat

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/longkey1/askgpt/internal/askgpt"
	"github.com/longkey1/askgpt/internal/askgpt/history"
	"github.com/longkey1/askgpt/internal/askgpt/prompt"
	"go.uber.org/zap"
)

// HistoryStore loads and rewrites the persisted history log.
type HistoryStore interface {
	Load() ([]askgpt.HistoricMessage, error)
	Save(entries []askgpt.HistoricMessage) error
}

// Runner holds everything one exchange needs. Zero values of Window, Limit,
// Now, Out and Logger fall back to defaults.
type Runner struct {
	Model    string
	Window   time.Duration
	Limit    int
	Priming  []askgpt.Message
	History  HistoryStore
	Provider askgpt.Provider
	Out      io.Writer
	Now      func() time.Time
	Logger   *zap.Logger
}

// exchange carries values from one step to the next.
type exchange struct {
	args    []string
	entries []askgpt.HistoricMessage
	recent  []askgpt.HistoricMessage
	prompt  askgpt.HistoricMessage
	request *askgpt.Request
	reply   askgpt.HistoricMessage
}

type step struct {
	name string
	run  func(ctx context.Context, x *exchange) error
}

// Run executes the exchange for the given command-line arguments. Steps run
// in order and the first failure ends the run; history is written only
// after the whole reply has been received.
func (r *Runner) Run(ctx context.Context, args []string) error {
	steps := []step{
		{"load_history", r.loadHistory},
		{"filter_history", r.filterHistory},
		{"parse_prompt", r.parsePrompt},
		{"build_request", r.buildRequest},
		{"stream_response", r.streamResponse},
		{"write_history", r.writeHistory},
	}

	logger := r.logger()
	x := &exchange{args: args}
	for _, s := range steps {
		logger.Debug("running step", zap.String("step", s.name))
		if err := s.run(ctx, x); err != nil {
			logger.Debug("step failed", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *Runner) loadHistory(_ context.Context, x *exchange) error {
	entries, err := r.History.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	x.entries = entries
	return nil
}

func (r *Runner) filterHistory(_ context.Context, x *exchange) error {
	x.recent = history.Recent(x.entries, r.now(), r.window())
	r.logger().Debug("selected recent history",
		zap.Int("total", len(x.entries)),
		zap.Int("recent", len(x.recent)),
		zap.Duration("window", r.window()))
	return nil
}

func (r *Runner) parsePrompt(_ context.Context, x *exchange) error {
	text, err := prompt.ParseArgs(x.args)
	if err != nil {
		return err
	}
	x.prompt = askgpt.HistoricMessage{Message: askgpt.UserMessage(text)}
	return nil
}

func (r *Runner) buildRequest(_ context.Context, x *exchange) error {
	x.request = askgpt.NewRequest(r.Model, r.Priming, x.recent, x.prompt.Message.Content)
	return nil
}

func (r *Runner) streamResponse(ctx context.Context, x *exchange) error {
	x.prompt.Timestamp = r.now()
	reply, err := r.Provider.StreamChat(ctx, x.request, r.out())
	if err != nil {
		return err
	}
	x.reply = askgpt.HistoricMessage{
		Timestamp: r.now(),
		Message:   askgpt.AssistantMessage(reply),
	}
	return nil
}

func (r *Runner) writeHistory(_ context.Context, x *exchange) error {
	entries := history.Append(x.entries, r.limit(), x.prompt, x.reply)
	if err := r.History.Save(entries); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) window() time.Duration {
	if r.Window > 0 {
		return r.Window
	}
	return history.DefaultWindow
}

func (r *Runner) limit() int {
	if r.Limit > 0 {
		return r.Limit
	}
	return history.DefaultLimit
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return io.Discard
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}
