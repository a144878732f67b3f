// Package chat implements the Turn Controller: it takes one user action at a
// time, gates it by topic, asks the completion service for a reply and records
// the resulting turn.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/babybot/pkg/prompt"
	"github.com/papercomputeco/babybot/pkg/topic"
	"github.com/papercomputeco/babybot/pkg/transcript"
)

// Completer produces a completion for a prompt. *completion.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, promptText string) (string, error)
}

// Reply is the outcome of a submit along with an immutable snapshot of the
// transcript for rendering.
type Reply struct {
	Status Status

	// Message is the assistant reply, the rejection message or the failure
	// message depending on Status. Empty for StatusIgnored.
	Message string

	Transcript []transcript.Turn

	// Display is Transcript rendered for the transcript box.
	Display string
}

// Controller orchestrates a single session's conversation. Actions are
// processed strictly one at a time.
type Controller struct {
	completer Completer
	filter    *topic.Filter
	store     *transcript.Store
	logger    *zap.Logger

	rejectionMessage string
	failureMessage   string
	stateHook        func(from, to State)

	// mu serializes submit and clear actions.
	mu    sync.Mutex
	state State

	stateMu sync.RWMutex
}

// New creates a Controller in StateIdle.
func New(completer Completer, filter *topic.Filter, store *transcript.Store, opts ...Option) *Controller {
	c := &Controller{
		completer:        completer,
		filter:           filter,
		store:            store,
		logger:           zap.NewNop(),
		rejectionMessage: DefaultRejectionMessage,
		failureMessage:   DefaultFailureMessage,
		state:            StateIdle,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return c.state
}

// Submit processes one user input. Empty input is ignored, off-topic input is
// rejected without touching the transcript, and on-topic input is completed
// and appended as a new turn. A failed completion returns StatusFailed together
// with the wrapped upstream error; the transcript is left unchanged and the
// controller is back in StateIdle.
func (c *Controller) Submit(ctx context.Context, text string) (Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text == "" {
		return c.reply(StatusIgnored, ""), nil
	}

	if !c.filter.IsOnTopic(text) {
		c.logger.Debug("rejected off-topic input", zap.String("input_preview", truncate(text, 50)))
		return c.reply(StatusRejected, c.rejectionMessage), nil
	}

	startTime := time.Now()
	c.setState(StateAwaitingCompletion)

	promptText := prompt.Build(c.store.Turns(), text)
	botText, err := c.completer.Complete(ctx, promptText)
	if err != nil {
		c.setState(StateError)
		c.logger.Error("completion failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		c.setState(StateIdle)
		return c.reply(StatusFailed, c.failureMessage), fmt.Errorf("complete turn: %w", err)
	}

	c.store.Append(transcript.Turn{UserText: text, BotText: botText})
	c.setState(StateIdle)

	c.logger.Info("turn completed",
		zap.Int("turns", c.store.Len()),
		zap.Int("prompt_size", len(promptText)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return c.reply(StatusAnswered, botText), nil
}

// Clear empties the transcript and returns the controller to StateIdle.
// Calling it repeatedly is the same as calling it once.
func (c *Controller) Clear() Reply {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Clear()
	c.setState(StateIdle)

	c.logger.Debug("transcript cleared")
	return c.reply(StatusCleared, "")
}

// Snapshot returns the current transcript without performing an action.
func (c *Controller) Snapshot() Reply {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.reply(StatusIgnored, "")
}

func (c *Controller) reply(status Status, message string) Reply {
	turns := c.store.Turns()
	return Reply{
		Status:     status,
		Message:    message,
		Transcript: turns,
		Display:    transcript.Render(turns),
	}
}

func (c *Controller) setState(to State) {
	c.stateMu.Lock()
	from := c.state
	c.state = to
	c.stateMu.Unlock()

	if from == to {
		return
	}

	c.logger.Debug("state transition", zap.Stringer("from", from), zap.Stringer("to", to))
	if c.stateHook != nil {
		c.stateHook(from, to)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
