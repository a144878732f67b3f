package chat

import "go.uber.org/zap"

const (
	DefaultRejectionMessage = "🚫 Oopsie! I can only talk about baby things like toys, diapers, food, sleep, giggles, and cuddles! 👶💖"
	DefaultFailureMessage   = "😢 BabyBot couldn't reach its brain just now. Please try again!"
)

// Option configures a Controller.
type Option func(*Controller)

// WithRejectionMessage sets the fixed message returned for off-topic input.
func WithRejectionMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.rejectionMessage = msg
		}
	}
}

// WithFailureMessage sets the user-facing message returned when a completion fails.
func WithFailureMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.failureMessage = msg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStateHook registers a callback invoked on every state transition. It is
// called with the controller's action lock held and must not call back into
// the controller.
func WithStateHook(hook func(from, to State)) Option {
	return func(c *Controller) {
		c.stateHook = hook
	}
}
