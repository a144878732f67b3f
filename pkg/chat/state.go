package chat

// State is the Turn Controller's position in its submit cycle.
type State int

const (
	// StateIdle accepts the next submit or clear.
	StateIdle State = iota

	// StateAwaitingCompletion is held while the completion call is in flight.
	StateAwaitingCompletion

	// StateError is entered briefly when a completion fails, before the
	// controller settles back to StateIdle.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingCompletion:
		return "awaiting_completion"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status describes how a submit was resolved.
type Status string

const (
	// StatusIgnored means the input was empty and nothing happened.
	StatusIgnored Status = "ignored"

	// StatusRejected means the input failed the topic gate.
	StatusRejected Status = "rejected"

	// StatusAnswered means a new turn was appended.
	StatusAnswered Status = "answered"

	// StatusFailed means the completion call failed; the transcript is unchanged.
	StatusFailed Status = "failed"

	// StatusCleared means the transcript was emptied.
	StatusCleared Status = "cleared"
)
