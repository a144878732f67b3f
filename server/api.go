package server

import (
	"github.com/papercomputeco/babybot/pkg/chat"
	"github.com/papercomputeco/babybot/pkg/transcript"
)

// SubmitRequest is the body of POST /api/submit.
type SubmitRequest struct {
	Text string `json:"text"`
}

// TurnResponse is the state handed back to the page after every action.
type TurnResponse struct {
	Status     chat.Status       `json:"status"`
	Message    string            `json:"message,omitempty"`
	Transcript []transcript.Turn `json:"transcript"`

	// Display is the text for the transcript box. When the transcript is
	// empty it holds the welcome or cleared greeting.
	Display string `json:"display"`

	// Input is the new value of the input field; always empty after a submit.
	Input string `json:"input"`
}

// TopicsResponse is the body of GET /api/topics.
type TopicsResponse struct {
	Keywords []string `json:"keywords"`
}

func newTurnResponse(reply chat.Reply, placeholder string) TurnResponse {
	display := reply.Display
	if len(reply.Transcript) == 0 {
		display = placeholder
	}

	return TurnResponse{
		Status:     reply.Status,
		Message:    reply.Message,
		Transcript: reply.Transcript,
		Display:    display,
		Input:      "",
	}
}
