// Package prompt assembles the completion prompt from a transcript.
package prompt

import (
	"strings"

	"github.com/papercomputeco/babybot/pkg/transcript"
)

const (
	userLabel      = "User: "
	assistantLabel = "Assistant:"
)

// Build concatenates every prior turn followed by the new input and an open
// assistant line for the model to complete. The prompt grows with the
// transcript; nothing is windowed or summarized.
func Build(turns []transcript.Turn, input string) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(userLabel)
		b.WriteString(t.UserText)
		b.WriteString("\n")
		b.WriteString(assistantLabel)
		b.WriteString(" ")
		b.WriteString(t.BotText)
		b.WriteString("\n")
	}

	b.WriteString(userLabel)
	b.WriteString(input)
	b.WriteString("\n")
	b.WriteString(assistantLabel)

	return b.String()
}
