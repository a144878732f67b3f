package prompt_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/babybot/pkg/prompt"
	"github.com/papercomputeco/babybot/pkg/transcript"
)

var _ = Describe("Build", func() {
	It("builds a bare prompt for an empty transcript", func() {
		Expect(prompt.Build(nil, "hello")).To(Equal("User: hello\nAssistant:"))
	})

	It("replays prior turns in order before the new input", func() {
		turns := []transcript.Turn{
			{UserText: "hi", BotText: "Hello there!"},
			{UserText: "baby toys?", BotText: "Rattles."},
		}

		Expect(prompt.Build(turns, "and for sleep?")).To(Equal(
			"User: hi\nAssistant: Hello there!\n" +
				"User: baby toys?\nAssistant: Rattles.\n" +
				"User: and for sleep?\nAssistant:",
		))
	})

	It("is deterministic", func() {
		turns := []transcript.Turn{{UserText: "a", BotText: "b"}}
		Expect(prompt.Build(turns, "c")).To(Equal(prompt.Build(turns, "c")))
	})
})
