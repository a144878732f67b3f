package chat_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/babybot/pkg/chat"
	"github.com/papercomputeco/babybot/pkg/completion"
	"github.com/papercomputeco/babybot/pkg/topic"
	"github.com/papercomputeco/babybot/pkg/transcript"
)

// fakeCompleter returns queued replies or errors and records prompts.
type fakeCompleter struct {
	replies []string
	errs    []error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, promptText string) (string, error) {
	f.prompts = append(f.prompts, promptText)
	i := len(f.prompts) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "ok", nil
}

var _ = Describe("Controller", func() {
	var (
		ctx         context.Context
		completer   *fakeCompleter
		store       *transcript.Store
		controller  *chat.Controller
		transitions [][2]chat.State
	)

	BeforeEach(func() {
		ctx = context.Background()
		completer = &fakeCompleter{}
		store = transcript.NewStore()
		transitions = nil
		controller = chat.New(completer, topic.New(topic.DefaultKeywords), store,
			chat.WithStateHook(func(from, to chat.State) {
				transitions = append(transitions, [2]chat.State{from, to})
			}),
		)
	})

	It("starts idle", func() {
		Expect(controller.State()).To(Equal(chat.StateIdle))
	})

	Context("when the input is on-topic", func() {
		It("appends a turn with the completion", func() {
			completer.replies = []string{"Soft rattles and teethers."}

			reply, err := controller.Submit(ctx, "What toys are good for a 6-month-old?")
			Expect(err).NotTo(HaveOccurred())

			Expect(reply.Status).To(Equal(chat.StatusAnswered))
			Expect(reply.Message).To(Equal("Soft rattles and teethers."))
			Expect(reply.Transcript).To(Equal([]transcript.Turn{
				{UserText: "What toys are good for a 6-month-old?", BotText: "Soft rattles and teethers."},
			}))
			Expect(reply.Display).To(Equal("User: What toys are good for a 6-month-old?\nBot: Soft rattles and teethers."))
			Expect(store.Len()).To(Equal(1))
			Expect(completer.prompts).To(Equal([]string{"User: What toys are good for a 6-month-old?\nAssistant:"}))
		})

		It("passes through AwaitingCompletion and back to Idle", func() {
			_, err := controller.Submit(ctx, "baby sleep tips")
			Expect(err).NotTo(HaveOccurred())

			Expect(transitions).To(Equal([][2]chat.State{
				{chat.StateIdle, chat.StateAwaitingCompletion},
				{chat.StateAwaitingCompletion, chat.StateIdle},
			}))
			Expect(controller.State()).To(Equal(chat.StateIdle))
		})

		It("includes prior turns in the next prompt", func() {
			completer.replies = []string{"Rattles.", "Naps help."}

			_, err := controller.Submit(ctx, "baby toys?")
			Expect(err).NotTo(HaveOccurred())
			_, err = controller.Submit(ctx, "and sleep?")
			Expect(err).NotTo(HaveOccurred())

			Expect(completer.prompts[1]).To(Equal("User: baby toys?\nAssistant: Rattles.\nUser: and sleep?\nAssistant:"))
		})
	})

	Context("when the input is off-topic", func() {
		It("returns the rejection message without touching the transcript", func() {
			reply, err := controller.Submit(ctx, "What's the weather today?")
			Expect(err).NotTo(HaveOccurred())

			Expect(reply.Status).To(Equal(chat.StatusRejected))
			Expect(reply.Message).To(Equal(chat.DefaultRejectionMessage))
			Expect(reply.Transcript).To(BeEmpty())
			Expect(store.Len()).To(Equal(0))
			Expect(completer.prompts).To(BeEmpty())
			Expect(transitions).To(BeEmpty())
		})

		It("uses a configured rejection message", func() {
			c := chat.New(completer, topic.New(topic.DefaultKeywords), store, chat.WithRejectionMessage("nope"))
			reply, _ := c.Submit(ctx, "stocks")
			Expect(reply.Message).To(Equal("nope"))
		})
	})

	Context("when the input is empty", func() {
		It("does nothing", func() {
			reply, err := controller.Submit(ctx, "")
			Expect(err).NotTo(HaveOccurred())

			Expect(reply.Status).To(Equal(chat.StatusIgnored))
			Expect(reply.Message).To(BeEmpty())
			Expect(completer.prompts).To(BeEmpty())
			Expect(store.Len()).To(Equal(0))
			Expect(controller.State()).To(Equal(chat.StateIdle))
		})
	})

	Context("when the completion fails", func() {
		var timeout error

		BeforeEach(func() {
			timeout = &completion.UpstreamError{Op: "do request", Err: context.DeadlineExceeded}
			completer.errs = []error{timeout}
			completer.replies = []string{"", "Warm milk before bed."}
		})

		It("leaves the transcript unchanged and recovers to Idle", func() {
			reply, err := controller.Submit(ctx, "baby milk schedule?")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, completion.ErrUpstream)).To(BeTrue())
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())

			Expect(reply.Status).To(Equal(chat.StatusFailed))
			Expect(reply.Message).To(Equal(chat.DefaultFailureMessage))
			Expect(reply.Transcript).To(BeEmpty())
			Expect(store.Len()).To(Equal(0))
			Expect(controller.State()).To(Equal(chat.StateIdle))
			Expect(transitions).To(Equal([][2]chat.State{
				{chat.StateIdle, chat.StateAwaitingCompletion},
				{chat.StateAwaitingCompletion, chat.StateError},
				{chat.StateError, chat.StateIdle},
			}))
		})

		It("handles the next submit normally", func() {
			_, err := controller.Submit(ctx, "baby milk schedule?")
			Expect(err).To(HaveOccurred())

			reply, err := controller.Submit(ctx, "baby milk schedule?")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply.Status).To(Equal(chat.StatusAnswered))
			Expect(store.Len()).To(Equal(1))
		})
	})

	Describe("Clear", func() {
		It("empties the transcript and is idempotent", func() {
			_, err := controller.Submit(ctx, "cute baby")
			Expect(err).NotTo(HaveOccurred())

			first := controller.Clear()
			Expect(first.Status).To(Equal(chat.StatusCleared))
			Expect(first.Transcript).To(BeEmpty())
			Expect(first.Display).To(BeEmpty())

			second := controller.Clear()
			Expect(second).To(Equal(first))
			Expect(store.Len()).To(Equal(0))
			Expect(controller.State()).To(Equal(chat.StateIdle))
		})
	})

	Describe("Snapshot", func() {
		It("returns the current transcript without acting", func() {
			_, err := controller.Submit(ctx, "crib safety")
			Expect(err).NotTo(HaveOccurred())

			snap := controller.Snapshot()
			Expect(snap.Status).To(Equal(chat.StatusIgnored))
			Expect(snap.Transcript).To(HaveLen(1))
			Expect(completer.prompts).To(HaveLen(1))
		})
	})
})
