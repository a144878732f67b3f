package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	chatcmder "github.com/papercomputeco/babybot/cmd/babybot/chat"
	servecmder "github.com/papercomputeco/babybot/cmd/babybot/serve"
	topicscmder "github.com/papercomputeco/babybot/cmd/babybot/topics"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "babybot",
		Short:         "A baby-care chat assistant backed by a hosted language model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(topicscmder.NewTopicsCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "babybot:", err)
		os.Exit(1)
	}
}
