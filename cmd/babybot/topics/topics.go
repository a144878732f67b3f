package topicscmder

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/babybot/pkg/config"
	"github.com/papercomputeco/babybot/pkg/topic"
)

const topicsLongDesc string = `Print the topic keyword allow-list.

With --check, reports whether the given text would pass the topic
gate instead. With --init, prints a starter babybot.toml.

Examples:
  babybot topics
  babybot topics --check "best crib for a newborn?"
  babybot topics --init > babybot.toml`

const topicsShortDesc string = "Show or test the topic keywords"

type topicsCommander struct {
	configPath string
	check      string
	init       bool
}

func NewTopicsCmd() *cobra.Command {
	cmder := &topicsCommander{}

	cmd := &cobra.Command{
		Use:   "topics",
		Short: topicsShortDesc,
		Long:  topicsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to babybot.toml")
	cmd.Flags().StringVar(&cmder.check, "check", "", "Text to test against the keyword set")
	cmd.Flags().BoolVar(&cmder.init, "init", false, "Print a starter configuration file")

	return cmd
}

func (c *topicsCommander) run(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	if c.init {
		return toml.NewEncoder(out).Encode(config.Default())
	}

	// The keyword list does not need a credential, so read the file directly
	// instead of going through config.Load.
	cfg := config.Default()
	if c.configPath != "" {
		if err := config.LoadTOML(cfg, c.configPath); err != nil {
			return err
		}
	}

	filter := topic.New(cfg.Topic.Keywords)

	if cmd.Flags().Changed("check") {
		if filter.IsOnTopic(c.check) {
			fmt.Fprintln(out, "on-topic")
		} else {
			fmt.Fprintln(out, "off-topic")
		}
		return nil
	}

	for _, kw := range filter.Keywords() {
		fmt.Fprintln(out, kw)
	}
	return nil
}
