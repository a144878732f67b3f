package chatcmder

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/babybot/cmd/babybot/bootstrap"
	"github.com/papercomputeco/babybot/pkg/logger"
	"github.com/papercomputeco/babybot/pkg/tui"
)

const chatLongDesc string = `Chat with BabyBot in the terminal.

Uses the same topic gate, prompt and completion settings as the
web chat. The transcript lives only for the duration of the program.

Keys:
  enter    ask
  ctrl+l   clear the transcript
  esc      quit`

const chatShortDesc string = "Chat in the terminal"

// ErrNotATerminal is returned when stdout cannot host the interactive UI.
var ErrNotATerminal = errors.New("babybot chat needs an interactive terminal")

type chatCommander struct {
	configPath string
	logPath    string
	debug      bool
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to babybot.toml")
	cmd.Flags().StringVar(&cmder.logPath, "log-file", "", "Write logs to this file (default: discarded)")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *chatCommander) run(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotATerminal
	}

	var logOut io.Writer = io.Discard
	if c.logPath != "" {
		f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}

	log := logger.NewLoggerTo(logOut, c.debug)
	defer log.Sync()

	deps, err := bootstrap.Load(c.configPath, log)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return tui.Run(ctx, deps.NewController(), tui.Options{
		Welcome:      deps.Config.Messages.Welcome,
		Cleared:      deps.Config.Messages.Cleared,
		GlamourStyle: tui.ConfigureColor(),
	})
}
