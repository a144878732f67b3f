package servecmder

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/babybot/cmd/babybot/bootstrap"
	"github.com/papercomputeco/babybot/pkg/logger"
	"github.com/papercomputeco/babybot/pkg/session"
	"github.com/papercomputeco/babybot/server"
)

const serveLongDesc string = `Serve the BabyBot web chat.

Loads the completion credential from COHERE_API_KEY (or a .env file),
the optional babybot.toml configuration, and serves the chat page.
Each browser session gets its own transcript; nothing is persisted.

Examples:
  babybot serve
  babybot serve --listen :9000 --config ./babybot.toml --debug`

const serveShortDesc string = "Serve the web chat"

type serveCommander struct {
	listen     string
	configPath string
	debug      bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on (default from config, :8051)")
	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to babybot.toml")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	log := logger.NewLogger(c.debug)
	defer log.Sync()

	deps, err := bootstrap.Load(c.configPath, log)
	if err != nil {
		return err
	}

	listen := deps.Config.Server.ListenAddr
	if c.listen != "" {
		listen = c.listen
	}

	log.Info("babybot starting",
		zap.String("listen", listen),
		zap.String("model", deps.Client.Model()),
		zap.Int("keywords", deps.Filter.Len()),
		zap.Bool("debug", c.debug),
	)

	idle := deps.Config.SessionIdleTimeout()
	registry := session.NewRegistry(deps.NewController, session.WithIdleTimeout(idle))

	srv := server.New(server.Config{
		ListenAddr:     listen,
		WelcomeMessage: deps.Config.Messages.Welcome,
		ClearedMessage: deps.Config.Messages.Cleared,
		SweepInterval:  sweepInterval(idle),
	}, registry, deps.Filter, log.Named("server"))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		if err := srv.Close(); err != nil {
			return fmt.Errorf("could not shut down web server: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	}
}

// sweepInterval checks for idle sessions a few times per idle window.
func sweepInterval(idle time.Duration) time.Duration {
	if idle <= 0 {
		return 0
	}
	interval := idle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
