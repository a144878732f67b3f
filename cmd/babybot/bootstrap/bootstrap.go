// Package bootstrap builds the process-wide collaborators shared by the
// babybot commands: configuration, the completion client and the topic filter.
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/papercomputeco/babybot/pkg/chat"
	"github.com/papercomputeco/babybot/pkg/completion"
	"github.com/papercomputeco/babybot/pkg/config"
	"github.com/papercomputeco/babybot/pkg/topic"
	"github.com/papercomputeco/babybot/pkg/transcript"
)

// Deps holds everything a presentation layer needs to create controllers.
type Deps struct {
	Config *config.Config
	Client *completion.Client
	Filter *topic.Filter
	Logger *zap.Logger
}

// Load reads the configuration and builds the completion client once. It fails
// when the credential is missing, before any session can start.
func Load(configPath string, logger *zap.Logger) (*Deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	client, err := completion.New(cfg.CompletionClientConfig(), logger.Named("completion"))
	if err != nil {
		return nil, fmt.Errorf("could not create completion client: %w", err)
	}

	return &Deps{
		Config: cfg,
		Client: client,
		Filter: topic.New(cfg.Topic.Keywords),
		Logger: logger,
	}, nil
}

// NewController builds a controller with its own, empty transcript.
func (d *Deps) NewController() *chat.Controller {
	opts := append(d.Config.ControllerOptions(), chat.WithLogger(d.Logger.Named("chat")))
	return chat.New(d.Client, d.Filter, transcript.NewStore(), opts...)
}
