// Package server provides the BabyBot web chat: a single page plus a small JSON
// API that forwards submit and clear actions to per-session Turn Controllers.
package server

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/babybot/pkg/llm"
	"github.com/papercomputeco/babybot/pkg/session"
	"github.com/papercomputeco/babybot/pkg/topic"
)

// SessionCookie names the cookie carrying the browser session id.
const SessionCookie = "babybot_session"

//go:embed index.html
var indexHTML []byte

// Server is the web presentation layer. It owns no chat state itself; every
// request is resolved to a session whose controller does the work.
type Server struct {
	config   Config
	registry *session.Registry
	filter   *topic.Filter
	logger   *zap.Logger
	app      *fiber.App

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a Server and registers its routes.
func New(config Config, registry *session.Registry, filter *topic.Filter, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		registry: registry,
		filter:   filter,
		logger:   logger,
		app:      app,
		stop:     make(chan struct{}),
	}

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Post("/submit", s.handleSubmit)
	api.Post("/clear", s.handleClear)
	api.Get("/transcript", s.handleTranscript)
	api.Get("/topics", s.handleTopics)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts the idle-session sweeper and serves on the configured address
// until Close is called.
func (s *Server) Run() error {
	s.logger.Info("starting web server", zap.String("listen", s.config.ListenAddr))

	if s.config.SweepInterval > 0 {
		go s.sweep(s.config.SweepInterval)
	}

	return s.app.Listen(s.config.ListenAddr)
}

// Close stops the sweeper and shuts the server down.
func (s *Server) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.app.Shutdown()
}

func (s *Server) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.registry.Sweep(); n > 0 {
				s.logger.Info("evicted idle sessions",
					zap.Int("evicted", n),
					zap.Int("remaining", s.registry.Len()),
				)
			}
		}
	}
}

// resolveSession returns the caller's session, issuing a new cookie when the
// request carries none or an unknown one.
func (s *Server) resolveSession(c *fiber.Ctx) *session.Session {
	id := c.Cookies(SessionCookie)
	sess := s.registry.GetOrCreate(id)

	if sess.ID != id {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		s.logger.Debug("started session", zap.String("session", sess.ID))
	}

	return sess
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	s.resolveSession(c)
	c.Type("html", "utf-8")
	return c.Send(indexHTML)
}

// handleSubmit runs one turn for the caller's session.
func (s *Server) handleSubmit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	sess := s.resolveSession(c)

	reply, err := sess.Controller.Submit(c.UserContext(), req.Text)
	resp := newTurnResponse(reply, s.config.WelcomeMessage)
	if err != nil {
		s.logger.Error("turn failed",
			zap.String("session", sess.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(resp)
	}

	s.logger.Debug("turn handled",
		zap.String("session", sess.ID),
		zap.String("status", string(reply.Status)),
		zap.String("input_preview", truncate(req.Text, 50)),
	)

	return c.JSON(resp)
}

func (s *Server) handleClear(c *fiber.Ctx) error {
	sess := s.resolveSession(c)
	reply := sess.Controller.Clear()
	return c.JSON(newTurnResponse(reply, s.config.ClearedMessage))
}

func (s *Server) handleTranscript(c *fiber.Ctx) error {
	sess := s.resolveSession(c)
	reply := sess.Controller.Snapshot()
	return c.JSON(newTurnResponse(reply, s.config.WelcomeMessage))
}

func (s *Server) handleTopics(c *fiber.Ctx) error {
	return c.JSON(TopicsResponse{Keywords: s.filter.Keywords()})
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
