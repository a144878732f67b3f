package server

import "time"

// Config is the web server configuration.
type Config struct {
	// Address to listen on (e.g., ":8051")
	ListenAddr string

	// WelcomeMessage is shown in the transcript box before the first turn.
	WelcomeMessage string

	// ClearedMessage is shown in the transcript box after a clear.
	ClearedMessage string

	// SweepInterval is how often idle sessions are evicted. Zero disables the sweeper.
	SweepInterval time.Duration
}
