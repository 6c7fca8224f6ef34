package app

import (
	"github.com/volleykit/drillboard/internal/domain/selection"
	"github.com/volleykit/drillboard/internal/session"
	"github.com/volleykit/drillboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPlatform sets the remote data platform client.
func WithPlatform(p Platform) Option {
	return func(s *Service) {
		if p != nil {
			s.platform = p
		}
	}
}

// WithSessionContext injects the session context shared with other
// consumers. Defaults to a fresh context.
func WithSessionContext(c *session.Context) Option {
	return func(s *Service) {
		if c != nil {
			s.sessions = c
		}
	}
}

// WithSelectionPort sets the durable store for the selection set.
// Defaults to an in-memory port.
func WithSelectionPort(p selection.Port) Option {
	return func(s *Service) {
		if p != nil {
			s.selPort = p
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}
