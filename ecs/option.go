package ecs

import "go.uber.org/zap"

// Option configures a Storage.
type Option func(*Storage)

// WithConfig replaces the whole configuration. Options applied later override its fields.
func WithConfig(cfg Config) Option {
	return func(s *Storage) {
		s.cfg = cfg
	}
}

// WithMaxEntities sets the identifier ceiling.
func WithMaxEntities(n int) Option {
	return func(s *Storage) {
		s.cfg.MaxEntities = n
	}
}

// WithTrustMode toggles the unchecked GetComponent fast path.
func WithTrustMode(trust bool) Option {
	return func(s *Storage) {
		s.cfg.TrustMode = trust
	}
}

// WithVerbosity sets the trace level.
func WithVerbosity(level int) Option {
	return func(s *Storage) {
		s.cfg.Verbosity = level
	}
}

// WithStrict makes assertions panic.
func WithStrict(strict bool) Option {
	return func(s *Storage) {
		s.cfg.Strict = strict
	}
}

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Storage) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAssertHandler installs a callback for non-strict assertions.
func WithAssertHandler(fn AssertHandler) Option {
	return func(s *Storage) {
		s.onAssert = fn
	}
}
