package authcore

import (
	"errors"
	"time"

	"github.com/hexauth/authcore/metrics"
	"github.com/hexauth/authcore/session"
)

// Builder assembles a [Service]. A builder is single-use: Build validates
// the configuration, wires the session store, and refuses to run twice.
type Builder struct {
	cfg       Config
	directory UserDirectory
	hasher    PasswordHasher
	metrics   *metrics.Metrics

	built bool
}

// New returns a Builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithDirectory sets the credential-lookup backend. Required.
func (b *Builder) WithDirectory(d UserDirectory) *Builder {
	b.directory = d
	return b
}

// WithHasher sets the password hashing capability. Required.
func (b *Builder) WithHasher(h PasswordHasher) *Builder {
	b.hasher = h
	return b
}

// WithMetrics attaches Prometheus collectors. Optional; nil disables
// instrumentation.
func (b *Builder) WithMetrics(m *metrics.Metrics) *Builder {
	b.metrics = m
	return b
}

// Build validates and assembles the service.
func (b *Builder) Build() (*Service, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if b.directory == nil {
		return nil, errors.Join(ErrServiceNotReady, errors.New("user directory is required"))
	}
	if b.hasher == nil {
		return nil, errors.Join(ErrServiceNotReady, errors.New("password hasher is required"))
	}

	b.built = true

	return &Service{
		cfg:       b.cfg,
		directory: b.directory,
		hasher:    b.hasher,
		metrics:   b.metrics,
		store: session.NewStore(session.Config{
			TTL:              b.cfg.SessionTTL,
			MaxTokenAttempts: b.cfg.MaxTokenAttempts,
		}),
		now: time.Now,
	}, nil
}
