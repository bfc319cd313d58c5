package merger

import "github.com/restitch/restitch/internal/gosrc"

// Option configures a merge operation.
type Option func(*config) error

type config struct {
	logger Logger
	engine *gosrc.Engine
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{logger: NopLogger{}}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *config) engineFor() (*gosrc.Engine, bool) {
	if c.engine != nil {
		return c.engine, false
	}
	return gosrc.New(), true
}

// WithLogger sets the logger for merge diagnostics. Default: no-op.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			logger = NopLogger{}
		}
		c.logger = logger
		return nil
	}
}

// WithEngine supplies a shared source engine. When unset each call acquires a
// scoped engine and releases it before returning.
func WithEngine(engine *gosrc.Engine) Option {
	return func(c *config) error {
		c.engine = engine
		return nil
	}
}
