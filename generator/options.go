package generator

import (
	"fmt"
	"unicode"

	"github.com/restitch/restitch/internal/gosrc"
	"github.com/restitch/restitch/spec"
)

// Option is a function that configures a generate operation.
type Option func(*config) error

// config holds configuration for a generate operation.
type config struct {
	packageName string
	clientName  string
	components  *spec.Components
	logger      Logger
	engine      *gosrc.Engine

	format      bool
	includeInfo bool
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		packageName: "api",
		clientName:  "Client",
		logger:      NopLogger{},
		format:      true,
		includeInfo: true,
	}
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

// engineFor returns the configured engine, or a fresh scoped one. The second
// return reports whether the caller owns the engine and must Close it.
func (c *config) engineFor() (*gosrc.Engine, bool) {
	if c.engine != nil {
		return c.engine, false
	}
	return gosrc.New(), true
}

// WithPackageName sets the package name used in generated source.
// The name must be a valid Go identifier. Default: "api".
func WithPackageName(name string) Option {
	return func(c *config) error {
		if !isIdentifier(name) {
			return fmt.Errorf("package name %q is not a valid identifier", name)
		}
		c.packageName = name
		return nil
	}
}

// WithClientName sets the name of the generated client struct.
// Default: "Client".
func WithClientName(name string) Option {
	return func(c *config) error {
		if !isIdentifier(name) {
			return fmt.Errorf("client name %q is not a valid identifier", name)
		}
		c.clientName = name
		return nil
	}
}

// WithComponents supplies the component registries used to resolve references
// while generating a single declaration. [Generate] and [GenerateClient] take
// them from the document; GenerateDto needs this option when the schema
// references named components.
func WithComponents(components *spec.Components) Option {
	return func(c *config) error {
		c.components = components
		return nil
	}
}

// WithLogger sets the logger for generation diagnostics. Default: no-op.
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
// scoped engine and releases it before returning. The caller keeps ownership
// of a supplied engine; generation fails with [gosrc.ErrEngineClosed] if it
// was already closed.
func WithEngine(engine *gosrc.Engine) Option {
	return func(c *config) error {
		c.engine = engine
		return nil
	}
}

// WithFormatting toggles the gofmt/goimports pass over generated source.
// Default: enabled. Disabling is useful in tests that assert raw emission.
func WithFormatting(enabled bool) Option {
	return func(c *config) error {
		c.format = enabled
		return nil
	}
}

// WithIncludeInfo determines whether informational issues are recorded on the
// result. Default: true.
func WithIncludeInfo(enabled bool) Option {
	return func(c *config) error {
		c.includeInfo = enabled
		return nil
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
