package generator

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/internal/gosrc"
)

// newTestEngine returns an engine released when the test ends.
func newTestEngine(t *testing.T) *gosrc.Engine {
	t.Helper()
	engine := gosrc.New()
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func TestApplyOptionsDefaults(t *testing.T) {
	cfg, err := applyOptions()
	require.NoError(t, err)

	assert.Equal(t, "api", cfg.packageName)
	assert.Equal(t, "Client", cfg.clientName)
	assert.True(t, cfg.format)
	assert.True(t, cfg.includeInfo)
	assert.NotNil(t, cfg.logger)
}

func TestWithPackageName(t *testing.T) {
	cfg, err := applyOptions(WithPackageName("petstore"))
	require.NoError(t, err)
	assert.Equal(t, "petstore", cfg.packageName)

	_, err = applyOptions(WithPackageName("not valid"))
	require.Error(t, err)

	_, err = applyOptions(WithPackageName(""))
	require.Error(t, err)
}

func TestWithClientName(t *testing.T) {
	cfg, err := applyOptions(WithClientName("PetClient"))
	require.NoError(t, err)
	assert.Equal(t, "PetClient", cfg.clientName)

	_, err = applyOptions(WithClientName("9lives"))
	require.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	adapter := NewSlogAdapter(slog.Default())
	cfg, err := applyOptions(WithLogger(adapter))
	require.NoError(t, err)
	assert.Same(t, adapter, cfg.logger)
}

func TestEngineFor(t *testing.T) {
	t.Run("owned when unset", func(t *testing.T) {
		cfg, err := applyOptions()
		require.NoError(t, err)
		engine, owned := cfg.engineFor()
		require.NotNil(t, engine)
		assert.True(t, owned)
		require.NoError(t, engine.Close())
	})

	t.Run("borrowed when supplied", func(t *testing.T) {
		shared := newTestEngine(t)
		cfg, err := applyOptions(WithEngine(shared))
		require.NoError(t, err)
		engine, owned := cfg.engineFor()
		assert.Same(t, shared, engine)
		assert.False(t, owned)
	})
}
