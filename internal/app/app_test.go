package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	run, err := Bootstrap("")
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.NotNil(t, run.Logger)
	assert.Equal(t, "data/input", run.Config.Input.Dir)
}

func TestBootstrapRunIDsDiffer(t *testing.T) {
	first, err := Bootstrap("")
	require.NoError(t, err)
	second, err := Bootstrap("")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBootstrapWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: json\n"), 0644))

	run, err := Bootstrap(path)
	require.NoError(t, err)
	assert.Equal(t, "json", run.Config.Logging.Format)
}

func TestBootstrapInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("abc:\n  a_threshold: 1.5\n"), 0644))

	_, err := Bootstrap(path)
	assert.Error(t, err)
}
