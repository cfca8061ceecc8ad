package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/config/file"
	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Cleanup(func() {
		ConfigPath = ""
		configForce = false
	})

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := configfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestConfigInit_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size = 500\n"), 0600))
	t.Cleanup(func() {
		ConfigPath = ""
		configForce = false
	})

	_, err := execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// Overwrite only with --force.
	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	cfg, err := configfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChunkSize, cfg.ChunkSize)
}
