package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/envault/internal/configs"
	kerrors "github.com/PolarWolf314/envault/internal/errors"
	"github.com/PolarWolf314/envault/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUsesDefaults(t *testing.T) {
	root := setupWorkspace(t)
	s := newTestSession(t, nil)

	result, err := s.Create(context.Background(), CreateOptions{Name: "staging"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "envault", "staging.yml"), result.Path)
	assert.Nil(t, result.Activated)

	cfg, err := secrets.LoadIfExists(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "envault_dev_key", cfg.APIKeyName)
	assert.Equal(t, "http://localhost:8787/", cfg.URL)
	assert.Empty(t, cfg.Vars)
}

func TestCreateReplacesExtension(t *testing.T) {
	root := setupWorkspace(t)
	s := newTestSession(t, nil)

	result, err := s.Create(context.Background(), CreateOptions{Name: "local.yaml"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "envault", "local.yml"), result.Path)
}

func TestCreateExistingNeedsForce(t *testing.T) {
	root := setupWorkspace(t)
	path := writeRaw(t, root, "dev.yml", "custom: true\n")
	s := newTestSession(t, nil)

	_, err := s.Create(context.Background(), CreateOptions{Name: "dev"})
	assert.ErrorIs(t, err, kerrors.ErrConfigExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom: true\n", string(data))

	_, err = s.Create(context.Background(), CreateOptions{Name: "dev", Force: true})
	require.NoError(t, err)
	_, err = secrets.LoadIfExists(path)
	assert.NoError(t, err)
}

func TestCreateInvalidName(t *testing.T) {
	setupWorkspace(t)
	s := newTestSession(t, nil)

	for _, name := range []string{"", "  ", "a/b", "what?", "x:y"} {
		_, err := s.Create(context.Background(), CreateOptions{Name: name})
		assert.ErrorIs(t, err, kerrors.ErrInvalidConfigName, name)
	}
}

func TestCreateInOtherFolder(t *testing.T) {
	other := t.TempDir()
	setupWorkspace(t, other)
	s := newTestSession(t, nil)

	result, err := s.Create(context.Background(), CreateOptions{Name: "dev", Folder: other})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(other, "envault", "dev.yml"), result.Path)

	_, err = s.Create(context.Background(), CreateOptions{Name: "dev", Folder: t.TempDir()})
	assert.ErrorIs(t, err, kerrors.ErrFolderNotInWorkspace)
}

func TestCreateAndActivate(t *testing.T) {
	setupWorkspace(t)
	vs := newVaultServer(t, map[string]string{"TOKEN": "abc"})
	s := newTestSession(t, nil)
	s.Prefs.DefaultAPIKey = "TEST_API_KEY"
	s.Prefs.DefaultAPIURL = vs.URL

	result, err := s.Create(context.Background(), CreateOptions{Name: "dev", Activate: true})
	require.NoError(t, err)
	require.NotNil(t, result.Activated)
	assert.Equal(t, []string{"TOKEN"}, result.Activated.VarNames)

	current, err := configs.GetCurrentConfig()
	require.NoError(t, err)
	assert.Equal(t, result.Path, current)
}
