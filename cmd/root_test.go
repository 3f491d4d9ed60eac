package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(dir, "absent.env")))
	})

	t.Run("valid file is loaded", func(t *testing.T) {
		path := filepath.Join(dir, "valid.env")
		require.NoError(t, os.WriteFile(path, []byte("DEVINSIGHT_TEST_VALUE=loaded\n"), 0o600))
		t.Setenv("DEVINSIGHT_TEST_VALUE", "")
		require.NoError(t, os.Unsetenv("DEVINSIGHT_TEST_VALUE"))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "loaded", os.Getenv("DEVINSIGHT_TEST_VALUE"))
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		path := filepath.Join(dir, "broken.env")
		require.NoError(t, os.WriteFile(path, []byte("KEY='unterminated\n"), 0o600))

		err := loadDotEnv(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "broken.env")
	})
}
