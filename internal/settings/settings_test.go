package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables for the test and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvHashes, EnvDirInfo, EnvPrcDir, EnvLogLevel} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, DefaultHashes, s.Hashes)
	assert.Equal(t, DefaultDirInfo, s.DirInfo)
	assert.Equal(t, DefaultPrcDir, s.PrcDir)
	assert.Empty(t, s.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDirInfo, "/data/dir_info.json.gz")

	envFile := filepath.Join(t.TempDir(), "reslot.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"RESLOT_HASHES=/data/hashes.txt.bz2\nRESLOT_DIR_INFO=/ignored.json\nRESLOT_LOG_LEVEL=debug\n"), 0o644))

	s := Load(envFile)
	assert.Equal(t, "/data/hashes.txt.bz2", s.Hashes)
	assert.Equal(t, "/data/dir_info.json.gz", s.DirInfo, "set variables win over the file")
	assert.Equal(t, "debug", s.LogLevel)
}
