package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/reslot/pkg/logging"
	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

func TestTargetDir(t *testing.T) {
	maps := []string{"c00=c10", "c01=c11", "c02=c12", "c03=c13", "c04=c14"}
	tests := []struct {
		mode Mode
		maps []string
		want string
	}{
		{ModeInPlace, maps, "/mods/Cool"},
		{ModeClone, maps, "/mods/Cool (c00 c10 c01 c11 c02 c12 c03 c13)"},
		{ModeClone, []string{"c00=c02"}, "/mods/Cool (c00 c02)"},
		{ModeReplace, maps, "/mods/Cool (Temp)"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, TargetDir("/mods/Cool", tt.mode, tt.maps))
		})
	}
}

func TestLock_AcquireRelease(t *testing.T) {
	logger := logging.NewTestLogger("test-lock")
	dir := t.TempDir()

	lock, err := Acquire(dir, logger)
	require.NoError(t, err)
	assert.FileExists(t, lock.Path())

	_, err = Acquire(dir, logger)
	assert.True(t, errors.Is(err, rerrors.ErrSessionLocked))
	assert.True(t, rerrors.IsInputError(err))

	lock.Release()
	assert.NoFileExists(t, lock.Path())

	lock, err = Acquire(dir, logger)
	require.NoError(t, err)
	lock.Release()
}

func TestLock_StaleLockRemoved(t *testing.T) {
	logger := logging.NewTestLogger("test-lock-stale")
	for name, contents := range map[string]string{
		"dead pid": "0\n",
		"garbage":  "not-a-pid",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte(contents), 0o644))

			lock, err := Acquire(dir, logger)
			require.NoError(t, err)
			data, err := os.ReadFile(lock.Path())
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))
			lock.Release()
		})
	}
}

func TestCopier(t *testing.T) {
	mod := t.TempDir()
	out := t.TempDir()
	src := filepath.Join(mod, "fighter", "mario", "model", "body", "c00", "model.numdlb")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, []byte("model"), 0o644))

	c := &Copier{ModDir: mod, Logger: logging.NewTestLogger("test-copier")}
	require.NoError(t, c.Copy("fighter/mario/model/body/c00/model.numdlb", out, "fighter/mario/model/body/c02/model.numdlb"))

	data, err := os.ReadFile(filepath.Join(out, "fighter", "mario", "model", "body", "c02", "model.numdlb"))
	require.NoError(t, err)
	assert.Equal(t, "model", string(data))

	err = c.Copy("fighter/mario/missing.numdlb", out, "fighter/mario/missing2.numdlb")
	assert.True(t, errors.Is(err, rerrors.ErrCopyFailed))
}

func TestCopyExtras(t *testing.T) {
	mod := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(mod, "info.toml"), []byte("display_name = \"x\""), 0o644))

	copied, err := CopyExtras(mod, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"info.toml"}, copied)
	assert.FileExists(t, filepath.Join(out, "info.toml"))
	assert.NoFileExists(t, filepath.Join(out, "preview.webp"))
}

func TestSwap(t *testing.T) {
	logger := logging.NewTestLogger("test-swap")
	root := t.TempDir()
	mod := filepath.Join(root, "Cool")
	temp := TargetDir(mod, ModeReplace, nil)

	for p, body := range map[string]string{
		filepath.Join(mod, "fighter", "old.txt"):  "old",
		filepath.Join(mod, LockFileName):          "123\n",
		filepath.Join(temp, "fighter", "new.txt"): "new",
		filepath.Join(temp, "config.json"):        "{}",
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	require.NoError(t, Swap(temp, mod, logger, LockFileName))

	assert.NoDirExists(t, temp)
	assert.NoFileExists(t, filepath.Join(mod, "fighter", "old.txt"))
	assert.FileExists(t, filepath.Join(mod, "fighter", "new.txt"))
	assert.FileExists(t, filepath.Join(mod, "config.json"))
	assert.FileExists(t, filepath.Join(mod, LockFileName))
	assert.NoDirExists(t, mod+BackupSuffix)
}

func TestSwap_FailureKeepsMod(t *testing.T) {
	logger := logging.NewTestLogger(t.Name())
	root := t.TempDir()
	mod := filepath.Join(root, "Cool")
	require.NoError(t, os.MkdirAll(filepath.Join(mod, "fighter"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mod, "fighter", "old.txt"), []byte("old"), 0o644))

	err := Swap(filepath.Join(root, "missing"), mod, logger)
	require.Error(t, err)

	assert.FileExists(t, filepath.Join(mod, "fighter", "old.txt"))
	assert.NoDirExists(t, mod+BackupSuffix)
}

func TestDiskSpace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fighter"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fighter", "a.bin"), make([]byte, 100), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fighter", "b.bin"), make([]byte, 28), 0o644))

	assert.Equal(t, int64(128), FilesSize(dir, []string{"fighter/a.bin", "fighter/b.bin", "fighter/missing.bin"}))

	logger := logging.NewTestLogger(t.Name())
	assert.NoError(t, CheckDiskSpace(dir, 128, logger))

	err := CheckDiskSpace(dir, 1<<62, logger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rerrors.ErrInsufficientSpace))
}

func TestSwap_RefusesLeftoverBackup(t *testing.T) {
	logger := logging.NewTestLogger(t.Name())
	root := t.TempDir()
	mod := filepath.Join(root, "Cool")
	temp := TargetDir(mod, ModeReplace, nil)
	for _, p := range []string{
		filepath.Join(mod, "fighter", "old.txt"),
		filepath.Join(temp, "fighter", "new.txt"),
		filepath.Join(mod+BackupSuffix, "fighter", "older.txt"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	require.Error(t, Swap(temp, mod, logger))
	assert.FileExists(t, filepath.Join(mod, "fighter", "old.txt"))
	assert.FileExists(t, filepath.Join(temp, "fighter", "new.txt"))
	assert.FileExists(t, filepath.Join(mod+BackupSuffix, "fighter", "older.txt"))
}
