package compress

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/reslot/pkg/reslot/codec"
)

const sample = "fighter/mario/model/body/c00/model.numdlb\nfighter/mario/motion/body/c00/a00wait1.nuanmb\n"

func writeEncoded(t *testing.T, c codec.Codec, path string, data string) {
	t.Helper()
	var buf bytes.Buffer
	w, err := c.Compress(&buf)
	require.NoError(t, err)
	_, err = io.Copy(w, strings.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestCodecs_OpenDecodesByExtension(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name  string
		codec codec.Codec
		file  string
	}{
		{"gzip", NewGzip(), "Hashes_all.txt.gz"},
		{"bzip2", NewBzip2(), "Hashes_all.txt.bz2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			writeEncoded(t, tc.codec, path, sample)

			r, err := codec.Open(path)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, sample, string(got))
		})
	}
}

func TestCodecs_PlainFilePassesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Hashes_all.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	r, err := codec.Open(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sample, string(got))
}

func TestCodecs_Registered(t *testing.T) {
	c, ok := codec.ForPath("dir_info.JSON.GZ")
	require.True(t, ok)
	assert.Equal(t, "GZIP", c.Name())
	assert.ElementsMatch(t, []string{"GZIP", "BZIP2"}, codec.Names())
}

func TestCodecs_Transcode(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "dir_info.json")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o600))

	packed := filepath.Join(dir, "dir_info.json.bz2")
	n, err := codec.Transcode(plain, packed)
	require.NoError(t, err)
	assert.Equal(t, int64(len(sample)), n)

	raw, err := os.ReadFile(packed)
	require.NoError(t, err)
	assert.NotEqual(t, sample, string(raw))

	repacked := filepath.Join(dir, "dir_info.json.gz")
	_, err = codec.Transcode(packed, repacked)
	require.NoError(t, err)

	r, err := codec.Open(repacked)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sample, string(got))
}

func TestCodecs_TranscodeMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := codec.Transcode(filepath.Join(dir, "missing.json"), filepath.Join(dir, "out.json.gz"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "out.json.gz"))
}
