package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixWriter_CompleteLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	n, err := pw.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "> one\n> two\n", out.String())
}

func TestPrefixWriter_PartialLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	_, err := pw.Write([]byte("hal"))
	require.NoError(t, err)
	assert.Empty(t, out.String())

	_, err = pw.Write([]byte("f\ntail"))
	require.NoError(t, err)
	assert.Equal(t, "> half\n", out.String())

	require.NoError(t, pw.Flush())
	assert.Equal(t, "> half\n> tail", out.String())
	require.NoError(t, pw.Flush())
	assert.Equal(t, "> half\n> tail", out.String())
}

func TestResolveLevel(t *testing.T) {
	t.Setenv("RESLOT_LOG_LEVEL", "")
	t.Setenv("RESLOT_JSON_LOG", "")

	lvl := ResolveLevel("")
	assert.Equal(t, Level{Name: "info", Source: "default"}, lvl)

	lvl = ResolveLevel("debug")
	assert.Equal(t, "debug", lvl.Name)
	assert.False(t, lvl.JSON)

	lvl = ResolveLevel("json:trace")
	assert.Equal(t, "trace", lvl.Name)
	assert.True(t, lvl.JSON)

	t.Setenv("RESLOT_LOG_LEVEL", "warn")
	lvl = ResolveLevel("")
	assert.Equal(t, "warn", lvl.Name)
	assert.Equal(t, "RESLOT_LOG_LEVEL", lvl.Source)
}

func TestNewLogger_WritesPrefixedLines(t *testing.T) {
	t.Setenv("RESLOT_JSON_LOG", "")
	var out bytes.Buffer
	logger := NewLogger("test", "info", &out)
	logger.Info("hello", "k", "v")
	assert.Contains(t, out.String(), Prefix)
	assert.Contains(t, out.String(), "hello")
}
