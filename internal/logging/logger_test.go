package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithFieldMap(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug")
	Operation(logger, "refresh").WithError(errors.New("boom")).Warn("fetch todos failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetch todos failed", entry["message"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "refresh", entry[KeyOperation])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry, "ts")
}

func TestNewLevelParsing(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New(&bytes.Buffer{}, "debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New(&bytes.Buffer{}, "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New(&bytes.Buffer{}, "nonsense").GetLevel())
}

func TestOpenFileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todocal.log")
	logger, closer, err := OpenFile(path, "info")
	require.NoError(t, err)
	defer closer.Close()
	logger.Info("hello")
	assert.FileExists(t, path)
}

func TestUIDPrefix(t *testing.T) {
	assert.Equal(t, "abcdef...", UIDPrefix("abcdefghij"))
	assert.Equal(t, "abc", UIDPrefix("abc"))
}
