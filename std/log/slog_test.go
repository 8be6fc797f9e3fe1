package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/named-data/ndnfw/std/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTag struct{}

func (testTag) String() string { return "tester" }

func TestParseLevel(t *testing.T) {
	lvl, err := log.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, lvl)
	assert.Equal(t, "DEBUG", lvl.String())

	_, err = log.ParseLevel("LOUD")
	assert.Error(t, err)
}

func TestLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.NewText(buf)

	logger.Debug(nil, "hidden")
	assert.Zero(t, buf.Len())

	prev := logger.SetLevel(log.LevelTrace)
	assert.Equal(t, log.LevelInfo, prev)
	assert.True(t, logger.HasTrace())
	logger.Trace(nil, "shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "level=TRACE")
}

func TestJsonTag(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.NewJson(buf)
	logger.Info(testTag{}, "hello", "name", "/a/b")

	rec := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "tester", rec["tag"])
	assert.Equal(t, "/a/b", rec["name"])
	assert.Equal(t, "INFO", rec["level"])
}
