package common

import (
	"bytes"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		" error ": logger.ERROR,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("store", &buf, 0)

	l.Infof("hidden %d", 1)
	assert.Empty(t, buf.String(), "default level is warning")

	l.Warningf("key %q exists", "a")
	assert.Equal(t, "WARN  | store    | key \"a\" exists\n", buf.String())

	buf.Reset()
	l.SetLevel(logger.DEBUG)
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "DEBUG | store")

	assert.Panics(t, func() { l.Panicf("fatal") })
}

func TestInitLoggers(t *testing.T) {
	require.NoError(t, InitLoggers("error"))
	require.NoError(t, InitLoggers("debug"))
	assert.Error(t, InitLoggers("nope"))
}

func TestStoreConfig(t *testing.T) {
	c := StoreConfig{Path: "pdict.db", Codec: "json", LogLevel: "warn"}
	require.NoError(t, c.Validate())
	assert.Contains(t, c.String(), "  Path        : pdict.db\n")
	assert.Contains(t, c.String(), "LOGGING")

	c.Path = " "
	assert.Error(t, c.Validate())

	c = StoreConfig{Path: "x", Codec: "json", LogLevel: "loud"}
	assert.Error(t, c.Validate())
}
