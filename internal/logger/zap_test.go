package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "storefront.log")

	log, err := New(Config{Level: "debug", Format: "json", Output: path}, SentryConfig{})
	require.NoError(t, err)

	log.Named("listing").Info("listing loaded", zap.Int("movies", 25), zap.String("page", "movies"))
	require.NoError(t, log.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Equal(t, "listing loaded", entry["message"])
	assert.Equal(t, "listing", entry["logger"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 25, entry["movies"])
}

func TestNew_LevelFiltersEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.log")

	log, err := New(Config{Level: "warn", Output: path}, SentryConfig{})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "dropped")
	assert.Contains(t, string(raw), "kept")
}

func TestNew_Discard(t *testing.T) {
	log, err := New(Config{Level: "nonsense", Output: "discard"}, SentryConfig{})
	require.NoError(t, err)

	log.Error("nowhere", zap.Error(errors.New("boom")))
	assert.NoError(t, log.Close())
}

func TestNewNop(t *testing.T) {
	log := NewNop().With(zap.String("k", "v"))

	log.Info("ignored")
	assert.NoError(t, log.Close())
}

func TestFieldsToMap(t *testing.T) {
	m := fieldsToMap([]zapcore.Field{
		zap.String("query", "star"),
		zap.Int("count", 3),
		zap.Bool("cached", true),
		zap.Float64("ratio", 0.5),
	})

	assert.Equal(t, "star", m["query"])
	assert.EqualValues(t, 3, m["count"])
	assert.Equal(t, true, m["cached"])
	assert.Equal(t, 0.5, m["ratio"])
}

func TestZapLevelToSentry(t *testing.T) {
	assert.Equal(t, sentry.LevelWarning, zapLevelToSentry(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelError, zapLevelToSentry(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelFatal, zapLevelToSentry(zapcore.FatalLevel))
}
