package logsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/afthonios/catalog/core"
)

func TestRollbarLogger(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	logger := &RollbarLogger{log: zap.New(obs).Sugar()}

	errBoom := errors.New("boom")
	logger.Error("render failed", errBoom, core.RequestInfo{ID: "req-1", Method: "POST", Path: "/v1/plans/render"}, map[string]interface{}{"b": 2, "a": 1})
	logger.Info("started")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "render failed", entries[0].Message)
	assert.Equal(t, map[string]interface{}{
		"error":      "boom",
		"request_id": "req-1",
		"method":     "POST",
		"path":       "/v1/plans/render",
		"a":          int64(1),
		"b":          int64(2),
	}, entries[0].ContextMap())

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Empty(t, entries[1].Context)
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := NewNopLogger()
	errBoom := errors.New("boom")

	report, kvs := logger.prepare("msg", []interface{}{errBoom, core.RequestInfo{ID: "r", Locale: "fr"}, 42})
	assert.Equal(t, []interface{}{"msg", errBoom, map[string]interface{}{"request_id": "r", "locale": "fr"}}, report)
	assert.Equal(t, []interface{}{"error", errBoom, "request_id", "r", "locale", "fr", "arg", 42}, kvs)

	report, kvs = logger.prepare("msg", nil)
	assert.Equal(t, []interface{}{"msg"}, report)
	assert.Empty(t, kvs)
}
