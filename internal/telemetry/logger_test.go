package telemetry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	records []slog.Record
	level   slog.Level
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(ctx context.Context, record slog.Record) error {
	h.records = append(h.records, record)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(name string) slog.Handler       { return h }

func TestFanoutHandler_DuplicatesRecords(t *testing.T) {
	a := &recordingHandler{}
	b := &recordingHandler{}
	fan := &fanoutHandler{handlers: []slog.Handler{a, b}}

	logger := slog.New(fan)
	logger.Info("hello")

	require.Len(t, a.records, 1)
	require.Len(t, b.records, 1)
	assert.Equal(t, "hello", a.records[0].Message)
}

func TestFanoutHandler_EnabledIfAnyEnabled(t *testing.T) {
	quiet := &recordingHandler{level: slog.LevelError}
	chatty := &recordingHandler{level: slog.LevelDebug}
	fan := &fanoutHandler{handlers: []slog.Handler{quiet, chatty}}

	assert.True(t, fan.Enabled(context.Background(), slog.LevelDebug))

	onlyQuiet := &fanoutHandler{handlers: []slog.Handler{quiet}}
	assert.False(t, onlyQuiet.Enabled(context.Background(), slog.LevelInfo))
}

func TestInitLogger_WritesToFile(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	path := filepath.Join(t.TempDir(), "solgraph.log")
	InitLogger(false, path)

	LogInfo("compile finished", "contract", "Demo")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "compile finished"))
	assert.True(t, strings.Contains(string(data), "Demo"))
}
