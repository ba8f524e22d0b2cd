package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q", line)
		entries = append(entries, entry)
	}
	return entries
}

func logSweep(l *Logger) {
	l.Info().Int("created", 3).Msg("recurrence sweep finished")
}

func TestNewLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "recurrence-worker")

	logSweep(l)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, "recurrence-worker", entry["role"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "recurrence sweep finished", entry["message"])
	assert.EqualValues(t, 3, entry["created"])
	assert.Contains(t, entry, "time")

	// the caller is rendered as a function name, not file:line
	caller, ok := entry["func"].(string)
	require.True(t, ok, "expected a func field, got %v", entry)
	assert.True(t, strings.HasSuffix(caller, "logger.logSweep"), "caller %q", caller)
	assert.NotContains(t, caller, ".go:")
}

func TestNewLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "server")

	l.Debug().Msg("visible")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "visible")
}

func TestNewClientLogger_IsNotJSON(t *testing.T) {
	l := NewClientLogger("client")
	require.NotNil(t, l)

	var buf bytes.Buffer
	l.Logger = l.Output(zerolog.ConsoleWriter{Out: &buf, NoColor: true})
	l.Warn().Str("command", "sweep").Msg("login required")

	out := buf.String()
	assert.Contains(t, out, "login required")
	assert.Contains(t, out, "command=sweep")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(out))))
}

func TestNop_DiscardsEverything(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	assert.Equal(t, zerolog.Disabled, l.GetLevel())
	assert.NotPanics(t, func() {
		l.Error().Str("func", "store.Insert").Msg("ignored")
		l.GetChildLogger().Info().Msg("ignored too")
	})
}

func TestGetChildLogger_DoesNotLeakFieldsToParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "server")

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("worker", "recurrence").Logger()

	child.Info().Msg("from child")
	parent.Info().Msg("from parent")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "recurrence", entries[0]["worker"])
	assert.Equal(t, "server", entries[0]["role"])
	assert.NotContains(t, entries[1], "worker")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Str("trace_id", "0192-abc").Logger()

	tests := []struct {
		name      string
		ctx       context.Context
		wantTrace bool
	}{
		{name: "attached logger", ctx: base.WithContext(context.Background()), wantTrace: true},
		{name: "bare context", ctx: context.Background(), wantTrace: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			l := FromContext(tt.ctx)
			require.NotNil(t, l)
			l.Info().Msg("listing transactions")

			assert.Equal(t, tt.wantTrace, strings.Contains(buf.String(), "0192-abc"))
		})
	}
}

func TestFromRequest_UsesRequestContext(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Int64("user_id", 7).Logger()

	req := httptest.NewRequest("GET", "/api/transactions", nil)
	req = req.WithContext(base.WithContext(req.Context()))

	FromRequest(req).Info().Msg("handled")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 7, entries[0]["user_id"])
}
