package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitLoggerJSONAndLevel(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	InitLogger(&buf, LevelInfo, FormatJSON)

	Logger().Debug("hidden")
	Logger().Info("shown", "size", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	require.Equal(t, "shown", rec["msg"])
	require.Equal(t, float64(3), rec["size"])
}

func TestOrAndSetLogger(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	require.Same(t, custom, Or(custom))

	SetLogger(nil)
	require.Same(t, prev, Logger())

	SetLogger(custom)
	require.Same(t, custom, Or(nil))
}

func TestParseLevelAndFormat(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, LevelDebug, lvl)

	lvl, err = ParseLevel("warning")
	require.NoError(t, err)
	require.Equal(t, LevelWarn, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)

	f, err := ParseFormat("json")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}
