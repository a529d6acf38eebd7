package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := NewSlog(slog.New(handler))

	log.Debug("scan started", "cluster", 3)
	log.Info("pass complete", "hitsAssigned", 12)
	log.Warn("no track hits", "layer", 7)
	log.Error("pass aborted", "reason", "zero cut width")

	out := buf.String()
	require.Contains(t, out, "scan started")
	require.Contains(t, out, "cluster=3")
	require.Contains(t, out, "hitsAssigned=12")
	require.Contains(t, out, "layer=7")
	require.Contains(t, out, "zero cut width")
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	log := NewNop()

	require.NotPanics(t, func() {
		log.Debug("a")
		log.Info("b", "k", 1)
		log.Warn("c")
		log.Error("d")
	})
}
