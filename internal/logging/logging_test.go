package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, run, cleanup := Setup(Options{Out: &buf})
	defer cleanup()

	_, err := uuid.Parse(run)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("loaded", "rows", 42)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=loaded")
	assert.Contains(t, out, "rows=42")
	assert.Contains(t, out, "run="+run)
}

func TestSetupVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger, _, cleanup := Setup(Options{Out: &buf, Verbose: true})
	defer cleanup()

	logger.Debug("branches", "n", 3)
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestSetupSeq(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger, run, cleanup := Setup(Options{Out: &buf, SeqURL: srv.URL})

	logger.Info("wrote figure", "out", "vizZmumu.html")
	cleanup()

	assert.Contains(t, buf.String(), "msg=\"wrote figure\"")
	assert.Contains(t, buf.String(), "run="+run)
}

func TestMultiHandler(t *testing.T) {
	var info, debug bytes.Buffer
	m := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}

	assert.True(t, m.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, m.Enabled(context.Background(), slog.LevelDebug-4))

	logger := slog.New(m).WithGroup("fit").With("column", "pt")
	logger.Debug("iteration")
	logger.Info("done")

	assert.NotContains(t, info.String(), "iteration")
	assert.Contains(t, info.String(), "fit.column=pt")
	assert.Contains(t, debug.String(), "iteration")
	assert.Contains(t, debug.String(), "done")
}
