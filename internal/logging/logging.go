// Package logging sets up the run logger: text on stderr, optionally
// mirrored to a Seq server.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	slogseq "github.com/sokkalf/slog-seq"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// Options controls Setup.
type Options struct {
	Out     io.Writer
	Verbose bool
	SeqURL  string
}

// Setup returns a logger tagged with a fresh run id, the id itself and a
// cleanup function that flushes any remote sink.
func Setup(opts Options) (*slog.Logger, string, func()) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	console := slog.NewTextHandler(opts.Out, hopts)
	run := uuid.NewString()

	if opts.SeqURL == "" {
		return slog.New(console).With("run", run), run, func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithBatchSize(50),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(hopts),
	)

	multi := &multiHandler{
		handlers: []slog.Handler{console, seqHandler},
	}
	closeFn := func() {
		seqHandler.Close()
	}

	return slog.New(multi).With("run", run), run, closeFn
}
