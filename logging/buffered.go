package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// BufferedLogHandler captures records in memory as JSON lines so tests can
// assert on what the engine logged.
//
//	handler := logging.NewBufferedLogHandler(nil)
//	logging.SetLogger(slog.New(handler))
//	defer logging.SetLogger(nil)
type BufferedLogHandler struct {
	level      slog.Leveler
	sink       *bufferSink
	preAttrs   []slog.Attr
	groupNames []string
}

type bufferSink struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewBufferedLogHandler returns a handler with an empty buffer. A nil opts
// captures every level.
func NewBufferedLogHandler(opts *slog.HandlerOptions) *BufferedLogHandler {
	h := &BufferedLogHandler{sink: &bufferSink{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *BufferedLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

func (h *BufferedLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := logEntry{
		Level:   r.Level.String(),
		Message: r.Message,
	}
	for _, attr := range h.preAttrs {
		entry.Attrs = append(entry.Attrs, h.prefixedAttr(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry.Attrs = append(entry.Attrs, h.prefixedAttr(attr))
		return true
	})

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.buf.Write(data)
	h.sink.buf.WriteByte('\n')
	return nil
}

func (h *BufferedLogHandler) prefixedAttr(attr slog.Attr) string {
	if len(h.groupNames) == 0 {
		return attr.String()
	}
	return strings.Join(h.groupNames, ".") + "." + attr.String()
}

func (h *BufferedLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preAttrs = append(append([]slog.Attr(nil), h.preAttrs...), attrs...)
	return &next
}

func (h *BufferedLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groupNames = append(append([]string(nil), h.groupNames...), name)
	return &next
}

// String returns everything captured so far.
func (h *BufferedLogHandler) String() string {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	return h.sink.buf.String()
}

// Contains reports whether the captured output contains s.
func (h *BufferedLogHandler) Contains(s string) bool {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	return bytes.Contains(h.sink.buf.Bytes(), []byte(s))
}

// Reset clears the captured output.
func (h *BufferedLogHandler) Reset() {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.buf.Reset()
}

type logEntry struct {
	Level   string   `json:"level"`
	Message string   `json:"message"`
	Attrs   []string `json:"attrs,omitempty"`
}
