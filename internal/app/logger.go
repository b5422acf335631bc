package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kapil1024/Redfish-Service-Validator/internal/fs"
)

const (
	LogFile   = ".rsv.log"
	LogEnvVar = "RSV_LOG_FILE"
)

// setupLogger builds the tool's logger: structured JSON at debug level to a
// log file, and clean human-readable lines to the console. When the log file
// cannot be opened the logger still works console-only and the open error is
// returned for the caller to report.
func setupLogger(stderr io.Writer, logLevel *slog.LevelVar, logDir string, envProvider fs.EnvProvider) (*slog.Logger, io.Closer, error) {
	console := &consoleHandler{w: stderr, level: logLevel}

	f, err := openLogFile(logDir, envProvider)
	if err != nil {
		return slog.New(console), nil, err
	}

	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		// The file always carries the full debug stream; logLevel only
		// gates the console.
		Level: slog.LevelDebug,
	})
	return slog.New(&multiHandler{handlers: []slog.Handler{fileHandler, console}}), f, nil
}

// openLogFile resolves the log path (environment override, then the
// configured directory, then the working directory) and opens it for append.
func openLogFile(logDir string, envProvider fs.EnvProvider) (*os.File, error) {
	path := envProvider.Get(LogEnvVar)
	if path == "" {
		path = LogFile
		if logDir != "" {
			_ = os.MkdirAll(logDir, 0o750)
			path = filepath.Join(logDir, LogFile)
		}
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// multiHandler fans a record out to every handler that wants it.
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

//nolint:gocritic // slog.Record is passed by value in the interface
func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, h.Handle(ctx, record))
	}
	return errors.Join(errs...)
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &multiHandler{handlers: make([]slog.Handler, len(m.handlers))}
	for i, h := range m.handlers {
		next.handlers[i] = h.WithAttrs(attrs)
	}
	return next
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := &multiHandler{handlers: make([]slog.Handler, len(m.handlers))}
	for i, h := range m.handlers {
		next.handlers[i] = h.WithGroup(name)
	}
	return next
}

// consoleHandler renders records as single clean lines for people. Warnings
// and errors get a prefix; attributes stay hidden unless the console level is
// debug, except error attributes which always print.
type consoleHandler struct {
	w     io.Writer
	level *slog.LevelVar
	attrs []slog.Attr
}

func (c *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (c *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var buf bytes.Buffer
	switch {
	case record.Level >= slog.LevelError:
		buf.WriteString("Error: ")
	case record.Level >= slog.LevelWarn:
		buf.WriteString("Warning: ")
	}
	buf.WriteString(record.Message)

	for _, a := range c.attrs {
		c.appendAttr(&buf, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		c.appendAttr(&buf, a)
		return true
	})
	buf.WriteByte('\n')

	// One write per record so concurrent loggers cannot interleave a line.
	_, err := c.w.Write(buf.Bytes())
	return err
}

func (c *consoleHandler) appendAttr(buf *bytes.Buffer, a slog.Attr) {
	switch {
	case a.Key == "error" || a.Key == "err":
		fmt.Fprintf(buf, ": %v", a.Value)
	case c.level.Level() <= slog.LevelDebug:
		fmt.Fprintf(buf, " %s=%v", a.Key, a.Value)
	}
}

func (c *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		w:     c.w,
		level: c.level,
		attrs: append(c.attrs, attrs...),
	}
}

func (c *consoleHandler) WithGroup(_ string) slog.Handler {
	// Console lines are flat; groups are only meaningful in the JSON file.
	return c
}
