package gitsource

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dionysius/docweave/internal/log"
)

// progressWriter adapts go-git's raw, carriage-return-separated clone/fetch
// progress stream into structured, Progress-marked log records, one per
// line the remote reports.
type progressWriter struct {
	url string
}

func (p *progressWriter) Write(b []byte) (int, error) {
	line := strings.TrimSpace(strings.NewReplacer("\r", "\n").Replace(string(b)))
	if line != "" {
		slog.Info(line, "url", p.url, log.Progress())
	}
	return len(b), nil
}

// newProgressWriter returns a progress sink for url's clone/fetch, or nil
// when progress reporting is disabled: quiet/silent mode, no stdout handle
// was given, or it isn't an interactive terminal.
func newProgressWriter(url string, quiet, silent bool, stdout *os.File) io.Writer {
	if quiet || silent || !isTerminal(stdout) {
		return nil
	}
	return &progressWriter{url: url}
}

// endProgress logs a plain, non-Progress-marked record on failure so the
// interrupted clone/fetch's carriage-return progress line is followed by a
// real newline, leaving the terminal clean instead of mid-overwrite.
func endProgress(w io.Writer, url string, err error) {
	if w == nil || err == nil {
		return
	}
	slog.Warn("clone/fetch interrupted", "url", url, "error", err)
}

// isTerminal reports whether f is attached to an interactive terminal. It
// uses the same char-device stat check the standard library's own
// terminal probes rely on, rather than pulling in a dedicated
// terminal-detection dependency for one check.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
