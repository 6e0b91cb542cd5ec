// Package log provides the structured logging handler shared by every
// pipeline stage. It formats records without timestamps or level prefixes
// in color-capable terminals, and degrades to prefixed plain text otherwise.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// ColorMode represents the color capability of the terminal.
type ColorMode int

const (
	ColorModeNone ColorMode = iota
	ColorMode16
	ColorMode256
)

// SuccessKey marks a log record as a success message for color purposes.
const SuccessKey = "_success"

// ProgressKey marks a log record as transient progress output (e.g. a git
// clone/fetch byte counter) that callers may choose to render on one line.
const ProgressKey = "_progress"

const (
	color256Reset     = "\033[0m"
	color256Orange    = "\033[38;5;214m"
	color256Red       = "\033[38;5;203m"
	color256Gray      = "\033[90m"
	color256Pink      = "\033[38;5;219m"
	color256LightBlue = "\033[38;5;117m"
	color256Green     = "\033[38;5;156m"
	color256Cyan      = "\033[38;5;80m"
)

const (
	color16Reset     = "\033[0m"
	color16Orange    = "\033[33m"
	color16Red       = "\033[31m"
	color16Gray      = "\033[90m"
	color16Pink      = "\033[35m"
	color16LightBlue = "\033[36m"
	color16Green     = "\033[32m"
	color16Cyan      = "\033[36m"
)

// detectColorMode detects the terminal's color capability based on TERM.
func detectColorMode() ColorMode {
	term := os.Getenv("TERM")
	if term == "" {
		return ColorModeNone
	}
	if strings.Contains(term, "256color") {
		return ColorMode256
	}
	return ColorMode16
}

// Handler is a custom slog handler that formats log output without
// timestamps or levels, with an explicit quiet/silent mode matching the
// Playbook's runtime.quiet and runtime.silent fields.
type Handler struct {
	w         io.Writer
	level     slog.Leveler
	quiet     bool // only warnings and errors
	silent    bool // nothing at all
	attrs     []slog.Attr
	group     string
	colorMode ColorMode
	mu        *sync.Mutex
}

// NewHandler creates a new Handler at the given level.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{
		w:         w,
		level:     level,
		colorMode: detectColorMode(),
		mu:        &sync.Mutex{},
	}
}

// NewPlaybookHandler creates a Handler honoring a Playbook's runtime.quiet
// and runtime.silent flags: silent suppresses all output, quiet restricts
// output to warnings and errors, and the default level is info.
func NewPlaybookHandler(w io.Writer, quiet, silent, verbose bool) *Handler {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &Handler{
		w:         w,
		level:     level,
		quiet:     quiet,
		silent:    silent,
		colorMode: detectColorMode(),
		mu:        &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if h.silent {
		return false
	}
	if h.quiet && level < slog.LevelWarn {
		return false
	}
	return level >= h.level.Level()
}

// Handle formats and writes a log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.silent {
		return nil
	}

	var prefix, color, reset string
	var keyColor, valueColor, successColor, progressColor string

	switch h.colorMode {
	case ColorMode256:
		reset = color256Reset
		keyColor = color256Pink
		valueColor = color256LightBlue
		successColor = color256Green
		progressColor = color256Cyan

		switch r.Level {
		case slog.LevelDebug:
			color = color256Gray
		case slog.LevelWarn:
			color = color256Orange
		case slog.LevelError:
			color = color256Red
		}
	case ColorMode16:
		reset = color16Reset
		keyColor = color16Pink
		valueColor = color16LightBlue
		successColor = color16Green
		progressColor = color16Cyan

		switch r.Level {
		case slog.LevelDebug:
			color = color16Gray
		case slog.LevelWarn:
			color = color16Orange
		case slog.LevelError:
			color = color16Red
		}
	case ColorModeNone:
		switch r.Level {
		case slog.LevelDebug:
			prefix = "debug: "
		case slog.LevelInfo:
			prefix = "info: "
		case slog.LevelWarn:
			prefix = "warning: "
		case slog.LevelError:
			prefix = "error: "
		}
	}

	attrs := make([]slog.Attr, 0, r.NumAttrs())
	isSuccess, isProgress := false, false
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case SuccessKey:
			isSuccess = true
			return true
		case ProgressKey:
			isProgress = true
			return true
		}
		attrs = append(attrs, a)
		return true
	})

	attrs = append(h.attrs, attrs...)

	if h.colorMode != ColorModeNone {
		if isSuccess && color == "" {
			color = successColor
		}
		if isProgress && color == "" {
			color = progressColor
		}
	}

	lineEnd := "\n"
	if isProgress {
		// Progress lines are meant to be overwritten in place.
		lineEnd = "\r"
	}

	if color != "" {
		fmt.Fprintf(h.w, "%s%s%s%s", color, prefix, r.Message, reset)
	} else if prefix != "" {
		fmt.Fprintf(h.w, "%s%s", prefix, r.Message)
	} else {
		fmt.Fprint(h.w, r.Message)
	}

	for _, attr := range attrs {
		if attr.Value.Kind() == slog.KindAny {
			if _, isErr := attr.Value.Any().(error); isErr {
				if h.colorMode != ColorModeNone {
					errorColor := color256Red
					if h.colorMode == ColorMode16 {
						errorColor = color16Red
					}
					fmt.Fprintf(h.w, " %s%s=%q%s", errorColor, attr.Key, attr.Value, reset)
				} else {
					fmt.Fprintf(h.w, " %s=%q", attr.Key, attr.Value)
				}
				continue
			}
		}

		isNumeric := attr.Value.Kind() == slog.KindInt64 ||
			attr.Value.Kind() == slog.KindUint64 ||
			attr.Value.Kind() == slog.KindFloat64

		if h.colorMode != ColorModeNone {
			if isNumeric {
				fmt.Fprintf(h.w, " %s%s%s=%s%v%s", keyColor, attr.Key, reset, valueColor, attr.Value, reset)
			} else {
				fmt.Fprintf(h.w, " %s%s%s=%s%q%s", keyColor, attr.Key, reset, valueColor, attr.Value, reset)
			}
		} else {
			if isNumeric {
				fmt.Fprintf(h.w, " %s=%v", attr.Key, attr.Value)
			} else {
				fmt.Fprintf(h.w, " %s=%q", attr.Key, attr.Value)
			}
		}
	}

	fmt.Fprint(h.w, lineEnd)

	return nil
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		w:         h.w,
		level:     h.level,
		quiet:     h.quiet,
		silent:    h.silent,
		attrs:     append(h.attrs, attrs...),
		group:     h.group,
		colorMode: h.colorMode,
		mu:        h.mu,
	}
}

// WithGroup returns a new Handler with the given group.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{
		w:         h.w,
		level:     h.level,
		quiet:     h.quiet,
		silent:    h.silent,
		attrs:     h.attrs,
		group:     h.group + name + ".",
		colorMode: h.colorMode,
		mu:        h.mu,
	}
}

// Success returns an Attr that marks a log message as a success message.
func Success() slog.Attr {
	return slog.Bool(SuccessKey, true)
}

// Progress returns an Attr that marks a log message as transient progress
// output, such as a byte counter during a git clone or fetch.
func Progress() slog.Attr {
	return slog.Bool(ProgressKey, true)
}
