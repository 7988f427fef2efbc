package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"canopy/internal/version"

	"github.com/adrg/xdg"
	"github.com/lmittmann/tint"
	"github.com/muesli/termenv"
)

// Custom log levels. Notice sits between Info and Warn and is the default
// console level; Trace is below Debug for routing/dispatch chatter.
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the console log level.
var LevelVar = new(slog.LevelVar)

// FileLevelVar controls the log file level independently of the console.
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel adjusts the console level and keeps the file level at least Info.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// logFilePath is resolved once by NewLogger.
var logFilePath string

// GetLogFilePath returns the path of the active log file, or "" if file
// logging could not be set up.
func GetLogFilePath() string {
	return logFilePath
}

// log resolves printf-style arguments and hands the record to the default handler.
func log(ctx context.Context, level slog.Level, msg string, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 && strings.Contains(msg, "%") {
		msg = fmt.Sprintf(msg, args...)
		args = nil
	}
	r := slog.NewRecord(time.Now(), level, msg, 0)
	r.Add(args...)
	_ = h.Handle(ctx, r)
}

// NewLogger builds the slog logger used by the whole process: a tinted
// console handler on stderr plus an uncolored file handler under the xdg
// state directory, fanned out.
func NewLogger() *slog.Logger {
	// Color only when stderr is a real terminal
	output := termenv.NewOutput(os.Stderr)
	noColor := output.Profile == termenv.Ascii || output.EnvNoColor()

	levelNames := map[slog.Level]string{
		LevelTrace:  "TRC",
		LevelDebug:  "DBG",
		LevelInfo:   "INF",
		LevelNotice: "NTC",
		LevelWarn:   "WRN",
		LevelError:  "ERR",
		LevelFatal:  "FTL",
	}
	replaceAttr := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			level := a.Value.Any().(slog.Level)
			if name, ok := levelNames[level]; ok {
				a.Value = slog.StringValue(name)
			}
		}
		return a
	}

	consoleHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  "15:04:05",
		NoColor:     noColor,
		ReplaceAttr: replaceAttr,
	})

	handlers := []slog.Handler{consoleHandler}

	if path, err := xdg.StateFile(filepath.Join(version.CommandName, version.CommandName+".log")); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			logFilePath = path
			handlers = append(handlers, tint.NewHandler(f, &tint.Options{
				Level:       FileLevelVar,
				TimeFormat:  "2006-01-02 15:04:05",
				NoColor:     true,
				ReplaceAttr: replaceAttr,
			}))
		}
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

// FanoutHandler broadcasts records to multiple handlers.
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods

func Trace(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelError, msg, args...)
}

// Fatal logs a message with a stack trace at FatalLevel and panics with
// FatalError so the main run loop can restore the terminal before exiting.
func Fatal(ctx context.Context, msg string, args ...any) {
	FatalWithStackSkip(ctx, 2, msg, args...)
}

// FatalWithStackSkip is Fatal with explicit control over how many stack
// frames to skip (used by the recovery helpers, which add frames of their own).
func FatalWithStackSkip(ctx context.Context, skip int, msg string, args ...any) {
	if len(args) > 0 && strings.Contains(msg, "%") {
		msg = fmt.Sprintf(msg, args...)
		args = nil
	}

	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	frames := runtime.CallersFrames(pc[:n])

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("  %s\n    %s:%d", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}

	log(ctx, LevelFatal, msg+"\n"+strings.Join(trace, "\n"), args...)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls.
// This allows the main run loop to recover and perform cleanup before exiting.
type FatalError struct{}
