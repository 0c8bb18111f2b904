package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"mealsub/internal/shared/config"
)

var (
	mu          sync.RWMutex
	Logger      *slog.Logger
	atomicLevel = new(slog.LevelVar)
)

// ParseLevel maps a config level name to a slog level. Unknown names fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds the process logger. In debug server mode every level carries
// its source location; otherwise only warnings and errors do.
func Init(cfg *config.LoggerConfig, serverMode string) error {
	atomicLevel.Set(ParseLevel(cfg.Level))

	var writer io.Writer
	switch strings.ToLower(cfg.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writer = file
	}

	sourceFrom := slog.LevelWarn
	if serverMode == "debug" {
		sourceFrom = slog.LevelDebug
	}

	setDefault(slog.New(newHandler(writer, cfg.Format, sourceFrom)))
	return nil
}

func newHandler(w io.Writer, format string, sourceFrom slog.Level) slog.Handler {
	if strings.EqualFold(format, "json") {
		return NewConditionalSourceHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: atomicLevel,
		}), sourceFrom)
	}

	return NewConditionalSourceHandler(tint.NewHandler(w, &tint.Options{
		Level:      atomicLevel,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" && a.Value.Kind() == slog.KindAny {
				if err, ok := a.Value.Any().(error); ok {
					return tint.Err(err)
				}
			}
			return a
		},
	}), sourceFrom)
}

func setDefault(l *slog.Logger) {
	mu.Lock()
	Logger = l
	mu.Unlock()
	slog.SetDefault(l)
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func SetLevel(level slog.Level) {
	atomicLevel.Set(level)
}

// Get returns the process logger, creating a console logger on first use
// when Init has not run (tests, CLI subcommands).
func Get() *slog.Logger {
	mu.RLock()
	l := Logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	l = slog.New(newHandler(os.Stdout, "text", slog.LevelWarn))
	setDefault(l)
	return l
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}

func WithComponent(component string) *slog.Logger {
	return Get().With("component", component)
}
