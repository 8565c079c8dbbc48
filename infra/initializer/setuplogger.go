package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.ErrorLevel: {Light: "#FF6B6B", Dark: "#FF6B6B"},
	log.WarnLevel:  {Light: "#EE6FF8", Dark: "#EE6FF8"},
	log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
	log.DebugLevel: {Light: "#7E57C2", Dark: "#7E57C2"},
}

var levelIcons = map[log.Level]string{
	log.ErrorLevel: "❌",
	log.WarnLevel:  "⚠️",
	log.InfoLevel:  "ℹ️",
	log.DebugLevel: "🐛",
}

func ledgerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, color := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(levelIcons[level]).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}

	accent := levelColors[log.DebugLevel]
	for _, key := range []string{"prefix", "caller", "time", "accountID", "amount"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(accent)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	return styles
}

// newLogger builds a charmbracelet-backed slog.Logger writing to w.
func newLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	formatters := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"text":   log.TextFormatter,
		"logfmt": log.LogfmtFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formatters[cfg.Format]; ok {
		formatter = f
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(ledgerStyles())
	return slog.New(handler)
}

func setupLogger(cfg *config.Log) *slog.Logger {
	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// SetupLogger configures and installs the default logger. Used by the CLI,
// which needs logging without the rest of the dependencies.
func SetupLogger(cfg *config.Log) *slog.Logger {
	return setupLogger(cfg)
}
