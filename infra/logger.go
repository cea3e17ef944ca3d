package infra

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/finbook/finbook/pkg/config"
)

// NewLogger builds the application slog.Logger on top of charmbracelet/log
// and installs it as the slog default.
func NewLogger(cfg *config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	infoColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").Bold(true).Padding(0, 1).Foreground(infoColor)
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").Bold(true).Padding(0, 1).Foreground(warnColor)
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").Bold(true).Padding(0, 1).Foreground(errorColor)
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
