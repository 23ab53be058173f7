// Package render draws AQI readings for the terminal using lipgloss.
package render

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
)

// largeText is the level text size at which the label is drawn bold.
const largeText = 20

var (
	errorColor = lipgloss.Color("#FF0000")

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 2)

	// SubtleStyle formats secondary widget lines.
	SubtleStyle = lipgloss.NewStyle().
			Faint(true)
)

// Options controls how a widget is drawn.
type Options struct {
	Dark     bool
	Location *time.Location // for the "Updated" time; nil means local time
}

// Widget renders a reading as a colored box: heading, index, level, sensor
// label, and the time the reading was taken.
func Widget(r domain.PresentationResult, opts Options) string {
	style := r.Style(opts.Dark)

	box := lipgloss.NewStyle().
		Background(hexColor(style.Colors.Start)).
		Foreground(hexColor(style.Colors.Text)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(hexColor(style.Colors.End)).
		Padding(1, 2)

	level := lipgloss.NewStyle()
	if style.TextSize >= largeText {
		level = level.Bold(true)
	}

	lines := []string{
		r.Header(),
		lipgloss.NewStyle().Bold(true).Render(r.AQI.String()),
		level.Render(r.Level.Label),
	}
	if r.Label != "" {
		lines = append(lines, SubtleStyle.Render(r.Label))
	}
	lines = append(lines, SubtleStyle.Render("Updated "+updatedAt(r.ObservedAt, opts.Location)))

	return box.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// Fallback renders an error in place of the widget.
func Fallback(err error) string {
	return errorStyle.Render(err.Error())
}

func updatedAt(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

func hexColor(rgb string) lipgloss.Color {
	return lipgloss.Color("#" + rgb)
}
