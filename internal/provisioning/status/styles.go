package status

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginTop(1)

	readyStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	failedStyle  = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	spinner   = "[..]"
	warnMark  = "[??]"
)

// mark returns the indicator and style for an instance.
func mark(inst Instance) (string, lipgloss.Style) {
	switch {
	case inst.Healthy():
		return checkMark, readyStyle
	case inst.Status == "running" && inst.Health == "starting":
		return spinner, warningStyle
	case inst.Status == "running" && inst.Health == "no_healthcheck":
		return warnMark, warningStyle
	case inst.Status == "not_found", inst.Status == "exited", inst.Health == "unhealthy":
		return crossMark, failedStyle
	default:
		return warnMark, warningStyle
	}
}
