package main

import (
	"fmt"
	"strings"

	"infinite-experiment/airclock/internal/temporal"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorDanger  = lipgloss.Color("#FF6B6B")
	colorWarning = lipgloss.Color("#FFD93D")
	colorSuccess = lipgloss.Color("#6BCF7F")
	colorMuted   = lipgloss.Color("#6C757D")
	colorBorder  = lipgloss.Color("#4A90E2")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(12)

	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	dayStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	nightStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

func renderCard(p *temporal.Profile) string {
	title := p.Airport.ICAO
	if p.Airport.IATA != "" {
		title += " / " + p.Airport.IATA
	}
	if p.Airport.Name != "" {
		title += "  " + p.Airport.Name
	}

	segment := string(p.Segment)
	if p.IsDaylight {
		segment = dayStyle.Render(segment)
	} else {
		segment = nightStyle.Render(segment)
	}

	rows := []string{
		titleStyle.Render(title),
		row("Zone", fmt.Sprintf("%s (%s)", p.Timezone.Name, p.Timezone.Provenance)),
		row("UTC", p.Clock.UTC),
		row("Local", p.Clock.Local),
		row("Offset", describeOffset(p.Offsets)),
		row("Segment", segment),
		"",
		row("Dawn", eventText(p.Solar.Dawn)),
		row("Sunrise", eventText(p.Solar.Sunrise)),
		row("Solar noon", eventText(p.Solar.SolarNoon)),
		row("Sunset", eventText(p.Solar.Sunset)),
		row("Dusk", eventText(p.Solar.Dusk)),
	}

	for _, w := range p.Meta.Warnings {
		rows = append(rows, warningStyle.Render("! "+w))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s · %s", p.Meta.CacheKey, p.Solar.Algorithm)))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func eventText(e temporal.SolarEvent) string {
	if e.UTC == nil {
		return mutedStyle.Render("does not occur")
	}
	return fmt.Sprintf("%s  %s", e.Local, mutedStyle.Render(e.UTC.Format("15:04 Z")))
}

func describeOffset(o temporal.OffsetDescriptor) string {
	var b strings.Builder
	b.WriteString(formatMinutes(o.StandardOffsetMinutes))
	if o.UsesDST && o.DSTOffsetMinutes != nil {
		b.WriteString(", DST " + formatMinutes(*o.DSTOffsetMinutes))
		if o.IsDSTActive {
			b.WriteString(" (active)")
		}
	}
	return b.String()
}

func formatMinutes(m int) string {
	sign := "+"
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, m/60, m%60)
}
