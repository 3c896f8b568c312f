package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(22)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	hotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	coldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

type row struct {
	label string
	value string
}

func kv(label, format string, args ...any) row {
	return row{label: label, value: fmt.Sprintf(format, args...)}
}

func renderPanel(title string, rows []row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(title))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r.label)+valueStyle.Render(r.value))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func temperatureStyle(temp float64) lipgloss.Style {
	if temp >= 100 {
		return hotStyle
	}
	if temp <= 0 {
		return coldStyle
	}
	return valueStyle
}
