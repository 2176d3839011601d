package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/velosh/paddockwire/internal/domain"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#C1121F", Dark: "#FF4D4D"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	dateStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	summaryStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Width(100)

	urlStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(colorDim).
			Underline(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)
)

func renderItems(items []domain.NewsItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderItem(item))
	}
	return b.String()
}

func renderItem(item domain.NewsItem) string {
	header := titleStyle.Render(item.Title)

	meta := sourceStyle.Render(item.SourceName)
	if item.PublishedAt != "" {
		meta += dateStyle.Render(" · " + item.PublishedAt)
	}

	lines := []string{header, meta}
	if item.Summary != "" {
		lines = append(lines, summaryStyle.Render(item.Summary))
	}
	if item.URL != "" {
		lines = append(lines, urlStyle.Render(item.URL))
	}
	return strings.Join(lines, "\n")
}
