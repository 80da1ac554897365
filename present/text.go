package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
	mutedStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	ErrStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

const defaultBarWidth = 40

// RenderText renders the view for a terminal: one section per rating
// bucket followed by a horizontal bar per tag.
func RenderText(v UnsolvedView, barWidth int) string {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d unsolved problems", v.Handle, v.Total)))
	sb.WriteString("\n")

	if len(v.Buckets) == 0 {
		sb.WriteString(mutedStyle.Render("nothing left unsolved"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, b := range v.Buckets {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("Rating:%s problems", b.Rating)))
		sb.WriteString("\n")
		for _, p := range b.Problems {
			sb.WriteString(fmt.Sprintf("  • %s %s\n", p.Label, urlStyle.Render(p.URL)))
		}
	}

	sb.WriteString(headerStyle.Render("Unsolved Problems by Tag"))
	sb.WriteString("\n")
	sb.WriteString(RenderTagBars(v.Tags, barWidth))
	return sb.String()
}

// RenderTagBars draws one bar per tag scaled so the largest count spans
// width cells. Every non-zero count gets at least one cell.
func RenderTagBars(tags []Tag, width int) string {
	if len(tags) == 0 {
		return mutedStyle.Render("no tags") + "\n"
	}

	maxCount, labelWidth := 0, 0
	for _, t := range tags {
		maxCount = max(maxCount, t.Count)
		labelWidth = max(labelWidth, lipgloss.Width(t.Tag))
	}

	var sb strings.Builder
	for _, t := range tags {
		cells := t.Count * width / maxCount
		if cells == 0 && t.Count > 0 {
			cells = 1
		}
		sb.WriteString(fmt.Sprintf("  %-*s %s %d\n",
			labelWidth, t.Tag,
			barStyle.Render(strings.Repeat("█", cells)),
			t.Count))
	}
	return sb.String()
}
