// Package tui renders schedule reports and extraction results for the
// terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xraph/revrec/extract"
	"github.com/xraph/revrec/schedule"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	faintStyle  = lipgloss.NewStyle().Foreground(faint)
	okStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle   = lipgloss.NewStyle().Foreground(danger)

	separatorLine = faintStyle.Render(strings.Repeat("─", 56))
)

// RenderReport renders a recognised/deferred summary with its schedule.
func RenderReport(r *schedule.Report, reportingCurrency string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("revrec"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("revenue recognition"))
	b.WriteString("\n")
	b.WriteString(separatorLine)
	b.WriteString("\n\n")

	src := strings.ToUpper(r.SourceCurrency)
	rep := strings.ToUpper(reportingCurrency)

	row := func(label, a, b2 string) string {
		return fmt.Sprintf("  %-14s %14s %s   %14s %s\n",
			label, a, dimStyle.Render(src), b2, dimStyle.Render(rep))
	}

	b.WriteString(titleStyle.Render("  Totals"))
	b.WriteString("\n")
	b.WriteString(row("recognised",
		r.RecognisedSource.StringFixed(2), r.RecognisedReporting.StringFixed(2)))
	b.WriteString(row("deferred",
		r.DeferredSource.StringFixed(2), r.DeferredReporting.StringFixed(2)))
	b.WriteString(faintStyle.Render(fmt.Sprintf("  %-14s %14s       %14s",
		"total", r.TotalSource().StringFixed(2), r.TotalReporting().StringFixed(2))))
	b.WriteString("\n\n")

	if len(r.Entries) == 0 {
		b.WriteString(dimStyle.Render("  no entries"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("  Schedule (%d entries)", len(r.Entries))))
	b.WriteString("\n")
	for _, e := range r.Entries {
		status := okStyle.Render("recognised")
		if e.Status == schedule.StatusDeferred {
			status = dimStyle.Render("deferred  ")
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %-12s %10s  %10s  %s\n",
			e.Date, status, e.Kind,
			e.AmountSource.StringFixed(2),
			e.AmountReporting.StringFixed(2),
			faintStyle.Render(e.InvoiceLineID)))
	}

	return b.String()
}

// RenderExtractResults renders the per-resource outcome of an extraction run.
func RenderExtractResults(results []extract.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("revrec"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("extraction"))
	b.WriteString("\n")
	b.WriteString(separatorLine)
	b.WriteString("\n")

	for _, res := range results {
		if res.Err != nil {
			b.WriteString(fmt.Sprintf("  %s  %-20s %s\n",
				failStyle.Render("✗"), res.Resource, failStyle.Render(res.Err.Error())))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s  %-20s %6d records  %s\n",
			okStyle.Render("✓"), res.Resource, res.Records, faintStyle.Render(res.Object)))
	}

	return b.String()
}
