// Package report builds and renders the frozen record archived when a work
// session finishes.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/internal/ui"
)

const timeFormat = "Jan 2, 2006 03:04 PM"

// Build freezes the session outcome into a report. Worker display names
// come from the controller's published directory, falling back to the card
// UID for cards it has never named.
func Build(
	meta models.ProjectMeta,
	workers []session.Worker,
	names map[string]string,
	completedAt time.Time,
	bonus models.BonusState,
) *models.Report {
	rows := make([]models.WorkerReport, 0, len(workers))

	for _, w := range workers {
		name := names[w.ID]
		if name == "" {
			name = "ID: " + w.ID
		}

		rows = append(rows, models.WorkerReport{
			ID:      w.ID,
			Name:    name,
			Minutes: w.TotalMinutes,
		})
	}

	return &models.Report{
		Meta:        meta,
		Workers:     rows,
		CompletedAt: completedAt,
		BonusStatus: bonus.Status(),
	}
}

// Text renders the report as plain text for archival and hooks.
func Text(r *models.Report) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Company:   %s\n", r.Meta.Company)
	fmt.Fprintf(&buf, "Project:   %s\n", r.Meta.Project)
	fmt.Fprintf(&buf, "Leader:    %s\n", r.Meta.Leader)

	if r.Meta.Category != "" {
		fmt.Fprintf(&buf, "Category:  %s\n", r.Meta.Category)
	}

	if r.Meta.Size != "" {
		fmt.Fprintf(&buf, "Size:      %s\n", r.Meta.Size)
	}

	fmt.Fprintf(&buf, "Completed: %s\n", r.CompletedAt.Format(timeFormat))
	fmt.Fprintf(&buf, "Bonus:     %s\n", r.BonusStatus)
	buf.WriteString("\n")

	var total float64

	for _, w := range r.Workers {
		total += w.Minutes
		fmt.Fprintf(&buf, "%-28s %10.1f min\n", w.Name, w.Minutes)
	}

	fmt.Fprintf(&buf, "%-28s %10.1f min\n", "Total", total)

	return buf.Bytes()
}

// Print renders the report as a table for the kiosk operator.
func Print(w io.Writer, r *models.Report) {
	data := [][]string{
		{"Worker", "Minutes"},
	}

	var total float64

	for _, row := range r.Workers {
		total += row.Minutes
		data = append(data, []string{row.Name, fmt.Sprintf("%.1f", row.Minutes)})
	}

	data = append(data, []string{ui.Highlight("Total"), fmt.Sprintf("%.1f", total)})

	fmt.Fprintf(
		w,
		"%s / %s (completed %s, bonus %s)\n",
		r.Meta.Company,
		r.Meta.Project,
		r.CompletedAt.Format(timeFormat),
		r.BonusStatus,
	)

	ui.PrintTable(data, w)
}
