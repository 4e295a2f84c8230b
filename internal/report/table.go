package report

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderSummary renders per-collection violation counts as a table.
func (t *Tally) RenderSummary() (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off, ShowHeader: tw.On}},
		})),
	)

	names, counts := t.ByCollection()
	for _, name := range names {
		if err := table.Append([]string{name, fmt.Sprintf("%d", counts[name])}); err != nil {
			return "", err
		}
	}
	if len(t.Warnings) > 0 {
		if err := table.Append([]string{warningLabel("warnings"), fmt.Sprintf("%d", len(t.Warnings))}); err != nil {
			return "", err
		}
	}
	if len(t.Formatting) > 0 {
		if err := table.Append([]string{formatLabel("formatting"), fmt.Sprintf("%d", len(t.Formatting))}); err != nil {
			return "", err
		}
	}
	if err := table.Append([]string{"total", fmt.Sprintf("%d", len(t.Errors))}); err != nil {
		return "", err
	}
	if err := table.Render(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
