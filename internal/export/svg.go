// Package export writes ranking charts to disk: an SVG bar chart of
// department scores and a PNG pie chart of one department's area mix.
package export

import (
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
)

const (
	svgWidth     = 800
	barHeight    = 22
	barGap       = 6
	svgMarginTop = 50
	labelWidth   = 300
)

// BarChart writes an SVG horizontal bar chart of the ranked departments.
func BarChart(result ranking.Result, title string, path string) error {
	if result.NoAreasSelected {
		return fmt.Errorf("no areas selected, nothing to chart")
	}
	if len(result.Entries) == 0 {
		return fmt.Errorf("no entries to chart")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	maxScore := result.Entries[0].Score
	for _, e := range result.Entries {
		if e.Score > maxScore {
			maxScore = e.Score
		}
	}
	if maxScore <= 0 {
		return fmt.Errorf("all scores are zero")
	}

	height := svgMarginTop + len(result.Entries)*(barHeight+barGap) + 20

	canvas := svg.New(f)
	canvas.Start(svgWidth, height)
	canvas.Rect(0, 0, svgWidth, height, "fill:white")
	canvas.Text(svgWidth/2, 30, title, "text-anchor:middle;font-size:18px;font-family:sans-serif")

	barArea := svgWidth - labelWidth - 80
	for i, e := range result.Entries {
		y := svgMarginTop + i*(barHeight+barGap)
		w := int(float64(barArea) * e.Score / maxScore)
		if w < 1 {
			w = 1
		}
		label := fmt.Sprintf("%d. %s", e.Rank, e.Department)
		canvas.Text(labelWidth-10, y+barHeight-6, label,
			"text-anchor:end;font-size:13px;font-family:sans-serif")
		canvas.Rect(labelWidth, y, w, barHeight, "fill:#4682b4")
		canvas.Text(labelWidth+w+6, y+barHeight-6, fmt.Sprintf("%.1f", e.Score),
			"font-size:13px;font-family:sans-serif")
	}
	canvas.End()
	return nil
}
