package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
)

// ReportOptions describes the filter a report was produced under, so the
// report is self-describing.
type ReportOptions struct {
	FromYear int
	ToYear   int
	Region   string
	Areas    []string
	// Summarize maps a department to its dominant-areas string
	Summarize func(dept string) string
	// Now stamps the report; zero means time.Now
	Now time.Time
}

// MarkdownReport renders a ranking as a standalone markdown document.
func MarkdownReport(result ranking.Result, opts ReportOptions) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var b strings.Builder
	b.WriteString("# Department Ranking\n\n")
	fmt.Fprintf(&b, "Generated %s.\n\n", now.Format("2006-01-02"))

	fmt.Fprintf(&b, "- Years: %d to %d\n", opts.FromYear, opts.ToYear)
	region := opts.Region
	if region == "" {
		region = "world"
	}
	fmt.Fprintf(&b, "- Region: %s\n", region)
	if len(opts.Areas) > 0 {
		fmt.Fprintf(&b, "- Areas: %s\n", strings.Join(opts.Areas, ", "))
	} else {
		b.WriteString("- Areas: all\n")
	}
	b.WriteString("\n")

	if result.NoAreasSelected {
		b.WriteString("No areas selected.\n")
		return b.String()
	}
	if len(result.Entries) == 0 {
		b.WriteString("No departments matched the filter.\n")
		return b.String()
	}

	withAreas := opts.Summarize != nil
	if withAreas {
		b.WriteString("| # | Department | Score | Faculty | Areas |\n")
		b.WriteString("|--:|------------|------:|--------:|-------|\n")
	} else {
		b.WriteString("| # | Department | Score | Faculty |\n")
		b.WriteString("|--:|------------|------:|--------:|\n")
	}
	for _, e := range result.Entries {
		if withAreas {
			fmt.Fprintf(&b, "| %d | %s | %.1f | %d | %s |\n",
				e.Rank, e.Department, e.Score, e.FacultyCount, opts.Summarize(e.Department))
		} else {
			fmt.Fprintf(&b, "| %d | %s | %.1f | %d |\n",
				e.Rank, e.Department, e.Score, e.FacultyCount)
		}
	}
	return b.String()
}

// RenderMarkdown pretty-prints a markdown document for the terminal. On any
// renderer failure the raw markdown comes back unchanged, so output is never
// lost to styling problems.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = DetectWidth()
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
