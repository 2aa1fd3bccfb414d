package report

import (
	"fmt"
	"math"
	"strings"

	"ixscreen/domain/screening"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Builder produces human-readable summaries of a screening run.
type Builder struct {
	headers []string // optional main-effect labels
}

// NewBuilder creates a report builder
func NewBuilder(headers []string) *Builder {
	return &Builder{headers: headers}
}

// BuildMarkdown renders the selection as a markdown report: the main
// pool, the selected mains, and the interaction ranking table.
func (b *Builder) BuildMarkdown(heredity screening.Heredity, sel *screening.Selection) string {
	var sb strings.Builder

	sb.WriteString("# Interaction screening report\n\n")
	fmt.Fprintf(&sb, "Heredity mode: **%s**\n\n", heredity)

	sb.WriteString("## Selected main effects\n\n")
	for rank, idx := range sel.SelectedMains {
		fmt.Fprintf(&sb, "%d. %s\n", rank+1, b.label(idx))
	}

	sb.WriteString("\n## Main-effect pool (screened order)\n\n")
	names := make([]string, 0, len(sel.MainPool))
	for _, idx := range sel.MainPool {
		names = append(names, b.label(idx))
	}
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString("\n")

	sb.WriteString("\n## Interaction ranking\n\n")
	if len(sel.Ranking) == 0 {
		sb.WriteString("No eligible candidate interactions.\n")
	} else {
		sb.WriteString("| rank | interaction | variable index | score |\n")
		sb.WriteString("|---|---|---|---|\n")
		for rank, row := range sel.Ranking {
			score := "NaN"
			if !math.IsNaN(row.Score) {
				score = fmt.Sprintf("%.6g", row.Score)
			}
			fmt.Fprintf(&sb, "| %d | %s x %s | %d | %s |\n",
				rank+1, b.label(row.Pair.I), b.label(row.Pair.J), row.VariableIndex, score)
		}
	}

	if len(sel.SelectedInteractions) > 0 {
		sb.WriteString("\n## Final selection\n\n")
		for _, row := range sel.SelectedInteractions {
			fmt.Fprintf(&sb, "- %s x %s\n", b.label(row.Pair.I), b.label(row.Pair.J))
		}
	}

	return sb.String()
}

// RenderHTML converts a markdown report to HTML for the UI
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func (b *Builder) label(idx int) string {
	if idx >= 0 && idx < len(b.headers) {
		return b.headers[idx]
	}
	return fmt.Sprintf("c%d", idx)
}
