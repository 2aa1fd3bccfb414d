package excel

import (
	"context"
	"fmt"
	"log"
	"math"

	"ixscreen/domain/screening"

	"github.com/xuri/excelize/v2"
)

// ChartRenderer writes a ranked interaction table to a workbook with a
// column chart of the scores. It implements the plotting collaborator:
// a side-effect-only rendering, no values fed back into the pipeline.
type ChartRenderer struct {
	outputPath string
	headers    []string // optional main-effect labels
}

// NewChartRenderer creates a renderer targeting an xlsx path
func NewChartRenderer(outputPath string, headers []string) *ChartRenderer {
	return &ChartRenderer{outputPath: outputPath, headers: headers}
}

// Render writes the rows it is handed (callers cap at the top 50) and
// attaches a chart over them.
func (r *ChartRenderer) Render(ctx context.Context, ranking []screening.RankedInteraction, table *screening.InteractionTable) error {
	const sheet = "Ranking"

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "interaction")
	f.SetCellValue(sheet, "B1", "score")
	f.SetCellValue(sheet, "C1", "variable_index")
	for i, row := range ranking {
		cell := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", cell), r.label(row.Pair))
		if math.IsNaN(row.Score) {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", cell), "NaN")
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", cell), row.Score)
		}
		f.SetCellValue(sheet, fmt.Sprintf("C%d", cell), row.VariableIndex)
	}

	if len(ranking) > 0 {
		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", sheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, len(ranking)+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, len(ranking)+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Ranked interaction scores"}},
		}
		if err := f.AddChart(sheet, "E2", chart); err != nil {
			return fmt.Errorf("failed to add chart: %w", err)
		}
	}

	if err := f.SaveAs(r.outputPath); err != nil {
		return fmt.Errorf("failed to save chart workbook: %w", err)
	}
	log.Printf("[ChartRenderer] wrote %d ranked interactions to %s", len(ranking), r.outputPath)
	return nil
}

func (r *ChartRenderer) label(pr screening.Pair) string {
	if pr.I < len(r.headers) && pr.J < len(r.headers) {
		return r.headers[pr.I] + " x " + r.headers[pr.J]
	}
	return fmt.Sprintf("c%d x c%d", pr.I, pr.J)
}
