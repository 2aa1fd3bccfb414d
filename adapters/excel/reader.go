package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ixscreen/domain/screening"

	"github.com/xuri/excelize/v2"
)

// DataReader loads a numeric design matrix and response from Excel or
// CSV files. The first row is the header; by default the last column
// is the response, every preceding column a main effect.
type DataReader struct {
	filePath       string
	fileType       string // "xlsx" or "csv"
	responseColumn string // header name; empty means last column
}

// NewDataReader creates a reader that dispatches on file extension
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// WithResponseColumn selects the response by header name instead of
// position
func (r *DataReader) WithResponseColumn(name string) *DataReader {
	r.responseColumn = name
	return r
}

// Read loads the file into a dataset plus the main-effect headers
func (r *DataReader) Read(ctx context.Context) (screening.Dataset, []string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return screening.Dataset{}, nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	start := time.Now()
	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return screening.Dataset{}, nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return screening.Dataset{}, nil, err
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)",
		r.filePath, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.parseRows(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// parseRows converts string cells into the numeric dataset. Blank
// trailing cells are rejected rather than imputed: screening has no
// tolerance for missing values.
func (r *DataReader) parseRows(rows [][]string) (screening.Dataset, []string, error) {
	if len(rows) < 2 {
		return screening.Dataset{}, nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := rows[0]
	if len(headers) < 2 {
		return screening.Dataset{}, nil, fmt.Errorf("need at least one predictor column and a response column")
	}

	respIdx := len(headers) - 1
	if r.responseColumn != "" {
		respIdx = -1
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), r.responseColumn) {
				respIdx = i
				break
			}
		}
		if respIdx < 0 {
			return screening.Dataset{}, nil, fmt.Errorf("response column %q not found", r.responseColumn)
		}
	}

	mainHeaders := make([]string, 0, len(headers)-1)
	for i, h := range headers {
		if i != respIdx {
			mainHeaders = append(mainHeaders, strings.TrimSpace(h))
		}
	}

	x := make([][]float64, 0, len(rows)-1)
	y := make([]float64, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if len(row) != len(headers) {
			return screening.Dataset{}, nil, fmt.Errorf("row %d has %d cells, expected %d", rowNum+2, len(row), len(headers))
		}
		xr := make([]float64, 0, len(headers)-1)
		for i, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return screening.Dataset{}, nil, fmt.Errorf("row %d column %q: non-numeric cell %q", rowNum+2, headers[i], cell)
			}
			if i == respIdx {
				y = append(y, v)
			} else {
				xr = append(xr, v)
			}
		}
		x = append(x, xr)
	}

	return screening.Dataset{X: x, Y: y}, mainHeaders, nil
}
