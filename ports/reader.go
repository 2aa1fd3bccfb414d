package ports

import (
	"context"

	"ixscreen/domain/screening"
)

// DatasetReader loads a design matrix and response from an external
// source (spreadsheet, CSV, ...). The last column of the source is the
// response unless the implementation is configured otherwise.
type DatasetReader interface {
	Read(ctx context.Context) (screening.Dataset, []string, error) // data, column headers
}
