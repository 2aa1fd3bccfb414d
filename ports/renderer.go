package ports

import (
	"context"

	"ixscreen/domain/screening"
)

// ChartRenderer renders a ranked interaction table as a side effect.
// Callers hand it at most the top 50 rows in the table's existing sort
// order; it produces no values consumed elsewhere in the pipeline.
type ChartRenderer interface {
	Render(ctx context.Context, ranking []screening.RankedInteraction, table *screening.InteractionTable) error
}
