package ports

import (
	"context"

	"ixscreen/domain/core"
	"ixscreen/models"
)

// RunRepository persists completed screening runs for the UI and API.
// The pipeline itself never touches persistence; wiring happens in the
// composition roots only.
type RunRepository interface {
	SaveRun(ctx context.Context, run *models.ScreeningRun) error
	GetRun(ctx context.Context, id core.RunID) (*models.ScreeningRun, error)
	ListRuns(ctx context.Context, limit int) ([]*models.ScreeningRun, error)
}
