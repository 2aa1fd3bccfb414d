package main

import (
	"context"
	"log"
	"os"

	"ixscreen/adapters/excel"
	"ixscreen/adapters/postgres"
	"ixscreen/adapters/report"
	"ixscreen/adapters/scoring"
	"ixscreen/adapters/stats/dcor"
	"ixscreen/app"
	"ixscreen/domain/screening"
	"ixscreen/internal/config"
	"ixscreen/internal/profiling"
	"ixscreen/models"
	"ixscreen/ports"
	"ixscreen/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Data.File == "" {
		log.Fatal("IXS_DATA_FILE is required (xlsx or csv with the response in the last column)")
	}

	ctx := context.Background()

	reader := excel.NewDataReader(cfg.Data.File)
	if cfg.Data.ResponseColumn != "" {
		reader = reader.WithResponseColumn(cfg.Data.ResponseColumn)
	}
	data, headers, err := reader.Read(ctx)
	if err != nil {
		log.Fatalf("read dataset: %v", err)
	}
	log.Printf("[Main] loaded %d observations x %d main effects", data.Rows(), data.Cols())

	for _, profile := range profiling.ProfileColumns(data.X) {
		if len(profile.Warnings) > 0 {
			log.Printf("[Main] column %d (%s): %v", profile.Index, headers[profile.Index], profile.Warnings)
		}
	}

	heredity, err := screening.ParseHeredity(cfg.Screening.Heredity)
	if err != nil {
		log.Fatalf("heredity: %v", err)
	}

	renderer := excel.NewChartRenderer(cfg.Data.ChartFile, headers)
	service := app.NewSelectionService(
		dcor.NewScreener(),
		app.NewInteractionRanker(scoring.NewABCScorer()),
		renderer,
	)

	req := app.SelectRequest{
		Data:     data,
		Heredity: heredity,
		Sigma:    cfg.Screening.Sigma,
		R1:       cfg.Screening.R1,
		R2:       cfg.Screening.R2,
		NSIS:     cfg.Screening.NSIS,
		Table:    screening.NewInteractionTable(data.Cols()),
		Params: ports.ScoreParams{
			Pi1: cfg.Screening.Pi1, Pi2: cfg.Screening.Pi2, Pi3: cfg.Screening.Pi3,
			Lambda: cfg.Screening.Lambda, Q: cfg.Screening.Q,
		},
	}

	selection, err := service.Select(ctx, req)
	if err != nil {
		log.Fatalf("selection: %v", err)
	}

	builder := report.NewBuilder(headers)
	md := builder.BuildMarkdown(heredity, selection)
	if err := os.WriteFile(cfg.Data.ReportFile, []byte(md), 0o644); err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("[Main] report written to %s", cfg.Data.ReportFile)

	top := selection.Ranking
	if len(top) > 50 {
		top = top[:50]
	}
	if err := renderer.Render(ctx, top, req.Table); err != nil {
		log.Fatalf("chart: %v", err)
	}

	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		if err := postgres.EnsureSchema(db); err != nil {
			log.Fatalf("schema: %v", err)
		}
		repo := postgres.NewRunRepository(db)
		run := models.NewScreeningRun(heredity, data.Rows(), data.Cols(), cfg.Screening.R1, cfg.Screening.R2, selection, md)
		if err := repo.SaveRun(ctx, run); err != nil {
			log.Fatalf("save run: %v", err)
		}
		log.Printf("[Main] run %s persisted", run.ID)

		if os.Getenv("IXS_SERVE_UI") == "1" {
			if err := ui.NewServer(repo, cfg.Server.GinMode).Run(cfg.Server.UIPort); err != nil {
				log.Fatalf("ui server: %v", err)
			}
		}
	}
}
