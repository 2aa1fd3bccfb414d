package main

import (
	"encoding/json"
	"log"
	"net/http"

	"ixscreen/adapters/excel"
	"ixscreen/adapters/postgres"
	"ixscreen/adapters/scoring"
	"ixscreen/adapters/stats/dcor"
	"ixscreen/app"
	"ixscreen/domain/core"
	"ixscreen/domain/screening"
	"ixscreen/internal/config"
	apperrors "ixscreen/internal/errors"
	"ixscreen/models"
	"ixscreen/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
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

	var repo ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		if err := postgres.EnsureSchema(db); err != nil {
			log.Fatalf("schema: %v", err)
		}
		repo = postgres.NewRunRepository(db)
		log.Printf("[API] run persistence enabled")
	}

	service := app.NewSelectionService(
		dcor.NewScreener(),
		app.NewInteractionRanker(scoring.NewABCScorer()),
		excel.NewChartRenderer(cfg.Data.ChartFile, nil),
	)

	srv := &server{service: service, repo: repo}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/screen", srv.handleScreen)
		r.Post("/select", srv.handleSelect)
		r.Post("/detect", srv.handleDetect)
		r.Get("/runs", srv.handleListRuns)
		r.Get("/runs/{id}", srv.handleGetRun)
	})

	addr := ":" + cfg.Server.APIPort
	log.Printf("[API] listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}

type server struct {
	service *app.SelectionService
	repo    ports.RunRepository
}

// pipelineRequest is the JSON shape shared by screen/select/detect.
// Table rows are optional; when omitted the canonical enumeration of
// all pairs is generated on the caller's behalf before entering the
// pipeline (the pipeline itself requires the table).
type pipelineRequest struct {
	X        [][]float64 `json:"x"`
	Y        []float64   `json:"y"`
	Heredity string      `json:"heredity"`
	R1       int         `json:"r1"`
	R2       int         `json:"r2"`
	NSIS     int         `json:"nsis"`
	Sigma    *float64    `json:"sigma"`
	Pi1      float64     `json:"pi1"`
	Pi2      float64     `json:"pi2"`
	Pi3      float64     `json:"pi3"`
	Lambda   float64     `json:"lambda"`
	Q        float64     `json:"q"`
	Table    [][2]int    `json:"table,omitempty"`
}

func (s *server) buildSelectRequest(req pipelineRequest) (app.SelectRequest, error) {
	data := screening.Dataset{X: req.X, Y: req.Y}

	var table *screening.InteractionTable
	if len(req.Table) > 0 {
		pairs := make([]screening.Pair, 0, len(req.Table))
		for _, row := range req.Table {
			pairs = append(pairs, screening.Pair{I: row[0], J: row[1]})
		}
		t, err := screening.TableFromPairs(data.Cols(), pairs)
		if err != nil {
			return app.SelectRequest{}, err
		}
		table = t
	} else {
		table = screening.NewInteractionTable(data.Cols())
	}

	return app.SelectRequest{
		Data:     data,
		Heredity: screening.Heredity(req.Heredity),
		Sigma:    req.Sigma,
		R1:       req.R1,
		R2:       req.R2,
		NSIS:     req.NSIS,
		Table:    table,
		Params: ports.ScoreParams{
			Pi1: req.Pi1, Pi2: req.Pi2, Pi3: req.Pi3,
			Lambda: req.Lambda, Q: req.Q,
		},
	}, nil
}

func (s *server) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, apperrors.New(apperrors.CodeInvalidValue, "malformed JSON body"))
		return
	}
	result, err := dcor.NewScreener().Screen(r.Context(), screening.Dataset{X: req.X, Y: req.Y}, req.NSIS)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, apperrors.New(apperrors.CodeInvalidValue, "malformed JSON body"))
		return
	}
	selectReq, err := s.buildSelectRequest(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	selection, err := s.service.Select(r.Context(), selectReq)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// NaN scores are valid pipeline output but not valid JSON; the
	// models rows store them as null.
	writeJSON(w, http.StatusOK, selectionResponse{
		Ranking:              models.NewRankingRows(selection.Ranking),
		SelectedMains:        selection.SelectedMains,
		MainPool:             selection.MainPool,
		SelectedInteractions: models.NewRankingRows(selection.SelectedInteractions),
	})
}

type selectionResponse struct {
	Ranking              models.RankingRows `json:"ranking"`
	SelectedMains        []int              `json:"selected_mains"`
	MainPool             []int              `json:"main_pool"`
	SelectedInteractions models.RankingRows `json:"selected_interactions"`
}

func (s *server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, apperrors.New(apperrors.CodeInvalidValue, "malformed JSON body"))
		return
	}
	selectReq, err := s.buildSelectRequest(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.service.Detect(r.Context(), selectReq); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeJSONError(w, http.StatusNotFound, apperrors.New(apperrors.CodeNotFound, "run persistence not configured"))
		return
	}
	runs, err := s.repo.ListRuns(r.Context(), 100)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, apperrors.New(apperrors.CodeDatabaseError, err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeJSONError(w, http.StatusNotFound, apperrors.New(apperrors.CodeNotFound, "run persistence not configured"))
		return
	}
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, apperrors.New(apperrors.CodeInvalidValue, "malformed run id"))
		return
	}
	run, err := s.repo.GetRun(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeDomainError(w http.ResponseWriter, err error) {
	appErr := apperrors.FromDomain(err)
	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.CodeMissingInput, apperrors.CodeShapeMismatch,
		apperrors.CodeInvalidValue, apperrors.CodeMissingArtifact:
		status = http.StatusBadRequest
	case apperrors.CodeConsistency:
		status = http.StatusUnprocessableEntity
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSONError(w, status, appErr)
}

func writeJSONError(w http.ResponseWriter, status int, appErr *apperrors.AppError) {
	writeJSON(w, status, map[string]string{"code": appErr.Code, "error": appErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}
