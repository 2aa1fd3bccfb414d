package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"ixscreen/domain/core"
	"ixscreen/domain/screening"
)

// ScreeningRun is the persisted record of one pipeline execution.
type ScreeningRun struct {
	ID            core.RunID  `db:"id" json:"id"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	Heredity      string      `db:"heredity" json:"heredity"`
	Rows          int         `db:"n_rows" json:"rows"`
	Cols          int         `db:"n_cols" json:"cols"`
	R1            int         `db:"r1" json:"r1"`
	R2            int         `db:"r2" json:"r2"`
	MainPool      IntSlice    `db:"main_pool" json:"main_pool"`
	SelectedMains IntSlice    `db:"selected_mains" json:"selected_mains"`
	Ranking       RankingRows `db:"ranking" json:"ranking"`
	Report        string      `db:"report" json:"report"`
}

// NewScreeningRun converts a pipeline selection into its persisted form
func NewScreeningRun(heredity screening.Heredity, rows, cols, r1, r2 int, sel *screening.Selection, report string) *ScreeningRun {
	return &ScreeningRun{
		ID:            core.NewRunID(),
		CreatedAt:     time.Now().UTC(),
		Heredity:      string(heredity),
		Rows:          rows,
		Cols:          cols,
		R1:            r1,
		R2:            r2,
		MainPool:      IntSlice(sel.MainPool),
		SelectedMains: IntSlice(sel.SelectedMains),
		Ranking:       NewRankingRows(sel.Ranking),
		Report:        report,
	}
}

// RankedRow mirrors screening.RankedInteraction with a JSON-safe
// score: NaN is stored as null.
type RankedRow struct {
	VariableIndex int      `json:"variable_index"`
	I             int      `json:"i"`
	J             int      `json:"j"`
	Score         *float64 `json:"score"`
}

// NewRankingRows converts ranked interactions, mapping NaN to null
func NewRankingRows(ranking []screening.RankedInteraction) RankingRows {
	rows := make(RankingRows, 0, len(ranking))
	for _, r := range ranking {
		row := RankedRow{VariableIndex: r.VariableIndex, I: r.Pair.I, J: r.Pair.J}
		if !math.IsNaN(r.Score) {
			s := r.Score
			row.Score = &s
		}
		rows = append(rows, row)
	}
	return rows
}

// IntSlice stores an int slice as JSONB
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *IntSlice) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// RankingRows stores ranked rows as JSONB
type RankingRows []RankedRow

func (r RankingRows) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *RankingRows) Scan(src interface{}) error {
	return scanJSON(src, r)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	}
	return fmt.Errorf("unsupported scan type %T", src)
}
