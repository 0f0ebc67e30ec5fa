package types

import (
	"encoding/json"
	"math"
)

// Shared types used across surveyops, api, cmd.

type TableData struct {
	HasHeader bool       `json:"hasHeader"`
	Header    []string   `json:"header"`
	Rows      [][]string `json:"rows"`
}

// NumRows returns the number of data rows.
func (t TableData) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the column count: header width when present, otherwise the
// width of the first row.
func (t TableData) NumCols() int {
	if t.HasHeader {
		return len(t.Header)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

type ResultSummary struct {
	Strata     int   `json:"strata"`
	Variables  int   `json:"variables"`
	Rows       int   `json:"rows"`
	DurationMS int64 `json:"durationMs"`
}

// Numeric is a float64 whose non-finite values marshal as JSON null.
// encoding/json rejects NaN and Inf outright; sample-size results can carry
// them (zero denominators are propagated, not rejected).
type Numeric float64

func (n Numeric) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Numeric(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Numeric(f)
	return nil
}
