package surveyops

import (
	"errors"
	"fmt"

	"github.com/JustUsingaWebsite/survey-powerops/internal/types"
	"github.com/JustUsingaWebsite/survey-powerops/internal/utils"
)

// parsedInputs holds every input parsed to numbers and aligned positionally:
// n strata rows, m variables.
type parsedInputs struct {
	strata    []string
	variables []string
	totals    [][]float64
	variances [][]float64
	deffs     [][]float64
	pop       []float64
	resp      []float64
	cvs       []float64
}

// validateInputs checks every input against Totals' shape and parses cells.
// Validation is all-or-nothing and fails on the first violation, naming the
// offending input.
func validateInputs(d SampleSizeDatasets, opts SampleSizeOptions) (*parsedInputs, error) {
	if d.Totals == nil || len(d.Totals.Rows) == 0 {
		return nil, errors.New("totals: dataset is required")
	}
	n := d.Totals.NumRows()
	m := d.Totals.NumCols()

	variables, err := variableNames(*d.Totals)
	if err != nil {
		return nil, err
	}

	in := &parsedInputs{variables: variables}

	if in.totals, err = parseMatrix("totals", d.Totals, n, m, opts); err != nil {
		return nil, err
	}
	if in.strata, err = parseKeyColumn("strata", d.Strata, n, opts); err != nil {
		return nil, err
	}
	if in.variances, err = parseMatrix("variances", d.Variances, n, m, opts); err != nil {
		return nil, err
	}
	if in.pop, err = parseScalarColumn("population", d.Population, n, opts); err != nil {
		return nil, err
	}
	if d.ResponseRates != nil {
		if in.resp, err = parseScalarColumn("response_rates", d.ResponseRates, n, opts); err != nil {
			return nil, err
		}
	} else {
		in.resp = onesColumn(n) // full response by default
	}
	if d.DesignEffects != nil {
		if in.deffs, err = parseMatrix("design_effects", d.DesignEffects, n, m, opts); err != nil {
			return nil, err
		}
	} else {
		in.deffs = onesMatrix(n, m) // no design effect by default
	}
	if in.cvs, err = parseScalarColumn("target_cvs", d.TargetCVs, n, opts); err != nil {
		return nil, err
	}
	return in, nil
}

// variableNames labels the variable dimension from Totals' header. The
// column names of Variances and DesignEffects are ignored: their columns
// correspond to Totals' columns by position.
func variableNames(tbl types.TableData) ([]string, error) {
	m := tbl.NumCols()
	if !tbl.HasHeader || len(tbl.Header) == 0 {
		if m > 1 {
			return nil, errors.New("totals: column names are required on a multi-column input")
		}
		return []string{"y1"}, nil
	}
	names := make([]string, 0, m)
	for j, h := range tbl.Header {
		name := utils.WhitespaceTrimmer(h)
		if name == "" {
			return nil, fmt.Errorf("totals: column %d has no name to label the variable dimension", j+1)
		}
		names = append(names, name)
	}
	return names, nil
}

func parseMatrix(name string, tbl *types.TableData, n, m int, opts SampleSizeOptions) ([][]float64, error) {
	if tbl == nil || len(tbl.Rows) == 0 {
		return nil, fmt.Errorf("%s: dataset is required", name)
	}
	if got := tbl.NumRows(); got != n {
		return nil, fmt.Errorf("%s: row count %d does not match totals row count %d", name, got, n)
	}
	if got := tbl.NumCols(); got != m {
		return nil, fmt.Errorf("%s: column count %d does not match totals column count %d", name, got, m)
	}
	out := make([][]float64, n)
	for i, row := range tbl.Rows {
		if len(row) != m {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d", name, i+1, len(row), m)
		}
		out[i] = make([]float64, m)
		for j, cell := range row {
			v, err := parseCell(name, cell, i, j, opts)
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}
	return out, nil
}

func parseScalarColumn(name string, tbl *types.TableData, n int, opts SampleSizeOptions) ([]float64, error) {
	rows, err := singleColumn(name, tbl, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i, row := range rows {
		v, err := parseCell(name, row[0], i, 0, opts)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseKeyColumn reads the stratum identifier column. Any value type is
// allowed; only missing cells are rejected.
func parseKeyColumn(name string, tbl *types.TableData, n int, opts SampleSizeOptions) ([]string, error) {
	rows, err := singleColumn(name, tbl, n)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i, row := range rows {
		if utils.IsMissingCell(row[0], opts.TrimSpaces) {
			return nil, fmt.Errorf("%s: missing value at row %d", name, i+1)
		}
		out[i] = utils.Normalize(row[0], opts.TrimSpaces)
	}
	return out, nil
}

func singleColumn(name string, tbl *types.TableData, n int) ([][]string, error) {
	if tbl == nil || len(tbl.Rows) == 0 {
		return nil, fmt.Errorf("%s: dataset is required", name)
	}
	if got := tbl.NumCols(); got != 1 {
		return nil, fmt.Errorf("%s: expected a single column, got %d", name, got)
	}
	if got := tbl.NumRows(); got != n {
		return nil, fmt.Errorf("%s: row count %d does not match totals row count %d", name, got, n)
	}
	for i, row := range tbl.Rows {
		if len(row) != 1 {
			return nil, fmt.Errorf("%s: row %d has %d columns, want 1", name, i+1, len(row))
		}
	}
	return tbl.Rows, nil
}

func parseCell(name, cell string, i, j int, opts SampleSizeOptions) (float64, error) {
	if utils.IsMissingCell(cell, opts.TrimSpaces) {
		return 0, fmt.Errorf("%s: missing value at row %d, column %d", name, i+1, j+1)
	}
	v, err := utils.ParseNumericCell(cell, opts.TrimSpaces)
	if err != nil {
		return 0, fmt.Errorf("%s: non-numeric value %q at row %d, column %d", name, cell, i+1, j+1)
	}
	return v, nil
}

func onesColumn(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func onesMatrix(n, m int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = onesColumn(m)
	}
	return out
}
