package surveyops

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/JustUsingaWebsite/survey-powerops/internal/types"
)

// --- request/response types for samplesize ---

type SampleSizeOptions struct {
	TrimSpaces bool `json:"trim_spaces"`
}

// SampleSizeDatasets carries the inputs as inline tables. Source is only
// consulted when the request also carries Refs (see resolve.go).
type SampleSizeDatasets struct {
	Totals        *types.TableData `json:"totals,omitempty"`         // Yh, n rows x m variables
	Strata        *types.TableData `json:"strata,omitempty"`         // H, n rows x 1
	Variances     *types.TableData `json:"variances,omitempty"`      // s2h, n rows x m
	Population    *types.TableData `json:"population,omitempty"`     // poph, n rows x 1
	ResponseRates *types.TableData `json:"response_rates,omitempty"` // Rh, n rows x 1, default all-1
	DesignEffects *types.TableData `json:"design_effects,omitempty"` // deffh, n rows x m, default all-1
	TargetCVs     *types.TableData `json:"target_cvs,omitempty"`     // CVh in percent, n rows x 1
	Source        *types.TableData `json:"source,omitempty"`
}

// SampleSizeRefs names columns of Datasets.Source per input, either by
// header name or by numeric index string.
type SampleSizeRefs struct {
	Totals        []string `json:"totals,omitempty"`
	Strata        string   `json:"strata,omitempty"`
	Variances     []string `json:"variances,omitempty"`
	Population    string   `json:"population,omitempty"`
	ResponseRates string   `json:"response_rates,omitempty"`
	DesignEffects []string `json:"design_effects,omitempty"`
	TargetCVs     string   `json:"target_cvs,omitempty"`
}

type SampleSizeRequest struct {
	Operation string             `json:"operation"`
	Options   SampleSizeOptions  `json:"options"`
	Datasets  SampleSizeDatasets `json:"datasets"`
	Refs      *SampleSizeRefs    `json:"refs,omitempty"`
}

type SampleSizeRow struct {
	Stratum    string        `json:"stratum"`
	Variable   string        `json:"variable"`
	Estim      types.Numeric `json:"estim"`
	Deff       types.Numeric `json:"deffh"`
	Variance   types.Numeric `json:"s2h"`
	TargetCV   types.Numeric `json:"CVh"`
	RespRate   types.Numeric `json:"Rh"`
	PopSize    types.Numeric `json:"poph"`
	SampleSize types.Numeric `json:"nh"`
}

type SampleSizeResponse struct {
	Operation string              `json:"operation"`
	Summary   types.ResultSummary `json:"summary"`
	Rows      []SampleSizeRow     `json:"rows"`
	Result    types.TableData     `json:"result"`
	Error     *string             `json:"error"`
}

var resultHeader = []string{"stratum", "variable", "estim", "deffh", "s2h", "CVh", "Rh", "poph", "nh"}

// --- Core function ---

// ComputeSampleSize calculates the minimum sample size per stratum and
// variable of interest for a target coefficient of variation of the
// estimated total:
//
//	nh = poph^2 * s2h * deffh / (Rh * ((estim*CVh/100)^2 + poph*s2h*deffh))
//
// Inputs are validated against Totals' shape (rows = strata, columns =
// variables), reshaped to one record per stratum/variable pair and merged
// on that key before the formula is applied. Zero denominators are not
// rejected: nh comes back non-finite. Duplicate stratum keys are not
// rejected either; they collapse onto one record per variable with the last
// row's values, and Summary.Strata reports the distinct count so callers
// can spot the collapse.
func ComputeSampleSize(req SampleSizeRequest) (SampleSizeResponse, error) {
	var res SampleSizeResponse
	res.Operation = req.Operation
	start := time.Now()

	datasets, err := resolveRefs(req.Datasets, req.Refs)
	if err != nil {
		return resWithErr(res, err)
	}

	in, err := validateInputs(datasets, req.Options)
	if err != nil {
		return resWithErr(res, err)
	}

	joined := mergeLong(
		meltMatrix(in.strata, in.variables, in.totals),
		meltMatrix(in.strata, in.variables, in.variances),
		meltMatrix(in.strata, in.variables, in.deffs),
		meltColumn(in.strata, in.pop),
		meltColumn(in.strata, in.resp),
		meltColumn(in.strata, in.cvs),
	)

	rows := make([]SampleSizeRow, 0, len(joined))
	distinct := make(map[string]struct{}, len(in.strata))
	for _, r := range joined {
		rows = append(rows, SampleSizeRow{
			Stratum:    r.stratum,
			Variable:   r.variable,
			Estim:      types.Numeric(r.estim),
			Deff:       types.Numeric(r.deffh),
			Variance:   types.Numeric(r.s2h),
			TargetCV:   types.Numeric(r.cvh),
			RespRate:   types.Numeric(r.rh),
			PopSize:    types.Numeric(r.poph),
			SampleSize: types.Numeric(minSampleSize(r.estim, r.s2h, r.deffh, r.cvh, r.rh, r.poph)),
		})
		distinct[r.stratum] = struct{}{}
	}

	res.Rows = rows
	res.Result = resultTable(rows)
	res.Summary = types.ResultSummary{
		Strata:     len(distinct),
		Variables:  len(in.variables),
		Rows:       len(rows),
		DurationMS: time.Since(start).Milliseconds(),
	}
	res.Error = nil
	return res, nil
}

// minSampleSize applies the closed-form formula for one joined row. CVh is a
// percentage and is scaled down before squaring.
func minSampleSize(estim, s2h, deffh, cvh, rh, poph float64) float64 {
	se := estim * cvh / 100
	return poph * poph * s2h * deffh / (rh * (se*se + poph*s2h*deffh))
}

// resultTable renders the typed rows as a string table for CSV output.
// Non-finite cells print as NaN / +Inf / -Inf.
func resultTable(rows []SampleSizeRow) types.TableData {
	out := types.TableData{
		HasHeader: true,
		Header:    append([]string(nil), resultHeader...),
		Rows:      make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, []string{
			r.Stratum,
			r.Variable,
			formatCell(r.Estim),
			formatCell(r.Deff),
			formatCell(r.Variance),
			formatCell(r.TargetCV),
			formatCell(r.RespRate),
			formatCell(r.PopSize),
			formatCell(r.SampleSize),
		})
	}
	return out
}

func formatCell(n types.Numeric) string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// --- helpers ---

func resWithErr(res SampleSizeResponse, err error) (SampleSizeResponse, error) {
	msg := err.Error()
	res.Error = &msg
	return res, err
}

// Decode helper if you receive raw JSON bytes
func DecodeSampleSizeRequest(data []byte) (SampleSizeRequest, error) {
	var req SampleSizeRequest
	err := json.Unmarshal(data, &req)
	return req, err
}
