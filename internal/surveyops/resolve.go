package surveyops

import (
	"errors"
	"fmt"

	"github.com/JustUsingaWebsite/survey-powerops/internal/types"
	"github.com/JustUsingaWebsite/survey-powerops/internal/utils"
)

// resolveRefs turns reference-style inputs (column names or numeric index
// strings into Datasets.Source) into concrete inline tables before
// validation. Inputs without a ref keep whatever inline table the request
// carried.
func resolveRefs(d SampleSizeDatasets, refs *SampleSizeRefs) (SampleSizeDatasets, error) {
	if refs == nil {
		return d, nil
	}
	if d.Source == nil {
		return d, errors.New("refs: a source dataset is required when inputs are given as column references")
	}

	pick := func(name string, cols []string) (*types.TableData, error) {
		out := types.TableData{
			HasHeader: true,
			Header:    make([]string, 0, len(cols)),
			Rows:      make([][]string, 0, len(d.Source.Rows)),
		}
		idxs := make([]int, 0, len(cols))
		for _, c := range cols {
			idx, err := utils.ResolveKeyIndex(*d.Source, c)
			if err != nil {
				return nil, fmt.Errorf("%s: column '%s' does not exist in dataset", name, c)
			}
			idxs = append(idxs, idx)
			if d.Source.HasHeader {
				out.Header = append(out.Header, d.Source.Header[idx])
			} else {
				out.Header = append(out.Header, c)
			}
		}
		for ri, row := range d.Source.Rows {
			cells := make([]string, len(idxs))
			for i, idx := range idxs {
				if idx >= len(row) {
					return nil, fmt.Errorf("%s: dataset row %d has no column %d", name, ri+1, idx+1)
				}
				cells[i] = row[idx]
			}
			out.Rows = append(out.Rows, cells)
		}
		return &out, nil
	}

	var err error
	if len(refs.Totals) > 0 {
		if d.Totals, err = pick("totals", refs.Totals); err != nil {
			return d, err
		}
	}
	if refs.Strata != "" {
		if d.Strata, err = pick("strata", []string{refs.Strata}); err != nil {
			return d, err
		}
	}
	if len(refs.Variances) > 0 {
		if d.Variances, err = pick("variances", refs.Variances); err != nil {
			return d, err
		}
	}
	if refs.Population != "" {
		if d.Population, err = pick("population", []string{refs.Population}); err != nil {
			return d, err
		}
	}
	if refs.ResponseRates != "" {
		if d.ResponseRates, err = pick("response_rates", []string{refs.ResponseRates}); err != nil {
			return d, err
		}
	}
	if len(refs.DesignEffects) > 0 {
		if d.DesignEffects, err = pick("design_effects", refs.DesignEffects); err != nil {
			return d, err
		}
	}
	if refs.TargetCVs != "" {
		if d.TargetCVs, err = pick("target_cvs", []string{refs.TargetCVs}); err != nil {
			return d, err
		}
	}
	return d, nil
}
