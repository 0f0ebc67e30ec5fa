package surveyops

import "math"

// Wide inputs (one column per variable) melt into tagged records keyed by
// (stratum, variable); scalar inputs melt into records keyed by stratum
// alone. The merge below aligns all of them the way a progressive outer
// join would: a key seen in any input creates a row, and fields no input
// supplies stay NaN.

type longValue struct {
	stratum  string
	variable string // empty for scalar inputs
	value    float64
}

type joinedRow struct {
	stratum  string
	variable string
	estim    float64
	s2h      float64
	deffh    float64
	cvh      float64
	rh       float64
	poph     float64
}

func meltMatrix(strata, variables []string, m [][]float64) []longValue {
	out := make([]longValue, 0, len(strata)*len(variables))
	for i, h := range strata {
		for j, v := range variables {
			out = append(out, longValue{stratum: h, variable: v, value: m[i][j]})
		}
	}
	return out
}

func meltColumn(strata []string, col []float64) []longValue {
	out := make([]longValue, 0, len(strata))
	for i, h := range strata {
		out = append(out, longValue{stratum: h, value: col[i]})
	}
	return out
}

// mergeLong joins the melted inputs on (stratum, variable). Row order is
// first-touch order, which for aligned inputs is row-major: strata in input
// order, variables in Totals' column order. Duplicate (stratum, variable)
// keys collapse, last writer wins.
func mergeLong(totals, variances, deffs, pop, resp, cvs []longValue) []*joinedRow {
	nan := math.NaN()
	order := make([]string, 0, len(totals))
	rows := make(map[string]*joinedRow, len(totals))

	touch := func(stratum, variable string) *joinedRow {
		k := stratum + "\x1f" + variable
		r, ok := rows[k]
		if !ok {
			r = &joinedRow{
				stratum: stratum, variable: variable,
				estim: nan, s2h: nan, deffh: nan, cvh: nan, rh: nan, poph: nan,
			}
			rows[k] = r
			order = append(order, k)
		}
		return r
	}

	for _, v := range totals {
		touch(v.stratum, v.variable).estim = v.value
	}
	for _, v := range variances {
		touch(v.stratum, v.variable).s2h = v.value
	}
	for _, v := range deffs {
		touch(v.stratum, v.variable).deffh = v.value
	}

	// scalar inputs join on the stratum key alone: every row of a stratum
	// receives the value. A stratum present only in a scalar input still
	// surfaces as a row (with an empty variable) so nothing is dropped.
	applyScalar := func(vals []longValue, set func(*joinedRow, float64)) {
		byStratum := make(map[string]float64, len(vals))
		for _, v := range vals {
			byStratum[v.stratum] = v.value
		}
		matched := make(map[string]bool, len(byStratum))
		for _, k := range order {
			r := rows[k]
			if v, ok := byStratum[r.stratum]; ok {
				set(r, v)
				matched[r.stratum] = true
			}
		}
		for _, v := range vals {
			if !matched[v.stratum] {
				set(touch(v.stratum, ""), v.value)
				matched[v.stratum] = true
			}
		}
	}

	applyScalar(pop, func(r *joinedRow, v float64) { r.poph = v })
	applyScalar(resp, func(r *joinedRow, v float64) { r.rh = v })
	applyScalar(cvs, func(r *joinedRow, v float64) { r.cvh = v })

	out := make([]*joinedRow, 0, len(order))
	for _, k := range order {
		out = append(out, rows[k])
	}
	return out
}
