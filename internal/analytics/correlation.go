package analytics

import (
	"math"
	"sort"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

// Correlations computes the Pearson correlation coefficient between every
// unordered pair of per-risk series. Pairs whose series differ in length or
// whose variance collapses (a constant series has no defined correlation) are
// skipped rather than reported as NaN.
func Correlations(series map[int][]float64) []schemas.RiskCorrelation {
	ids := make([]int, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []schemas.RiskCorrelation
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			sa, sb := series[a], series[b]
			if len(sa) != len(sb) || len(sa) < 2 {
				continue
			}
			if r, ok := pearson(sa, sb); ok {
				out = append(out, schemas.RiskCorrelation{Risk1ID: a, Risk2ID: b, Coefficient: r})
			}
		}
	}
	return out
}

// pearson returns the sample Pearson correlation of two equal-length series,
// ok=false when either side has zero variance.
func pearson(xs, ys []float64) (float64, bool) {
	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}
