package distributions

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// TTestPValue computes the two-sided p-value for a t statistic using
// Student's t-distribution.
func TTestPValue(tStatistic float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}
	if math.IsNaN(tStatistic) {
		return math.NaN()
	}

	df := float64(degreesOfFreedom)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	// Two-tailed test
	p := 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

// CorrelationPValue computes the two-sided p-value for a Pearson correlation
// coefficient under the null hypothesis of zero correlation, with n-2
// degrees of freedom.
func CorrelationPValue(correlation float64, sampleSize int) float64 {
	if sampleSize < 3 {
		return 1.0
	}
	if math.IsNaN(correlation) {
		return math.NaN()
	}

	df := float64(sampleSize - 2)

	// |r| == 1 makes the t statistic infinite; the null is rejected outright.
	denom := 1 - correlation*correlation
	if denom <= 0 {
		return 0.0
	}

	tStatistic := correlation * math.Sqrt(df/denom)
	return TTestPValue(tStatistic, sampleSize-2)
}

// NormalCDF computes the cumulative distribution function for the standard normal
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the quantile function for the standard normal (inverse CDF)
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// BootstrapConfidenceInterval computes a percentile confidence interval from
// bootstrap samples.
func BootstrapConfidenceInterval(samples []float64, confidenceLevel float64) (lower, upper float64) {
	if len(samples) == 0 {
		return 0, 0
	}

	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = 0.95
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	alpha := 1.0 - confidenceLevel
	lowerPercentile := alpha / 2.0
	upperPercentile := 1.0 - alpha/2.0

	lowerIdx := int(math.Round(float64(len(sorted)-1) * lowerPercentile))
	upperIdx := int(math.Round(float64(len(sorted)-1) * upperPercentile))

	if lowerIdx >= len(sorted) {
		lowerIdx = len(sorted) - 1
	}
	if upperIdx >= len(sorted) {
		upperIdx = len(sorted) - 1
	}

	return sorted[lowerIdx], sorted[upperIdx]
}
