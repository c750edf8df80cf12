package field

import (
	"math"

	"github.com/montanaflynn/stats"

	"gomca/internal/errors"
)

// FeatureProfile holds per-feature summary statistics used to decide which
// gridpoints participate in the decomposition.
type FeatureProfile struct {
	Index        int     `json:"index"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Variance     float64 `json:"variance"`
	MissingRatio float64 `json:"missing_ratio"`
	ValidCount   int     `json:"valid_count"`
	ZeroVariance bool    `json:"zero_variance"`
}

// HasMissing reports whether any sample at this feature is missing
func (p FeatureProfile) HasMissing() bool {
	return p.MissingRatio > 0
}

// Profile computes summary statistics for every feature of the field.
// Missing (NaN/Inf) cells are excluded from the moments and counted into
// the missing ratio.
func Profile(f *Field) ([]FeatureProfile, error) {
	if f == nil || f.SampleCount() == 0 || f.FeatureCount() == 0 {
		return nil, errors.ConfigInvalid("cannot profile an empty field")
	}

	profiles := make([]FeatureProfile, f.FeatureCount())
	for j := range profiles {
		profiles[j] = profileColumn(f.Column(j), j)
	}
	return profiles, nil
}

func profileColumn(col []float64, index int) FeatureProfile {
	valid := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			valid = append(valid, v)
		}
	}

	p := FeatureProfile{
		Index:        index,
		MissingRatio: 1 - float64(len(valid))/float64(len(col)),
		ValidCount:   len(valid),
	}

	if len(valid) == 0 {
		p.Mean = math.NaN()
		p.StdDev = math.NaN()
		p.Variance = math.NaN()
		p.ZeroVariance = true
		return p
	}

	p.Mean, _ = stats.Mean(valid)
	if len(valid) > 1 {
		p.Variance, _ = stats.SampleVariance(valid)
		p.StdDev = math.Sqrt(p.Variance)
	}
	p.ZeroVariance = p.Variance < 1e-12

	return p
}
