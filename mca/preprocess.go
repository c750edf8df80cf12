package mca

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"gomca/domain/field"
	"gomca/internal/errors"
)

// preprocessed is one field after centering, optional standardization and
// weighting, restricted to the features that may participate in the
// decomposition. Masked features keep their original grid position in the
// bookkeeping slices so every output can be expanded back to the full grid.
type preprocessed struct {
	field     *field.Field
	data      *mat.Dense // nSamples × len(valid)
	valid     []int      // original indices of features kept for decomposition
	nFeatures int
	means     []float64 // per original feature, NaN where masked
	stds      []float64 // sample standard deviation per original feature
	weights   []float64 // effective weight per original feature
}

// preprocessField applies the weighting and normalization contract. The
// transform is pure: the caller's field is read, never written.
//
// A feature is masked out of the decomposition when any of its samples is
// missing (which covers the all-missing gridpoint case) or when
// standardization is requested and the feature has zero temporal variance.
// Masked features reappear as NaN in every per-feature output.
func preprocessField(f *field.Field, spec WeightSpec, normalize bool) (*preprocessed, error) {
	profiles, err := field.Profile(f)
	if err != nil {
		return nil, errors.Wrapf(err, "preprocessing field %s", f.Key)
	}

	n := f.SampleCount()
	nFeatures := f.FeatureCount()

	weights := featureWeights(spec, f)

	p := &preprocessed{
		field:     f,
		nFeatures: nFeatures,
		means:     make([]float64, nFeatures),
		stds:      make([]float64, nFeatures),
		weights:   weights,
	}

	for j, prof := range profiles {
		masked := prof.HasMissing() || (normalize && prof.ZeroVariance)
		if masked {
			p.means[j] = math.NaN()
			p.stds[j] = math.NaN()
			continue
		}
		p.means[j] = prof.Mean
		p.stds[j] = prof.StdDev
		p.valid = append(p.valid, j)
	}

	if len(p.valid) == 0 {
		return nil, errors.Numerical("field " + f.Key.String() + " has no usable features after masking")
	}

	data := mat.NewDense(n, len(p.valid), nil)
	for c, j := range p.valid {
		mean := p.means[j]
		std := p.stds[j]
		w := weights[j]
		for i := 0; i < n; i++ {
			v := f.Data[i][j] - mean
			if normalize {
				v /= std
			}
			data.Set(i, c, v*w)
		}
	}
	p.data = data

	return p, nil
}

// featureWeights materializes the weighting spec as one weight per feature.
// The spec has already been validated against the field.
func featureWeights(spec WeightSpec, f *field.Field) []float64 {
	n := f.FeatureCount()
	weights := make([]float64, n)

	switch spec.Kind {
	case WeightCosLat:
		for j, lat := range f.Coords.Latitudes {
			c := math.Cos(lat * math.Pi / 180)
			if c < 0 {
				c = 0
			}
			weights[j] = math.Sqrt(c)
		}
	case WeightCustom:
		copy(weights, spec.Custom)
	default:
		for j := range weights {
			weights[j] = 1
		}
	}

	return weights
}

// expand scatters per-valid-feature values back onto the full grid,
// filling masked positions with NaN.
func (p *preprocessed) expand(values []float64) []float64 {
	out := make([]float64, p.nFeatures)
	for j := range out {
		out[j] = math.NaN()
	}
	for c, j := range p.valid {
		out[j] = values[c]
	}
	return out
}
