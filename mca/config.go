package mca

import (
	"fmt"

	"gomca/domain/core"
	"gomca/domain/field"
	"gomca/internal/config"
)

// Weighting identifies how a field is weighted before decomposition.
// It is a closed enumeration; WeightCustom carries its array in WeightSpec.
type Weighting string

const (
	// WeightNone applies no weighting
	WeightNone Weighting = "none"
	// WeightCosLat applies sqrt(cos(latitude)) per gridpoint, the standard
	// area weighting for regular lat/lon grids. Requires latitude metadata.
	WeightCosLat Weighting = "coslat"
	// WeightCustom applies a caller-provided per-feature array
	WeightCustom Weighting = "custom"
)

// WeightSpec pairs a weighting kind with its optional custom array
type WeightSpec struct {
	Kind   Weighting
	Custom []float64 // required iff Kind == WeightCustom
}

// NoWeights returns the zero weighting spec
func NoWeights() WeightSpec { return WeightSpec{Kind: WeightNone} }

// CosLatWeights returns the latitude-cosine weighting spec
func CosLatWeights() WeightSpec { return WeightSpec{Kind: WeightCosLat} }

// CustomWeights returns a custom per-feature weighting spec
func CustomWeights(w []float64) WeightSpec {
	return WeightSpec{Kind: WeightCustom, Custom: w}
}

// Config is the per-solve configuration, fixed at construction
type Config struct {
	// NModes is the number of coupled modes to retain (1-based mode indices)
	NModes int
	// SampleDim names the shared sample axis; audit metadata only
	SampleDim string
	// Normalize standardizes each feature by its temporal standard deviation
	Normalize bool
	// WeightsX and WeightsY select per-field weighting
	WeightsX WeightSpec
	WeightsY WeightSpec
	// Workers bounds pattern-reconstruction parallelism; 0 means the
	// ambient default (MCA_WORKERS env var or GOMAXPROCS)
	Workers int
}

// DefaultConfig returns a single-mode unweighted configuration
func DefaultConfig() Config {
	return Config{
		NModes:    1,
		SampleDim: "time",
		WeightsX:  NoWeights(),
		WeightsY:  NoWeights(),
	}
}

// workers resolves the effective parallelism
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return config.LoadEngine().Workers
}

// validate checks the configuration against both fields. All precondition
// violations surface here, before any numerics run.
func (c Config) validate(x, y *field.Field) error {
	if c.NModes < 1 {
		return core.NewConfigurationError("n_modes", fmt.Sprintf("must be a positive integer, got %d", c.NModes))
	}
	if err := validateWeightSpec("weights_x", c.WeightsX, x); err != nil {
		return err
	}
	if err := validateWeightSpec("weights_y", c.WeightsY, y); err != nil {
		return err
	}
	return nil
}

func validateWeightSpec(param string, spec WeightSpec, f *field.Field) error {
	switch spec.Kind {
	case WeightNone:
		return nil
	case WeightCosLat:
		if !f.HasLatitudes() {
			return fmt.Errorf("%w: %s: coslat weighting requires latitudes on field %s",
				core.ErrMissingMetadata, param, f.Key)
		}
		for _, lat := range f.Coords.Latitudes {
			if lat < -90 || lat > 90 {
				return core.NewConfigurationError(param,
					fmt.Sprintf("latitude %.4f on field %s outside [-90, 90]", lat, f.Key))
			}
		}
		return nil
	case WeightCustom:
		if len(spec.Custom) != f.FeatureCount() {
			return core.NewConfigurationError(param,
				fmt.Sprintf("custom weights length %d does not match %d features of field %s",
					len(spec.Custom), f.FeatureCount(), f.Key))
		}
		return nil
	default:
		return core.NewConfigurationError(param, fmt.Sprintf("unknown weighting %q", spec.Kind))
	}
}
