// Package testkit provides deterministic synthetic fields for engine tests.
package testkit

import (
	"math"
	"math/rand"

	"gomca/domain/core"
	"gomca/domain/field"
)

// CoupledFields generates two fields that share one dominant coupled mode
// plus independent noise. The shared signal is a sinusoid in time projected
// onto fixed spatial loadings, so a single-mode MCA recovers it.
func CoupledFields(nSamples, nFeaturesX, nFeaturesY int, noise float64, seed int64) (*field.Field, *field.Field) {
	rng := rand.New(rand.NewSource(seed))

	signal := make([]float64, nSamples)
	for t := range signal {
		signal[t] = math.Sin(2 * math.Pi * float64(t) / 12)
	}

	loadX := loadings(nFeaturesX, rng)
	loadY := loadings(nFeaturesY, rng)

	x := buildField("x", signal, loadX, noise, rng)
	y := buildField("y", signal, loadY, noise, rng)
	return x, y
}

// NoiseFields generates two independent white-noise fields
func NoiseFields(nSamples, nFeaturesX, nFeaturesY int, seed int64) (*field.Field, *field.Field) {
	rng := rand.New(rand.NewSource(seed))
	x := buildField("x", make([]float64, nSamples), loadings(nFeaturesX, rng), 1.0, rng)
	y := buildField("y", make([]float64, nSamples), loadings(nFeaturesY, rng), 1.0, rng)
	return x, y
}

// GriddedField generates a field on a regular latitude grid so that
// latitude-dependent weighting has metadata to work with.
func GriddedField(key string, nSamples, nLat, nLon int, seed int64) *field.Field {
	rng := rand.New(rand.NewSource(seed))

	nFeatures := nLat * nLon
	lats := make([]float64, nFeatures)
	lons := make([]float64, nFeatures)
	for i := 0; i < nLat; i++ {
		lat := -80 + 160*float64(i)/math.Max(float64(nLat-1), 1)
		for j := 0; j < nLon; j++ {
			idx := i*nLon + j
			lats[idx] = lat
			lons[idx] = 360 * float64(j) / float64(nLon)
		}
	}

	data := make([][]float64, nSamples)
	for t := range data {
		data[t] = make([]float64, nFeatures)
		for g := range data[t] {
			data[t][g] = rng.NormFloat64()
		}
	}

	f, _ := field.New(core.FieldKey(key), data, field.Coordinates{Latitudes: lats, Longitudes: lons})
	return f
}

// MaskFeature overwrites one feature with NaN for every sample
func MaskFeature(f *field.Field, j int) {
	for i := range f.Data {
		f.Data[i][j] = math.NaN()
	}
}

func loadings(nFeatures int, rng *rand.Rand) []float64 {
	l := make([]float64, nFeatures)
	norm := 0.0
	for g := range l {
		l[g] = rng.NormFloat64()
		norm += l[g] * l[g]
	}
	norm = math.Sqrt(norm)
	for g := range l {
		l[g] /= norm
	}
	return l
}

func buildField(key string, signal, load []float64, noise float64, rng *rand.Rand) *field.Field {
	data := make([][]float64, len(signal))
	for t := range data {
		data[t] = make([]float64, len(load))
		for g := range data[t] {
			data[t][g] = signal[t]*load[g]*3 + noise*rng.NormFloat64()
		}
	}
	f, _ := field.New(core.FieldKey(key), data, field.Coordinates{})
	return f
}
