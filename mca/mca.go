// Package mca implements Maximum Covariance Analysis between two
// spatiotemporal fields: the singular value decomposition of their
// cross-covariance matrix, with expansion coefficients and
// homogeneous/heterogeneous correlation patterns per retained mode.
package mca

import (
	"context"
	"fmt"
	"sync"

	"gomca/domain/core"
	"gomca/domain/field"
	"gomca/internal"
)

// MCA couples two fields sharing a sample axis under a fixed configuration.
// Construction validates every precondition; Solve runs the numerics once
// and caches the immutable result.
type MCA struct {
	x, y *field.Field
	cfg  Config

	mu     sync.Mutex
	result *Result
}

// New validates configuration and dimensions and returns an engine ready
// to solve. The input fields are deep-copied, so later caller-side
// mutation does not leak into the analysis.
func New(x, y *field.Field, cfg Config) (*MCA, error) {
	if x == nil || y == nil {
		return nil, core.NewConfigurationError("fields", "both input fields are required")
	}
	if err := x.Validate(); err != nil {
		return nil, err
	}
	if err := y.Validate(); err != nil {
		return nil, err
	}
	if x.SampleCount() != y.SampleCount() {
		return nil, core.NewDimensionMismatchError(fmt.Sprintf(
			"sample axis %q: field %s has %d samples, field %s has %d",
			cfg.SampleDim, x.Key, x.SampleCount(), y.Key, y.SampleCount()))
	}
	if err := cfg.validate(x, y); err != nil {
		return nil, err
	}

	return &MCA{x: x.Clone(), y: y.Clone(), cfg: cfg}, nil
}

// Solve runs preprocess → decompose → reconstruct and returns the result.
// Inputs and configuration are fixed at construction, so repeated calls
// return the same cached result.
func (m *MCA) Solve(ctx context.Context) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.result != nil {
		return m.result, nil
	}

	xp, err := preprocessField(m.x, m.cfg.WeightsX, m.cfg.Normalize)
	if err != nil {
		return nil, err
	}
	yp, err := preprocessField(m.y, m.cfg.WeightsY, m.cfg.Normalize)
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.Debug("preprocessed fields %s/%s: %d/%d of %d/%d features usable",
		m.x.Key, m.y.Key, len(xp.valid), len(yp.valid), xp.nFeatures, yp.nFeatures)

	dec, err := decompose(xp, yp, m.cfg.NModes)
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.Debug("decomposed cross-covariance: %d modes retained, leading singular value %.6g",
		len(dec.singularValues), dec.singularValues[0])

	vectorsX := expandVectors(xp, dec.u, m.cfg.NModes)
	vectorsY := expandVectors(yp, dec.v, m.cfg.NModes)

	pcsX := projections(xp, vectorsX)
	pcsY := projections(yp, vectorsY)

	workers := m.cfg.workers()

	// Homogeneous: a field's own coefficients against its own data.
	homX, err := correlationPatterns(ctx, pcsX, xp, workers)
	if err != nil {
		return nil, err
	}
	homY, err := correlationPatterns(ctx, pcsY, yp, workers)
	if err != nil {
		return nil, err
	}

	// Heterogeneous: a field's coefficients against the other field's data.
	hetX, err := correlationPatterns(ctx, pcsX, yp, workers)
	if err != nil {
		return nil, err
	}
	hetY, err := correlationPatterns(ctx, pcsY, xp, workers)
	if err != nil {
		return nil, err
	}

	m.result = &Result{
		id:          core.SolveID(core.NewID()),
		createdAt:   core.Now(),
		fingerprint: m.fingerprint(),

		singularValues: dec.singularValues,
		scf:            dec.squaredCovarianceFraction(),

		singularVectors: Pair[[][]float64]{vectorsX, vectorsY},
		pcs:             Pair[[][]float64]{pcsX, pcsY},
		homogeneous:     Pair[PatternSet]{homX, homY},
		heterogeneous:   Pair[PatternSet]{hetX, hetY},

		xp:        xp,
		yp:        yp,
		normalize: m.cfg.Normalize,
	}

	return m.result, nil
}

// fingerprint digests both fields and the statistical configuration.
// Worker count is ambient tuning, not part of the digest.
func (m *MCA) fingerprint() core.SolveFingerprint {
	b := core.NewFingerprintBuilder().
		WriteString(m.x.Key.String()).
		WriteString(m.y.Key.String()).
		WriteString(m.cfg.SampleDim).
		WriteInt(m.cfg.NModes).
		WriteBool(m.cfg.Normalize).
		WriteString(string(m.cfg.WeightsX.Kind)).
		WriteFloats(m.cfg.WeightsX.Custom).
		WriteString(string(m.cfg.WeightsY.Kind)).
		WriteFloats(m.cfg.WeightsY.Custom)

	// Shapes go into the digest so reshaped data with the same flattened
	// values cannot collide.
	b.WriteInt(m.x.SampleCount()).WriteInt(m.x.FeatureCount())
	for _, row := range m.x.Data {
		b.WriteFloats(row)
	}
	b.WriteInt(m.y.SampleCount()).WriteInt(m.y.FeatureCount())
	for _, row := range m.y.Data {
		b.WriteFloats(row)
	}
	b.WriteFloats(m.x.Coords.Latitudes)
	b.WriteFloats(m.y.Coords.Latitudes)

	return b.Fingerprint()
}
