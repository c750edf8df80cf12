package mca

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"gomca/internal/distributions"
)

// projections computes the expansion coefficients of a preprocessed field
// onto its singular vectors: one time series per mode.
func projections(p *preprocessed, vectors [][]float64) [][]float64 {
	n, _ := p.data.Dims()
	nModes := len(vectors)

	pcs := make([][]float64, nModes)
	for m := range pcs {
		pc := make([]float64, n)
		for i := 0; i < n; i++ {
			sum := 0.0
			for c, j := range p.valid {
				sum += p.data.At(i, c) * vectors[m][j]
			}
			pc[i] = sum
		}
		pcs[m] = pc
	}
	return pcs
}

// expandVectors scatters the truncated singular vector matrix (valid
// features × modes) onto the original grid, mode-major.
func expandVectors(p *preprocessed, truncated matrixAt, nModes int) [][]float64 {
	vectors := make([][]float64, nModes)
	for m := range vectors {
		col := make([]float64, len(p.valid))
		for c := range p.valid {
			col[c] = truncated.At(c, m)
		}
		vectors[m] = p.expand(col)
	}
	return vectors
}

// matrixAt is the read surface needed from gonum matrices
type matrixAt interface {
	At(i, j int) float64
}

// correlationPatterns computes, per mode and per gridpoint of target, the
// Pearson correlation between the mode's expansion coefficients and the
// target field's original data, plus the two-sided t-test p-value with
// n−2 degrees of freedom.
//
// Gridpoints are independent, so the map over them runs on a bounded
// worker group. Masked gridpoints yield NaN rather than an error.
func correlationPatterns(ctx context.Context, pcs [][]float64, target *preprocessed, workers int) (PatternSet, error) {
	nModes := len(pcs)
	nFeatures := target.nFeatures
	n := target.field.SampleCount()

	set := PatternSet{
		Patterns: make([][]float64, nModes),
		PValues:  make([][]float64, nModes),
	}
	for m := 0; m < nModes; m++ {
		set.Patterns[m] = make([]float64, nFeatures)
		set.PValues[m] = make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			set.Patterns[m][j] = math.NaN()
			set.PValues[m][j] = math.NaN()
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, j := range target.valid {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			col := target.field.Column(j)
			for m := 0; m < nModes; m++ {
				r := stat.Correlation(pcs[m], col, nil)
				set.Patterns[m][j] = clampCorrelation(r)
				set.PValues[m][j] = distributions.CorrelationPValue(set.Patterns[m][j], n)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return PatternSet{}, err
	}
	return set, nil
}

// clampCorrelation pins tiny floating-point excursions back into [-1, 1]
func clampCorrelation(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}
