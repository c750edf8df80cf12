package mca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gomca/domain/core"
)

// decomposition holds the truncated SVD of the cross-covariance matrix
// between the two preprocessed fields.
type decomposition struct {
	singularValues  []float64  // descending, len nModes
	u               *mat.Dense // len(valid_x) × nModes
	v               *mat.Dense // len(valid_y) × nModes
	totalSquaredCov float64    // sum of all squared singular values
}

// decompose computes C = Xᵗ·Y / (n−1) over the valid features and its thin
// singular value decomposition, truncated to nModes.
//
// Singular values come back in the non-increasing order produced by gonum's
// LAPACK-style solver; the order of exactly tied values is whatever that
// solver yields and is not further specified.
func decompose(xp, yp *preprocessed, nModes int) (*decomposition, error) {
	n, fx := xp.data.Dims()
	_, fy := yp.data.Dims()

	maxModes := min3(fx, fy, n-1)
	if nModes > maxModes {
		return nil, core.NewNumericalError(fmt.Sprintf(
			"n_modes %d exceeds min(features_x=%d, features_y=%d, samples-1=%d) = %d",
			nModes, fx, fy, n-1, maxModes))
	}

	cov := mat.NewDense(fx, fy, nil)
	cov.Mul(xp.data.T(), yp.data)
	cov.Scale(1/float64(n-1), cov)

	var svd mat.SVD
	if ok := svd.Factorize(cov, mat.SVDThin); !ok {
		return nil, core.ErrNoConvergence
	}

	values := svd.Values(nil)

	total := 0.0
	for _, s := range values {
		total += s * s
	}

	var uFull, vFull mat.Dense
	svd.UTo(&uFull)
	svd.VTo(&vFull)

	d := &decomposition{
		singularValues:  append([]float64(nil), values[:nModes]...),
		u:               mat.DenseCopyOf(uFull.Slice(0, fx, 0, nModes)),
		v:               mat.DenseCopyOf(vFull.Slice(0, fy, 0, nModes)),
		totalSquaredCov: total,
	}

	return d, nil
}

// squaredCovarianceFraction returns, per retained mode, the share of total
// squared covariance the mode explains.
func (d *decomposition) squaredCovarianceFraction() []float64 {
	scf := make([]float64, len(d.singularValues))
	if d.totalSquaredCov == 0 {
		return scf
	}
	for i, s := range d.singularValues {
		scf[i] = s * s / d.totalSquaredCov
	}
	return scf
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
