package mca

import (
	"fmt"
	"math"

	"gomca/domain/core"
)

// Pair is an ordered two-element collection of per-field outputs:
// index 0 belongs to the first (X) field, index 1 to the second (Y) field.
type Pair[T any] [2]T

// X returns the first field's element
func (p Pair[T]) X() T { return p[0] }

// Y returns the second field's element
func (p Pair[T]) Y() T { return p[1] }

// PatternSet is a per-field collection of spatial correlation maps and
// their significance maps, mode-major: [mode][feature]. Masked gridpoints
// hold NaN in both.
type PatternSet struct {
	Patterns [][]float64
	PValues  [][]float64
}

// Result holds everything one solve produced. It is immutable: accessors
// expose the computed slices directly and callers must not modify them.
type Result struct {
	id          core.SolveID
	createdAt   core.Timestamp
	fingerprint core.SolveFingerprint

	singularValues []float64
	scf            []float64

	singularVectors Pair[[][]float64] // [mode][feature], NaN at masked gridpoints
	pcs             Pair[[][]float64] // [mode][sample]
	homogeneous     Pair[PatternSet]
	heterogeneous   Pair[PatternSet]

	// retained for reconstruction
	xp, yp    *preprocessed
	normalize bool
}

// SolveID identifies this solve
func (r *Result) SolveID() core.SolveID { return r.id }

// CreatedAt reports when the solve completed
func (r *Result) CreatedAt() core.Timestamp { return r.createdAt }

// Fingerprint digests the inputs and configuration of this solve. Two
// solves over unchanged inputs and configuration share a fingerprint.
func (r *Result) Fingerprint() core.SolveFingerprint { return r.fingerprint }

// NModes returns the number of retained modes
func (r *Result) NModes() int { return len(r.singularValues) }

// SingularValues returns the retained singular values of the
// cross-covariance matrix, in non-increasing order.
func (r *Result) SingularValues() []float64 { return r.singularValues }

// SquaredCovarianceFraction returns, per mode, the fraction of total
// squared covariance between the fields the mode explains.
func (r *Result) SquaredCovarianceFraction() []float64 { return r.scf }

// SingularVectors returns the per-field singular vectors on the original
// grids, mode-major.
func (r *Result) SingularVectors() Pair[[][]float64] { return r.singularVectors }

// PCs returns the per-field expansion coefficient time series, mode-major
func (r *Result) PCs() Pair[[][]float64] { return r.pcs }

// Scaling selects the unit convention for singular vectors and expansion
// coefficients. ScalingNone exposes the raw solver output (orthonormal
// vectors); ScalingSingularValues multiplies each mode by its singular
// value, putting covariance units onto the output.
type Scaling int

const (
	ScalingNone Scaling = iota
	ScalingSingularValues
)

// SingularVectorsScaled returns the singular vectors under the requested
// convention. ScalingNone is identical to SingularVectors; scaled output
// is freshly allocated.
func (r *Result) SingularVectorsScaled(s Scaling) Pair[[][]float64] {
	return r.scalePair(r.singularVectors, s)
}

// PCsScaled returns the expansion coefficients under the requested
// convention. ScalingNone is identical to PCs; scaled output is freshly
// allocated.
func (r *Result) PCsScaled(s Scaling) Pair[[][]float64] {
	return r.scalePair(r.pcs, s)
}

func (r *Result) scalePair(p Pair[[][]float64], s Scaling) Pair[[][]float64] {
	if s != ScalingSingularValues {
		return p
	}
	return Pair[[][]float64]{
		scaleModes(p.X(), r.singularValues),
		scaleModes(p.Y(), r.singularValues),
	}
}

func scaleModes(modes [][]float64, sv []float64) [][]float64 {
	out := make([][]float64, len(modes))
	for m := range modes {
		row := make([]float64, len(modes[m]))
		for i, v := range modes[m] {
			row[i] = v * sv[m]
		}
		out[m] = row
	}
	return out
}

// HomogeneousPatterns returns, per field, the correlation of the field's
// own expansion coefficients with its own data, with p-values.
func (r *Result) HomogeneousPatterns() Pair[PatternSet] { return r.homogeneous }

// HeterogeneousPatterns returns, per field, the correlation of the field's
// expansion coefficients with the other field's data, with p-values. The
// element at index 0 therefore lives on the Y grid and vice versa.
func (r *Result) HeterogeneousPatterns() Pair[PatternSet] { return r.heterogeneous }

// Reconstruct rebuilds both fields from the selected modes (1-based), in
// physical units: the projection onto the retained subspace is unweighted
// and de-standardized, then the temporal mean is restored. Masked
// gridpoints come back as NaN. Output is [sample][feature].
func (r *Result) Reconstruct(modes []int) (Pair[[][]float64], error) {
	if len(modes) == 0 {
		modes = make([]int, r.NModes())
		for i := range modes {
			modes[i] = i + 1
		}
	}
	for _, m := range modes {
		if m < 1 || m > r.NModes() {
			return Pair[[][]float64]{}, core.NewConfigurationError("modes",
				fmt.Sprintf("mode %d outside retained range 1..%d", m, r.NModes()))
		}
	}

	x := reconstructField(r.xp, r.pcs.X(), r.singularVectors.X(), modes, r.normalize)
	y := reconstructField(r.yp, r.pcs.Y(), r.singularVectors.Y(), modes, r.normalize)
	return Pair[[][]float64]{x, y}, nil
}

func reconstructField(p *preprocessed, pcs, vectors [][]float64, modes []int, normalize bool) [][]float64 {
	n := p.field.SampleCount()

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, p.nFeatures)
		for j := range out[i] {
			out[i][j] = math.NaN()
		}
	}

	for _, j := range p.valid {
		w := p.weights[j]
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, m := range modes {
				sum += pcs[m-1][i] * vectors[m-1][j]
			}
			if w != 0 {
				sum /= w
			} else {
				sum = math.NaN()
			}
			if normalize {
				sum *= p.stds[j]
			}
			out[i][j] = sum + p.means[j]
		}
	}
	return out
}
