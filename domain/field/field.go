package field

import (
	"fmt"
	"math"

	"gomca/domain/core"
)

// Field is a labeled two-dimensional array over a shared sample axis:
// rows are samples (typically time steps), columns are features (typically
// flattened gridpoints). It is the canonical input to the MCA engine.
type Field struct {
	Key    core.FieldKey
	Data   [][]float64 // rows=samples, cols=features
	Coords Coordinates
}

// Coordinates carries per-feature spatial metadata. All slices are optional
// but, when present, must match the feature count. Latitudes are required
// for latitude-dependent weighting.
type Coordinates struct {
	Latitudes  []float64 // degrees, per feature
	Longitudes []float64 // degrees, per feature
	Labels     []string  // free-form feature labels
}

// New creates a field and validates its shape
func New(key core.FieldKey, data [][]float64, coords Coordinates) (*Field, error) {
	f := &Field{Key: key, Data: data, Coords: coords}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate ensures the field is internally consistent
func (f *Field) Validate() error {
	if len(f.Data) == 0 {
		return core.ErrInsufficientData
	}

	cols := len(f.Data[0])
	if cols == 0 {
		return core.ErrInsufficientData
	}
	for i, row := range f.Data {
		if len(row) != cols {
			return core.NewDimensionMismatchError(
				fmt.Sprintf("field %s: row %d has %d features, expected %d", f.Key, i, len(row), cols))
		}
	}

	if f.Coords.Latitudes != nil && len(f.Coords.Latitudes) != cols {
		return core.NewDimensionMismatchError(
			fmt.Sprintf("field %s: %d latitudes for %d features", f.Key, len(f.Coords.Latitudes), cols))
	}
	if f.Coords.Longitudes != nil && len(f.Coords.Longitudes) != cols {
		return core.NewDimensionMismatchError(
			fmt.Sprintf("field %s: %d longitudes for %d features", f.Key, len(f.Coords.Longitudes), cols))
	}
	if f.Coords.Labels != nil && len(f.Coords.Labels) != cols {
		return core.NewDimensionMismatchError(
			fmt.Sprintf("field %s: %d labels for %d features", f.Key, len(f.Coords.Labels), cols))
	}

	return nil
}

// SampleCount returns the number of samples (rows)
func (f *Field) SampleCount() int {
	return len(f.Data)
}

// FeatureCount returns the number of features (columns)
func (f *Field) FeatureCount() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0])
}

// Column returns a copy of the data for a single feature across all samples
func (f *Field) Column(j int) []float64 {
	col := make([]float64, len(f.Data))
	for i, row := range f.Data {
		if j < len(row) {
			col[i] = row[j]
		} else {
			col[i] = math.NaN()
		}
	}
	return col
}

// HasLatitudes reports whether per-feature latitude metadata is present
func (f *Field) HasLatitudes() bool {
	return len(f.Coords.Latitudes) == f.FeatureCount() && f.FeatureCount() > 0
}

// Clone returns a deep copy; the engine clones inputs so caller-owned data
// is never mutated.
func (f *Field) Clone() *Field {
	data := make([][]float64, len(f.Data))
	for i, row := range f.Data {
		data[i] = make([]float64, len(row))
		copy(data[i], row)
	}
	coords := Coordinates{}
	if f.Coords.Latitudes != nil {
		coords.Latitudes = append([]float64(nil), f.Coords.Latitudes...)
	}
	if f.Coords.Longitudes != nil {
		coords.Longitudes = append([]float64(nil), f.Coords.Longitudes...)
	}
	if f.Coords.Labels != nil {
		coords.Labels = append([]string(nil), f.Coords.Labels...)
	}
	return &Field{Key: f.Key, Data: data, Coords: coords}
}
