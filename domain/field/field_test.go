package field

import (
	"errors"
	"math"
	"testing"

	"gomca/domain/core"
)

func TestNew_RejectsRaggedRows(t *testing.T) {
	data := [][]float64{
		{1, 2, 3},
		{4, 5},
	}
	_, err := New("t2m", data, Coordinates{})
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
	if !core.IsDimensionMismatchError(err) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestNew_RejectsEmptyData(t *testing.T) {
	_, err := New("t2m", nil, Coordinates{})
	if err == nil {
		t.Fatal("expected error for empty data")
	}
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected insufficient-data error, got %v", err)
	}
	// Insufficient data is a shape problem, so it classifies with the
	// dimension-mismatch family.
	if !core.IsDimensionMismatchError(err) {
		t.Errorf("expected dimension mismatch classification, got %v", err)
	}

	if _, err := New("t2m", [][]float64{{}}, Coordinates{}); !core.IsDimensionMismatchError(err) {
		t.Errorf("expected dimension mismatch for zero features, got %v", err)
	}
}

func TestNew_RejectsCoordinateLengthMismatch(t *testing.T) {
	data := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	_, err := New("t2m", data, Coordinates{Latitudes: []float64{10, 20}})
	if err == nil {
		t.Fatal("expected error for latitude length mismatch")
	}
	if !core.IsDimensionMismatchError(err) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestField_Shape(t *testing.T) {
	data := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	f, err := New("t2m", data, Coordinates{Latitudes: []float64{0, 30, 60}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if f.SampleCount() != 2 {
		t.Errorf("SampleCount = %d, want 2", f.SampleCount())
	}
	if f.FeatureCount() != 3 {
		t.Errorf("FeatureCount = %d, want 3", f.FeatureCount())
	}
	if !f.HasLatitudes() {
		t.Error("HasLatitudes should be true")
	}

	col := f.Column(1)
	if col[0] != 2 || col[1] != 5 {
		t.Errorf("Column(1) = %v, want [2 5]", col)
	}
}

func TestField_ColumnIsACopy(t *testing.T) {
	data := [][]float64{{1, 2}, {3, 4}}
	f, err := New("t2m", data, Coordinates{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	col := f.Column(0)
	col[0] = 99
	if f.Data[0][0] != 1 {
		t.Error("mutating a returned column leaked into field data")
	}
}

func TestField_CloneIsIndependent(t *testing.T) {
	data := [][]float64{{1, math.NaN()}, {3, 4}}
	f, err := New("t2m", data, Coordinates{Latitudes: []float64{10, 20}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	clone := f.Clone()
	clone.Data[0][0] = -7
	clone.Coords.Latitudes[0] = -7

	if f.Data[0][0] != 1 {
		t.Error("clone shares data with original")
	}
	if f.Coords.Latitudes[0] != 10 {
		t.Error("clone shares coordinates with original")
	}
	if !math.IsNaN(clone.Data[0][1]) {
		t.Error("clone should preserve NaN cells")
	}
}
