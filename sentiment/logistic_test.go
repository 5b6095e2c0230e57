package sentiment

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLinearModelArgmax(t *testing.T) {
	// Three classes over two features; each class keys on one pattern.
	model, err := NewLinearModel([][]float64{
		{2, 0},
		{0, 2},
		{1, 1},
	}, []float64{0, 0, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		vec  []float32
		want int
	}{
		{"first feature dominates", []float32{1, 0}, 0},
		{"second feature dominates", []float32{0, 1}, 1},
		{"bias breaks the tie", []float32{1, 1}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := model.PredictVector(tc.vec)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("PredictVector(%v) = %d, want %d", tc.vec, got, tc.want)
			}
		})
	}
}

func TestLinearModelDimensionMismatch(t *testing.T) {
	model, err := NewLinearModel([][]float64{{1, 2}, {3, 4}}, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := model.PredictVector([]float32{1, 2, 3}); err == nil {
		t.Fatal("mismatched embedding size should fail")
	}
}

func TestNewLinearModelValidation(t *testing.T) {
	cases := []struct {
		name      string
		coef      [][]float64
		intercept []float64
	}{
		{"no rows", nil, nil},
		{"empty row", [][]float64{{}}, []float64{0}},
		{"ragged rows", [][]float64{{1, 2}, {3}}, []float64{0, 0}},
		{"intercept count", [][]float64{{1, 2}}, []float64{0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewLinearModel(tc.coef, tc.intercept); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadLinearModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logreg.json")
	payload := `{"coef": [[1, 0], [0, 1], [0.5, 0.5]], "intercept": [0, 0, 0]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	model, err := LoadLinearModel(path)
	if err != nil {
		t.Fatalf("LoadLinearModel: %v", err)
	}
	if model.NumClasses() != 3 || model.NumFeatures() != 2 {
		t.Errorf("shape = %dx%d, want 3x2", model.NumClasses(), model.NumFeatures())
	}
	got, err := model.PredictVector([]float32{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("PredictVector = %d, want 0", got)
	}
}

func TestLoadLinearModelBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLinearModel(path); err == nil {
		t.Fatal("broken JSON should fail")
	}
}
