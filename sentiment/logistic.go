package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Classifier turns an embedding vector into a class index.
type Classifier interface {
	PredictVector(vec []float32) (int, error)
	NumClasses() int
}

// LinearModel is a multinomial logistic-regression head. Training happens
// elsewhere; this only consumes an exported coefficient matrix.
type LinearModel struct {
	weights  *mat.Dense // numClasses x numFeatures
	bias     *mat.VecDense
	classes  int
	features int
}

// linearExport mirrors the JSON export of the trained regression:
// one coefficient row per class plus one intercept per class.
type linearExport struct {
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// LoadLinearModel reads an exported coefficient file.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read linear model: %w", err)
	}
	var export linearExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode linear model %s: %w", path, err)
	}
	return NewLinearModel(export.Coef, export.Intercept)
}

// NewLinearModel builds a model from per-class coefficient rows and
// intercepts.
func NewLinearModel(coef [][]float64, intercept []float64) (*LinearModel, error) {
	if len(coef) == 0 {
		return nil, errors.New("linear model has no coefficient rows")
	}
	classes := len(coef)
	features := len(coef[0])
	if features == 0 {
		return nil, errors.New("linear model has empty coefficient rows")
	}
	if len(intercept) != classes {
		return nil, fmt.Errorf("linear model has %d coefficient rows but %d intercepts", classes, len(intercept))
	}
	flat := make([]float64, 0, classes*features)
	for i, row := range coef {
		if len(row) != features {
			return nil, fmt.Errorf("coefficient row %d has %d features, want %d", i, len(row), features)
		}
		flat = append(flat, row...)
	}
	return &LinearModel{
		weights:  mat.NewDense(classes, features, flat),
		bias:     mat.NewVecDense(classes, append([]float64(nil), intercept...)),
		classes:  classes,
		features: features,
	}, nil
}

// NumClasses returns the size of the label set the model scores over.
func (m *LinearModel) NumClasses() int { return m.classes }

// NumFeatures returns the expected embedding dimension.
func (m *LinearModel) NumFeatures() int { return m.features }

// PredictVector scores the embedding against every class and returns the
// argmax index. The softmax is monotonic, so raw scores suffice.
func (m *LinearModel) PredictVector(vec []float32) (int, error) {
	if len(vec) != m.features {
		return 0, fmt.Errorf("embedding has %d features, model expects %d", len(vec), m.features)
	}
	x := vecDenseFrom32(vec)
	scores := mat.NewVecDense(m.classes, nil)
	scores.MulVec(m.weights, x)
	scores.AddVec(scores, m.bias)
	return argmax(scores.RawVector().Data), nil
}

func vecDenseFrom32(vec []float32) *mat.VecDense {
	data := make([]float64, len(vec))
	for i, v := range vec {
		data[i] = float64(v)
	}
	return mat.NewVecDense(len(data), data)
}

func argmax(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
