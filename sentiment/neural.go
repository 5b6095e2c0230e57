package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

// neuralLayer is one dense layer of the exported classifier head.
type neuralLayer struct {
	weights    *mat.Dense // out x in
	bias       *mat.VecDense
	activation string
}

// NeuralModel is a small feed-forward classifier head applied on top of the
// encoder embedding. Like LinearModel it is inference-only.
type NeuralModel struct {
	layers   []neuralLayer
	classes  int
	features int
}

// NeuralLayerExport is the JSON form of one dense layer.
type NeuralLayerExport struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

type neuralExport struct {
	Layers []NeuralLayerExport `json:"layers"`
}

// LoadNeuralModel reads an exported dense-head file.
func LoadNeuralModel(path string) (*NeuralModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read neural model: %w", err)
	}
	var export neuralExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode neural model %s: %w", path, err)
	}
	return NewNeuralModel(export.Layers)
}

// NewNeuralModel validates layer shapes and builds the head. Adjacent layers
// must agree on dimensions; the last layer's output size is the class count.
func NewNeuralModel(layers []NeuralLayerExport) (*NeuralModel, error) {
	if len(layers) == 0 {
		return nil, errors.New("neural model has no layers")
	}
	model := &NeuralModel{layers: make([]neuralLayer, 0, len(layers))}
	prevOut := -1
	for i, exp := range layers {
		out := len(exp.Weights)
		if out == 0 {
			return nil, fmt.Errorf("layer %d has no weight rows", i)
		}
		in := len(exp.Weights[0])
		if in == 0 {
			return nil, fmt.Errorf("layer %d has empty weight rows", i)
		}
		if prevOut >= 0 && in != prevOut {
			return nil, fmt.Errorf("layer %d expects %d inputs but layer %d produces %d", i, in, i-1, prevOut)
		}
		if len(exp.Bias) != out {
			return nil, fmt.Errorf("layer %d has %d weight rows but %d biases", i, out, len(exp.Bias))
		}
		switch exp.Activation {
		case "relu", "tanh", "identity", "softmax", "":
		default:
			return nil, fmt.Errorf("layer %d has unknown activation %q", i, exp.Activation)
		}
		flat := make([]float64, 0, out*in)
		for j, row := range exp.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("layer %d row %d has %d columns, want %d", i, j, len(row), in)
			}
			flat = append(flat, row...)
		}
		model.layers = append(model.layers, neuralLayer{
			weights:    mat.NewDense(out, in, flat),
			bias:       mat.NewVecDense(out, append([]float64(nil), exp.Bias...)),
			activation: exp.Activation,
		})
		if prevOut < 0 {
			model.features = in
		}
		prevOut = out
	}
	model.classes = prevOut
	return model, nil
}

// NumClasses returns the output size of the final layer.
func (m *NeuralModel) NumClasses() int { return m.classes }

// NumFeatures returns the expected embedding dimension.
func (m *NeuralModel) NumFeatures() int { return m.features }

// PredictVector runs the embedding through all layers and returns the argmax
// of the final activations.
func (m *NeuralModel) PredictVector(vec []float32) (int, error) {
	if len(vec) != m.features {
		return 0, fmt.Errorf("embedding has %d features, model expects %d", len(vec), m.features)
	}
	x := vecDenseFrom32(vec)
	for _, layer := range m.layers {
		out := mat.NewVecDense(layer.bias.Len(), nil)
		out.MulVec(layer.weights, x)
		out.AddVec(out, layer.bias)
		applyActivation(out, layer.activation)
		x = out
	}
	return argmax(x.RawVector().Data), nil
}

func applyActivation(v *mat.VecDense, activation string) {
	data := v.RawVector().Data
	switch activation {
	case "relu":
		for i, x := range data {
			if x < 0 {
				data[i] = 0
			}
		}
	case "tanh":
		for i, x := range data {
			data[i] = math.Tanh(x)
		}
	case "softmax":
		softmaxInPlace(data)
	}
	// identity and "" leave the affine output as is.
}

func softmaxInPlace(data []float64) {
	max := data[0]
	for _, x := range data[1:] {
		if x > max {
			max = x
		}
	}
	sum := 0.0
	for i, x := range data {
		data[i] = math.Exp(x - max)
		sum += data[i]
	}
	for i := range data {
		data[i] /= sum
	}
}
