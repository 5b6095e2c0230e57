// Package eval accumulates prediction outcomes into a confusion matrix and
// derives classification metrics from it.
package eval

import (
	"errors"
	"fmt"
)

// ErrBatchSizeMismatch is reported when predicted and true label sequences
// differ in length for a single Accumulate call.
var ErrBatchSizeMismatch = errors.New("predicted and true label batches differ in length")

// Axis names which side of a (predicted, true) pair a label came from.
type Axis string

const (
	// AxisPredicted marks a model output label.
	AxisPredicted Axis = "predicted"
	// AxisTruth marks a ground-truth label.
	AxisTruth Axis = "true"
)

// OutOfRangeLabelError is reported when a label falls outside [0, NumLabels).
// The matrix is never updated from a batch containing such a label.
type OutOfRangeLabelError struct {
	Axis      Axis
	Label     int
	NumLabels int
}

func (e *OutOfRangeLabelError) Error() string {
	return fmt.Sprintf("%s label %d outside [0, %d)", e.Axis, e.Label, e.NumLabels)
}

// ConfusionMatrix is a fixed NumLabels x NumLabels grid of pair counts.
// Rows are predicted classes and columns are true classes; use At rather
// than computing flat offsets to avoid inverting the convention.
//
// The grid is allocated up front and every label is range-checked before
// any increment, so counts can never be silently truncated into the wrong
// cell. The sum of all cells always equals Total.
type ConfusionMatrix struct {
	n           int
	cells       []int
	total       int
	recordPreds bool
	preds       []int
}

// Option configures a ConfusionMatrix.
type Option func(*ConfusionMatrix)

// WithRecordPredictions keeps the full ordered sequence of predicted labels
// alongside the counts, for per-record reporting after the run.
func WithRecordPredictions() Option {
	return func(m *ConfusionMatrix) { m.recordPreds = true }
}

// NewConfusionMatrix allocates an empty numLabels x numLabels matrix.
func NewConfusionMatrix(numLabels int, opts ...Option) (*ConfusionMatrix, error) {
	if numLabels <= 0 {
		return nil, fmt.Errorf("numLabels must be positive, got %d", numLabels)
	}
	m := &ConfusionMatrix{
		n:     numLabels,
		cells: make([]int, numLabels*numLabels),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NumLabels returns the per-axis size of the matrix.
func (m *ConfusionMatrix) NumLabels() int { return m.n }

// Total returns the number of (predicted, true) pairs accumulated so far.
func (m *ConfusionMatrix) Total() int { return m.total }

// At returns the count of records predicted as class predicted whose true
// class is truth.
func (m *ConfusionMatrix) At(predicted, truth int) int {
	if predicted < 0 || predicted >= m.n || truth < 0 || truth >= m.n {
		return 0
	}
	return m.cells[truth+m.n*predicted]
}

// Accumulate counts each (predicted[i], truth[i]) pair. The two slices must
// be the same length and every label must lie in [0, NumLabels); otherwise
// the call fails and the matrix is left untouched.
func (m *ConfusionMatrix) Accumulate(predicted, truth []int) error {
	if len(predicted) != len(truth) {
		return fmt.Errorf("%w: %d predicted vs %d true", ErrBatchSizeMismatch, len(predicted), len(truth))
	}
	// Validate the whole batch before touching any cell.
	for _, p := range predicted {
		if p < 0 || p >= m.n {
			return &OutOfRangeLabelError{Axis: AxisPredicted, Label: p, NumLabels: m.n}
		}
	}
	for _, t := range truth {
		if t < 0 || t >= m.n {
			return &OutOfRangeLabelError{Axis: AxisTruth, Label: t, NumLabels: m.n}
		}
	}
	for i := range predicted {
		m.cells[truth[i]+m.n*predicted[i]]++
	}
	m.total += len(predicted)
	if m.recordPreds {
		m.preds = append(m.preds, predicted...)
	}
	return nil
}

// Merge adds other's counts into m. Partial matrices built concurrently over
// disjoint batches merge into the same result as sequential accumulation.
func (m *ConfusionMatrix) Merge(other *ConfusionMatrix) error {
	if other == nil {
		return nil
	}
	if other.n != m.n {
		return fmt.Errorf("cannot merge %dx%d matrix into %dx%d", other.n, other.n, m.n, m.n)
	}
	for i, v := range other.cells {
		m.cells[i] += v
	}
	m.total += other.total
	if m.recordPreds {
		m.preds = append(m.preds, other.preds...)
	}
	return nil
}

// Predictions returns a copy of the recorded prediction sequence. It is nil
// unless the matrix was built with WithRecordPredictions.
func (m *ConfusionMatrix) Predictions() []int {
	if m.preds == nil {
		return nil
	}
	out := make([]int, len(m.preds))
	copy(out, m.preds)
	return out
}

// Support returns how many accumulated records truly belong to class truth.
func (m *ConfusionMatrix) Support(truth int) int {
	sum := 0
	for p := 0; p < m.n; p++ {
		sum += m.At(p, truth)
	}
	return sum
}

// PredictedCount returns how many records were predicted as class predicted.
func (m *ConfusionMatrix) PredictedCount(predicted int) int {
	sum := 0
	for t := 0; t < m.n; t++ {
		sum += m.At(predicted, t)
	}
	return sum
}

// Correct returns the number of records on the diagonal.
func (m *ConfusionMatrix) Correct() int {
	sum := 0
	for c := 0; c < m.n; c++ {
		sum += m.At(c, c)
	}
	return sum
}
