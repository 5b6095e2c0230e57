package dataset

import (
	"context"
	"io"
	"sync"

	"github.com/Ngoc-Cac/Big-Data-G4/eval"
)

// SliceSource streams fixed-size batches drawn from an in-memory record
// slice. It is safe for concurrent Next calls.
type SliceSource struct {
	mu        sync.Mutex
	records   []Record
	batchSize int
	offset    int
}

// NewSliceSource wraps records in a batching source.
func NewSliceSource(records []Record, batchSize int) *SliceSource {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &SliceSource{records: records, batchSize: batchSize}
}

// Next returns the next batch, or io.EOF once all records are consumed.
func (s *SliceSource) Next(ctx context.Context) (eval.Batch, error) {
	if err := ctx.Err(); err != nil {
		return eval.Batch{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offset >= len(s.records) {
		return eval.Batch{}, io.EOF
	}
	end := s.offset + s.batchSize
	if end > len(s.records) {
		end = len(s.records)
	}
	chunk := s.records[s.offset:end]
	s.offset = end

	batch := eval.Batch{
		Texts:  make([]string, len(chunk)),
		Labels: make([]int, len(chunk)),
	}
	for i, rec := range chunk {
		batch.Texts[i] = rec.Text
		batch.Labels[i] = int(rec.Label)
	}
	return batch, nil
}

// Reset rewinds the source so the records can be streamed again.
func (s *SliceSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = 0
}
