package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
)

// Batch is one unit of evaluation work: review texts paired with their
// ground-truth class indices.
type Batch struct {
	Texts  []string
	Labels []int
}

// Source streams batches to the runner. Next returns io.EOF once the data
// is exhausted.
type Source interface {
	Next(ctx context.Context) (Batch, error)
}

// Predictor maps a batch of raw texts to one class index per text. It is an
// external collaborator (encoder plus classifier head); the runner makes no
// assumption beyond equal output length.
type Predictor func(ctx context.Context, texts []string) ([]int, error)

// Runner evaluates a predictor over a batch source. Batches carry no
// ordering dependency and matrix accumulation is commutative, so workers
// process batches concurrently into private partial matrices that are merged
// once all workers finish.
type Runner struct {
	NumLabels int
	Workers   int // defaults to runtime.NumCPU()
	// RecordPreds keeps the full prediction sequence on the merged matrix.
	// The sequence follows source order only when Workers is 1.
	RecordPreds bool
}

// Run drains the source and returns the merged confusion matrix.
func (r Runner) Run(ctx context.Context, src Source, predict Predictor) (*ConfusionMatrix, error) {
	if src == nil {
		return nil, errors.New("source is required")
	}
	if predict == nil {
		return nil, errors.New("predictor is required")
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var opts []Option
	if r.RecordPreds {
		opts = append(opts, WithRecordPredictions())
	}

	batches := make(chan Batch, workers)
	partials := make([]*ConfusionMatrix, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		part, err := NewConfusionMatrix(r.NumLabels, opts...)
		if err != nil {
			return nil, err
		}
		partials[w] = part
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for batch := range batches {
				if errs[w] != nil {
					continue // drain remaining batches after a failure
				}
				errs[w] = r.evalBatch(ctx, batch, predict, partials[w])
			}
		}(w)
	}

	var feedErr error
feed:
	for {
		batch, err := src.Next(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				feedErr = fmt.Errorf("read batch: %w", err)
			}
			break
		}
		select {
		case batches <- batch:
		case <-ctx.Done():
			feedErr = ctx.Err()
			break feed
		}
	}
	close(batches)
	wg.Wait()

	if feedErr != nil {
		return nil, feedErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged, err := NewConfusionMatrix(r.NumLabels, opts...)
	if err != nil {
		return nil, err
	}
	for _, part := range partials {
		if err := merged.Merge(part); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (r Runner) evalBatch(ctx context.Context, batch Batch, predict Predictor, matrix *ConfusionMatrix) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	predicted, err := predict(ctx, batch.Texts)
	if err != nil {
		return fmt.Errorf("predict batch: %w", err)
	}
	if err := matrix.Accumulate(predicted, batch.Labels); err != nil {
		return err
	}
	return nil
}
