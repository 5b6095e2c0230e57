package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Service orchestrates normalization, encoding and classification.
type Service struct {
	encoder    Encoder
	normalizer *Normalizer

	mu          sync.RWMutex
	classifiers map[string]Classifier

	logger *log.Logger
}

// NewService constructs a service with the given encoder and normalizer.
func NewService(encoder Encoder, normalizer *Normalizer, logger *log.Logger) (*Service, error) {
	if encoder == nil {
		return nil, errors.New("encoder is required")
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil, nil)
	}
	return &Service{
		encoder:     encoder,
		normalizer:  normalizer,
		classifiers: make(map[string]Classifier),
		logger:      logger,
	}, nil
}

// Close releases encoder resources.
func (s *Service) Close() error {
	if s.encoder != nil {
		return s.encoder.Close()
	}
	return nil
}

// RegisterClassifier adds a named classifier head. Heads must score over the
// full sentiment label set.
func (s *Service) RegisterClassifier(name string, c Classifier) error {
	if name == "" {
		return errors.New("classifier name is required")
	}
	if c == nil {
		return errors.New("classifier is required")
	}
	if c.NumClasses() != NumLabels {
		return fmt.Errorf("classifier %q scores %d classes, want %d", name, c.NumClasses(), NumLabels)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classifiers[name]; ok {
		return fmt.Errorf("classifier %q already registered", name)
	}
	s.classifiers[name] = c
	s.logf("registered classifier %q", name)
	return nil
}

// ClassifierNames returns the registered classifier names in sorted order.
func (s *Service) ClassifierNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.classifiers))
	for name := range s.classifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) classifier(name string) (Classifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classifiers[name]
	if !ok {
		return nil, fmt.Errorf("unknown classifier %q", name)
	}
	return c, nil
}

// PredictBatch cleans and normalizes the texts, embeds them, and runs the
// named classifier head over each embedding. It returns one class index per
// input text.
func (s *Service) PredictBatch(ctx context.Context, name string, texts []string) ([]int, error) {
	c, err := s.classifier(name)
	if err != nil {
		return nil, err
	}
	prepared := make([]string, len(texts))
	for i, text := range texts {
		normed, err := s.normalizer.Normalize(CleanText(text))
		if err != nil {
			return nil, fmt.Errorf("normalize text %d: %w", i, err)
		}
		prepared[i] = normed
	}
	vecs, err := s.encoder.EncodeBatch(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("encode texts: %w", err)
	}
	out := make([]int, len(vecs))
	for i, vec := range vecs {
		label, err := c.PredictVector(vec)
		if err != nil {
			return nil, fmt.Errorf("classify text %d: %w", i, err)
		}
		out[i] = label
	}
	return out, nil
}

// PredictAll runs every registered classifier head over the texts and
// returns one prediction slice per head, keyed by classifier name. The
// encoder cache makes the repeated embedding lookups cheap.
func (s *Service) PredictAll(ctx context.Context, texts []string) (map[string][]int, error) {
	names := s.ClassifierNames()
	if len(names) == 0 {
		return nil, errors.New("no classifiers registered")
	}
	out := make(map[string][]int, len(names))
	for _, name := range names {
		labels, err := s.PredictBatch(ctx, name, texts)
		if err != nil {
			return nil, fmt.Errorf("predict with %s: %w", name, err)
		}
		out[name] = labels
	}
	return out, nil
}

// Predictor returns an eval-compatible prediction function bound to the
// named classifier head.
func (s *Service) Predictor(name string) (func(ctx context.Context, texts []string) ([]int, error), error) {
	if _, err := s.classifier(name); err != nil {
		return nil, err
	}
	return func(ctx context.Context, texts []string) ([]int, error) {
		return s.PredictBatch(ctx, name, texts)
	}, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
