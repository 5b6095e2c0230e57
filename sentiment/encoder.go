package sentiment

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Encoder maps raw review text to fixed-length embedding vectors.
type Encoder interface {
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
	ModelID() string
}

// EncoderConfig configures the ONNX runtime encoder and its cache.
type EncoderConfig struct {
	OrtLibrary    string `json:"ortLibrary"`
	ModelPath     string `json:"modelPath"`
	TokenizerPath string `json:"tokenizerPath"`
	MaxSeqLen     int    `json:"maxSeqLen"`
	CacheDir      string `json:"cacheDir"`
	ModelID       string `json:"modelId"`
}

// OrtEncoder runs a pretrained transformer encoder through onnxruntime and
// pools the first-token hidden state into the embedding. Embeddings are
// cached in memory and on disk keyed by model and text.
type OrtEncoder struct {
	session *ort.DynamicAdvancedSession
	tk      *tokenizer.Tokenizer
	cfg     EncoderConfig

	mu       sync.RWMutex
	memCache map[string][]float32
}

var ortInitOnce sync.Once

// NewOrtEncoder loads the tokenizer and ONNX session and prepares the cache
// directory.
func NewOrtEncoder(cfg EncoderConfig) (*OrtEncoder, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("encoder model path is required")
	}
	if cfg.ModelID == "" {
		cfg.ModelID = filepath.Base(cfg.ModelPath)
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 256
	}
	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", cfg.TokenizerPath, err)
	}
	tk.WithTruncation(&tokenizer.TruncationParams{MaxLength: cfg.MaxSeqLen})

	var initErr error
	ortInitOnce.Do(func() {
		if cfg.OrtLibrary != "" {
			ort.SetSharedLibraryPath(cfg.OrtLibrary)
		}
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("initialize onnxruntime: %w", initErr)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"last_hidden_state"},
		nil)
	if err != nil {
		return nil, fmt.Errorf("open onnx session %s: %w", cfg.ModelPath, err)
	}

	return &OrtEncoder{
		session:  session,
		tk:       tk,
		cfg:      cfg,
		memCache: make(map[string][]float32),
	}, nil
}

// Close releases the ONNX session.
func (e *OrtEncoder) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		err := e.session.Destroy()
		e.session = nil
		if err != nil {
			return err
		}
	}
	e.memCache = nil
	return nil
}

// ModelID returns the identifier used for cache keys.
func (e *OrtEncoder) ModelID() string { return e.cfg.ModelID }

// EncodeBatch embeds each text, consulting the caches first.
func (e *OrtEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := e.encode(text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *OrtEncoder) encode(text string) ([]float32, error) {
	key := e.cacheKey(text)
	if vec := e.getFromCache(key); vec != nil {
		return vec, nil
	}
	if vec, err := e.loadFromDisk(key); err == nil {
		e.storeInMemory(key, vec)
		return cloneVector(vec), nil
	}
	vec, err := e.runModel(text)
	if err != nil {
		return nil, err
	}
	e.storeInMemory(key, vec)
	_ = e.saveToDisk(key, vec)
	return cloneVector(vec), nil
}

// runModel tokenizes one text and runs the encoder, returning the hidden
// state of the first token. The read lock is held across the session run so
// Close waits for in-flight encodes.
func (e *OrtEncoder) runModel(text string) ([]float32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.session == nil {
		return nil, errors.New("encoder is closed")
	}
	encoding, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	seqLen := len(encoding.Ids)
	if seqLen == 0 {
		return nil, errors.New("tokenizer produced no tokens")
	}
	ids := make([]int64, seqLen)
	mask := make([]int64, seqLen)
	for i, id := range encoding.Ids {
		ids[i] = int64(id)
		mask[i] = int64(encoding.AttentionMask[i])
	}

	shape := ort.NewShape(1, int64(seqLen))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("create input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("create attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor}, outputs); err != nil {
		return nil, fmt.Errorf("run encoder: %w", err)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer hidden.Destroy()

	dims := hidden.GetShape()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected hidden state rank %d", len(dims))
	}
	hiddenSize := int(dims[2])
	data := hidden.GetData()
	if len(data) < hiddenSize {
		return nil, errors.New("hidden state shorter than one token")
	}
	// First-token (CLS) pooling.
	return cloneVector(data[:hiddenSize]), nil
}

func (e *OrtEncoder) cacheKey(text string) string {
	h := sha1.New()
	_, _ = io.WriteString(h, e.cfg.ModelID)
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, text)
	return hex.EncodeToString(h.Sum(nil))
}

func (e *OrtEncoder) getFromCache(key string) []float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if vec, ok := e.memCache[key]; ok {
		return cloneVector(vec)
	}
	return nil
}

func (e *OrtEncoder) storeInMemory(key string, vec []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.memCache != nil {
		e.memCache[key] = cloneVector(vec)
	}
}

func (e *OrtEncoder) loadFromDisk(key string) ([]float32, error) {
	if e.cfg.CacheDir == "" {
		return nil, os.ErrNotExist
	}
	path := filepath.Join(e.cfg.CacheDir, key+".bin")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("cache file too small: %s", path)
	}
	length := int(binary.LittleEndian.Uint32(data[:4]))
	data = data[4:]
	if len(data) != length*4 {
		return nil, fmt.Errorf("cache length mismatch: %s", path)
	}
	vec := make([]float32, length)
	for i := 0; i < length; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4 : (i+1)*4]))
	}
	return vec, nil
}

func (e *OrtEncoder) saveToDisk(key string, vec []float32) error {
	if e.cfg.CacheDir == "" {
		return nil
	}
	path := filepath.Join(e.cfg.CacheDir, key+".bin")
	tmp := path + ".tmp"
	buf := make([]byte, 4+len(vec)*4)
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(vec)))
	off := 4
	for _, v := range vec {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func cloneVector(vec []float32) []float32 {
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
