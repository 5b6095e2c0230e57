package sentiment

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits review text into word tokens. Implementations wrap an
// external word-segmentation tool; WhitespaceTokenizer is the fallback used
// when no segmenter is configured.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// WhitespaceTokenizer splits on Unicode whitespace.
type WhitespaceTokenizer struct{}

// Tokenize implements Tokenizer.
func (WhitespaceTokenizer) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

// CleanText performs NFC normalization, strips control characters and
// collapses runs of whitespace, then lowercases the result. Vietnamese
// diacritics must stay composed, so this uses NFC rather than NFKC.
func CleanText(text string) string {
	normed := norm.NFC.String(text)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, normed)
	normed = strings.Join(strings.Fields(normed), " ")
	return strings.ToLower(normed)
}

// Normalizer expands informal abbreviations in tokenized review text.
// The dictionary is read-only after construction, so a single Normalizer
// may be shared across goroutines.
type Normalizer struct {
	tokenizer Tokenizer
	dict      AbbreviationDict
}

// NewNormalizer builds a Normalizer. A nil tokenizer falls back to
// whitespace splitting.
func NewNormalizer(tokenizer Tokenizer, dict AbbreviationDict) *Normalizer {
	if tokenizer == nil {
		tokenizer = WhitespaceTokenizer{}
	}
	return &Normalizer{tokenizer: tokenizer, dict: dict}
}

// Normalize tokenizes text and substitutes each token whose lowercase form
// is a known abbreviation with its full-form expansion. Substitution is a
// single pass: expansions are emitted verbatim and never re-examined.
// Tokens are rejoined with single spaces; empty input yields empty output.
func (n *Normalizer) Normalize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	tokens, err := n.tokenizer.Tokenize(text)
	if err != nil {
		return "", err
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if full, ok := n.dict.Lookup(tok); ok {
			out = append(out, full)
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " "), nil
}

// NormalizeAll normalizes a slice of texts.
func (n *Normalizer) NormalizeAll(texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, t := range texts {
		normed, err := n.Normalize(t)
		if err != nil {
			return nil, err
		}
		out[i] = normed
	}
	return out, nil
}
