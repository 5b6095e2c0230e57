package sentiment

import (
	"fmt"
	"strconv"
	"strings"
)

// Label is a sentiment class with a fixed integer index.
type Label int

const (
	// Negative is class index 0.
	Negative Label = iota
	// Neutral is class index 1.
	Neutral
	// Positive is class index 2.
	Positive

	// NumLabels is the size of the label set.
	NumLabels = 3
)

var labelNames = [NumLabels]string{"negative", "neutral", "positive"}

// String returns the lowercase label name.
func (l Label) String() string {
	if l < 0 || int(l) >= NumLabels {
		return fmt.Sprintf("label(%d)", int(l))
	}
	return labelNames[l]
}

// Valid reports whether the label index is inside the class set.
func (l Label) Valid() bool {
	return l >= 0 && int(l) < NumLabels
}

// Labels returns all labels in index order.
func Labels() []Label {
	return []Label{Negative, Neutral, Positive}
}

// LabelNames returns the class names in index order.
func LabelNames() []string {
	out := make([]string, NumLabels)
	copy(out, labelNames[:])
	return out
}

// ParseLabel maps a class name or numeric index to a Label.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseLabel(s string) (Label, error) {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	for i, name := range labelNames {
		if cleaned == name {
			return Label(i), nil
		}
	}
	if n, err := strconv.Atoi(cleaned); err == nil {
		l := Label(n)
		if l.Valid() {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown sentiment label %q", s)
}
