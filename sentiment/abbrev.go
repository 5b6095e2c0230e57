package sentiment

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// AbbreviationDict maps lowercase short-form tokens to their full-form
// expansion. It is write-once during load and read-only afterwards.
type AbbreviationDict map[string]string

// Lookup returns the expansion for the token's lowercase form.
func (d AbbreviationDict) Lookup(token string) (string, bool) {
	full, ok := d[strings.ToLower(token)]
	return full, ok
}

// Len returns the number of entries.
func (d AbbreviationDict) Len() int { return len(d) }

// LoadAbbreviations reads a tab-separated abbreviation file. Each line holds
// exactly two fields: short form and expansion. Lines that do not split into
// two fields are skipped with a warning rather than failing the load.
func LoadAbbreviations(path string, logger *log.Logger) (AbbreviationDict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open abbreviation file: %w", err)
	}
	defer f.Close()
	dict, err := ReadAbbreviations(f, logger)
	if err != nil {
		return nil, fmt.Errorf("read abbreviation file %s: %w", path, err)
	}
	return dict, nil
}

// ReadAbbreviations parses tab-separated short-form/full-form pairs from r.
func ReadAbbreviations(r io.Reader, logger *log.Logger) (AbbreviationDict, error) {
	dict := make(AbbreviationDict)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	skipped := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		fields := strings.Split(raw, "\t")
		if len(fields) != 2 {
			skipped++
			if logger != nil {
				logger.Printf("abbreviations: skipping malformed line %d (%d fields)", line, len(fields))
			}
			continue
		}
		short := strings.ToLower(strings.TrimSpace(fields[0]))
		full := strings.TrimSpace(fields[1])
		if short == "" || full == "" {
			skipped++
			if logger != nil {
				logger.Printf("abbreviations: skipping empty pair at line %d", line)
			}
			continue
		}
		dict[short] = full
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 && logger != nil {
		logger.Printf("abbreviations: loaded %d entries, skipped %d malformed lines", len(dict), skipped)
	}
	return dict, nil
}
