// Package dataset loads labelled review test sets and scraped review files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ngoc-Cac/Big-Data-G4/sentiment"
)

// Record is one labelled review.
type Record struct {
	Text  string
	Label sentiment.Label
}

// LoadCSV reads text,label pairs from a CSV file. The first row may be a
// header containing "text" and "label". Rows with missing fields or blank
// values are skipped.
func LoadCSV(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var records []Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset line %d: %w", row+1, err)
		}
		row++
		if len(fields) < 2 {
			continue
		}
		if row == 1 && looksLikeHeader(fields) {
			continue
		}
		text := strings.TrimSpace(fields[0])
		rawLabel := strings.TrimSpace(fields[1])
		if text == "" || rawLabel == "" {
			continue
		}
		label, err := sentiment.ParseLabel(rawLabel)
		if err != nil {
			return nil, fmt.Errorf("dataset line %d: %w", row, err)
		}
		records = append(records, Record{Text: text, Label: label})
	}
	if len(records) == 0 {
		return nil, errors.New("dataset is empty")
	}
	return records, nil
}

// LoadReviews reads one raw review per line from a plain text file, skipping
// blank lines.
func LoadReviews(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open reviews file: %w", err)
	}
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("reviews file is empty")
	}
	return out, nil
}

func looksLikeHeader(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	left := strings.ToLower(strings.TrimSpace(fields[0]))
	right := strings.ToLower(strings.TrimSpace(fields[1]))
	return strings.Contains(left, "text") && strings.Contains(right, "label")
}
