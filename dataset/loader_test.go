package dataset

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ngoc-Cac/Big-Data-G4/sentiment"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "test.csv", `text,label
"quán ngon lắm",positive
"bình thường",neutral
"tệ quá",negative
"đánh giá bằng số",2
`)
	records, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("loaded %d records, want 4", len(records))
	}
	want := []sentiment.Label{sentiment.Positive, sentiment.Neutral, sentiment.Negative, sentiment.Positive}
	for i, rec := range records {
		if rec.Label != want[i] {
			t.Errorf("record %d label = %v, want %v", i, rec.Label, want[i])
		}
	}
	if records[0].Text != "quán ngon lắm" {
		t.Errorf("record 0 text = %q", records[0].Text)
	}
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	path := writeFile(t, "test.csv", "quán ngon,positive\ntệ,negative\n")
	records, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("loaded %d records, want 2", len(records))
	}
}

func TestLoadCSVSkipsBlankRows(t *testing.T) {
	path := writeFile(t, "test.csv", "text,label\nquán ngon,positive\n,positive\nmissing label,\n")
	records, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records, want 1", len(records))
	}
}

func TestLoadCSVBadLabel(t *testing.T) {
	path := writeFile(t, "test.csv", "text,label\nquán ngon,amazing\n")
	if _, err := LoadCSV(path); err == nil {
		t.Fatal("unknown label should fail the load")
	}
}

func TestLoadCSVEmpty(t *testing.T) {
	path := writeFile(t, "test.csv", "text,label\n")
	if _, err := LoadCSV(path); err == nil {
		t.Fatal("empty dataset should fail")
	}
}

func TestLoadReviews(t *testing.T) {
	path := writeFile(t, "reviews.txt", "quán ngon\r\n\n  tệ quá  \n")
	reviews, err := LoadReviews(path)
	if err != nil {
		t.Fatalf("LoadReviews: %v", err)
	}
	if len(reviews) != 2 || reviews[0] != "quán ngon" || reviews[1] != "tệ quá" {
		t.Errorf("LoadReviews = %v", reviews)
	}
}

func TestSliceSourceBatching(t *testing.T) {
	records := []Record{
		{Text: "a", Label: sentiment.Negative},
		{Text: "b", Label: sentiment.Neutral},
		{Text: "c", Label: sentiment.Positive},
		{Text: "d", Label: sentiment.Negative},
		{Text: "e", Label: sentiment.Positive},
	}
	src := NewSliceSource(records, 2)
	ctx := context.Background()

	var sizes []int
	total := 0
	for {
		batch, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if len(batch.Texts) != len(batch.Labels) {
			t.Fatalf("batch texts/labels length mismatch: %d vs %d", len(batch.Texts), len(batch.Labels))
		}
		sizes = append(sizes, len(batch.Texts))
		total += len(batch.Texts)
	}
	if total != len(records) {
		t.Errorf("streamed %d records, want %d", total, len(records))
	}
	if len(sizes) != 3 || sizes[0] != 2 || sizes[1] != 2 || sizes[2] != 1 {
		t.Errorf("batch sizes = %v, want [2 2 1]", sizes)
	}

	src.Reset()
	batch, err := src.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Texts[0] != "a" {
		t.Errorf("after Reset first text = %q, want \"a\"", batch.Texts[0])
	}
}

func TestSliceSourceContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := NewSliceSource([]Record{{Text: "a"}}, 1)
	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Next = %v, want context.Canceled", err)
	}
}
