package sentiment

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadAbbreviationsSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"tks\tcảm ơn",
		"this line has no tab",
		"ko\tkhông",
	}, "\n")
	dict, err := ReadAbbreviations(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ReadAbbreviations: %v", err)
	}
	if dict.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", dict.Len())
	}
	if full, ok := dict.Lookup("tks"); !ok || full != "cảm ơn" {
		t.Errorf("Lookup(tks) = %q, %v", full, ok)
	}
	if full, ok := dict.Lookup("ko"); !ok || full != "không" {
		t.Errorf("Lookup(ko) = %q, %v", full, ok)
	}
}

func TestReadAbbreviations(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		entries int
	}{
		{"empty input", "", 0},
		{"blank lines skipped", "\n\ntks\tcảm ơn\n\n", 1},
		{"extra tab is malformed", "a\tб\tc\n", 0},
		{"empty short form skipped", "\tfull\n", 0},
		{"empty expansion skipped", "short\t\n", 0},
		{"short form lowercased", "BT\tbình thường\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dict, err := ReadAbbreviations(strings.NewReader(tc.input), nil)
			if err != nil {
				t.Fatalf("ReadAbbreviations: %v", err)
			}
			if dict.Len() != tc.entries {
				t.Errorf("Len() = %d, want %d", dict.Len(), tc.entries)
			}
		})
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	dict, err := ReadAbbreviations(strings.NewReader("bt\tbình thường\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, form := range []string{"bt", "BT", "Bt"} {
		if _, ok := dict.Lookup(form); !ok {
			t.Errorf("Lookup(%q) missed", form)
		}
	}
}

func TestLoadAbbreviationsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abbrev.tsv")
	content := "tks\tcảm ơn\nmalformed line\nko\tkhông\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	var logged strings.Builder
	logger := log.New(&logged, "", 0)
	dict, err := LoadAbbreviations(path, logger)
	if err != nil {
		t.Fatalf("LoadAbbreviations: %v", err)
	}
	if dict.Len() != 2 {
		t.Errorf("Len() = %d, want 2", dict.Len())
	}
	if !strings.Contains(logged.String(), "malformed") {
		t.Errorf("expected a malformed-line warning, got %q", logged.String())
	}
}

func TestLoadAbbreviationsMissingFile(t *testing.T) {
	if _, err := LoadAbbreviations(filepath.Join(t.TempDir(), "missing.tsv"), nil); err == nil {
		t.Fatal("loading a missing file should fail")
	}
}
