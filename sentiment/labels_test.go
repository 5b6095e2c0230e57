package sentiment

import "testing"

func TestLabelIndexMapping(t *testing.T) {
	if Negative != 0 || Neutral != 1 || Positive != 2 {
		t.Fatalf("label indices moved: negative=%d neutral=%d positive=%d", Negative, Neutral, Positive)
	}
	if NumLabels != 3 {
		t.Fatalf("NumLabels = %d, want 3", NumLabels)
	}
}

func TestParseLabel(t *testing.T) {
	cases := []struct {
		in      string
		want    Label
		wantErr bool
	}{
		{"negative", Negative, false},
		{"Neutral", Neutral, false},
		{"POSITIVE", Positive, false},
		{"  positive ", Positive, false},
		{"0", Negative, false},
		{"2", Positive, false},
		{"3", 0, true},
		{"-1", 0, true},
		{"happy", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseLabel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseLabel(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLabel(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLabel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLabelRoundTrip(t *testing.T) {
	for _, l := range Labels() {
		parsed, err := ParseLabel(l.String())
		if err != nil {
			t.Errorf("ParseLabel(%v.String()): %v", l, err)
			continue
		}
		if parsed != l {
			t.Errorf("round trip %v -> %v", l, parsed)
		}
	}
}

func TestLabelValid(t *testing.T) {
	if !Positive.Valid() {
		t.Error("Positive should be valid")
	}
	if Label(3).Valid() || Label(-1).Valid() {
		t.Error("out-of-range labels should be invalid")
	}
}
