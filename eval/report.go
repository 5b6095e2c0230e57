package eval

import (
	"fmt"
	"strings"
)

// ClassMetrics holds precision/recall/F1 for a single class.
type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report summarises a finished evaluation run.
type Report struct {
	Classes     []ClassMetrics `json:"classes"`
	Accuracy    float64        `json:"accuracy"`
	MacroAvg    ClassMetrics   `json:"macroAvg"`
	WeightedAvg ClassMetrics   `json:"weightedAvg"`
	Total       int            `json:"total"`
}

// NewReport computes per-class precision, recall and F1 from the matrix
// plus accuracy and macro/support-weighted averages. classNames maps class
// indices to display names; indices beyond the slice fall back to the
// numeric form.
func NewReport(m *ConfusionMatrix, classNames []string) Report {
	n := m.NumLabels()
	rep := Report{
		Classes: make([]ClassMetrics, n),
		Total:   m.Total(),
	}
	for c := 0; c < n; c++ {
		tp := m.At(c, c)
		predicted := m.PredictedCount(c)
		support := m.Support(c)
		cm := ClassMetrics{
			Label:     className(classNames, c),
			Precision: ratio(tp, predicted),
			Recall:    ratio(tp, support),
			Support:   support,
		}
		cm.F1 = f1(cm.Precision, cm.Recall)
		rep.Classes[c] = cm
	}
	if rep.Total > 0 {
		rep.Accuracy = float64(m.Correct()) / float64(rep.Total)
	}
	rep.MacroAvg = ClassMetrics{Label: "macro avg", Support: rep.Total}
	rep.WeightedAvg = ClassMetrics{Label: "weighted avg", Support: rep.Total}
	for _, cm := range rep.Classes {
		rep.MacroAvg.Precision += cm.Precision / float64(n)
		rep.MacroAvg.Recall += cm.Recall / float64(n)
		rep.MacroAvg.F1 += cm.F1 / float64(n)
		if rep.Total > 0 {
			w := float64(cm.Support) / float64(rep.Total)
			rep.WeightedAvg.Precision += cm.Precision * w
			rep.WeightedAvg.Recall += cm.Recall * w
			rep.WeightedAvg.F1 += cm.F1 * w
		}
	}
	return rep
}

// String renders the report as an aligned text table.
func (r Report) String() string {
	var b strings.Builder
	width := 12
	for _, cm := range r.Classes {
		if len(cm.Label) > width {
			width = len(cm.Label)
		}
	}
	fmt.Fprintf(&b, "%*s  %9s  %9s  %9s  %9s\n", width, "", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")
	for _, cm := range r.Classes {
		fmt.Fprintf(&b, "%*s  %9.4f  %9.4f  %9.4f  %9d\n", width, cm.Label, cm.Precision, cm.Recall, cm.F1, cm.Support)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s  %9s  %9s  %9.4f  %9d\n", width, "accuracy", "", "", r.Accuracy, r.Total)
	for _, avg := range []ClassMetrics{r.MacroAvg, r.WeightedAvg} {
		fmt.Fprintf(&b, "%*s  %9.4f  %9.4f  %9.4f  %9d\n", width, avg.Label, avg.Precision, avg.Recall, avg.F1, avg.Support)
	}
	return b.String()
}

func className(names []string, c int) string {
	if c >= 0 && c < len(names) {
		return names[c]
	}
	return fmt.Sprintf("%d", c)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
