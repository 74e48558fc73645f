package bench

// Config holds evaluation parameters.
type Config struct {
	Tolerance       int // byte tolerance on each span edge
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:       0,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Add accumulates counts from o. Derived scores are not updated; call Score.
func (m *Metrics) Add(o Metrics) {
	m.TruePositives += o.TruePositives
	m.FalsePositives += o.FalsePositives
	m.FalseNegatives += o.FalseNegatives
}

// Score computes precision, recall, F1 and the weighted score from the
// counts.
func (m *Metrics) Score(cfg Config) {
	tp, fp, fn := m.TruePositives, m.FalsePositives, m.FalseNegatives

	m.Precision, m.Recall, m.F1, m.WeightedScore = 0, 0, 0, 0
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
}

// Evaluate compares predicted spans against ground truth.
// Uses greedy left-to-right matching; both edges must be within tolerance.
func Evaluate(predicted, truth []Span, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			if abs(p.Start-t.Start) <= cfg.Tolerance && abs(p.End-t.End) <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	m := Metrics{
		TruePositives:  tp,
		FalsePositives: len(predicted) - tp,
		FalseNegatives: len(truth) - tp,
	}
	m.Score(cfg)
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
