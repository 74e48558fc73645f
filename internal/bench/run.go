package bench

import (
	"context"
	"fmt"
	"sort"

	segopt "github.com/jamesainslie/go-segopt"
	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
	"github.com/jamesainslie/go-segopt/tokenizer"
)

// CaseResult holds metrics for one corpus case.
type CaseResult struct {
	ID      string
	Metrics Metrics
	Misses  []string // expected addresses that were not recognized
	Extras  []string // recognized addresses that were not expected
}

// Report aggregates a corpus run.
type Report struct {
	Cases   []CaseResult
	Overall Metrics
}

// AddressSpans returns the byte spans of Address tokens within the text the
// tokens were lexed from.
func AddressSpans(tokens []token.Token) []Span {
	var spans []Span
	offset := 0
	for _, t := range tokens {
		if t.Tag == postag.Address {
			spans = append(spans, Span{Start: offset, End: offset + len(t.Text)})
		}
		offset += len(t.Text)
	}
	return spans
}

// EvaluateCase lexes and optimizes every line of c and scores the recognized
// addresses.
func EvaluateCase(ctx context.Context, p *segopt.Pipeline, c *Case, cfg Config) (CaseResult, error) {
	batch := make([][]token.Token, len(c.Lines))
	for i, line := range c.Lines {
		batch[i] = tokenizer.Tokenize(line.Text)
	}

	optimized, err := p.OptimizeBatch(ctx, batch)
	if err != nil {
		return CaseResult{}, fmt.Errorf("case %s: %w", c.ID, err)
	}

	res := CaseResult{ID: c.ID}
	for i, line := range c.Lines {
		predicted := AddressSpans(optimized[i])
		res.Metrics.Add(Evaluate(predicted, line.Expected, cfg))
		res.Misses = append(res.Misses, unmatched(line.Text, line.Expected, predicted, cfg)...)
		res.Extras = append(res.Extras, unmatched(line.Text, predicted, line.Expected, cfg)...)
	}
	res.Metrics.Score(cfg)
	return res, nil
}

// Run evaluates every case and returns per-case results sorted by weighted
// score ascending, so the weakest cases come first.
func Run(ctx context.Context, p *segopt.Pipeline, cases []*Case, cfg Config) (Report, error) {
	var report Report
	for _, c := range cases {
		res, err := EvaluateCase(ctx, p, c, cfg)
		if err != nil {
			return Report{}, err
		}
		report.Overall.Add(res.Metrics)
		report.Cases = append(report.Cases, res)
	}
	report.Overall.Score(cfg)

	sort.SliceStable(report.Cases, func(i, j int) bool {
		return report.Cases[i].Metrics.WeightedScore < report.Cases[j].Metrics.WeightedScore
	})
	return report, nil
}

// unmatched returns the text of spans in want that no span in have matches.
func unmatched(text string, want, have []Span, cfg Config) []string {
	var out []string
	for _, w := range want {
		found := false
		for _, h := range have {
			if abs(h.Start-w.Start) <= cfg.Tolerance && abs(h.End-w.End) <= cfg.Tolerance {
				found = true
				break
			}
		}
		if !found {
			out = append(out, text[w.Start:w.End])
		}
	}
	return out
}
