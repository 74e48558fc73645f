package segopt

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
)

// retagStage is a test stage that retags every foreign word as a noun.
type retagStage struct{}

func (retagStage) Name() string { return "retag" }

func (retagStage) Optimize(tokens []token.Token) []token.Token {
	out := make([]token.Token, len(tokens))
	for i, t := range tokens {
		if t.Tag == postag.ForeignWord {
			t.Tag = postag.Noun
		}
		out[i] = t
	}
	return out
}

func addressTokens() []token.Token {
	return []token.Token{
		{Text: "john", Tag: postag.ForeignWord},
		{Text: "@", Tag: postag.Punctuation},
		{Text: "example.com", Tag: postag.ForeignWord},
	}
}

func TestNew(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}

	stages := p.Stages()
	if len(stages) != 1 || stages[0] != "email" {
		t.Errorf("Stages() = %v, want [email]", stages)
	}
}

func TestNew_NoStages(t *testing.T) {
	_, err := New(WithStages())
	if !errors.Is(err, ErrNoStages) {
		t.Errorf("expected ErrNoStages, got: %v", err)
	}
}

func TestNew_NilStage(t *testing.T) {
	_, err := New(WithStages(DefaultStages()[0], nil))
	if !errors.Is(err, ErrNilStage) {
		t.Errorf("expected ErrNilStage, got: %v", err)
	}
}

func TestPipeline_Optimize(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out, err := p.Optimize(context.Background(), addressTokens())
	if err != nil {
		t.Fatalf("Optimize() failed: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("expected 1 token, got %d: %v", len(out), out)
	}
	if out[0].Text != "john@example.com" || out[0].Tag != postag.Address {
		t.Errorf("got %v, want john@example.com/address", out[0])
	}
}

func TestPipeline_Optimize_Empty(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out, err := p.Optimize(context.Background(), []token.Token{})
	if err != nil {
		t.Fatalf("Optimize() failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %v", out)
	}
}

func TestPipeline_Optimize_EmptyText(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tokens := addressTokens()
	tokens[1].Text = ""

	_, err = p.Optimize(context.Background(), tokens)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got: %v", err)
	}
	if !errors.Is(err, token.ErrEmptyText) {
		t.Errorf("expected wrapped token.ErrEmptyText, got: %v", err)
	}
}

func TestPipeline_Optimize_StageOrder(t *testing.T) {
	// Retagging first hides the foreign words from the email stage.
	p, err := New(WithStages(retagStage{}, DefaultStages()[0]))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out, err := p.Optimize(context.Background(), addressTokens())
	if err != nil {
		t.Fatalf("Optimize() failed: %v", err)
	}
	if token.Count(out, postag.Address) != 0 {
		t.Errorf("expected no address tokens, got %v", out)
	}

	p, err = New(WithStages(DefaultStages()[0], retagStage{}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	out, err = p.Optimize(context.Background(), addressTokens())
	if err != nil {
		t.Fatalf("Optimize() failed: %v", err)
	}
	if token.Count(out, postag.Address) != 1 {
		t.Errorf("expected one address token, got %v", out)
	}
}

func TestPipeline_Optimize_ContextCanceled(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Optimize(ctx, addressTokens())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestPipeline_Optimize_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := New(WithLogger(logger))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := p.Optimize(context.Background(), addressTokens()); err != nil {
		t.Fatalf("Optimize() failed: %v", err)
	}

	logged := buf.String()
	for _, want := range []string{"stage=email", "tokens_in=3", "tokens_out=1"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log output missing %q:\n%s", want, logged)
		}
	}
}

func TestPipeline_OptimizeBatch(t *testing.T) {
	p, err := New(WithConcurrency(2))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	batch := make([][]token.Token, 10)
	for i := range batch {
		if i%2 == 0 {
			batch[i] = addressTokens()
		} else {
			batch[i] = []token.Token{{Text: "hello", Tag: postag.ForeignWord}}
		}
	}

	results, err := p.OptimizeBatch(context.Background(), batch)
	if err != nil {
		t.Fatalf("OptimizeBatch() failed: %v", err)
	}
	if len(results) != len(batch) {
		t.Fatalf("expected %d results, got %d", len(batch), len(results))
	}

	for i, out := range results {
		if token.Join(out) != token.Join(batch[i]) {
			t.Errorf("result %d: text %q, want %q", i, token.Join(out), token.Join(batch[i]))
		}
		wantAddr := 0
		if i%2 == 0 {
			wantAddr = 1
		}
		if got := token.Count(out, postag.Address); got != wantAddr {
			t.Errorf("result %d: %d address tokens, want %d", i, got, wantAddr)
		}
	}
}

func TestPipeline_OptimizeBatch_Error(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	batch := [][]token.Token{
		addressTokens(),
		{{Text: "", Tag: postag.Noun}},
	}

	_, err = p.OptimizeBatch(context.Background(), batch)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got: %v", err)
	}
	if !strings.Contains(err.Error(), "sequence 1") {
		t.Errorf("expected failing index in error, got: %v", err)
	}
}

func TestPipeline_OptimizeBatch_Empty(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	results, err := p.OptimizeBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("OptimizeBatch() failed: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestPipeline_ConcurrentOptimize(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	shared := addressTokens()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := p.Optimize(context.Background(), shared)
			if err != nil {
				errs <- err
				return
			}
			if len(out) != 1 {
				errs <- errors.New("unexpected token count")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Optimize: %v", err)
	}
}
