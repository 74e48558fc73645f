package segopt

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-segopt/email"
	"github.com/jamesainslie/go-segopt/token"
)

// Optimizer is one post-tokenization stage.
//
// Optimize must preserve the concatenated text of the sequence and must not
// modify the slice it is given; it may return that slice unchanged.
type Optimizer interface {
	Name() string
	Optimize(tokens []token.Token) []token.Token
}

// DefaultStages returns the stages a Pipeline runs when WithStages is not
// given.
func DefaultStages() []Optimizer {
	return []Optimizer{email.New()}
}

// Pipeline runs optimizer stages over token sequences.
// It is safe for concurrent use.
type Pipeline struct {
	stages      []Optimizer
	concurrency int
	logger      *slog.Logger
}

// New creates a Pipeline.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(cfg.stages) == 0 {
		return nil, ErrNoStages
	}
	for i, s := range cfg.stages {
		if s == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilStage, i)
		}
	}

	return &Pipeline{
		stages:      append([]Optimizer(nil), cfg.stages...),
		concurrency: cfg.concurrency,
		logger:      cfg.logger,
	}, nil
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Optimize runs every stage over tokens in order and returns the result.
// Sequences holding a token with empty text are rejected before any stage
// runs.
func (p *Pipeline) Optimize(ctx context.Context, tokens []token.Token) ([]token.Token, error) {
	if err := token.Validate(tokens); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(tokens) == 0 {
		return tokens, nil
	}

	for _, stage := range p.stages {
		// Check context between stages; a single stage is not interruptible.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := len(tokens)
		tokens = stage.Optimize(tokens)
		if p.logger.Enabled(ctx, slog.LevelDebug) {
			p.logger.DebugContext(ctx, "optimizer stage finished",
				slog.String("stage", stage.Name()),
				slog.Int("tokens_in", before),
				slog.Int("tokens_out", len(tokens)),
			)
		}
	}

	return tokens, nil
}

// OptimizeBatch optimizes independent sequences concurrently. Results are in
// the same order as batch. The first error cancels the remaining work.
func (p *Pipeline) OptimizeBatch(ctx context.Context, batch [][]token.Token) ([][]token.Token, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	results := make([][]token.Token, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, tokens := range batch {
		g.Go(func() error {
			out, err := p.Optimize(gctx, tokens)
			if err != nil {
				return fmt.Errorf("sequence %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "batch optimized",
		slog.Int("sequences", len(batch)),
		slog.Int("concurrency", p.concurrency),
	)
	return results, nil
}
