package segopt

import (
	"log/slog"
	"runtime"
)

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	stages      []Optimizer
	concurrency int
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		stages:      DefaultStages(),
		concurrency: runtime.NumCPU(),
		logger:      slog.Default(),
	}
}

// WithStages replaces the default stages. Stages run in the order given.
func WithStages(stages ...Optimizer) Option {
	return func(c *config) {
		c.stages = stages
	}
}

// WithConcurrency bounds how many sequences OptimizeBatch processes at once
// (default: runtime.NumCPU()).
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
