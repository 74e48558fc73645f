package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-segopt/internal/bench"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		corpus    string
		tolerance int
		wp, wr    float64
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Evaluate address recognition against an annotated corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("corpus") {
				a.cfg.Corpus = corpus
			}
			if cmd.Flags().Changed("tolerance") {
				a.cfg.Tolerance = tolerance
			}

			cases, err := bench.LoadCorpus(a.cfg.Corpus)
			if err != nil {
				return fmt.Errorf("loading corpus: %w", err)
			}

			cfg := bench.Config{
				Tolerance:       a.cfg.Tolerance,
				PrecisionWeight: wp,
				RecallWeight:    wr,
			}
			report, err := bench.Run(cmd.Context(), a.pipeline, cases, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d cases from %s\n\n", len(cases), a.cfg.Corpus)
			fmt.Fprintf(out, "%-20s %-6s %-6s %-6s %-8s %-8s %-8s\n", "Case", "TP", "FP", "FN", "Prec", "Rec", "F1")
			fmt.Fprintln(out, strings.Repeat("-", 68))
			for _, c := range report.Cases {
				m := c.Metrics
				fmt.Fprintf(out, "%-20s %-6d %-6d %-6d %-8.2f %-8.2f %-8.2f\n",
					c.ID, m.TruePositives, m.FalsePositives, m.FalseNegatives, m.Precision, m.Recall, m.F1)
				if verbose {
					for _, miss := range c.Misses {
						fmt.Fprintf(out, "    missed: %s\n", miss)
					}
					for _, extra := range c.Extras {
						fmt.Fprintf(out, "    extra:  %s\n", extra)
					}
				}
			}
			fmt.Fprintln(out, strings.Repeat("-", 68))

			m := report.Overall
			fmt.Fprintf(out, "Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
				m.Precision, m.Recall, m.F1, m.WeightedScore)
			fmt.Fprintf(out, "(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpus, "corpus", "testdata/corpus", "Directory containing annotated corpus files")
	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "Byte tolerance for span matching")
	cmd.Flags().Float64Var(&wp, "wp", 1.0, "Precision weight")
	cmd.Flags().Float64Var(&wr, "wr", 1.0, "Recall weight")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List missed and extra addresses")
	return cmd
}
