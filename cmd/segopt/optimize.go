package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-segopt/token"
	"github.com/jamesainslie/go-segopt/tokenio"
	"github.com/jamesainslie/go-segopt/tokenizer"
)

func newOptimizeCmd(a *app) *cobra.Command {
	var inputFormat, outputFormat string

	cmd := &cobra.Command{
		Use:   "optimize [TEXT...]",
		Short: "Optimize text given as arguments or token sequences read from stdin",
		Example: `  segopt optimize "请联系 john.doe@example.com 获取详情"
  segopt optimize --input-format jsonl --output-format jsonl < tokens.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("input-format") {
				a.cfg.InputFormat = inputFormat
			}
			if cmd.Flags().Changed("output-format") {
				a.cfg.OutputFormat = outputFormat
			}

			outFormat, err := tokenio.ParseFormat(a.cfg.OutputFormat)
			if err != nil {
				return err
			}

			var batch [][]token.Token
			if len(args) > 0 {
				batch = [][]token.Token{tokenizer.Tokenize(strings.Join(args, " "))}
			} else {
				inFormat, err := tokenio.ParseFormat(a.cfg.InputFormat)
				if err != nil {
					return err
				}
				r, err := tokenio.NewReader(inFormat, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if batch, err = tokenio.ReadAll(r); err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
			}

			results, err := a.pipeline.OptimizeBatch(cmd.Context(), batch)
			if err != nil {
				return err
			}

			w, err := tokenio.NewWriter(outFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, tokens := range results {
				if err := w.Write(tokens); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "text", "Stdin format: text, jsonl or proto")
	cmd.Flags().StringVar(&outputFormat, "output-format", "text", "Output format: text, jsonl or proto")
	return cmd
}
