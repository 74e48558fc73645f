// Package segopt runs post-tokenization optimizer stages over tagged token
// sequences produced by a word segmenter.
//
// The default pipeline has a single stage, email, which merges runs of tokens
// that spell an e-mail address into one token tagged postag.Address.
//
// # Quick Start
//
//	p, err := segopt.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := p.Optimize(ctx, []token.Token{
//	    {Text: "john", Tag: postag.ForeignWord},
//	    {Text: "@", Tag: postag.Punctuation},
//	    {Text: "example.com", Tag: postag.ForeignWord},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // [john@example.com/address]
//
// # Thread Safety
//
// Pipeline is safe for concurrent use. Stages never modify the slice they are
// given, so a sequence may be shared while it is being optimized.
// OptimizeBatch processes independent sequences in parallel, bounded by
// WithConcurrency.
package segopt
