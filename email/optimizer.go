// Package email merges runs of tokens that together spell an e-mail address
// into a single Address token.
//
// The upstream segmenter knows nothing about address grammar, so an address
// such as "john.doe@example.com" arrives as several tokens. Optimizer scans
// the sequence once and collapses each run that opens on an ASCII word,
// contains an '@', and continues with address body characters.
//
// # Thread Safety
//
// Optimizer holds no state and is safe for concurrent use. The input slice is
// never modified, so callers may share it between goroutines.
package email

import (
	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
)

// Optimizer is the address merging stage.
type Optimizer struct{}

// New returns an address merging stage.
func New() Optimizer {
	return Optimizer{}
}

// Name identifies the stage in logs.
func (Optimizer) Name() string { return "email" }

// Optimize returns tokens with every recognized address run replaced by one
// Address token whose text is the run's concatenated text. Tokens outside
// merged runs are returned unchanged and in order. When nothing merges the
// input slice itself is returned.
func (Optimizer) Optimize(tokens []token.Token) []token.Token {
	// The final token is only examined by the boundary check, and that check
	// needs an open candidate, so fewer than three tokens can never merge.
	if len(tokens) < 3 {
		return tokens
	}

	var (
		out     []token.Token // nil until the first merge
		flushed int           // tokens[:flushed] are accounted for in out
		start   int           // first token of the open candidate
		state   = Seeking
		last    = len(tokens) - 1
	)

	merge := func(end int) {
		if out == nil {
			out = make([]token.Token, 0, len(tokens)-(end-start)+1)
		}
		out = append(out, tokens[flushed:start]...)
		out = append(out, token.Token{
			Text: token.Join(tokens[start:end]),
			Tag:  postag.Address,
		})
		flushed = end
	}

	for pos := 0; pos < last; {
		var prev token.Token
		if pos > 0 {
			prev = tokens[pos-1]
		}

		action, next := Transition(state, prev, tokens[pos])
		state = next

		switch action {
		case Open:
			start = pos
		case Terminate:
			merge(pos)
			// Rescan the terminating token with no candidate open.
			continue
		}
		pos++
	}

	// The end of input terminates a candidate once its '@' has been seen,
	// provided the final token itself qualifies.
	if state == AtSeen && IsBoundaryAtom(tokens[last]) {
		merge(len(tokens))
	}

	if out == nil {
		return tokens
	}
	return append(out, tokens[flushed:]...)
}
