// Package token defines the tagged token exchanged between segmentation
// stages.
package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamesainslie/go-segopt/postag"
)

// ErrEmptyText indicates a token with no text reached an optimizer stage.
var ErrEmptyText = errors.New("token: empty text")

// Token is one lexical unit: its literal text and its tag.
type Token struct {
	Text string     `json:"w" yaml:"w"`
	Tag  postag.Tag `json:"p" yaml:"p"`
}

// String returns text/tag, the form used in debug output.
func (t Token) String() string {
	return t.Text + "/" + t.Tag.String()
}

// Validate returns an error for the first token with empty text.
func Validate(tokens []Token) error {
	for i, t := range tokens {
		if t.Text == "" {
			return fmt.Errorf("%w at index %d", ErrEmptyText, i)
		}
	}
	return nil
}

// Join concatenates the text of tokens in order.
func Join(tokens []Token) string {
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0].Text
	}

	n := 0
	for _, t := range tokens {
		n += len(t.Text)
	}
	var b strings.Builder
	b.Grow(n)
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Count returns how many tokens carry every flag in tag.
func Count(tokens []Token, tag postag.Tag) int {
	n := 0
	for _, t := range tokens {
		if t.Tag.Has(tag) {
			n++
		}
	}
	return n
}
