// Package tokenizer provides a small rule-based lexer that turns raw text
// into tagged tokens.
//
// It stands in for a full word segmenter in the CLI and in tests. Lexing is
// lossless: joining the text of the returned tokens yields the input.
//
// Tagging rules:
//   - runs of ASCII letters and digits containing a letter: ForeignWord
//   - runs of ASCII digits: MixedOrOther
//   - each ASCII punctuation or symbol character: Punctuation
//   - runs of other letters, digits and marks: MixedOrOther
//   - each other punctuation or symbol rune: Punctuation
//   - runs of whitespace and anything else: Unknown
package tokenizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
)

type class uint8

const (
	classOther class = iota
	classSpace
	classASCIIAlnum
	classASCIIPunct
	classWord
	classPunct
)

func classify(r rune) class {
	if r < utf8.RuneSelf {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return classASCIIAlnum
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
			return classSpace
		case r > ' ' && r < 0x7f:
			return classASCIIPunct
		}
		return classOther
	}

	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
		return classWord
	case unicode.IsPunct(r), unicode.IsSymbol(r):
		return classPunct
	}
	return classOther
}

// single reports whether runes of class c each form their own token.
func (c class) single() bool {
	return c == classASCIIPunct || c == classPunct
}

// Tokenize splits text into tagged tokens.
func Tokenize(text string) []token.Token {
	if text == "" {
		return nil
	}

	var tokens []token.Token
	start := 0
	cur := classOther
	hasLetter := false

	flush := func(end int) {
		if end > start {
			tokens = append(tokens, token.Token{
				Text: text[start:end],
				Tag:  tagFor(cur, hasLetter),
			})
		}
		start = end
		hasLetter = false
	}

	for i, r := range text {
		c := classify(r)
		if i == 0 {
			cur = c
		} else if c != cur || c.single() {
			flush(i)
			cur = c
		}
		if c == classASCIIAlnum && (r < '0' || r > '9') {
			hasLetter = true
		}
	}
	flush(len(text))

	return tokens
}

func tagFor(c class, hasLetter bool) postag.Tag {
	switch c {
	case classASCIIAlnum:
		if hasLetter {
			return postag.ForeignWord
		}
		return postag.MixedOrOther
	case classASCIIPunct, classPunct:
		return postag.Punctuation
	case classWord:
		return postag.MixedOrOther
	}
	return postag.Unknown
}
