// Package postag defines the part-of-speech and category tags carried by
// segmented tokens.
//
// Tags are bit flags so that a single value can describe a class of tags
// (for example Noun|PersonName). Only ForeignWord, MixedOrOther and Address
// are examined by the optimizers in this module; the rest pass through.
package postag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTag is returned by Parse for a name that is not in the tag table.
var ErrUnknownTag = errors.New("postag: unknown tag")

// Tag is a part-of-speech or category tag.
type Tag uint32

const (
	Adjective    Tag = 1 << iota // a
	Conjunction                  // c
	Adverb                       // d
	Interjection                 // e
	Idiom                        // i
	Numeral                      // m
	Noun                         // n
	Preposition                  // p
	Pronoun                      // r
	Verb                         // v
	Punctuation                  // w
	PersonName                   // nr
	PlaceName                    // ns
	Organization                 // nt
	ForeignWord                  // nx, a word written in Latin script
	MixedOrOther                 // catch-all for tokens not cleanly classified
	Address                      // a recognized mail or URL address; atomic downstream

	// Unknown is the zero value: no tag has been assigned.
	Unknown Tag = 0
)

var names = []struct {
	tag  Tag
	name string
}{
	{Adjective, "adjective"},
	{Conjunction, "conjunction"},
	{Adverb, "adverb"},
	{Interjection, "interjection"},
	{Idiom, "idiom"},
	{Numeral, "numeral"},
	{Noun, "noun"},
	{Preposition, "preposition"},
	{Pronoun, "pronoun"},
	{Verb, "verb"},
	{Punctuation, "punctuation"},
	{PersonName, "person"},
	{PlaceName, "place"},
	{Organization, "organization"},
	{ForeignWord, "foreign"},
	{MixedOrOther, "mixed"},
	{Address, "address"},
}

// Has reports whether every flag in other is set in t.
func (t Tag) Has(other Tag) bool {
	return other != 0 && t&other == other
}

// String returns the canonical name of t. Combined flags are joined with "|".
func (t Tag) String() string {
	if t == Unknown {
		return "unknown"
	}
	var parts []string
	rest := t
	for _, n := range names {
		if t&n.tag != 0 {
			parts = append(parts, n.name)
			rest &^= n.tag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// Parse returns the tag for a name produced by String.
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "unknown") {
		return Unknown, nil
	}

	var t Tag
	for _, part := range strings.Split(s, "|") {
		found := false
		for _, n := range names {
			if strings.EqualFold(part, n.name) {
				t |= n.tag
				found = true
				break
			}
		}
		if !found {
			return Unknown, fmt.Errorf("%w: %q", ErrUnknownTag, part)
		}
	}
	return t, nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
