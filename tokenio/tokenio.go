// Package tokenio reads and writes streams of token sequences.
//
// Three formats are supported:
//   - jsonl: one JSON array of {"w": text, "p": tag} objects per line
//   - proto: varint length-delimited protobuf Sequence messages
//   - text: one line of raw text per sequence, lexed with package tokenizer
//     on read and rendered as text/tag pairs on write
package tokenio

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jamesainslie/go-segopt/token"
)

var (
	// ErrMalformed indicates the input stream could not be decoded.
	ErrMalformed = errors.New("tokenio: malformed input")

	// ErrUnknownFormat indicates an unsupported format name.
	ErrUnknownFormat = errors.New("tokenio: unknown format")
)

// Format names a stream encoding.
type Format string

const (
	FormatJSON  Format = "jsonl"
	FormatProto Format = "proto"
	FormatText  Format = "text"
)

// ParseFormat returns the Format for name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatProto, FormatText:
		return f, nil
	case "json":
		return FormatJSON, nil
	case "pb", "protobuf":
		return FormatProto, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Reader decodes token sequences. Read returns io.EOF after the last one.
type Reader interface {
	Read() ([]token.Token, error)
}

// Writer encodes token sequences. Flush must be called after the last Write.
type Writer interface {
	Write(tokens []token.Token) error
	Flush() error
}

// NewReader returns a Reader for format.
func NewReader(format Format, r io.Reader) (Reader, error) {
	switch format {
	case FormatJSON:
		return newJSONReader(r), nil
	case FormatProto:
		return newProtoReader(r), nil
	case FormatText:
		return newTextReader(r), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// NewWriter returns a Writer for format.
func NewWriter(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatJSON:
		return newJSONWriter(w), nil
	case FormatProto:
		return newProtoWriter(w), nil
	case FormatText:
		return newTextWriter(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ReadAll reads every sequence from r.
func ReadAll(r Reader) ([][]token.Token, error) {
	var all [][]token.Token
	for {
		tokens, err := r.Read()
		if errors.Is(err, io.EOF) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, tokens)
	}
}
