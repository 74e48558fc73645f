package tokenio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
)

// Wire schema, kept compatible with:
//
//	message Token {
//	  string w = 1;
//	  uint32 p = 2;
//	}
//
//	message Sequence {
//	  repeated Token tokens = 1;
//	}
//
// A stream is a series of Sequence messages, each preceded by its length as a
// varint.
const (
	fieldTokenText protowire.Number = 1
	fieldTokenTag  protowire.Number = 2

	fieldSequenceTokens protowire.Number = 1

	// maxMessage bounds a single Sequence.
	maxMessage = 64 << 20
)

// MarshalSequence encodes tokens as a Sequence message.
func MarshalSequence(tokens []token.Token) []byte {
	var b []byte
	var tok []byte
	for _, t := range tokens {
		tok = tok[:0]
		tok = protowire.AppendTag(tok, fieldTokenText, protowire.BytesType)
		tok = protowire.AppendString(tok, t.Text)
		if t.Tag != postag.Unknown {
			tok = protowire.AppendTag(tok, fieldTokenTag, protowire.VarintType)
			tok = protowire.AppendVarint(tok, uint64(t.Tag))
		}

		b = protowire.AppendTag(b, fieldSequenceTokens, protowire.BytesType)
		b = protowire.AppendBytes(b, tok)
	}
	return b
}

// UnmarshalSequence decodes a Sequence message. Unknown fields are skipped.
func UnmarshalSequence(b []byte) ([]token.Token, error) {
	tokens := []token.Token{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		if num == fieldSequenceTokens && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]

			t, err := unmarshalToken(raw)
			if err != nil {
				return nil, fmt.Errorf("token %d: %w", len(tokens), err)
			}
			tokens = append(tokens, t)
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return tokens, nil
}

func unmarshalToken(b []byte) (token.Token, error) {
	var t token.Token
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return token.Token{}, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldTokenText && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return token.Token{}, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
			}
			t.Text = s
			b = b[n:]
		case num == fieldTokenTag && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return token.Token{}, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
			}
			if v > math.MaxUint32 {
				return token.Token{}, fmt.Errorf("%w: tag %d overflows uint32", ErrMalformed, v)
			}
			t.Tag = postag.Tag(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return token.Token{}, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return t, nil
}

type protoReader struct {
	r   *bufio.Reader
	buf []byte
}

func newProtoReader(r io.Reader) *protoReader {
	return &protoReader{r: bufio.NewReader(r)}
}

func (r *protoReader) Read() ([]token.Token, error) {
	size, err := binary.ReadUvarint(r.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: reading length: %w", ErrMalformed, err)
	}
	if size > maxMessage {
		return nil, fmt.Errorf("%w: message of %d bytes exceeds limit", ErrMalformed, size)
	}

	if cap(r.buf) < int(size) {
		r.buf = make([]byte, size)
	}
	r.buf = r.buf[:size]
	if _, err := io.ReadFull(r.r, r.buf); err != nil {
		return nil, fmt.Errorf("%w: reading message: %w", ErrMalformed, err)
	}

	return UnmarshalSequence(r.buf)
}

type protoWriter struct {
	w   *bufio.Writer
	buf []byte
}

func newProtoWriter(w io.Writer) *protoWriter {
	return &protoWriter{w: bufio.NewWriter(w)}
}

func (w *protoWriter) Write(tokens []token.Token) error {
	msg := MarshalSequence(tokens)
	w.buf = protowire.AppendVarint(w.buf[:0], uint64(len(msg)))
	if _, err := w.w.Write(w.buf); err != nil {
		return err
	}
	_, err := w.w.Write(msg)
	return err
}

func (w *protoWriter) Flush() error {
	return w.w.Flush()
}
