package tokenio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jamesainslie/go-segopt/token"
)

// maxLine bounds a single jsonl line.
const maxLine = 64 << 20

type jsonReader struct {
	scanner *bufio.Scanner
	line    int
}

func newJSONReader(r io.Reader) *jsonReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64<<10), maxLine)
	return &jsonReader{scanner: s}
}

func (r *jsonReader) Read() ([]token.Token, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var tokens []token.Token
		if err := json.Unmarshal(line, &tokens); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, r.line, err)
		}
		if tokens == nil {
			tokens = []token.Token{}
		}
		return tokens, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading jsonl: %w", err)
	}
	return nil, io.EOF
}

type jsonWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func newJSONWriter(w io.Writer) *jsonWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &jsonWriter{w: bw, enc: enc}
}

func (w *jsonWriter) Write(tokens []token.Token) error {
	if tokens == nil {
		tokens = []token.Token{}
	}
	// Encode appends the newline that terminates the line.
	return w.enc.Encode(tokens)
}

func (w *jsonWriter) Flush() error {
	return w.w.Flush()
}
