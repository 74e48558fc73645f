package tokenio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jamesainslie/go-segopt/token"
	"github.com/jamesainslie/go-segopt/tokenizer"
)

// textReader lexes each input line. Line terminators are not part of the
// returned tokens.
type textReader struct {
	scanner *bufio.Scanner
}

func newTextReader(r io.Reader) *textReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64<<10), maxLine)
	return &textReader{scanner: s}
}

func (r *textReader) Read() ([]token.Token, error) {
	if r.scanner.Scan() {
		tokens := tokenizer.Tokenize(strings.TrimSuffix(r.scanner.Text(), "\r"))
		if tokens == nil {
			tokens = []token.Token{}
		}
		return tokens, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	return nil, io.EOF
}

// textWriter renders one sequence per line as space separated text/tag
// pairs. Whitespace tokens are skipped.
type textWriter struct {
	w *bufio.Writer
}

func newTextWriter(w io.Writer) *textWriter {
	return &textWriter{w: bufio.NewWriter(w)}
}

func (w *textWriter) Write(tokens []token.Token) error {
	first := true
	for _, t := range tokens {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if !first {
			if err := w.w.WriteByte(' '); err != nil {
				return err
			}
		}
		first = false
		if _, err := w.w.WriteString(t.String()); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

func (w *textWriter) Flush() error {
	return w.w.Flush()
}
