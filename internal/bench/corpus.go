// Package bench provides benchmarking utilities for address recognition.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Annotation markers that wrap each expected address in a corpus body.
const (
	openMarker  = "<<"
	closeMarker = ">>"
)

// ErrUnbalancedMarker indicates a body with an unmatched << or >>.
var ErrUnbalancedMarker = errors.New("unbalanced address marker")

// Header contains metadata parsed from corpus file header.
type Header struct {
	Source string
	Note   string
}

// ParseHeader extracts metadata from header comments.
// Returns the header, remaining text after header, and any error.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	bodyStart := len(text)
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1 // +1 for newline

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Note:"); ok {
			h.Note = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	body := strings.TrimSpace(text[bodyStart:])
	return h, body, nil
}

// Span is a half-open byte range [Start, End) in a case's text.
type Span struct {
	Start int
	End   int
}

// Line is one body line with its expected address spans.
type Line struct {
	Text     string
	Expected []Span
}

// ParseAnnotated strips << >> markers from line and returns the plain text
// with the byte spans the markers enclosed.
func ParseAnnotated(line string) (Line, error) {
	var (
		b     strings.Builder
		spans []Span
		open  = -1
	)

	for i := 0; i < len(line); {
		switch {
		case strings.HasPrefix(line[i:], openMarker):
			if open >= 0 {
				return Line{}, fmt.Errorf("%w: nested %s at byte %d", ErrUnbalancedMarker, openMarker, i)
			}
			open = b.Len()
			i += len(openMarker)
		case strings.HasPrefix(line[i:], closeMarker):
			if open < 0 {
				return Line{}, fmt.Errorf("%w: stray %s at byte %d", ErrUnbalancedMarker, closeMarker, i)
			}
			spans = append(spans, Span{Start: open, End: b.Len()})
			open = -1
			i += len(closeMarker)
		default:
			b.WriteByte(line[i])
			i++
		}
	}

	if open >= 0 {
		return Line{}, fmt.Errorf("%w: unclosed %s", ErrUnbalancedMarker, openMarker)
	}
	return Line{Text: b.String(), Expected: spans}, nil
}

// Case represents a loaded corpus file.
type Case struct {
	ID     string // filename without extension
	Source string
	Note   string
	Lines  []Line
}

// LoadCase loads and parses a corpus file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	var lines []Line
	for i, raw := range strings.Split(body, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line, err := ParseAnnotated(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	return &Case{
		ID:     id,
		Source: header.Source,
		Note:   header.Note,
		Lines:  lines,
	}, nil
}

// LoadCorpus loads all .txt corpus files from a directory.
func LoadCorpus(dir string) ([]*Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var cases []*Case
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		c, err := LoadCase(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		cases = append(cases, c)
	}

	return cases, nil
}
