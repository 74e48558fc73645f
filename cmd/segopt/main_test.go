package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
	"github.com/jamesainslie/go-segopt/tokenio"
)

// clearEnv isolates a test from SEGOPT_* variables set by the caller.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SEGOPT_CONFIG", "SEGOPT_LOG_LEVEL", "SEGOPT_ADDR", "SEGOPT_CONCURRENCY"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestOptimize_Args(t *testing.T) {
	clearEnv(t)

	out, err := execute(t, "", "optimize", "--log-level", "error", "请联系 john.doe@example.com 获取详情")
	require.NoError(t, err)
	assert.Equal(t, "请联系/mixed john.doe@example.com/address 获取详情/mixed\n", out)
}

func TestOptimize_StdinText(t *testing.T) {
	clearEnv(t)

	out, err := execute(t, "mail a@b.cn now\nnothing here\n", "optimize")
	require.NoError(t, err)
	assert.Equal(t, "mail/foreign a@b.cn/address now/foreign\nnothing/foreign here/foreign\n", out)
}

func TestOptimize_JSONL(t *testing.T) {
	clearEnv(t)

	in := `[{"w":"john","p":"foreign"},{"w":"@","p":"punctuation"},{"w":"x","p":"foreign"},{"w":".","p":"punctuation"},{"w":"org","p":"foreign"}]` + "\n"
	out, err := execute(t, in, "optimize", "--input-format", "jsonl", "--output-format", "jsonl")
	require.NoError(t, err)

	r, err := tokenio.NewReader(tokenio.FormatJSON, strings.NewReader(out))
	require.NoError(t, err)
	got, err := tokenio.ReadAll(r)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []token.Token{{Text: "john@x.org", Tag: postag.Address}}, got[0])
}

func TestOptimize_BadFormat(t *testing.T) {
	clearEnv(t)

	_, err := execute(t, "", "optimize", "--output-format", "xml", "hi")
	assert.ErrorIs(t, err, tokenio.ErrUnknownFormat)
}

func TestOptimize_InvalidInput(t *testing.T) {
	clearEnv(t)

	in := `[{"w":"","p":"foreign"}]` + "\n"
	_, err := execute(t, in, "optimize", "--input-format", "jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequence 0")
}

func TestBench(t *testing.T) {
	clearEnv(t)

	out, err := execute(t, "", "bench", "--corpus", filepath.Join("..", "..", "testdata", "corpus"), "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 3 cases")
	assert.Contains(t, out, "(TP: 5, FP: 0, FN: 1)")
	assert.Contains(t, out, "missed: ops@example.com")
}

func TestBench_MissingCorpus(t *testing.T) {
	clearEnv(t)

	_, err := execute(t, "", "bench", "--corpus", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBadLogLevel(t *testing.T) {
	clearEnv(t)

	_, err := execute(t, "", "optimize", "--log-level", "loud", "hi")
	assert.ErrorIs(t, err, errBadLevel)
}
