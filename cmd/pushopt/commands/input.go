// Package commands implements pushopt's subcommands: run, gen, and bench.
package commands

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"pushopt/internal/errs"
)

// ParseInput reads a permutation of distinct integers from args if
// non-empty, otherwise from r (one token per line or whitespace
// separated). Duplicate values are a usage error.
func ParseInput(args []string, r io.Reader) ([]int, error) {
	tokens := args
	if len(tokens) == 0 {
		var err error
		tokens, err = scanTokens(r)
		if err != nil {
			return nil, errs.WrapUsage("reading input", err)
		}
	}
	if len(tokens) == 0 {
		return nil, errs.NewUsage("no input values given (pass them as arguments or on stdin)")
	}

	seen := make(map[int]bool, len(tokens))
	values := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errs.WrapUsage("parsing token "+strconv.Quote(tok), err)
		}
		if seen[v] {
			return nil, errs.NewUsage("duplicate value " + strconv.Itoa(v))
		}
		seen[v] = true
		values[i] = v
	}
	return values, nil
}

func scanTokens(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)
	var tokens []string
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
