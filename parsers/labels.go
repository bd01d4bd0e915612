// SPDX-License-Identifier: MIT

package parsers

import (
	"fmt"
	"regexp"

	"github.com/julenmendieta/tadbit/hicmatrix"
)

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %d %q: %v: %w", i, p, err, ErrInvalidPattern)
		}
		out[i] = re
	}
	return out, nil
}

// labelParts applies re to tok. Capture groups become parts; a pattern
// without groups yields the whole match.
func labelParts(re *regexp.Regexp, tok string) ([]string, bool) {
	m := re.FindStringSubmatch(tok)
	if m == nil {
		return nil, false
	}
	if len(m) == 1 {
		return m[:1], true
	}
	return m[1:], true
}

// rowLabels parses the first trim fields of every row; column k uses
// pattern k, or the raw token when no patterns are set.
func rowLabels(items [][]string, trim int, patterns []*regexp.Regexp) ([]hicmatrix.Label, error) {
	out := make([]hicmatrix.Label, len(items))
	for i, row := range items {
		var lab hicmatrix.Label
		for k, tok := range row[:trim] {
			if k >= len(patterns) {
				lab = append(lab, tok)
				continue
			}
			parts, ok := labelParts(patterns[k], tok)
			if !ok {
				return nil, fmt.Errorf("row %d label %q: %w", i, tok, ErrLabelMismatch)
			}
			lab = append(lab, parts...)
		}
		out[i] = lab
	}
	return out, nil
}

// colLabels parses the header. Corner cells (when the header is as wide as a
// data line) are dropped; each token uses the first pattern that matches it.
func colLabels(header []string, ncol, trim int, patterns []*regexp.Regexp) ([]hicmatrix.Label, error) {
	switch len(header) {
	case ncol - trim:
	case ncol:
		header = header[trim:]
	default:
		return nil, fmt.Errorf("header of %d fields for %d columns: %w", len(header), ncol-trim, ErrLabelMismatch)
	}

	out := make([]hicmatrix.Label, len(header))
	for j, tok := range header {
		if len(patterns) == 0 {
			out[j] = hicmatrix.Label{tok}
			continue
		}
		for _, re := range patterns {
			if parts, ok := labelParts(re, tok); ok {
				out[j] = append(hicmatrix.Label(nil), parts...)
				break
			}
		}
		if out[j] == nil {
			return nil, fmt.Errorf("column %d label %q: %w", j, tok, ErrLabelMismatch)
		}
	}
	return out, nil
}
