// SPDX-License-Identifier: MIT

package tads

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	tableRow   = "%-6s%6s%6s%6s\n"
	noScore    = "None"
	tableFirst = "#"
)

// WriteTable prints domains as a fixed-width table: a "#" header, then one
// line per domain with its 1-based number, start, end and score ("None" when
// the domain has no score).
func WriteTable(w io.Writer, domains []Domain) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, tableRow, tableFirst, "start", "end", "score")
	for i, d := range domains {
		score := noScore
		if d.HasScore() {
			score = strconv.FormatFloat(d.Score, 'g', -1, 64)
		}
		fmt.Fprintf(bw, tableRow, strconv.Itoa(i+1), strconv.Itoa(d.Start+1), strconv.Itoa(d.End+1), score)
	}
	return bw.Flush()
}

// ParseTable reads a table written by WriteTable. Lines starting with "#"
// are skipped. Positions are converted back to 0-based.
// Errors: ErrBadTable.
func ParseTable(r io.Reader) ([]Domain, error) {
	sc := bufio.NewScanner(r)
	var out []Domain
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 4 {
			return nil, fmt.Errorf("ParseTable: line %d: %d fields: %w", ln, len(f), ErrBadTable)
		}
		start, err1 := parsePos(f[1])
		end, err2 := parsePos(f[2])
		if err1 != nil || err2 != nil || end < start {
			return nil, fmt.Errorf("ParseTable: line %d: bad positions %q %q: %w", ln, f[1], f[2], ErrBadTable)
		}
		score, err := strconv.ParseFloat(f[3], 64)
		if err != nil {
			score = math.NaN()
		}
		out = append(out, Domain{Start: start - 1, End: end - 1, Score: score})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ParseTable: %w", err)
	}
	return out, nil
}

// parsePos accepts "12" and "12.0".
func parsePos(s string) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 1 || v != math.Trunc(v) {
		return 0, ErrBadTable
	}
	return int(v), nil
}

// Annotated is a domain with its breakpoint status.
type Annotated struct {
	Domain
	// Breakable is false when the domain is longer than the allowed size;
	// such a domain keeps no breakpoint.
	Breakable bool
}

// Annotate flags domains whose physical length (End-Start)·binSize exceeds
// maxSize. Their bins are returned, sorted, as forbidden.
func Annotate(domains []Domain, maxSize, binSize float64) ([]Annotated, []int) {
	out := make([]Annotated, len(domains))
	seen := make(map[int]bool)
	for i, d := range domains {
		out[i] = Annotated{Domain: d, Breakable: true}
		if float64(d.End-d.Start)*binSize > maxSize {
			out[i].Breakable = false
			for b := d.Start; b <= d.End; b++ {
				seen[b] = true
			}
		}
	}
	forbidden := make([]int, 0, len(seen))
	for b := range seen {
		forbidden = append(forbidden, b)
	}
	sort.Ints(forbidden)
	return out, forbidden
}
