// Package selector resolves user-supplied ID / ID:range tokens against
// a set of parsed hunks into concrete line-level selections.
package selector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roasbeef/git-surgeon/internal/diffmodel"
)

// Selection is a resolved choice of lines within one hunk. Whole is
// true when the entire hunk was addressed by a bare ID token; Lines
// holds the explicit intrinsic line numbers otherwise.
type Selection struct {
	File *diffmodel.FileChange
	Hunk *diffmodel.Hunk

	Whole bool
	Lines map[int]bool
}

// Contains reports whether the given intrinsic line number is part of
// this selection.
func (s *Selection) Contains(intrinsic int) bool {
	if s.Whole {
		return true
	}

	return s.Lines[intrinsic]
}

// merge unions another token's lines into this selection.
func (s *Selection) merge(other *Selection) {
	if s.Whole || other.Whole {
		s.Whole = true
		s.Lines = nil

		return
	}

	for n := range other.Lines {
		s.Lines[n] = true
	}
}

// index maps hunk ID to its FileChange and Hunk, built once per
// command invocation from the view's parsed files.
type index struct {
	byID map[string]*Selection
}

func newIndex(files []*diffmodel.FileChange) *index {
	idx := &index{byID: make(map[string]*Selection)}

	for _, f := range files {
		for _, h := range f.Hunks {
			idx.byID[h.ID] = &Selection{File: f, Hunk: h}
		}
	}

	return idx
}

// Resolve resolves a list of ID / ID:N / ID:A-B tokens against the
// given files into an ordered set of Selections, one per distinct
// hunk ID, in first-seen order. Multiple tokens addressing the same
// ID are merged by set union.
func Resolve(files []*diffmodel.FileChange, tokens []string) ([]*Selection, error) {
	idx := newIndex(files)

	var order []string
	seen := make(map[string]*Selection)

	for _, tok := range tokens {
		id, sel, err := resolveToken(idx, tok)
		if err != nil {
			return nil, err
		}

		if existing, ok := seen[id]; ok {
			existing.merge(sel)

			continue
		}

		seen[id] = sel
		order = append(order, id)
	}

	out := make([]*Selection, 0, len(order))
	for _, id := range order {
		out = append(out, seen[id])
	}

	return out, nil
}

// resolveToken resolves a single ID / ID:N / ID:A-B token.
func resolveToken(idx *index, tok string) (string, *Selection, error) {
	id, spec, hasRange := strings.Cut(tok, ":")

	base, ok := idx.byID[id]
	if !ok {
		return "", nil, fmt.Errorf("hunk ID not found: %q", id)
	}

	if !hasRange {
		return id, &Selection{File: base.File, Hunk: base.Hunk, Whole: true}, nil
	}

	start, end, err := parseRangeSpec(spec)
	if err != nil {
		return "", nil, err
	}

	length := base.Hunk.LineCount()
	if start > length {
		return "", nil, fmt.Errorf(
			"invalid range %q for hunk %s: start %d exceeds hunk length %d",
			spec, id, start, length,
		)
	}

	if end > length {
		end = length
	}

	lines := make(map[int]bool, end-start+1)
	for n := start; n <= end; n++ {
		lines[n] = true
	}

	return id, &Selection{File: base.File, Hunk: base.Hunk, Lines: lines}, nil
}

// parseRangeSpec parses "N" or "A-B" (A <= B required).
func parseRangeSpec(spec string) (start, end int, err error) {
	a, b, isRange := strings.Cut(spec, "-")

	start, err = strconv.Atoi(strings.TrimSpace(a))
	if err != nil || start < 1 {
		return 0, 0, fmt.Errorf("invalid range %q: bad start line", spec)
	}

	if !isRange {
		return start, start, nil
	}

	end, err = strconv.Atoi(strings.TrimSpace(b))
	if err != nil || end < 1 {
		return 0, 0, fmt.Errorf("invalid range %q: bad end line", spec)
	}

	if start > end {
		return 0, 0, fmt.Errorf("invalid range %q: start greater than end", spec)
	}

	return start, end, nil
}

// ResolveLines is sugar for a single ID plus a `--lines R` flag,
// equivalent to resolving one "ID:R" token.
func ResolveLines(files []*diffmodel.FileChange, id, rng string) (*Selection, error) {
	sels, err := Resolve(files, []string{id + ":" + rng})
	if err != nil {
		return nil, err
	}

	return sels[0], nil
}

// RequireDisjoint verifies that no two groups of selections address
// the same line of the same hunk, as split requires of its PickGroups.
func RequireDisjoint(groups [][]*Selection) error {
	claimed := make(map[*diffmodel.Hunk]map[int]int)

	for groupIdx, sels := range groups {
		for _, sel := range sels {
			lines, ok := claimed[sel.Hunk]
			if !ok {
				lines = make(map[int]int)
				claimed[sel.Hunk] = lines
			}

			for n := 1; n <= sel.Hunk.LineCount(); n++ {
				if !sel.Contains(n) {
					continue
				}

				if owner, taken := lines[n]; taken && owner != groupIdx {
					return fmt.Errorf(
						"hunk %s line %d is claimed by more than one --pick group",
						sel.Hunk.ID, n,
					)
				}

				lines[n] = groupIdx
			}
		}
	}

	return nil
}
