// Package version implements the deterministic, descending total order over
// component version strings used to sort a Component's versions list and to
// pick a "newest" version when none is pinned.
//
// Scheme: two versions that both parse as semver (optionally prefixed with
// "v", tolerating a missing patch segment) are compared with semver
// precedence, newest first. When either side fails to parse as semver, both
// are tokenized on runs of digits vs. non-digits (the same idea as the
// Debian epoch/upstream/revision split, generalized to arbitrary segment
// counts) and compared token by token: numeric tokens compare numerically,
// everything else compares lexicographically. A prefix match is older than
// its longer counterpart (fewer tokens means "less specific", not "newer").
// This keeps plain tags like "1.0", "2024-03", "edge" or "master" orderable
// against each other without requiring every source to publish semver.
package version

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare returns a value consistent with a descending sort: negative when a
// should sort before b (a is newer), positive when a should sort after b (a
// is older), and zero when they are equivalent for ordering purposes.
func Compare(a, b string) int {
	if a == b {
		return 0
	}

	svA, errA := semver.NewVersion(a)
	svB, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return -svA.Compare(svB)
	}

	return -compareTokens(tokenize(a), tokenize(b))
}

// token is either a numeric run (IsNum true, Num holds the parsed value) or
// an opaque run of non-digit runes compared lexicographically.
type token struct {
	text  string
	num   int64
	isNum bool
}

func tokenize(v string) []token {
	var tokens []token
	var cur strings.Builder
	curIsDigit := false
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		text := cur.String()
		t := token{text: text, isNum: curIsDigit}
		if curIsDigit {
			if n, err := strconv.ParseInt(text, 10, 64); err == nil {
				t.num = n
			} else {
				t.isNum = false
			}
		}
		tokens = append(tokens, t)
		cur.Reset()
	}

	for _, r := range v {
		isDigit := r >= '0' && r <= '9'
		if cur.Len() > 0 && isDigit != curIsDigit {
			flush()
		}
		curIsDigit = isDigit
		cur.WriteRune(r)
	}
	flush()

	return tokens
}

// compareTokens returns negative/zero/positive in ascending order (a < b),
// the same convention semver.Compare uses; Compare negates the result.
func compareTokens(a, b []token) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ta, tb := a[i], b[i]
		switch {
		case ta.isNum && tb.isNum:
			switch {
			case ta.num < tb.num:
				return -1
			case ta.num > tb.num:
				return 1
			}
		case ta.isNum != tb.isNum:
			// A numeric token sorts after a non-numeric one at the same
			// position, e.g. "rc1" before "1" so pre-release-looking
			// suffixes don't outrank a bare numeric continuation.
			if ta.isNum {
				return 1
			}
			return -1
		default:
			if c := strings.Compare(ta.text, tb.text); c != 0 {
				return c
			}
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
