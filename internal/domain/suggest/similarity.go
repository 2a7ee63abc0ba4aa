package suggest

import (
	"regexp"
	"strings"
)

var (
	labelSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	trailingDigits  = regexp.MustCompile(`\s+\d+$`)
)

// Filler tokens that scanned form labels often carry but canonical
// display names never do.
var labelNoise = map[string]struct{}{
	"please": {},
	"enter":  {},
	"field":  {},
	"info":   {},
}

// normalizeLabel lowercases a label, collapses punctuation runs, drops
// filler tokens and a trailing index digit so "Pt. D.O.B." and
// "pt dob" compare equal.
func normalizeLabel(label string) string {
	s := labelSeparators.ReplaceAllString(strings.ToLower(label), " ")
	s = trailingDigits.ReplaceAllString(strings.TrimSpace(s), "")
	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, t := range tokens {
		if _, noise := labelNoise[t]; noise {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, " ")
}

// levenshtein returns the edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// levenshteinRatio maps edit distance into [0,1] where 1 is identical.
func levenshteinRatio(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// tokenOverlap is the Jaccard index over the whitespace tokens of the
// two normalized labels.
func tokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(ta))
	union := make(map[string]struct{}, len(ta)+len(tb))
	for _, t := range ta {
		set[t] = struct{}{}
		union[t] = struct{}{}
	}
	inter := make(map[string]struct{})
	for _, t := range tb {
		if _, ok := set[t]; ok {
			inter[t] = struct{}{}
		}
		union[t] = struct{}{}
	}
	return float64(len(inter)) / float64(len(union))
}

// prefixRatio is the length of the common prefix over the longer
// string's length.
func prefixRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return float64(n) / float64(longest)
}

// similarity blends edit distance, token overlap, and common prefix
// into a single score in [0,1].
func similarity(a, b string, w Weights) float64 {
	na, nb := normalizeLabel(a), normalizeLabel(b)
	if na == nb {
		return 1
	}
	return w.Levenshtein*levenshteinRatio(na, nb) +
		w.TokenOverlap*tokenOverlap(na, nb) +
		w.PrefixRatio*prefixRatio(na, nb)
}
