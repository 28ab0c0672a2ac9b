// Package similarity holds the approximate string comparison primitives used
// by the pronunciation scorer: edit distance, normalized similarity, token
// overlap and consonant skeletons.
package similarity

import (
	"strings"

	"github.com/mlazarev/speakcheck/internal/textnorm"
)

// Levenshtein computes the edit distance between a and b (insertion,
// deletion and substitution all cost 1). Single-row DP, rune-based.
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	row := make([]int, m+1)
	for j := 0; j <= m; j++ {
		row[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= m; j++ {
			tmp := row[j]
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, prev+cost)
			prev = tmp
		}
	}
	return row[m]
}

// Score normalizes Levenshtein distance into a similarity in [0,1].
// Two empty strings score 1. Symmetric in its arguments.
func Score(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb, 1)
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// TokenOverlap reports which fraction of the expected tokens is present in
// the heard token set, order-insensitive. Each expected token counts at most
// once no matter how often it repeats in heard. Edge rules: empty expected
// scores 1 against empty heard and 0.5 otherwise; empty heard against
// non-empty expected scores 0; a single expected token of one or two runes
// must be present verbatim.
func TokenOverlap(expected, heard []string) float64 {
	if len(expected) == 0 {
		if len(heard) == 0 {
			return 1
		}
		return 0.5
	}
	if len(heard) == 0 {
		return 0
	}

	heardSet := make(map[string]struct{}, len(heard))
	for _, h := range heard {
		heardSet[h] = struct{}{}
	}

	if len(expected) == 1 && len([]rune(expected[0])) <= 2 {
		if _, ok := heardSet[expected[0]]; ok {
			return 1
		}
		return 0
	}

	found := 0
	for _, e := range expected {
		if _, ok := heardSet[e]; ok {
			found++
		}
	}
	return float64(found) / float64(len(expected))
}

// ConsonantSkeleton reduces each token of text to its consonants with
// consecutive duplicates collapsed, e.g. "coffee" -> "cf". Tokens that are
// all vowels reduce to "" and are kept so positions still line up.
func ConsonantSkeleton(text string) []string {
	tokens := textnorm.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, skeleton(t))
	}
	return out
}

// SkeletonString joins the consonant skeleton of text for whole-string
// comparison via Score.
func SkeletonString(text string) string {
	return strings.Join(ConsonantSkeleton(text), " ")
}

func skeleton(token string) string {
	var b strings.Builder
	var last rune
	for _, r := range token {
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			continue
		}
		if r != last {
			b.WriteRune(r)
			last = r
		}
	}
	return b.String()
}
