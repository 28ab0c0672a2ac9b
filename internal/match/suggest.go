package match

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/mlazarev/speakcheck/internal/textnorm"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// SuggestOption configures a Suggester.
type SuggestOption func(*Suggester)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-aligned candidate to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) SuggestOption {
	return func(s *Suggester) {
		s.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// candidate aligns phonetically and the suggester falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) SuggestOption {
	return func(s *Suggester) {
		s.fuzzyThreshold = threshold
	}
}

// Suggester picks, out of a set of candidate answers (a multiple-choice
// exercise), the one the learner most likely said. Candidates are first
// filtered by Double Metaphone code overlap with the transcript, then ranked
// by Jaro-Winkler similarity; if nothing aligns phonetically a stricter pure
// similarity pass runs instead. Read-only after construction, safe for
// concurrent use.
type Suggester struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// NewSuggester returns a Suggester configured with the supplied options.
func NewSuggester(opts ...SuggestOption) *Suggester {
	s := &Suggester{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Suggest returns the candidate most likely matching the heard transcript.
// When ok is false no candidate cleared its threshold and best is "" with
// confidence 0. Candidates are returned in their original casing.
func (s *Suggester) Suggest(heard string, candidates []string) (best string, confidence float64, ok bool) {
	heardTokens := textnorm.Tokenize(heard)
	if len(candidates) == 0 || len(heardTokens) == 0 {
		return "", 0, false
	}
	heardJoined := strings.Join(heardTokens, " ")
	heardCodes := metaphoneCodes(heardTokens)

	type candidate struct {
		text     string
		score    float64
		phonetic bool
	}
	var top candidate

	for _, c := range candidates {
		tokens := textnorm.Tokenize(c)
		if len(tokens) == 0 {
			continue
		}
		joined := strings.Join(tokens, " ")

		phonetic := codesOverlap(heardCodes, metaphoneCodes(tokens))
		score := bestJaroWinkler(heardTokens, tokens, heardJoined, joined)

		if phonetic {
			if score >= s.phoneticThreshold && (!top.phonetic || score > top.score) {
				top = candidate{text: c, score: score, phonetic: true}
			}
		} else if !top.phonetic && score >= s.fuzzyThreshold && score > top.score {
			top = candidate{text: c, score: score, phonetic: false}
		}
	}

	if top.text == "" {
		return "", 0, false
	}
	return top.text, top.score, true
}

// metaphoneCodes returns the union of Double Metaphone codes over tokens.
// Empty codes are excluded.
func metaphoneCodes(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestJaroWinkler takes the best similarity over three views: the full
// strings, the space-stripped strings, and the best pairwise token score.
// Covers ASR splitting one word in two and merging two words into one.
func bestJaroWinkler(heardTokens, candTokens []string, heardFull, candFull string) float64 {
	score := matchr.JaroWinkler(heardFull, candFull, false)

	if len(heardTokens) > 1 || len(candTokens) > 1 {
		concat := matchr.JaroWinkler(strings.Join(heardTokens, ""), strings.Join(candTokens, ""), false)
		if concat > score {
			score = concat
		}
	}

	for _, h := range heardTokens {
		for _, c := range candTokens {
			if s := matchr.JaroWinkler(h, c, false); s > score {
				score = s
			}
		}
	}
	return score
}
