// Package match implements the accept/reject policy for spoken answers.
// Several independent similarity signals each cover one ASR failure mode:
// edit distance absorbs literal noise, consonant classes and skeletons absorb
// vowel mis-transcription, and the phone layer absorbs homophone confusion.
// The final confidence is their max.
package match

import (
	"strings"

	"github.com/mlazarev/speakcheck/internal/phonetic"
	"github.com/mlazarev/speakcheck/internal/similarity"
	"github.com/mlazarev/speakcheck/internal/textnorm"
)

const (
	wordThreshold          = 0.3
	exampleThreshold       = 0.45
	exampleSingleThreshold = 0.35

	// A gated expected token counts as heard when some heard token is at
	// least this similar to it.
	tokenMatchThreshold = 0.8

	// Flat leniency margin for one- to three-letter expected words: the
	// transcript carries almost no distinguishing phonetic content, so the
	// policy leans on the phonetic signals and forgives more.
	shortWordBoost = 0.2
)

// ScorePronunciation returns a confidence in [0,1] that heard is an
// acceptable rendition of expected. Empty expected is trivially matched.
func ScorePronunciation(expected, heard string) float64 {
	ne := textnorm.Normalize(expected)
	nh := textnorm.Normalize(heard)
	if ne == "" {
		return 1
	}
	if nh == "" {
		return 0
	}

	te := textnorm.Tokenize(expected)
	th := textnorm.Tokenize(heard)

	text := textScore(ne, nh, te, th)
	class := signalScore(phonetic.EncodeTokens(expected), phonetic.EncodeTokens(heard))
	skel := similarity.Score(similarity.SkeletonString(expected), similarity.SkeletonString(heard))
	phones := signalScore(phonetic.WordPhones(expected), phonetic.WordPhones(heard))

	if len(te) == 1 && len([]rune(te[0])) <= 3 {
		boosted := max(class, skel, phones, text*0.5) + shortWordBoost
		return min(1, boosted)
	}
	return max(text, class, skel, phones)
}

// MatchWord reports whether heard is an acceptable rendition of a single
// expected word. One- and two-letter expected words accept any non-empty
// transcript: ASR rarely transcribes bare letters reliably.
func MatchWord(expected, heard string) bool {
	te := textnorm.Tokenize(expected)
	if len(te) == 0 {
		return true
	}
	if len(te) == 1 && len([]rune(te[0])) <= 2 {
		return len(textnorm.Tokenize(heard)) > 0
	}
	return ScorePronunciation(expected, heard) >= wordThreshold
}

// MatchExample reports whether heard acceptably covers a whole expected
// phrase. Longer phrases demand proportionally more of their words actually
// heard, so credit is never awarded for a single recognized word; short
// phrases get relaxed gating since ASR truncation is common.
func MatchExample(expected, heard string) bool {
	te := textnorm.Tokenize(expected)
	if len(te) == 0 {
		return true
	}
	th := textnorm.Tokenize(heard)

	score := ScorePronunciation(expected, heard)
	if len(te) == 1 {
		return score >= exampleSingleThreshold
	}

	overlap := lenientOverlap(te, th)
	ratio := float64(len(th)) / float64(len(te))
	return score >= exampleThreshold &&
		overlap >= requiredOverlap(len(te)) &&
		ratio >= requiredLengthRatio(len(te))
}

func requiredOverlap(expectedTokens int) float64 {
	switch {
	case expectedTokens >= 4:
		return 0.85
	case expectedTokens == 3:
		return 0.75
	case expectedTokens == 2:
		return 0.6
	default:
		return 0.35
	}
}

func requiredLengthRatio(expectedTokens int) float64 {
	switch {
	case expectedTokens >= 4:
		return 0.8
	case expectedTokens == 3:
		return 0.67
	default:
		return 0
	}
}

// textScore is the literal-text signal. Whole-transcript containment of the
// expected text is a hit; a single expected word found inside the transcript
// scores slightly lower; otherwise the best of token overlap and whole-string
// similarity.
func textScore(ne, nh string, te, th []string) float64 {
	if ne == nh || strings.Contains(nh, ne) {
		return 1
	}
	if len(te) == 1 && strings.Contains(nh, te[0]) {
		return 0.9
	}
	return max(similarity.TokenOverlap(te, th), similarity.Score(ne, nh))
}

// signalScore compares two token-level encodings by the better of set
// overlap and joined-string similarity.
func signalScore(expected, heard []string) float64 {
	return max(
		similarity.TokenOverlap(expected, heard),
		similarity.Score(strings.Join(expected, " "), strings.Join(heard, " ")),
	)
}

// lenientOverlap is the phrase-gate variant of token overlap: an expected
// token counts as heard when some heard token equals it, shares its
// consonant-class code, or sits within edit-distance similarity of it. A
// literal transcript of "i am a studen" must still cover "student".
func lenientOverlap(expected, heard []string) float64 {
	if len(heard) == 0 {
		return 0
	}
	found := 0
	for _, e := range expected {
		if tokenHeard(e, heard) {
			found++
		}
	}
	return float64(found) / float64(len(expected))
}

func tokenHeard(expected string, heard []string) bool {
	short := len([]rune(expected)) <= 2
	code := phonetic.Encode(expected)
	for _, h := range heard {
		if h == expected {
			return true
		}
		if short {
			// Tiny words match too many things approximately; demand the
			// exact token.
			continue
		}
		if code != "" && code == phonetic.Encode(h) {
			return true
		}
		if similarity.Score(expected, h) >= tokenMatchThreshold {
			return true
		}
	}
	return false
}
