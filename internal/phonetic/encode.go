// Package phonetic provides two coarse, English-only phonetic abstractions of
// a word: a Soundex-style consonant-class code and a small grapheme-to-phone
// transcription. Both are deliberately crude; they exist to absorb ASR
// transcription noise, not to model pronunciation.
package phonetic

import (
	"strings"

	"github.com/mlazarev/speakcheck/internal/textnorm"
)

type rewrite struct {
	from, to string
}

// Applied only when the word starts with the cluster.
var initialRewrites = []rewrite{
	{"kn", "n"},
	{"wr", "r"},
	{"ps", "s"},
	{"wh", "w"},
}

// Applied everywhere, in order. ght must run before gh, dge before ge.
var classRewrites = []rewrite{
	{"ph", "f"},
	{"ght", "t"},
	{"gh", "g"},
	{"qu", "k"},
	{"ck", "k"},
	{"tion", "shun"},
	{"cia", "sha"},
	{"dge", "j"},
	{"ge", "j"},
}

// consonantClass buckets consonants into six sound classes. h and w are
// absent on purpose: they carry no class and are dropped.
var consonantClass = map[byte]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// stripAlpha lowercases and keeps ASCII letters only.
func stripAlpha(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// Encode returns the consonant-class code of a word: digraphs rewritten,
// vowels kept only in leading position, consonants mapped to digit classes
// 1-6, consecutive identical symbols collapsed. Empty or non-alphabetic
// input encodes to "".
func Encode(word string) string {
	w := stripAlpha(word)
	if w == "" {
		return ""
	}

	for _, r := range initialRewrites {
		if strings.HasPrefix(w, r.from) {
			w = r.to + w[len(r.from):]
			break
		}
	}
	for _, r := range classRewrites {
		w = strings.ReplaceAll(w, r.from, r.to)
	}

	var b strings.Builder
	var last byte
	for i := 0; i < len(w); i++ {
		c := w[i]
		var out byte
		if isVowel(c) {
			if i != 0 {
				continue
			}
			out = c
		} else {
			out = consonantClass[c]
			if out == 0 {
				continue
			}
		}
		if out != last {
			b.WriteByte(out)
			last = out
		}
	}
	return b.String()
}

func tokensOf(text string) []string {
	return textnorm.Tokenize(text)
}

// EncodeTokens encodes every token of free text, one code per word.
// Tokens that encode to "" are dropped.
func EncodeTokens(text string) []string {
	tokens := tokensOf(text)
	codes := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if code := Encode(t); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
