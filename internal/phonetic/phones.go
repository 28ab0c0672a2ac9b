package phonetic

import "strings"

// Rewrites applied to the letter string before the phone scan. ch, sh and th
// stay literal; the scanner turns them into digraph phones so that tch can
// win over ch at scan time.
var phoneRewrites = []rewrite{
	{"tion", "shun"},
	{"sion", "zhun"},
	{"ph", "f"},
	{"gh", "g"},
	{"qu", "kw"},
	{"ck", "k"},
	{"dge", "j"},
	{"ge", "j"},
}

// phoneOf maps single consonants to phone labels. Voiced/unvoiced pairs are
// merged (d/t, s/z, v/f) since ASR confuses them freely. Letters absent here
// transcribe as their uppercased literal.
var phoneOf = map[byte]string{
	'b': "B",
	'c': "K",
	'd': "T",
	'f': "F",
	'h': "H",
	'j': "J",
	'k': "K",
	'l': "L",
	'm': "M",
	'n': "N",
	'p': "P",
	'q': "K",
	'r': "R",
	's': "Z",
	't': "T",
	'v': "F",
	'x': "KS",
	'z': "Z",
}

// Phones transcribes a word into a sequence of coarse phone labels. All
// vowels collapse to the generic phone "V"; consecutive duplicate phones
// collapse to one.
func Phones(word string) []string {
	w := stripAlpha(word)
	if w == "" {
		return nil
	}
	for _, r := range phoneRewrites {
		w = strings.ReplaceAll(w, r.from, r.to)
	}

	var phones []string
	push := func(p string) {
		if n := len(phones); n == 0 || phones[n-1] != p {
			phones = append(phones, p)
		}
	}

	for i := 0; i < len(w); {
		if strings.HasPrefix(w[i:], "tch") {
			push("CH")
			i += 3
			continue
		}
		if i+1 < len(w) && w[i+1] == 'h' {
			switch w[i] {
			case 'c':
				push("CH")
				i += 2
				continue
			case 's':
				push("SH")
				i += 2
				continue
			case 'z':
				push("ZH")
				i += 2
				continue
			case 't':
				push("TH")
				i += 2
				continue
			}
		}
		c := w[i]
		if isVowel(c) {
			push("V")
		} else if p, ok := phoneOf[c]; ok {
			push(p)
		} else {
			push(strings.ToUpper(string(c)))
		}
		i++
	}
	return phones
}

// WordPhones returns one joined phone string per token of free text, for
// token-level comparison. Tokens with no phones are dropped.
func WordPhones(text string) []string {
	tokens := tokensOf(text)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if p := Phones(t); len(p) > 0 {
			out = append(out, strings.Join(p, ""))
		}
	}
	return out
}

// PhonesFromText transcribes every token of free text and flattens the
// result into a single phone sequence.
func PhonesFromText(text string) []string {
	var out []string
	for _, t := range tokensOf(text) {
		out = append(out, Phones(t)...)
	}
	return out
}
