package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Hello!", "hello"},
		{"Hello.  World?", "hello world"},
		{"  spaced   out  ", "spaced out"},
		{"don't", "don't"},
		{"well-known", "well-known"},
		{"Ça va, café!", "ça va café"},
		{"a,b;c", "a b c"},
		{"123 go", "123 go"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "Hello, World!", "I'm FINE — really...", "ice-cream &  cake"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"Hello world", []string{"hello", "world"}},
		{"I am fine", []string{"i", "am", "fine"}},
	}
	for _, c := range cases {
		if got := Tokenize(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTokenize_Homophones(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"eye", "I"},
		{"aye", "i"},
		{"buy", "by"},
		{"to", "two"},
		{"won", "one"},
	}
	for _, c := range cases {
		ta, tb := Tokenize(c.a), Tokenize(c.b)
		if !reflect.DeepEqual(ta, tb) {
			t.Errorf("Tokenize(%q) = %v, Tokenize(%q) = %v; want homophones to collapse", c.a, ta, c.b, tb)
		}
	}
}

func TestTokenize_UnknownWordUnchanged(t *testing.T) {
	got := Tokenize("elephant")
	if len(got) != 1 || got[0] != "elephant" {
		t.Errorf("Tokenize(%q) = %v, want [elephant]", "elephant", got)
	}
}
