package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "So HAPPY", "so happy"},
		{"collapses whitespace", "  feeling \t\n down  ", "feeling down"},
		{"unifies apostrophes", "I can\u2019t", "i can't"},
		{"full width folds", "ｈａｐｐｙ", "happy"},
		{"drops variation selector", "\u2764\ufe0f", "\u2764"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize(Normalize("I don't feel GOOD!!! anti-hero :) 😭"))
	want := []Token{
		{Raw: "i", Word: "i"},
		{Raw: "don't", Word: "dont"},
		{Raw: "feel", Word: "feel"},
		{Raw: "good", Word: "good"},
		{Raw: "anti", Word: "anti", Clause: 1},
		{Raw: "hero", Word: "hero", Clause: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %+v, want %+v", got, want)
	}
}

func TestTokenize_Clauses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"single clause", "i am not sad", []int{0, 0, 0, 0}},
		{"full stop", "i'm not sad. i'm happy", []int{0, 0, 0, 1, 1}},
		{"comma and semicolon", "tired, sad; fine", []int{0, 1, 2}},
		{"but starts a clause", "not sad but happy", []int{0, 0, 1, 1}},
		{"leading punctuation", "... happy", []int{0}},
		{"repeated breaks count once", "sad?!? happy", []int{0, 1}},
		{"hyphen is not a break", "anti-hero", []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(Normalize(tt.input))
			got := make([]int, len(tokens))
			for i, tok := range tokens {
				got[i] = tok.Clause
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("clauses of %q = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Can't Deal", "cant deal"},
		{"anti-hero", "anti hero"},
		{"  broke   up ", "broke up"},
		{"😭", ""},
	}
	for _, tt := range tests {
		if got := Key(tt.input); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLetterStats(t *testing.T) {
	letters, upper := LetterStats("SO Happy!!! 123")
	if letters != 7 || upper != 3 {
		t.Errorf("LetterStats() = (%d, %d), want (7, 3)", letters, upper)
	}
}
