// Package textnorm normalizes free text and lexicon entries into a common
// matching form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var replacer = strings.NewReplacer(
	"\u2019", "'",
	"\u2018", "'",
	"\u02bc", "'",
	"`", "'",
	"\ufe0f", "", // emoji presentation selector
	"\ufe0e", "",
)

// Normalize applies NFKC, lower-cases, unifies apostrophes, drops emoji
// variation selectors and collapses whitespace.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	// Casers are not safe for concurrent use, so one is built per call.
	s = cases.Lower(language.Und).String(s)
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Token is one word of normalized text.
type Token struct {
	Raw    string // as written, apostrophes kept
	Word   string // apostrophes removed
	Clause int    // index of the clause the word belongs to
}

// clauseBreaks end a clause when they appear between two words.
const clauseBreaks = ".!?;,"

// clauseWords start a new clause themselves.
var clauseWords = map[string]bool{
	"but":      true,
	"however":  true,
	"though":   true,
	"although": true,
}

// Tokenize splits normalized text into words. A word is a maximal run of
// letters, digits and apostrophes containing at least one letter or digit.
// Words are numbered by clause so callers can keep context from leaking
// across sentence punctuation or a contrasting "but".
func Tokenize(s string) []Token {
	var (
		tokens []Token
		clause int
		brk    bool
	)
	emit := func(raw string) {
		w := strings.ReplaceAll(raw, "'", "")
		if w == "" {
			return
		}
		if len(tokens) > 0 && (brk || clauseWords[w]) {
			clause++
		}
		brk = false
		tokens = append(tokens, Token{Raw: raw, Word: w, Clause: clause})
	}

	start := -1
	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(s[start:i])
			start = -1
		}
		if strings.ContainsRune(clauseBreaks, r) {
			brk = true
		}
	}
	if start >= 0 {
		emit(s[start:])
	}
	return tokens
}

// Words returns the apostrophe-free words of s after normalization.
func Words(s string) []string {
	tokens := Tokenize(Normalize(s))
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Word
	}
	return words
}

// Key is the canonical matching form of a lexicon entry: its words joined
// by single spaces.
func Key(s string) string {
	return strings.Join(Words(s), " ")
}

// LetterStats counts letters and upper-case letters in s as written.
func LetterStats(s string) (letters, upper int) {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return letters, upper
}

func isWordRune(r rune) bool {
	return r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
