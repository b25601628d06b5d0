// Package mood classifies free text and emoji into an affect vector, a short
// label and a confidence score.
package mood

import (
	"math"
	"strings"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/lexicon"
	"github.com/justestif/go-moodmuse/internal/textnorm"
)

// UndefinedLabel is the label given to blank input.
const UndefinedLabel = "undefined mood"

// Source identifies which pass produced a signal.
type Source string

const (
	SourcePhrase   Source = "phrase"
	SourceKeyword  Source = "keyword"
	SourceEmoji    Source = "emoji"
	SourceEmoticon Source = "emoticon"
	SourceFallback Source = "fallback"
)

// Signal is one piece of evidence behind a classification.
type Signal struct {
	Source  Source         `json:"source"`
	Match   string         `json:"match,omitempty"`
	Preset  lexicon.Preset `json:"preset"`
	Weight  float64        `json:"weight"`
	Negated bool           `json:"negated,omitempty"`
	// Dropped is set for negated keywords with no flip entry.
	Dropped bool `json:"dropped,omitempty"`
}

// Result is the outcome of one classification.
type Result struct {
	Vector     affect.Vector  `json:"vector"`
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
	Dominant   lexicon.Preset `json:"dominant"`
	Signals    []Signal       `json:"signals,omitempty"`
}

// Classifier turns text and emoji into a Result. It is safe for concurrent
// use; all state lives in the read-only lexicon.
type Classifier struct {
	lex *lexicon.Lexicon
}

// NewClassifier creates a classifier backed by lex.
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}

type vote struct {
	preset lexicon.Preset
	weight float64
}

// Classify never fails. Input without any recognizable signal yields the
// lexicon's fallback preset at reduced confidence; blank input yields the
// neutral vector.
func (c *Classifier) Classify(text, emoji string) Result {
	buf := textnorm.Normalize(text + " " + emoji)
	if buf == "" {
		return Result{
			Vector:     affect.Neutral(),
			Label:      UndefinedLabel,
			Confidence: c.lex.Confidence.Empty,
			Dominant:   c.lex.Fallback,
		}
	}

	tokens := textnorm.Tokenize(buf)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Word
	}

	if r, ok := c.matchPhrase(words); ok {
		return r
	}

	var signals []Signal
	var votes []vote

	kwVotes, kwSignals := c.matchKeywords(tokens, words)
	votes = append(votes, kwVotes...)
	signals = append(signals, kwSignals...)

	glyphVotes, glyphSignals := c.matchGlyphs(buf)
	votes = append(votes, glyphVotes...)
	signals = append(signals, glyphSignals...)

	if len(votes) == 0 {
		fb := c.lex.Fallback
		signals = append(signals, Signal{Source: SourceFallback, Preset: fb})
		return Result{
			Vector:     fb.Vector(),
			Label:      fb.Label(),
			Confidence: c.lex.Confidence.Fallback,
			Dominant:   fb,
			Signals:    signals,
		}
	}

	boost := c.amplification(text, buf, words)
	for i := range votes {
		votes[i].weight *= boost
	}
	return c.aggregate(votes, signals)
}

func (c *Classifier) matchPhrase(words []string) (Result, bool) {
	padded := " " + strings.Join(words, " ") + " "
	for _, ph := range c.lex.Phrases {
		if !strings.Contains(padded, " "+ph.Text+" ") {
			continue
		}
		return Result{
			Vector:     ph.Mood.Vector(),
			Label:      ph.Mood.Label(),
			Confidence: c.lex.Confidence.Phrase,
			Dominant:   ph.Mood,
			Signals: []Signal{{
				Source: SourcePhrase,
				Match:  ph.Text,
				Preset: ph.Mood,
				Weight: ph.Mood.Weight(),
			}},
		}, true
	}
	return Result{}, false
}

// matchKeywords walks keywords longest first. A keyword contained in an
// already accepted longer keyword is skipped. Every occurrence votes on
// its own, so a negation only affects the occurrence it precedes.
func (c *Classifier) matchKeywords(tokens []textnorm.Token, words []string) ([]vote, []Signal) {
	var (
		votes    []vote
		signals  []Signal
		accepted []string
	)
	for _, kw := range c.lex.Keywords {
		positions := indexAllWords(words, kw.Words)
		if len(positions) == 0 || containedIn(kw.Text, accepted) {
			continue
		}
		accepted = append(accepted, kw.Text)

		for _, pos := range positions {
			sig := Signal{Source: SourceKeyword, Match: kw.Text, Preset: kw.Mood}
			weight := kw.Intensity * kw.Priority

			if c.negated(tokens, pos) {
				sig.Negated = true
				to, ok := c.lex.Negation.Flip(kw.Mood)
				if !ok {
					sig.Dropped = true
					signals = append(signals, sig)
					continue
				}
				sig.Preset = to
				weight *= c.lex.Negation.Damping
			}

			sig.Weight = weight
			signals = append(signals, sig)
			votes = append(votes, vote{preset: sig.Preset, weight: weight})
		}
	}
	return votes, signals
}

// negated reports whether a negation marker appears within the window of
// tokens before pos. The scan stops at the start of pos's clause.
func (c *Classifier) negated(tokens []textnorm.Token, pos int) bool {
	start := max(0, pos-c.lex.Negation.Window)
	for i := pos - 1; i >= start; i-- {
		if tokens[i].Clause != tokens[pos].Clause {
			return false
		}
		if c.lex.Negation.IsMarker(tokens[i]) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchGlyphs(buf string) ([]vote, []Signal) {
	var (
		votes   []vote
		signals []Signal
	)
	add := func(src Source, g lexicon.Glyph) {
		w := g.Intensity * g.Mood.Weight()
		votes = append(votes, vote{preset: g.Mood, weight: w})
		signals = append(signals, Signal{Source: src, Match: g.Text, Preset: g.Mood, Weight: w})
	}

	for _, g := range c.lex.Emoji {
		if strings.Contains(buf, g.Text) {
			add(SourceEmoji, g)
		}
	}

	// Emoticons are ASCII and only count as standalone fields, so "xd"
	// inside a word or ":/" inside a URL never matches.
	fields := make(map[string]struct{})
	for _, f := range strings.Fields(buf) {
		fields[f] = struct{}{}
	}
	for _, g := range c.lex.Emoticons {
		if _, ok := fields[g.Text]; ok {
			add(SourceEmoticon, g)
		}
	}
	return votes, signals
}

// amplification is the global multiplier from exclamation marks, shouting
// and amplifier words.
func (c *Classifier) amplification(text, buf string, words []string) float64 {
	amp := c.lex.Amplifiers
	m := 1.0

	n := min(strings.Count(buf, "!"), amp.Exclamation.Cap)
	for i := 0; i < n; i++ {
		m += amp.Exclamation.Step * math.Pow(amp.Exclamation.Decay, float64(i))
	}

	letters, upper := textnorm.LetterStats(text)
	if amp.Uppercase.Threshold > 0 && letters >= amp.Uppercase.MinLetters && letters > 0 &&
		float64(upper)/float64(letters) >= amp.Uppercase.Threshold {
		m *= amp.Uppercase.Boost
	}

	for _, w := range words {
		if amp.IsAmplifier(w) {
			m *= amp.WordBoost
			break
		}
	}
	return m
}

// aggregate blends every voted preset by its share of the total weight.
func (c *Classifier) aggregate(votes []vote, signals []Signal) Result {
	var totals [lexicon.NumPresets]float64
	var total float64
	for _, v := range votes {
		totals[v.preset] += v.weight
		total += v.weight
	}

	items := make([]affect.Weighted, 0, len(votes))
	dominant := lexicon.Preset(-1)
	for i, w := range totals {
		if w <= 0 {
			continue
		}
		p := lexicon.Preset(i)
		items = append(items, affect.Weighted{Vector: p.Vector(), Weight: w})
		if dominant < 0 || heavier(p, w, dominant, totals[dominant]) {
			dominant = p
		}
	}

	conf := c.lex.Confidence
	return Result{
		Vector:     affect.Blend(items),
		Label:      dominant.Label(),
		Confidence: math.Min(conf.BlendCap, conf.BlendBase+conf.BlendPerWeight*total),
		Dominant:   dominant,
		Signals:    signals,
	}
}

// heavier orders presets by accumulated weight, then priority weight.
// Presets are visited in declaration order, so remaining ties keep the
// earlier one.
func heavier(p lexicon.Preset, w float64, q lexicon.Preset, qw float64) bool {
	if w != qw {
		return w > qw
	}
	return p.Weight() > q.Weight()
}

// indexAllWords returns the start of every non-overlapping occurrence of
// seq in words.
func indexAllWords(words, seq []string) []int {
	if len(seq) == 0 {
		return nil
	}
	var out []int
outer:
	for i := 0; i+len(seq) <= len(words); i++ {
		for j, s := range seq {
			if words[i+j] != s {
				continue outer
			}
		}
		out = append(out, i)
		i += len(seq) - 1
	}
	return out
}

func containedIn(s string, longer []string) bool {
	for _, l := range longer {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}
