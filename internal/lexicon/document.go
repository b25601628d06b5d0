package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justestif/go-moodmuse/internal/textnorm"
)

// document is the on-disk YAML shape of a lexicon.
type document struct {
	Version    int                     `yaml:"version"`
	Fallback   string                  `yaml:"fallback"`
	Confidence Confidence              `yaml:"confidence"`
	Negation   negationDoc             `yaml:"negation"`
	Amplifiers amplifiersDoc           `yaml:"amplifiers"`
	Phrases    map[string]string       `yaml:"phrases"`
	Keywords   map[string]keywordEntry `yaml:"keywords"`
	Emoji      map[string]keywordEntry `yaml:"emoji"`
	Emoticons  map[string]keywordEntry `yaml:"emoticons"`
	Categories map[string][]string     `yaml:"categories"`
}

type negationDoc struct {
	Window  int               `yaml:"window"`
	Damping float64           `yaml:"damping"`
	Markers []string          `yaml:"markers"`
	Flips   map[string]string `yaml:"flips"`
}

type amplifiersDoc struct {
	Words       []string    `yaml:"words"`
	WordBoost   float64     `yaml:"word_boost"`
	Exclamation Exclamation `yaml:"exclamation"`
	Uppercase   Uppercase   `yaml:"uppercase"`
}

// keywordEntry accepts either a bare preset name or a mapping with
// mood, intensity and priority.
type keywordEntry struct {
	Mood      string  `yaml:"mood"`
	Intensity float64 `yaml:"intensity"`
	Priority  float64 `yaml:"priority"`
}

func (k *keywordEntry) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		k.Mood = n.Value
		return nil
	}
	type plain keywordEntry
	return n.Decode((*plain)(k))
}

func (d *document) compile() (*Lexicon, error) {
	lex := &Lexicon{
		Version:    d.Version,
		Confidence: d.Confidence,
		Categories: make(map[string][]string, len(d.Categories)),
	}
	lex.Confidence.applyDefaults()

	fallback := d.Fallback
	if fallback == "" {
		fallback = Content.String()
	}
	p, err := preset(fallback, "fallback")
	if err != nil {
		return nil, err
	}
	lex.Fallback = p

	seen := make(map[string]bool, len(d.Phrases))
	for text, mood := range d.Phrases {
		key := textnorm.Key(text)
		if !strings.Contains(key, " ") {
			return nil, fmt.Errorf("%w: phrase %q must have more than one word", ErrInvalid, text)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate phrase %q", ErrInvalid, key)
		}
		seen[key] = true
		p, err := preset(mood, "phrase "+text)
		if err != nil {
			return nil, err
		}
		lex.Phrases = append(lex.Phrases, Phrase{Text: key, Mood: p})
	}
	sort.Slice(lex.Phrases, func(i, j int) bool {
		return longerFirst(lex.Phrases[i].Text, lex.Phrases[j].Text)
	})

	seen = make(map[string]bool, len(d.Keywords))
	for text, e := range d.Keywords {
		key := textnorm.Key(text)
		if key == "" {
			return nil, fmt.Errorf("%w: keyword %q has no words", ErrInvalid, text)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate keyword %q", ErrInvalid, key)
		}
		seen[key] = true
		p, err := preset(e.Mood, "keyword "+text)
		if err != nil {
			return nil, err
		}
		lex.Keywords = append(lex.Keywords, Keyword{
			Text:      key,
			Words:     strings.Split(key, " "),
			Mood:      p,
			Intensity: orDefault(e.Intensity, 1),
			Priority:  orDefault(e.Priority, p.Weight()),
		})
	}
	sort.Slice(lex.Keywords, func(i, j int) bool {
		return longerFirst(lex.Keywords[i].Text, lex.Keywords[j].Text)
	})

	if lex.Emoji, err = glyphs(d.Emoji, "emoji"); err != nil {
		return nil, err
	}
	if lex.Emoticons, err = glyphs(d.Emoticons, "emoticon"); err != nil {
		return nil, err
	}

	if lex.Negation, err = d.Negation.compile(); err != nil {
		return nil, err
	}
	if lex.Amplifiers, err = d.Amplifiers.compile(); err != nil {
		return nil, err
	}

	for name, words := range d.Categories {
		kept := make([]string, 0, len(words))
		for _, w := range words {
			if w = textnorm.Normalize(w); w != "" {
				kept = append(kept, w)
			}
		}
		lex.Categories[textnorm.Normalize(name)] = kept
	}

	return lex, nil
}

func (n negationDoc) compile() (Negation, error) {
	if n.Window < 0 {
		return Negation{}, fmt.Errorf("%w: negation window %d", ErrInvalid, n.Window)
	}
	if n.Damping < 0 || n.Damping > 1 {
		return Negation{}, fmt.Errorf("%w: negation damping %v outside [0, 1]", ErrInvalid, n.Damping)
	}
	out := Negation{
		Window:  n.Window,
		Damping: n.Damping,
		markers: make(map[string]struct{}, len(n.Markers)),
		flips:   make(map[Preset]Preset, len(n.Flips)),
	}
	if out.Window == 0 {
		out.Window = 3
	}
	if out.Damping == 0 {
		out.Damping = 0.8
	}
	for _, m := range n.Markers {
		if key := textnorm.Key(m); key != "" {
			out.markers[key] = struct{}{}
		}
	}
	for from, to := range n.Flips {
		pf, err := preset(from, "negation flip")
		if err != nil {
			return Negation{}, err
		}
		pt, err := preset(to, "negation flip "+from)
		if err != nil {
			return Negation{}, err
		}
		out.flips[pf] = pt
	}
	return out, nil
}

func (a amplifiersDoc) compile() (Amplifiers, error) {
	out := Amplifiers{
		words:       make(map[string]struct{}, len(a.Words)),
		WordBoost:   orDefault(a.WordBoost, 1),
		Exclamation: a.Exclamation,
		Uppercase:   a.Uppercase,
	}
	if out.Exclamation.Cap < 0 || out.Exclamation.Decay < 0 || out.Exclamation.Step < 0 {
		return Amplifiers{}, fmt.Errorf("%w: negative exclamation settings", ErrInvalid)
	}
	if out.Uppercase.Boost == 0 {
		out.Uppercase.Boost = 1
	}
	for _, w := range a.Words {
		if key := textnorm.Key(w); key != "" {
			out.words[key] = struct{}{}
		}
	}
	return out, nil
}

func glyphs(m map[string]keywordEntry, kind string) ([]Glyph, error) {
	out := make([]Glyph, 0, len(m))
	seen := make(map[string]bool, len(m))
	for text, e := range m {
		key := textnorm.Normalize(text)
		if key == "" {
			return nil, fmt.Errorf("%w: empty %s", ErrInvalid, kind)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate %s %q", ErrInvalid, kind, key)
		}
		seen[key] = true
		p, err := preset(e.Mood, kind+" "+text)
		if err != nil {
			return nil, err
		}
		out = append(out, Glyph{Text: key, Mood: p, Intensity: orDefault(e.Intensity, 1)})
	}
	sort.Slice(out, func(i, j int) bool {
		return longerFirst(out[i].Text, out[j].Text)
	})
	return out, nil
}

func preset(name, where string) (Preset, error) {
	p, ok := ParsePreset(strings.TrimSpace(name))
	if !ok {
		return 0, fmt.Errorf("%w %q in %s", ErrUnknownPreset, name, where)
	}
	return p, nil
}

func longerFirst(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
