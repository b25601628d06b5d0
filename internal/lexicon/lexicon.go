// Package lexicon holds the mood presets and the phrase, keyword, emoji and
// negation tables the classifiers match against.
//
// Tables are loaded once from YAML into an immutable Lexicon. A compiled-in
// default is available through Default.
package lexicon

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/justestif/go-moodmuse/internal/textnorm"
)

//go:embed default.yaml
var defaultYAML []byte

// Errors returned while loading a lexicon.
var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalid       = errors.New("invalid lexicon")
)

// Lexicon is a compiled, read-only set of matching tables. It is safe for
// concurrent use and must not be modified after loading.
type Lexicon struct {
	Version    int
	Phrases    []Phrase  // longest first
	Keywords   []Keyword // longest first
	Emoji      []Glyph
	Emoticons  []Glyph
	Negation   Negation
	Amplifiers Amplifiers
	Confidence Confidence
	Fallback   Preset
	// Categories maps a catalog category name to its containment keywords.
	Categories map[string][]string
}

// Phrase is a multi-word idiom that decides the classification outright.
type Phrase struct {
	Text string // normalized words joined by single spaces
	Mood Preset
}

// Keyword is a word or short word sequence that votes for a preset.
type Keyword struct {
	Text      string
	Words     []string
	Mood      Preset
	Intensity float64
	Priority  float64
}

// Glyph is an emoji or emoticon that votes for a preset.
type Glyph struct {
	Text      string
	Mood      Preset
	Intensity float64
}

// Negation controls how negated keywords are redirected.
type Negation struct {
	Window  int
	Damping float64
	markers map[string]struct{}
	flips   map[Preset]Preset
}

// IsMarker reports whether tok negates what follows it.
func (n Negation) IsMarker(tok textnorm.Token) bool {
	if _, ok := n.markers[tok.Word]; ok {
		return true
	}
	return strings.HasSuffix(tok.Raw, "n't")
}

// Flip returns the preset a negated vote for p is redirected to. The second
// result is false when the table has no entry for p.
func (n Negation) Flip(p Preset) (Preset, bool) {
	to, ok := n.flips[p]
	return to, ok
}

// Amplifiers are the global intensity multipliers.
type Amplifiers struct {
	words       map[string]struct{}
	WordBoost   float64
	Exclamation Exclamation
	Uppercase   Uppercase
}

// IsAmplifier reports whether word intensifies the whole input.
func (a Amplifiers) IsAmplifier(word string) bool {
	_, ok := a.words[word]
	return ok
}

// Exclamation describes the diminishing boost per '!'.
type Exclamation struct {
	Step  float64 `yaml:"step"`
	Decay float64 `yaml:"decay"`
	Cap   int     `yaml:"cap"`
}

// Uppercase describes the boost applied to shouted input.
type Uppercase struct {
	Threshold  float64 `yaml:"threshold"`
	MinLetters int     `yaml:"min_letters"`
	Boost      float64 `yaml:"boost"`
}

// Confidence holds the confidence assigned to each kind of result.
type Confidence struct {
	Phrase         float64 `yaml:"phrase"`
	Fallback       float64 `yaml:"fallback"`
	Empty          float64 `yaml:"empty"`
	BlendBase      float64 `yaml:"blend_base"`
	BlendPerWeight float64 `yaml:"blend_per_weight"`
	BlendCap       float64 `yaml:"blend_cap"`
}

// DefaultConfidence returns the confidence levels used when a lexicon file
// leaves them unset.
func DefaultConfidence() Confidence {
	return Confidence{
		Phrase:         0.95,
		Fallback:       0.7,
		Empty:          0.1,
		BlendBase:      0.85,
		BlendPerWeight: 0.04,
		BlendCap:       0.94,
	}
}

// applyDefaults fills zero fields from DefaultConfidence.
func (c *Confidence) applyDefaults() {
	d := DefaultConfidence()
	if c.Phrase == 0 {
		c.Phrase = d.Phrase
	}
	if c.Fallback == 0 {
		c.Fallback = d.Fallback
	}
	if c.Empty == 0 {
		c.Empty = d.Empty
	}
	if c.BlendBase == 0 {
		c.BlendBase = d.BlendBase
	}
	if c.BlendPerWeight == 0 {
		c.BlendPerWeight = d.BlendPerWeight
	}
	if c.BlendCap == 0 {
		c.BlendCap = d.BlendCap
	}
}

var loadDefault = sync.OnceValues(func() (*Lexicon, error) {
	return Parse(defaultYAML)
})

// Default returns the compiled-in lexicon. It is parsed once per process.
func Default() (*Lexicon, error) {
	return loadDefault()
}

// LoadFile reads a lexicon from a YAML file.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return Parse(data)
}

// Load reads a lexicon from r.
func Load(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return Parse(data)
}

// Parse compiles a YAML lexicon document.
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing lexicon: %w", err)
	}
	return doc.compile()
}
