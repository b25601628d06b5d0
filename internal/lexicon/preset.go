package lexicon

import (
	"fmt"

	"github.com/justestif/go-moodmuse/internal/affect"
)

// Archetype is one of the reference affect profiles presets are built from.
type Archetype int

const (
	ArchetypeSad Archetype = iota
	ArchetypeHeartbreak
	ArchetypeRomantic
	ArchetypeParty
	ArchetypeHappy
	ArchetypeChill
	ArchetypeMotivational
	ArchetypeNostalgic
	numArchetypes
)

var archetypes = [numArchetypes]struct {
	name   string
	vector affect.Vector
}{
	ArchetypeSad:          {"sad", affect.Vector{Valence: 0.2, Energy: 0.25, Tension: 0.5, Melancholy: 0.9, Nostalgia: 0.5, Hope: 0.2, Intensity: 0.4, Social: 0.1}},
	ArchetypeHeartbreak:   {"heartbreak", affect.Vector{Valence: 0.15, Energy: 0.3, Tension: 0.7, Melancholy: 0.95, Nostalgia: 0.6, Hope: 0.1, Intensity: 0.8, Social: 0.1}},
	ArchetypeRomantic:     {"romantic", affect.Vector{Valence: 0.75, Energy: 0.4, Tension: 0.1, Melancholy: 0.1, Nostalgia: 0.3, Hope: 0.9, Intensity: 0.5, Social: 0.8}},
	ArchetypeParty:        {"party", affect.Vector{Valence: 0.9, Energy: 0.95, Tension: 0.2, Melancholy: 0.1, Nostalgia: 0.1, Hope: 0.7, Intensity: 0.8, Social: 0.9}},
	ArchetypeHappy:        {"happy", affect.Vector{Valence: 0.85, Energy: 0.7, Tension: 0.1, Melancholy: 0.1, Nostalgia: 0.2, Hope: 0.8, Intensity: 0.5, Social: 0.8}},
	ArchetypeChill:        {"chill", affect.Vector{Valence: 0.65, Energy: 0.3, Tension: 0.1, Melancholy: 0.1, Nostalgia: 0.3, Hope: 0.6, Intensity: 0.2, Social: 0.4}},
	ArchetypeMotivational: {"motivational", affect.Vector{Valence: 0.8, Energy: 0.85, Tension: 0.3, Melancholy: 0.1, Nostalgia: 0.1, Hope: 0.9, Intensity: 0.7, Social: 0.7}},
	ArchetypeNostalgic:    {"nostalgic", affect.Vector{Valence: 0.5, Energy: 0.3, Tension: 0.2, Melancholy: 0.6, Nostalgia: 0.9, Hope: 0.4, Intensity: 0.3, Social: 0.3}},
}

// Vector returns the archetype's reference vector.
func (a Archetype) Vector() affect.Vector {
	if a < 0 || a >= numArchetypes {
		return affect.Neutral()
	}
	return archetypes[a].vector
}

func (a Archetype) String() string {
	if a < 0 || a >= numArchetypes {
		return fmt.Sprintf("Archetype(%d)", int(a))
	}
	return archetypes[a].name
}

// Preset is a named mood classification target. The set is closed.
type Preset int

const (
	Ecstatic Preset = iota
	Happy
	Excited
	Playful
	Proud
	Inspired
	Content
	Peaceful
	Grateful
	Calm
	Love
	Romantic
	Affectionate
	Sad
	Heartbroken
	Grief
	Lonely
	Depressed
	Cry
	Anxious
	Stressed
	Worried
	Overwhelmed
	Angry
	Frustrated
	Nostalgic
	Miss
	Tired
	Exhausted
	Bored
	Empty
	Serious
	Focused
	Melancholic
	Motivated
	Confused
	numPresets
)

// NumPresets is the number of defined presets.
const NumPresets = int(numPresets)

type presetDef struct {
	name      string
	label     string
	archetype Archetype
	override  affect.Partial
	weight    float64
}

var fv = affect.Float

var presetDefs = [numPresets]presetDef{
	Ecstatic:     {"ecstatic", "pure ecstasy", ArchetypeParty, affect.Partial{}, 1.2},
	Happy:        {"happy", "joyful warmth", ArchetypeHappy, affect.Partial{}, 1.0},
	Excited:      {"excited", "buzzing excitement", ArchetypeParty, affect.Partial{Tension: fv(0.3)}, 1.1},
	Playful:      {"playful", "playful energy", ArchetypeHappy, affect.Partial{}, 1.0},
	Proud:        {"proud", "quiet pride", ArchetypeMotivational, affect.Partial{}, 1.0},
	Inspired:     {"inspired", "creative inspiration", ArchetypeMotivational, affect.Partial{}, 1.1},
	Content:      {"content", "gentle contentment", ArchetypeChill, affect.Partial{}, 0.9},
	Peaceful:     {"peaceful", "serene peace", ArchetypeChill, affect.Partial{Energy: fv(0.2)}, 1.0},
	Grateful:     {"grateful", "deep gratitude", ArchetypeChill, affect.Partial{}, 1.0},
	Calm:         {"calm", "calm vibes", ArchetypeChill, affect.Partial{}, 1.0},
	Love:         {"love", "tender love", ArchetypeRomantic, affect.Partial{}, 1.2},
	Romantic:     {"romantic", "romantic longing", ArchetypeRomantic, affect.Partial{}, 1.1},
	Affectionate: {"affectionate", "warm affection", ArchetypeRomantic, affect.Partial{}, 1.0},
	Sad:          {"sad", "quiet sadness", ArchetypeSad, affect.Partial{}, 1.0},
	Heartbroken:  {"heartbroken", "shattered heart", ArchetypeHeartbreak, affect.Partial{}, 1.3},
	Grief:        {"grief", "heavy grief", ArchetypeHeartbreak, affect.Partial{Energy: fv(0.2)}, 1.3},
	Lonely:       {"lonely", "aching loneliness", ArchetypeSad, affect.Partial{Social: fv(-0.5)}, 1.1},
	Depressed:    {"depressed", "deep depression", ArchetypeSad, affect.Partial{Energy: fv(0.1)}, 1.2},
	Cry:          {"cry", "need to cry", ArchetypeSad, affect.Partial{}, 1.2},
	Anxious:      {"anxious", "racing anxiety", ArchetypeSad, affect.Partial{Tension: fv(0.8), Energy: fv(0.6)}, 1.1},
	Stressed:     {"stressed", "crushing stress", ArchetypeSad, affect.Partial{Tension: fv(0.9), Energy: fv(0.7)}, 1.1},
	Worried:      {"worried", "nagging worry", ArchetypeSad, affect.Partial{Tension: fv(0.7)}, 1.0},
	Overwhelmed:  {"overwhelmed", "total overwhelm", ArchetypeHeartbreak, affect.Partial{Tension: fv(0.9)}, 1.2},
	Angry:        {"angry", "burning anger", ArchetypeHeartbreak, affect.Partial{Energy: fv(0.8), Tension: fv(0.9)}, 1.1},
	Frustrated:   {"frustrated", "building frustration", ArchetypeHeartbreak, affect.Partial{Energy: fv(0.7), Tension: fv(0.8)}, 1.0},
	Nostalgic:    {"nostalgic", "nostalgia", ArchetypeNostalgic, affect.Partial{}, 1.0},
	Miss:         {"miss", "missing someone", ArchetypeNostalgic, affect.Partial{}, 1.0},
	Tired:        {"tired", "deep tiredness", ArchetypeChill, affect.Partial{Energy: fv(0.1)}, 1.0},
	Exhausted:    {"exhausted", "complete exhaustion", ArchetypeSad, affect.Partial{Energy: fv(0.1)}, 1.1},
	Bored:        {"bored", "boredom", ArchetypeChill, affect.Partial{Energy: fv(0.2), Valence: fv(0.4)}, 0.9},
	Empty:        {"empty", "feeling empty", ArchetypeSad, affect.Partial{Melancholy: fv(0.8)}, 1.1},
	Serious:      {"serious", "serious focus", ArchetypeChill, affect.Partial{}, 0.9},
	Focused:      {"focused", "laser focus", ArchetypeMotivational, affect.Partial{}, 1.0},
	Melancholic:  {"melancholic", "melancholic thoughts", ArchetypeNostalgic, affect.Partial{}, 1.0},
	Motivated:    {"motivated", "fired up", ArchetypeMotivational, affect.Partial{}, 1.2},
	Confused:     {"confused", "confused but okay", ArchetypeChill, affect.Partial{Tension: fv(0.5)}, 0.8},
}

var (
	presetVectors [numPresets]affect.Vector
	presetByName  = make(map[string]Preset, numPresets)
)

func init() {
	for p := Preset(0); p < numPresets; p++ {
		def := presetDefs[p]
		presetVectors[p] = merge(def.archetype.Vector(), def.override)
		presetByName[def.name] = p
	}
}

// merge overlays the present fields of o onto base.
func merge(base affect.Vector, o affect.Partial) affect.Vector {
	p := base.Partial()
	if o.Valence != nil {
		p.Valence = o.Valence
	}
	if o.Energy != nil {
		p.Energy = o.Energy
	}
	if o.Tension != nil {
		p.Tension = o.Tension
	}
	if o.Melancholy != nil {
		p.Melancholy = o.Melancholy
	}
	if o.Nostalgia != nil {
		p.Nostalgia = o.Nostalgia
	}
	if o.Hope != nil {
		p.Hope = o.Hope
	}
	if o.Intensity != nil {
		p.Intensity = o.Intensity
	}
	if o.Social != nil {
		p.Social = o.Social
	}
	return affect.Clamp(p)
}

// Presets returns every preset in declaration order.
func Presets() []Preset {
	out := make([]Preset, numPresets)
	for i := range out {
		out[i] = Preset(i)
	}
	return out
}

// ParsePreset looks a preset up by its lexicon name.
func ParsePreset(name string) (Preset, bool) {
	p, ok := presetByName[name]
	return p, ok
}

// Valid reports whether p is a defined preset.
func (p Preset) Valid() bool {
	return p >= 0 && p < numPresets
}

func (p Preset) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetDefs[p].name
}

// Label is the short human description shown for a classification.
func (p Preset) Label() string {
	if !p.Valid() {
		return ""
	}
	return presetDefs[p].label
}

// Vector is the canonical affect vector of the preset.
func (p Preset) Vector() affect.Vector {
	if !p.Valid() {
		return affect.Neutral()
	}
	return presetVectors[p]
}

// Weight is the preset's priority weight applied to every vote it receives.
func (p Preset) Weight() float64 {
	if !p.Valid() {
		return 0
	}
	return presetDefs[p].weight
}

// Archetype is the reference profile the preset is derived from.
func (p Preset) Archetype() Archetype {
	if !p.Valid() {
		return ArchetypeChill
	}
	return presetDefs[p].archetype
}

// MarshalText implements encoding.TextMarshaler.
func (p Preset) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid preset %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preset) UnmarshalText(b []byte) error {
	v, ok := ParsePreset(string(b))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, string(b))
	}
	*p = v
	return nil
}
