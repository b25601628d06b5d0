// Package intent shifts a mood toward where the listener wants to go.
package intent

import (
	"math"
	"strings"

	"github.com/justestif/go-moodmuse/internal/affect"
)

// Intent is the direction a listener asked for.
type Intent int

const (
	Stay Intent = iota
	Lift
	Distract
	Surprise
)

// Option describes an intent for display.
type Option struct {
	Intent      Intent `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var options = []Option{
	{Stay, "Stay here", "Keep the current feeling"},
	{Lift, "Lift me gently", "A little more hope"},
	{Distract, "Distract me", "Lighter, easier listening"},
	{Surprise, "Surprise me", "Something different"},
}

// Options returns every intent in declaration order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func (i Intent) String() string {
	switch i {
	case Lift:
		return "lift"
	case Distract:
		return "distract"
	case Surprise:
		return "surprise"
	default:
		return "stay"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (i *Intent) UnmarshalText(b []byte) error {
	*i = Parse(string(b))
	return nil
}

// Parse maps a name to an intent, ignoring case. Unknown names are Stay.
func Parse(s string) Intent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lift":
		return Lift
	case "distract":
		return Distract
	case "surprise":
		return Surprise
	default:
		return Stay
	}
}

// Apply returns v shifted by intent. The result is always clamped.
func Apply(v affect.Vector, i Intent) affect.Vector {
	switch i {
	case Lift:
		v.Hope += 0.35
		v.Energy += 0.1
		v.Melancholy -= 0.15
	case Distract:
		v.Energy += 0.4
		v.Intensity -= 0.3
		v.Tension -= 0.2
		v.Melancholy -= 0.3
		v.Valence += 0.2
	case Surprise:
		v = contrast(v)
	}
	return v.Clamp()
}

// contrast pulls energy toward the middle and softens the mood without
// changing the sign of valence.
func contrast(v affect.Vector) affect.Vector {
	energy := 0.5
	switch {
	case v.Energy < 0.4:
		energy = 0.55
	case v.Energy > 0.7:
		energy = 0.45
	}

	valence := v.Valence * 0.4
	if v.Valence < 0 {
		valence = math.Min(0, valence+0.15)
	}

	return affect.Vector{
		Valence:    valence,
		Energy:     energy,
		Tension:    v.Tension - 0.25,
		Melancholy: v.Melancholy * 0.5,
		Nostalgia:  v.Nostalgia + 0.3,
		Hope:       v.Hope + 0.2,
		Intensity:  math.Max(0.2, v.Intensity-0.3),
		Social:     v.Social,
	}
}

// Describe returns the label shown for a mood under intent.
func Describe(label string, i Intent) string {
	switch i {
	case Lift:
		return label + ", with hope"
	case Distract:
		return "something lighter"
	case Surprise:
		return "a gentle shift"
	default:
		return label
	}
}
