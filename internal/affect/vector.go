// Package affect implements the 8-dimensional affect representation and the
// numeric operations used by classification, ranking and sequencing.
package affect

import "math"

// Vector is an emotional state. Every field is always within its range:
// Valence and Social in [-1, 1], all others in [0, 1].
type Vector struct {
	Valence    float64 `json:"valence" yaml:"valence"`
	Energy     float64 `json:"energy" yaml:"energy"`
	Tension    float64 `json:"tension" yaml:"tension"`
	Melancholy float64 `json:"melancholy" yaml:"melancholy"`
	Nostalgia  float64 `json:"nostalgia" yaml:"nostalgia"`
	Hope       float64 `json:"hope" yaml:"hope"`
	Intensity  float64 `json:"intensity" yaml:"intensity"`
	Social     float64 `json:"social" yaml:"social"`
}

// Partial is a vector whose fields may be missing. Missing fields take the
// dimension default when clamped.
type Partial struct {
	Valence    *float64 `json:"valence,omitempty" yaml:"valence,omitempty"`
	Energy     *float64 `json:"energy,omitempty" yaml:"energy,omitempty"`
	Tension    *float64 `json:"tension,omitempty" yaml:"tension,omitempty"`
	Melancholy *float64 `json:"melancholy,omitempty" yaml:"melancholy,omitempty"`
	Nostalgia  *float64 `json:"nostalgia,omitempty" yaml:"nostalgia,omitempty"`
	Hope       *float64 `json:"hope,omitempty" yaml:"hope,omitempty"`
	Intensity  *float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Social     *float64 `json:"social,omitempty" yaml:"social,omitempty"`
}

// Dimension describes one field of a Vector.
type Dimension struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// dimensions is in coordinate order.
var dimensions = [...]Dimension{
	{Name: "valence", Min: -1, Max: 1, Default: 0},
	{Name: "energy", Min: 0, Max: 1, Default: 0.5},
	{Name: "tension", Min: 0, Max: 1, Default: 0.2},
	{Name: "melancholy", Min: 0, Max: 1, Default: 0.2},
	{Name: "nostalgia", Min: 0, Max: 1, Default: 0.2},
	{Name: "hope", Min: 0, Max: 1, Default: 0.5},
	{Name: "intensity", Min: 0, Max: 1, Default: 0.3},
	{Name: "social", Min: -1, Max: 1, Default: 0},
}

// NumDimensions is the number of fields in a Vector.
const NumDimensions = len(dimensions)

// Dimensions returns the field descriptions in coordinate order.
func Dimensions() []Dimension {
	out := make([]Dimension, NumDimensions)
	copy(out, dimensions[:])
	return out
}

// Neutral returns the vector with every field at its default.
func Neutral() Vector {
	return Clamp(Partial{})
}

// Float returns a pointer to f, for building Partial values.
func Float(f float64) *float64 {
	return &f
}

// Clamp fills missing fields with defaults and clamps every field into range.
// NaN and infinite values are treated as missing. It never fails.
func Clamp(p Partial) Vector {
	fields := [NumDimensions]*float64{
		p.Valence, p.Energy, p.Tension, p.Melancholy,
		p.Nostalgia, p.Hope, p.Intensity, p.Social,
	}
	var coords [NumDimensions]float64
	for i, f := range fields {
		if f == nil {
			coords[i] = dimensions[i].Default
			continue
		}
		coords[i] = clampField(i, *f)
	}
	return fromArray(coords)
}

// Clamp returns v with every field forced into range. Clamp is idempotent.
func (v Vector) Clamp() Vector {
	coords := v.array()
	for i := range coords {
		coords[i] = clampField(i, coords[i])
	}
	return fromArray(coords)
}

// Partial returns v with every field present.
func (v Vector) Partial() Partial {
	return Partial{
		Valence:    Float(v.Valence),
		Energy:     Float(v.Energy),
		Tension:    Float(v.Tension),
		Melancholy: Float(v.Melancholy),
		Nostalgia:  Float(v.Nostalgia),
		Hope:       Float(v.Hope),
		Intensity:  Float(v.Intensity),
		Social:     Float(v.Social),
	}
}

// Coordinates returns the fields in dimension order.
func (v Vector) Coordinates() []float64 {
	a := v.array()
	return a[:]
}

// FromCoordinates builds a clamped vector from coordinates in dimension order.
// Missing trailing coordinates take their defaults.
func FromCoordinates(coords []float64) Vector {
	var p Partial
	ptrs := [NumDimensions]**float64{
		&p.Valence, &p.Energy, &p.Tension, &p.Melancholy,
		&p.Nostalgia, &p.Hope, &p.Intensity, &p.Social,
	}
	for i := 0; i < NumDimensions && i < len(coords); i++ {
		*ptrs[i] = Float(coords[i])
	}
	return Clamp(p)
}

// Similarity is the cosine similarity of a and b remapped to [0, 1].
// It is 0 when either vector has zero magnitude.
func Similarity(a, b Vector) float64 {
	x, y := a.array(), b.array()
	var dot, nx, ny float64
	for i := range x {
		dot += x[i] * y[i]
		nx += x[i] * x[i]
		ny += y[i] * y[i]
	}
	if nx == 0 || ny == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(nx) * math.Sqrt(ny))
	return math.Max(0, math.Min(1, (cos+1)/2))
}

// Interpolate moves linearly from start to end. t is clamped to [0, 1];
// t=0 returns start and t=1 returns end exactly.
func Interpolate(start, end Vector, t float64) Vector {
	switch {
	case math.IsNaN(t) || t <= 0:
		return start
	case t >= 1:
		return end
	}
	s, e := start.array(), end.array()
	var out [NumDimensions]float64
	for i := range s {
		out[i] = clampField(i, s[i]+(e[i]-s[i])*t)
	}
	return fromArray(out)
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Vector) float64 {
	x, y := a.array(), b.array()
	var sum float64
	for i := range x {
		d := x[i] - y[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func clampField(i int, f float64) float64 {
	d := dimensions[i]
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return d.Default
	}
	return math.Max(d.Min, math.Min(d.Max, f))
}

func (v Vector) array() [NumDimensions]float64 {
	return [NumDimensions]float64{
		v.Valence, v.Energy, v.Tension, v.Melancholy,
		v.Nostalgia, v.Hope, v.Intensity, v.Social,
	}
}

func fromArray(a [NumDimensions]float64) Vector {
	return Vector{
		Valence:    a[0],
		Energy:     a[1],
		Tension:    a[2],
		Melancholy: a[3],
		Nostalgia:  a[4],
		Hope:       a[5],
		Intensity:  a[6],
		Social:     a[7],
	}
}
