package affect

import (
	"math"
	"testing"
)

func TestClamp_Defaults(t *testing.T) {
	got := Clamp(Partial{})
	want := Vector{
		Valence: 0, Energy: 0.5, Tension: 0.2, Melancholy: 0.2,
		Nostalgia: 0.2, Hope: 0.5, Intensity: 0.3, Social: 0,
	}
	if got != want {
		t.Errorf("Clamp(empty) = %+v, want %+v", got, want)
	}
	if Neutral() != want {
		t.Errorf("Neutral() = %+v, want %+v", Neutral(), want)
	}
}

func TestClamp_Ranges(t *testing.T) {
	tests := []struct {
		name string
		in   Partial
		want Vector
	}{
		{
			name: "above max",
			in: Partial{
				Valence: Float(3), Energy: Float(2), Tension: Float(1.5), Melancholy: Float(9),
				Nostalgia: Float(1.01), Hope: Float(4), Intensity: Float(7), Social: Float(2),
			},
			want: Vector{Valence: 1, Energy: 1, Tension: 1, Melancholy: 1, Nostalgia: 1, Hope: 1, Intensity: 1, Social: 1},
		},
		{
			name: "below min",
			in: Partial{
				Valence: Float(-3), Energy: Float(-1), Tension: Float(-0.5), Melancholy: Float(-9),
				Nostalgia: Float(-0.01), Hope: Float(-4), Intensity: Float(-7), Social: Float(-2),
			},
			want: Vector{Valence: -1, Social: -1},
		},
		{
			name: "NaN and Inf become defaults",
			in: Partial{
				Valence: Float(math.NaN()), Energy: Float(math.Inf(1)), Tension: Float(math.Inf(-1)),
			},
			want: Neutral(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.in)
			if got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClamp_Idempotent(t *testing.T) {
	inputs := []Vector{
		{Valence: 5, Energy: -2, Tension: 0.3, Social: -7},
		{Valence: math.NaN(), Hope: math.Inf(1)},
		Neutral(),
		{Valence: -1, Energy: 1, Tension: 1, Melancholy: 1, Nostalgia: 1, Hope: 1, Intensity: 1, Social: 1},
	}
	for _, v := range inputs {
		once := v.Clamp()
		twice := once.Clamp()
		if once != twice {
			t.Errorf("Clamp not idempotent: %+v then %+v", once, twice)
		}
		if Clamp(once.Partial()) != once {
			t.Errorf("Clamp(Partial) of clamped vector changed it: %+v", once)
		}
	}
}

func TestSimilarity(t *testing.T) {
	a := Vector{Valence: 0.8, Energy: 0.9, Tension: 0.2, Hope: 0.7, Intensity: 0.8, Social: 0.9}
	b := Vector{Valence: -0.6, Energy: 0.2, Melancholy: 0.9, Nostalgia: 0.5, Intensity: 0.4}

	t.Run("identical vectors", func(t *testing.T) {
		for _, v := range []Vector{a, b, Neutral()} {
			if got := Similarity(v, v); math.Abs(got-1) > 1e-12 {
				t.Errorf("Similarity(v, v) = %v, want 1", got)
			}
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		if Similarity(a, b) != Similarity(b, a) {
			t.Errorf("Similarity not symmetric: %v vs %v", Similarity(a, b), Similarity(b, a))
		}
	})

	t.Run("zero vector", func(t *testing.T) {
		if got := Similarity(Vector{}, a); got != 0 {
			t.Errorf("Similarity(zero, a) = %v, want 0", got)
		}
		if got := Similarity(Vector{}, Vector{}); got != 0 {
			t.Errorf("Similarity(zero, zero) = %v, want 0", got)
		}
	})

	t.Run("opposite vectors", func(t *testing.T) {
		x := Vector{Valence: 1, Social: 1}
		y := Vector{Valence: -1, Social: -1}
		if got := Similarity(x, y); math.Abs(got) > 1e-12 {
			t.Errorf("Similarity(opposite) = %v, want 0", got)
		}
	})

	t.Run("range", func(t *testing.T) {
		got := Similarity(a, b)
		if got < 0 || got > 1 {
			t.Errorf("Similarity = %v, out of [0, 1]", got)
		}
	})
}

func TestInterpolate(t *testing.T) {
	a := Vector{Valence: -0.3, Energy: 0.1, Tension: 0.7, Melancholy: 0.9, Nostalgia: 0.33, Hope: 0.1, Intensity: 0.6, Social: -0.2}
	b := Vector{Valence: 0.7, Energy: 0.9, Tension: 0.1, Melancholy: 0.1, Nostalgia: 0.2, Hope: 0.9, Intensity: 0.4, Social: 0.8}

	if got := Interpolate(a, b, 0); got != a {
		t.Errorf("Interpolate(a, b, 0) = %+v, want %+v", got, a)
	}
	if got := Interpolate(a, b, 1); got != b {
		t.Errorf("Interpolate(a, b, 1) = %+v, want %+v", got, b)
	}
	if got := Interpolate(a, b, -3); got != a {
		t.Errorf("Interpolate(a, b, -3) = %+v, want start", got)
	}
	if got := Interpolate(a, b, 7); got != b {
		t.Errorf("Interpolate(a, b, 7) = %+v, want end", got)
	}

	mid := Interpolate(a, b, 0.5)
	if math.Abs(mid.Valence-0.2) > 1e-9 || math.Abs(mid.Energy-0.5) > 1e-9 {
		t.Errorf("Interpolate(a, b, 0.5) = %+v, want valence 0.2 energy 0.5", mid)
	}
}

func TestCoordinatesRoundTrip(t *testing.T) {
	v := Vector{Valence: -0.4, Energy: 0.6, Tension: 0.3, Melancholy: 0.2, Nostalgia: 0.8, Hope: 0.5, Intensity: 0.1, Social: 0.4}
	coords := v.Coordinates()
	if len(coords) != NumDimensions {
		t.Fatalf("len(Coordinates()) = %d, want %d", len(coords), NumDimensions)
	}
	if got := FromCoordinates(coords); got != v {
		t.Errorf("FromCoordinates(Coordinates()) = %+v, want %+v", got, v)
	}

	short := FromCoordinates([]float64{0.5})
	if short.Valence != 0.5 || short.Energy != 0.5 || short.Hope != 0.5 {
		t.Errorf("FromCoordinates(short) = %+v, want defaults after valence", short)
	}
}

func TestBlend(t *testing.T) {
	a := Vector{Valence: 1, Energy: 1}
	b := Vector{Valence: -1, Energy: 0}

	got := Blend([]Weighted{{Vector: a, Weight: 3}, {Vector: b, Weight: 1}})
	if math.Abs(got.Valence-0.5) > 1e-9 || math.Abs(got.Energy-0.75) > 1e-9 {
		t.Errorf("Blend = %+v, want valence 0.5 energy 0.75", got)
	}

	if got := Blend(nil); got != Neutral() {
		t.Errorf("Blend(nil) = %+v, want Neutral", got)
	}
	if got := Blend([]Weighted{{Vector: a, Weight: 0}}); got != Neutral() {
		t.Errorf("Blend(zero weights) = %+v, want Neutral", got)
	}
}

func TestDimensions(t *testing.T) {
	dims := Dimensions()
	if len(dims) != NumDimensions {
		t.Fatalf("len(Dimensions()) = %d, want %d", len(dims), NumDimensions)
	}
	dims[0].Name = "mutated"
	if Dimensions()[0].Name != "valence" {
		t.Error("Dimensions() exposes internal table")
	}
}
