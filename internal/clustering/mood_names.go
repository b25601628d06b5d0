package clustering

import "github.com/justestif/go-moodmuse/internal/affect"

// generateMoodName creates a descriptive name from a group centroid.
// Uses a 2x2 energy/valence quadrant system with a nostalgia modifier.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
//
// Nostalgia modifier: if > 0.6, appends "(Nostalgic)" to the name.
func generateMoodName(centroid affect.Vector) string {
	var baseName string

	highEnergy := centroid.Energy > 0.6
	highValence := centroid.Valence > 0.5

	switch {
	case highEnergy && highValence:
		baseName = "Upbeat Party"
	case highEnergy && !highValence:
		baseName = "Intense & Dark"
	case !highEnergy && highValence:
		baseName = "Chill & Happy"
	default:
		baseName = "Reflective & Melancholy"
	}

	if centroid.Nostalgia > 0.6 {
		return baseName + " (Nostalgic)"
	}
	return baseName
}

// describeMood returns a one-line listening note for a centroid, using
// the same quadrants as generateMoodName.
func describeMood(centroid affect.Vector) string {
	switch {
	case centroid.Energy > 0.6 && centroid.Valence > 0.5:
		return "bright and driving, songs to dance to"
	case centroid.Energy > 0.6:
		return "loud and heavy with a dark edge"
	case centroid.Valence > 0.5:
		return "easygoing and warm, songs to unwind with"
	default:
		return "slow and inward, songs for quiet hours"
	}
}
