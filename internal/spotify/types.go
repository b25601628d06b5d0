package spotify

// Track is a playlist entry with optional audio features.
type Track struct {
	ID     string
	Name   string
	Artist string // Comma-separated artist names
	// Features is nil until fetched, and stays nil when Spotify has none.
	Features *Features
}

// Features is the subset of Spotify audio features that maps onto affect
// dimensions. All values are in [0, 1].
type Features struct {
	Energy       float64
	Valence      float64
	Danceability float64
}
