package db

import (
	"strings"
	"time"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/catalog"
)

// Song is a row of the songs table.
type Song struct {
	ID        string
	Title     string
	Artist    string
	Language  string
	Vector    []float64 // affect coordinates in dimension order
	Hints     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item converts the row to a catalog item. Short or missing vectors fill
// in dimension defaults.
func (s Song) Item() catalog.Item {
	return catalog.Item{
		ID:          s.ID,
		Title:       s.Title,
		Attribution: s.Artist,
		Partition:   s.Language,
		Vector:      affect.FromCoordinates(s.Vector),
		Hints:       s.Hints,
	}
}

// songFromItem builds a row from a catalog item. Languages are stored
// lower-cased.
func songFromItem(it catalog.Item) Song {
	hints := it.Hints
	if hints == nil {
		hints = []string{}
	}
	return Song{
		ID:       it.ID,
		Title:    it.Title,
		Artist:   it.Attribution,
		Language: strings.ToLower(strings.TrimSpace(it.Partition)),
		Vector:   it.Vector.Clamp().Coordinates(),
		Hints:    hints,
	}
}
