// Package catalog models recommendable items, derives their content
// categories and stores them by partition.
package catalog

import (
	"strings"

	"github.com/justestif/go-moodmuse/internal/affect"
)

// Item is one recommendable song.
type Item struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Attribution string        `json:"artist"`
	Partition   string        `json:"language"`
	Vector      affect.Vector `json:"vector"`
	// Hints are extra category names, such as Last.fm tags.
	Hints []string `json:"hints,omitempty"`
}

// Key identifies an item by title and artist, ignoring case. Items with the
// same key are duplicates.
func (it Item) Key() string {
	return strings.ToLower(strings.TrimSpace(it.Title)) + "|" + strings.ToLower(strings.TrimSpace(it.Attribution))
}

// DeriveVector blends the archetypes of every category in s with equal
// weight. An empty set yields the chill archetype.
func DeriveVector(s CategorySet) affect.Vector {
	cs := s.Slice()
	if len(cs) == 0 {
		return Chill.Archetype().Vector()
	}
	items := make([]affect.Weighted, len(cs))
	for i, c := range cs {
		items[i] = affect.Weighted{Vector: c.Archetype().Vector(), Weight: 1}
	}
	return affect.Blend(items)
}
