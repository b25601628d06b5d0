package clustering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/catalog"
)

// MoodGroup is a cluster of items with a similar affect.
type MoodGroup struct {
	Name        string         `json:"name"`        // Descriptive name: "Chill & Happy (Nostalgic)"
	Description string         `json:"description"` // Listening note for the quadrant
	Items       []catalog.Item `json:"items"`       // Sorted by artist, then title
	Centroid    affect.Vector  `json:"centroid"`    // Mean vector of the items
	Partitions  map[string]int `json:"partitions"`  // Item count per partition
}

// itemObservation wraps an Item to implement clusters.Observation.
type itemObservation struct {
	item   *catalog.Item
	coords clusters.Coordinates
}

func (o itemObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o itemObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// DetectMoodGroups partitions items by affect vector using k-means.
// Returns groups, largest first, and the outlier items that did not fall
// into a large enough group. When k-means fails every item is an outlier
// and the error is returned alongside.
func DetectMoodGroups(items []catalog.Item, cfg Config) ([]MoodGroup, []catalog.Item, error) {
	if len(items) == 0 {
		return nil, nil, nil
	}
	if cfg.NumGroups <= 0 {
		cfg.NumGroups = DefaultConfig().NumGroups
	}

	// Fewer items than groups cannot be partitioned
	if len(items) < cfg.NumGroups {
		return nil, slices.Clone(items), nil
	}

	obs := make(clusters.Observations, len(items))
	for i := range items {
		obs[i] = itemObservation{item: &items[i], coords: coordinates(items[i].Vector)}
	}

	result, err := kmeans.New().Partition(obs, cfg.NumGroups)
	if err != nil {
		return nil, slices.Clone(items), fmt.Errorf("partitioning items: %w", err)
	}

	var groups []MoodGroup
	var outliers []catalog.Item

	for _, cluster := range result {
		var members []catalog.Item
		for _, o := range cluster.Observations {
			if io, ok := o.(itemObservation); ok {
				members = append(members, *io.item)
			}
		}

		if len(members) < cfg.MinGroupSize {
			outliers = append(outliers, members...)
			continue
		}

		slices.SortFunc(members, func(a, b catalog.Item) int {
			if c := strings.Compare(strings.ToLower(a.Attribution), strings.ToLower(b.Attribution)); c != 0 {
				return c
			}
			return strings.Compare(a.Title, b.Title)
		})

		center := centroid(members)
		groups = append(groups, MoodGroup{
			Name:        generateMoodName(center),
			Description: describeMood(center),
			Items:       members,
			Centroid:    center,
			Partitions:  countPartitions(members),
		})
	}

	slices.SortFunc(groups, func(a, b MoodGroup) int {
		if len(a.Items) != len(b.Items) {
			return len(b.Items) - len(a.Items) // Descending
		}
		return strings.Compare(a.Name, b.Name)
	})

	return groups, outliers, nil
}

// coordinates maps a vector into the unit hypercube, which is where k-means
// places its random initial centers.
func coordinates(v affect.Vector) clusters.Coordinates {
	c := v.Coordinates()
	for i, d := range affect.Dimensions() {
		c[i] = (c[i] - d.Min) / (d.Max - d.Min)
	}
	return c
}

func centroid(items []catalog.Item) affect.Vector {
	ws := make([]affect.Weighted, len(items))
	for i, it := range items {
		ws[i] = affect.Weighted{Vector: it.Vector, Weight: 1}
	}
	return affect.Blend(ws)
}

func countPartitions(items []catalog.Item) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		out[it.Partition]++
	}
	return out
}
