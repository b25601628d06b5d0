// Package ranking scores catalog items against a target mood and selects
// diverse, balanced or gradually shifting lists from them.
//
// Every function is deterministic: equal scores are ordered by item ID.
package ranking

import (
	"sort"
	"strings"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/catalog"
)

// Default score adjustments.
const (
	DefaultBonus   = 0.5
	DefaultPenalty = 0.3
)

// Candidate is a scored catalog item.
type Candidate struct {
	Item       catalog.Item        `json:"item"`
	Score      float64             `json:"score"`
	Categories catalog.CategorySet `json:"categories"`
}

// IDSet is a set of item IDs.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in s. A nil set is empty.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns a copy of s that is safe to modify.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Ranker scores items by similarity plus category adjustments. It is safe
// for concurrent use.
type Ranker struct {
	// Bonus is added when an item shares a category with the preferred set.
	Bonus float64
	// Penalty is subtracted from happy or party items when the preferred
	// set is in the sad family.
	Penalty float64

	cache *catalog.Cache
}

// NewRanker creates a ranker with the default adjustments. Item categories
// come from cache.
func NewRanker(cache *catalog.Cache) *Ranker {
	return &Ranker{
		Bonus:   DefaultBonus,
		Penalty: DefaultPenalty,
		cache:   cache,
	}
}

// Rank scores every item not in excluded and sorts by score, best first.
func (r *Ranker) Rank(target affect.Vector, items []catalog.Item, excluded IDSet, preferred catalog.CategorySet) []Candidate {
	negative := false
	for _, c := range preferred.Slice() {
		if c.Negative() {
			negative = true
			break
		}
	}

	out := make([]Candidate, 0, len(items))
	for _, it := range items {
		if excluded.Has(it.ID) {
			continue
		}
		cats := r.cache.Categories(it).OrNeutral()
		score := affect.Similarity(target, it.Vector)
		if cats.Intersects(preferred) {
			score += r.Bonus
		}
		if negative && (cats.Has(catalog.Happy) || cats.Has(catalog.Party)) {
			score -= r.Penalty
		}
		out = append(out, Candidate{Item: it, Score: score, Categories: cats})
	}

	sort.Slice(out, func(i, j int) bool {
		return better(out[i], out[j])
	})
	return out
}

// Top ranks items and keeps at most limit of them, preferring distinct
// artists.
func (r *Ranker) Top(target affect.Vector, items []catalog.Item, excluded IDSet, preferred catalog.CategorySet, limit int) []Candidate {
	return SelectDiverse(r.Rank(target, items, excluded, preferred), limit)
}

// SelectDiverse takes the best candidate per artist first, then fills any
// remaining slots from ranked in order. ranked must be sorted best first.
// Items without an attribution are each treated as their own artist.
func SelectDiverse(ranked []Candidate, limit int) []Candidate {
	if limit <= 0 {
		return nil
	}
	limit = min(limit, len(ranked))
	out := make([]Candidate, 0, limit)
	used := make([]bool, len(ranked))
	artists := make(map[string]bool)

	for i, c := range ranked {
		if len(out) == limit {
			return out
		}
		a := artistKey(c.Item)
		if artists[a] {
			continue
		}
		artists[a] = true
		used[i] = true
		out = append(out, c)
	}

	for i, c := range ranked {
		if len(out) == limit {
			break
		}
		if !used[i] {
			out = append(out, c)
		}
	}
	return out
}

func artistKey(it catalog.Item) string {
	a := strings.ToLower(strings.TrimSpace(it.Attribution))
	if a == "" {
		return "\x00" + it.ID
	}
	return a
}

func better(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Item.ID < b.Item.ID
}
