package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justestif/go-moodmuse/internal/lexicon"
)

// Category is a coarse content tag derived from an item's title and artist.
type Category int

const (
	Sad Category = iota
	Heartbreak
	Melancholy
	Romantic
	Happy
	Party
	Chill
	Nostalgia
	Motivational
	Neutral
	numCategories
)

var categoryNames = [numCategories]string{
	Sad:          "sad",
	Heartbreak:   "heartbreak",
	Melancholy:   "melancholy",
	Romantic:     "romantic",
	Happy:        "happy",
	Party:        "party",
	Chill:        "chill",
	Nostalgia:    "nostalgia",
	Motivational: "motivational",
	Neutral:      "neutral",
}

// archetypes maps each category to the affect archetype an item in that
// category sounds like.
var archetypes = [numCategories]lexicon.Archetype{
	Sad:          lexicon.ArchetypeSad,
	Heartbreak:   lexicon.ArchetypeHeartbreak,
	Melancholy:   lexicon.ArchetypeSad,
	Romantic:     lexicon.ArchetypeRomantic,
	Happy:        lexicon.ArchetypeHappy,
	Party:        lexicon.ArchetypeParty,
	Chill:        lexicon.ArchetypeChill,
	Nostalgia:    lexicon.ArchetypeNostalgic,
	Motivational: lexicon.ArchetypeMotivational,
	Neutral:      lexicon.ArchetypeChill,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory looks up a category by name, ignoring case and surrounding
// whitespace.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range categoryNames {
		if name == s {
			return Category(i), true
		}
	}
	return 0, false
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Archetype returns the affect archetype associated with c.
func (c Category) Archetype() lexicon.Archetype {
	if !c.Valid() {
		return lexicon.ArchetypeChill
	}
	return archetypes[c]
}

// Negative reports whether c belongs to the sad family.
func (c Category) Negative() bool {
	return c == Sad || c == Heartbreak || c == Melancholy
}

// CategorySet is a set of categories stored as a bitmask.
type CategorySet uint16

// NewCategorySet builds a set from cs.
func NewCategorySet(cs ...Category) CategorySet {
	var s CategorySet
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}

// Add returns s with c included.
func (s CategorySet) Add(c Category) CategorySet {
	if !c.Valid() {
		return s
	}
	return s | 1<<uint(c)
}

// Has reports whether c is in s.
func (s CategorySet) Has(c Category) bool {
	return c.Valid() && s&(1<<uint(c)) != 0
}

// Union returns every category in either set.
func (s CategorySet) Union(o CategorySet) CategorySet { return s | o }

// Intersects reports whether the sets share a category.
func (s CategorySet) Intersects(o CategorySet) bool { return s&o != 0 }

// Empty reports whether s has no categories.
func (s CategorySet) Empty() bool { return s == 0 }

// Len returns the number of categories in s.
func (s CategorySet) Len() int {
	n := 0
	for _, c := range Categories() {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Slice returns the members of s in declaration order.
func (s CategorySet) Slice() []Category {
	var out []Category
	for _, c := range Categories() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// OrNeutral returns s, or the set holding only Neutral when s is empty.
func (s CategorySet) OrNeutral() CategorySet {
	if s.Empty() {
		return NewCategorySet(Neutral)
	}
	return s
}

func (s CategorySet) String() string {
	names := make([]string, 0, s.Len())
	for _, c := range s.Slice() {
		names = append(names, c.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// MarshalJSON encodes the set as a list of category names.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, s.Len())
	for _, c := range s.Slice() {
		names = append(names, c.String())
	}
	return json.Marshal(names)
}
