package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/justestif/go-moodmuse/internal/lexicon"
	"github.com/justestif/go-moodmuse/internal/textnorm"
)

// Classifier derives categories from an item's title and artist by keyword
// containment. It is safe for concurrent use.
type Classifier struct {
	keywords [numCategories][]string
}

// NewClassifier builds a classifier from the lexicon's category lists. It
// fails when the lexicon names a category that does not exist.
func NewClassifier(lex *lexicon.Lexicon) (*Classifier, error) {
	c := &Classifier{}
	for name, words := range lex.Categories {
		cat, ok := ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", lexicon.ErrInvalid, name)
		}
		c.keywords[cat] = append(c.keywords[cat], words...)
	}
	return c, nil
}

// Classify returns every category with at least one keyword contained in
// the normalized title and artist. The result may be empty.
func (c *Classifier) Classify(title, attribution string) CategorySet {
	text := textnorm.Normalize(title + " " + attribution)
	var s CategorySet
	if text == "" {
		return s
	}
	for i, words := range c.keywords {
		for _, w := range words {
			if strings.Contains(text, w) {
				s = s.Add(Category(i))
				break
			}
		}
	}
	return s
}

// ClassifyItem adds any hint that names a category to Classify's result.
func (c *Classifier) ClassifyItem(it Item) CategorySet {
	s := c.Classify(it.Title, it.Attribution)
	for _, h := range it.Hints {
		if cat, ok := ParseCategory(h); ok {
			s = s.Add(cat)
		}
	}
	return s
}

// Cache remembers the categories of each item by ID. Entries are never
// replaced, so concurrent readers always agree.
type Cache struct {
	classifier *Classifier
	m          sync.Map // item ID -> CategorySet
}

// NewCache creates an empty cache backed by c.
func NewCache(c *Classifier) *Cache {
	return &Cache{classifier: c}
}

// Categories returns the cached categories for it, classifying it on first
// use.
func (c *Cache) Categories(it Item) CategorySet {
	if v, ok := c.m.Load(it.ID); ok {
		return v.(CategorySet)
	}
	v, _ := c.m.LoadOrStore(it.ID, c.classifier.ClassifyItem(it))
	return v.(CategorySet)
}
