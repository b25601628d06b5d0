package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/lexicon"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatalf("lexicon.Default() error = %v", err)
	}
	c, err := NewClassifier(lex)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return c
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if got, ok := ParseCategory("  HeartBreak "); !ok || got != Heartbreak {
		t.Errorf("ParseCategory mixed case = %v, %v", got, ok)
	}
	if _, ok := ParseCategory("indie"); ok {
		t.Error("ParseCategory(indie) should fail")
	}
}

func TestCategorySet(t *testing.T) {
	s := NewCategorySet(Sad, Chill, Sad)

	if !s.Has(Sad) || !s.Has(Chill) || s.Has(Party) {
		t.Errorf("set = %v, want {sad, chill}", s)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Intersects(NewCategorySet(Chill, Party)) {
		t.Error("expected intersection on chill")
	}
	if s.Intersects(NewCategorySet(Party)) {
		t.Error("unexpected intersection with party")
	}
	if got := s.Add(Category(99)); got != s {
		t.Error("adding an invalid category must not change the set")
	}

	var empty CategorySet
	if !empty.Empty() || empty.OrNeutral() != NewCategorySet(Neutral) {
		t.Errorf("empty.OrNeutral() = %v, want {neutral}", empty.OrNeutral())
	}
	if s.OrNeutral() != s {
		t.Error("OrNeutral must keep a non-empty set")
	}

	b, err := json.Marshal(s)
	if err != nil || string(b) != `["sad","chill"]` {
		t.Errorf("json = %s, %v", b, err)
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name        string
		title       string
		attribution string
		want        CategorySet
	}{
		{"several categories", "Tears in the Rain", "", NewCategorySet(Sad, Chill)},
		{"case insensitive", "MOTIVATION", "", NewCategorySet(Motivational)},
		{"artist counts", "Xyz", "Lofi Qqq", NewCategorySet(Chill)},
		{"no match", "Xyz", "Qqq", 0},
		{"blank", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.title, tt.attribution); got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.title, tt.attribution, got, tt.want)
			}
		})
	}
}

func TestClassifier_ClassifyItemHints(t *testing.T) {
	c := newTestClassifier(t)

	got := c.ClassifyItem(Item{ID: "x", Title: "Xyz", Attribution: "Qqq", Hints: []string{"Party", "indie"}})
	if got != NewCategorySet(Party) {
		t.Errorf("ClassifyItem() = %v, want {party}", got)
	}
}

func TestNewClassifier_UnknownCategory(t *testing.T) {
	lex, err := lexicon.Parse([]byte("categories:\n  spooky: [ghost]\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := NewClassifier(lex); !errors.Is(err, lexicon.ErrInvalid) {
		t.Errorf("NewClassifier() error = %v, want ErrInvalid", err)
	}
}

func TestCache(t *testing.T) {
	cache := NewCache(newTestClassifier(t))
	it := Item{ID: "a", Title: "Tears in the Rain"}

	want := NewCategorySet(Sad, Chill)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := cache.Categories(it); got != want {
				t.Errorf("Categories() = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()

	// Entries are keyed by ID and never replaced.
	it.Title = "Party"
	if got := cache.Categories(it); got != want {
		t.Errorf("cached Categories() = %v, want %v", got, want)
	}
}

func TestDeriveVector(t *testing.T) {
	if got := DeriveVector(0); got != lexicon.ArchetypeChill.Vector() {
		t.Errorf("DeriveVector(empty) = %+v, want chill archetype", got)
	}
	if got := DeriveVector(NewCategorySet(Party)); got != lexicon.ArchetypeParty.Vector() {
		t.Errorf("DeriveVector(party) = %+v, want party archetype", got)
	}

	mixed := DeriveVector(NewCategorySet(Sad, Party))
	sad, party := lexicon.ArchetypeSad.Vector(), lexicon.ArchetypeParty.Vector()
	if mixed.Energy <= sad.Energy || mixed.Energy >= party.Energy {
		t.Errorf("mixed energy = %v, want between %v and %v", mixed.Energy, sad.Energy, party.Energy)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(
		Item{ID: "1", Title: "One", Attribution: "A", Partition: "English"},
		Item{ID: "2", Title: "Two", Attribution: "B", Partition: "hindi"},
		Item{ID: "3", Title: "one", Attribution: "a", Partition: "english"}, // duplicate of 1
		Item{ID: "4", Title: "Four", Attribution: "C", Partition: "english"},
	)

	parts, _ := s.Partitions(ctx)
	if len(parts) != 2 || parts[0] != "english" || parts[1] != "hindi" {
		t.Errorf("Partitions() = %v, want [english hindi]", parts)
	}
	en, _ := s.ByPartition(ctx, "ENGLISH")
	if len(en) != 2 || en[0].ID != "1" || en[1].ID != "4" {
		t.Errorf("ByPartition(english) = %+v, want items 1 and 4", en)
	}
	if got, _ := s.ByPartition(ctx, "tamil"); len(got) != 0 {
		t.Errorf("ByPartition(tamil) = %v, want empty", got)
	}
	if _, err := s.Get(ctx, "3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(duplicate) error = %v, want ErrNotFound", err)
	}

	err := s.UpsertBatch(ctx, []Item{{ID: "4", Title: "Four", Attribution: "C", Partition: "hindi"}})
	if err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}
	if got, _ := s.Get(ctx, "4"); got.Partition != "hindi" {
		t.Errorf("Get(4).Partition = %q, want hindi", got.Partition)
	}
	if c := s.Counts(); c["english"] != 1 || c["hindi"] != 2 {
		t.Errorf("Counts() = %v, want english 1 hindi 2", c)
	}
}

func TestParseItems(t *testing.T) {
	c := newTestClassifier(t)

	items, err := ParseItems([]byte(`
items:
  - {title: Tears in the Rain, artist: Nobody, language: english}
  - {id: v1, title: Explicit, artist: Somebody, language: english, vector: {valence: 0.9, energy: 2}}
`), c)
	if err != nil {
		t.Fatalf("ParseItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	again, _ := ParseItems([]byte("items:\n  - {title: Tears in the Rain, artist: Nobody}\n"), c)
	if items[0].ID == "" || items[0].ID != again[0].ID {
		t.Errorf("derived IDs %q and %q should be equal and non-empty", items[0].ID, again[0].ID)
	}
	if items[0].Vector != DeriveVector(NewCategorySet(Sad, Chill)) {
		t.Errorf("derived vector = %+v", items[0].Vector)
	}

	want := affect.Clamp(affect.Partial{Valence: affect.Float(0.9), Energy: affect.Float(1)})
	if items[1].Vector != want {
		t.Errorf("explicit vector = %+v, want %+v", items[1].Vector, want)
	}

	if _, err := ParseItems([]byte("items:\n  - {artist: Nobody}\n"), c); err == nil {
		t.Error("ParseItems() expected error for item without title")
	}
}

func TestLoadSample(t *testing.T) {
	s, err := LoadSample(newTestClassifier(t))
	if err != nil {
		t.Fatalf("LoadSample() error = %v", err)
	}

	parts, _ := s.Partitions(context.Background())
	want := []string{"english", "hindi", "punjabi"}
	if len(parts) != len(want) {
		t.Fatalf("Partitions() = %v, want %v", parts, want)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("Partitions()[%d] = %q, want %q", i, parts[i], want[i])
		}
	}

	// Two songs titled "Lover" by different artists are both kept.
	for _, id := range []string{"en-009", "pa-001"} {
		it, err := s.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", id, err)
		}
		if it.Vector != it.Vector.Clamp() {
			t.Errorf("item %s vector out of range", id)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"items": [{"id": "j1", "title": "Json Song", "artist": "X", "language": "english"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path, newTestClassifier(t))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
