package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/justestif/go-moodmuse/internal/affect"
)

//go:embed sample.yaml
var sampleYAML []byte

// MemoryStore is an in-memory Store. Items are deduplicated by title and
// artist; the first occurrence wins.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]Item
	keys       map[string]string // Item.Key -> ID
	partitions []string
	order      map[string][]string // partition -> IDs in insertion order
}

// NewMemoryStore creates a store holding items.
func NewMemoryStore(items ...Item) *MemoryStore {
	s := &MemoryStore{
		items: make(map[string]Item),
		keys:  make(map[string]string),
		order: make(map[string][]string),
	}
	s.add(items)
	return s
}

// Partitions implements Store.
func (s *MemoryStore) Partitions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.partitions))
	copy(out, s.partitions)
	return out, nil
}

// ByPartition implements Store.
func (s *MemoryStore) ByPartition(ctx context.Context, partition string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.order[strings.ToLower(partition)]
	out := make([]Item, len(ids))
	for i, id := range ids {
		out[i] = s.items[id]
	}
	return out, nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return Item{}, fmt.Errorf("getting item %q: %w", id, ErrNotFound)
	}
	return it, nil
}

// UpsertBatch implements Writer. An item whose ID exists replaces it; a new
// ID that duplicates another item's title and artist is ignored.
func (s *MemoryStore) UpsertBatch(ctx context.Context, items []Item) error {
	s.add(items)
	return nil
}

// Counts returns the number of items per partition.
func (s *MemoryStore) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.order))
	for p, ids := range s.order {
		out[p] = len(ids)
	}
	return out
}

// Len returns the number of items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemoryStore) add(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		it.Partition = strings.ToLower(strings.TrimSpace(it.Partition))
		key := it.Key()

		if old, ok := s.items[it.ID]; ok {
			if old.Partition != it.Partition {
				s.order[old.Partition] = remove(s.order[old.Partition], it.ID)
				s.appendID(it.Partition, it.ID)
			}
			delete(s.keys, old.Key())
			s.keys[key] = it.ID
			s.items[it.ID] = it
			continue
		}
		if _, dup := s.keys[key]; dup {
			continue
		}
		s.keys[key] = it.ID
		s.items[it.ID] = it
		s.appendID(it.Partition, it.ID)
	}
}

func (s *MemoryStore) appendID(partition, id string) {
	if _, ok := s.order[partition]; !ok {
		s.partitions = append(s.partitions, partition)
	}
	s.order[partition] = append(s.order[partition], id)
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// record is the file shape of an item. Vector fields may be partial or
// absent.
type record struct {
	ID       string          `yaml:"id"`
	Title    string          `yaml:"title"`
	Artist   string          `yaml:"artist"`
	Language string          `yaml:"language"`
	Vector   *affect.Partial `yaml:"vector"`
	Hints    []string        `yaml:"hints"`
}

type document struct {
	Items []record `yaml:"items"`
}

// ParseItems decodes a YAML or JSON catalog document. Items without an ID get
// one derived from their title and artist. Items without a vector get one
// derived from their categories.
func ParseItems(data []byte, c *Classifier) ([]Item, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	items := make([]Item, 0, len(doc.Items))
	for i, r := range doc.Items {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("parsing catalog: item %d has no title", i)
		}
		it := Item{
			ID:          r.ID,
			Title:       r.Title,
			Attribution: r.Artist,
			Partition:   r.Language,
			Hints:       r.Hints,
		}
		if it.ID == "" {
			it.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(it.Key())).String()
		}
		if r.Vector != nil {
			it.Vector = affect.Clamp(*r.Vector)
		} else {
			it.Vector = DeriveVector(c.ClassifyItem(it))
		}
		items = append(items, it)
	}
	return items, nil
}

// LoadFile reads a catalog file into a new MemoryStore.
func LoadFile(path string, c *Classifier) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	items, err := ParseItems(data, c)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(items...), nil
}

// LoadSample returns a MemoryStore holding the compiled-in sample catalog.
func LoadSample(c *Classifier) (*MemoryStore, error) {
	items, err := ParseItems(sampleYAML, c)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(items...), nil
}
