package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/justestif/go-moodmuse/internal/catalog"
	"github.com/justestif/go-moodmuse/internal/clustering"
	"github.com/justestif/go-moodmuse/internal/intent"
	"github.com/justestif/go-moodmuse/internal/lexicon"
	"github.com/justestif/go-moodmuse/internal/logger"
	"github.com/justestif/go-moodmuse/internal/mood"
	"github.com/justestif/go-moodmuse/internal/ranking"
)

// mockStore is a catalog.Store that can fail on demand.
type mockStore struct {
	catalog.Store
	err   error
	calls atomic.Int32
}

func (m *mockStore) Partitions(ctx context.Context) ([]string, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.Store.Partitions(ctx)
}

func (m *mockStore) ByPartition(ctx context.Context, p string) ([]catalog.Item, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.Store.ByPartition(ctx, p)
}

func newTestService(t *testing.T, store catalog.Store) *Service {
	t.Helper()
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatalf("lexicon.Default() error = %v", err)
	}
	cc, err := catalog.NewClassifier(lex)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return New(mood.NewClassifier(lex), ranking.NewRanker(catalog.NewCache(cc)), store, logger.Nop())
}

func testStore(perPartition int, partitions ...string) *catalog.MemoryStore {
	var items []catalog.Item
	for _, p := range partitions {
		for i := 0; i < perPartition; i++ {
			items = append(items, catalog.Item{
				ID:          fmt.Sprintf("%s-%d", p, i),
				Title:       fmt.Sprintf("Q%s%d", p, i),
				Attribution: fmt.Sprintf("A%s%d", p, i),
				Partition:   p,
				Vector:      lexicon.Archetype(i % 8).Vector(),
			})
		}
	}
	return catalog.NewMemoryStore(items...)
}

func TestRecommend_GradientDefaults(t *testing.T) {
	svc := newTestService(t, testStore(3, "english"))
	m := svc.Analyze("so sad", "")

	resp, err := svc.Recommend(context.Background(), Request{Mood: m})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Songs) != 3 {
		t.Errorf("len(Songs) = %d, want 3", len(resp.Songs))
	}
	if len(resp.Songs)+len(resp.Skipped) != DefaultLimit {
		t.Errorf("songs + skipped = %d, want %d steps", len(resp.Songs)+len(resp.Skipped), DefaultLimit)
	}
	if resp.Label != m.Label {
		t.Errorf("Label = %q, want %q", resp.Label, m.Label)
	}
	if resp.Target != m.Vector {
		t.Error("stay intent must keep the mood vector as target")
	}
}

func TestRecommend_LimitCapped(t *testing.T) {
	svc := newTestService(t, testStore(2, "english"))

	resp, err := svc.Recommend(context.Background(), Request{Mood: svc.Analyze("happy", ""), Limit: 1000})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := len(resp.Songs) + len(resp.Skipped); got != MaxLimit {
		t.Errorf("steps = %d, want %d", got, MaxLimit)
	}
}

func TestRecommend_Ranked(t *testing.T) {
	svc := newTestService(t, testStore(8, "english", "hindi"))
	m := svc.Analyze("feeling lonely", "")

	tests := []struct {
		name       string
		partitions []string
		check      func(t *testing.T, songs []ranking.Candidate)
	}{
		{
			name:       "single partition",
			partitions: []string{"Hindi"},
			check: func(t *testing.T, songs []ranking.Candidate) {
				for _, s := range songs {
					if s.Item.Partition != "hindi" {
						t.Errorf("song %s from partition %q", s.Item.ID, s.Item.Partition)
					}
				}
			},
		},
		{
			name:       "all partitions balanced",
			partitions: []string{"all"},
			check: func(t *testing.T, songs []ranking.Candidate) {
				for i, s := range songs {
					want := []string{"english", "hindi"}[i%2]
					if s.Item.Partition != want {
						t.Errorf("songs[%d] partition = %q, want %q", i, s.Item.Partition, want)
					}
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Recommend(context.Background(), Request{
				Mood:       m,
				Intent:     intent.Lift,
				Partitions: tt.partitions,
				Limit:      6,
				Mode:       ModeRanked,
			})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(resp.Songs) != 6 {
				t.Fatalf("len(Songs) = %d, want 6", len(resp.Songs))
			}
			if !strings.HasSuffix(resp.Label, ", with hope") {
				t.Errorf("Label = %q, want lift description", resp.Label)
			}
			tt.check(t, resp.Songs)
		})
	}
}

func TestRecommend_ExcludeIDs(t *testing.T) {
	svc := newTestService(t, testStore(3, "english"))

	resp, err := svc.Recommend(context.Background(), Request{
		Mood:       svc.Analyze("calm", ""),
		ExcludeIDs: []string{"english-0", "english-1"},
		Limit:      3,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Songs) != 1 || resp.Songs[0].Item.ID != "english-2" {
		t.Errorf("Songs = %+v, want only english-2", resp.Songs)
	}
	if fmt.Sprint(resp.Skipped) != "[1 2]" {
		t.Errorf("Skipped = %v, want [1 2]", resp.Skipped)
	}
}

func TestRecommend_StoreError(t *testing.T) {
	errBoom := errors.New("connection refused")
	store := &mockStore{Store: testStore(1, "english"), err: errBoom}
	svc := newTestService(t, store)

	_, err := svc.Recommend(context.Background(), Request{Mood: svc.Analyze("tired", "")})
	if !errors.Is(err, errBoom) {
		t.Fatalf("error = %v, want wrapped errBoom", err)
	}
	if !strings.HasPrefix(err.Error(), "loading catalog:") {
		t.Errorf("error = %q, want loading catalog prefix", err)
	}
	if store.calls.Load() == 0 {
		t.Error("store was never called")
	}
}

func TestParsePartitions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"english", []string{"english"}},
		{"English+HINDI", []string{"english", "hindi"}},
		{" english + english ", []string{"english"}},
		{"all", nil},
		{"english+all", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParsePartitions(tt.in)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) || (tt.want == nil) != (got == nil) {
			t.Errorf("ParsePartitions(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("RANKED") != ModeRanked || ParseMode("") != ModeGradient || ParseMode("other") != ModeGradient {
		t.Error("ParseMode mapping is wrong")
	}
}

func TestProfile(t *testing.T) {
	svc := newTestService(t, testStore(8, "english", "hindi"))

	res, err := svc.Profile(context.Background(), clustering.Config{NumGroups: 3, MinGroupSize: 1})
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if res.Total != 16 {
		t.Errorf("Total = %d, want 16", res.Total)
	}
	n := res.Outliers
	for _, g := range res.Groups {
		n += len(g.Items)
	}
	if n != res.Total {
		t.Errorf("groups and outliers hold %d items, want %d", n, res.Total)
	}
	if res.Summary == "" {
		t.Error("Summary is empty")
	}

	store := &mockStore{Store: testStore(1, "english"), err: errors.New("down")}
	if _, err := newTestService(t, store).Profile(context.Background(), clustering.DefaultConfig()); err == nil {
		t.Error("Profile() expected store error")
	}
}
