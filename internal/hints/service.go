// Package hints turns Last.fm tags into catalog category hints for songs.
package hints

import (
	"context"
	"sync"

	"github.com/justestif/go-moodmuse/internal/catalog"
	"github.com/justestif/go-moodmuse/internal/lastfm"
)

// Defaults for batch processing.
const (
	DefaultConcurrency = 5
	// DefaultMinCount drops tags that only a handful of listeners applied.
	// Artist tags carry no count and are always kept.
	DefaultMinCount = 10
)

// Song is the minimal song info needed for a tag lookup.
type Song struct {
	ID     string
	Title  string
	Artist string
}

// Result holds the hints derived for one song.
type Result struct {
	SongID string
	Tags   []lastfm.Tag
	Source lastfm.Source
	// Hints are category names matched by the tags, in category order.
	Hints []string
	Err   error // non-nil if fetching failed
}

// TagFetcher abstracts the Last.fm client for testing.
type TagFetcher interface {
	GetTags(ctx context.Context, artist, title string) ([]lastfm.Tag, lastfm.Source, error)
}

// Service fetches tags concurrently and maps them onto categories.
type Service struct {
	fetcher     TagFetcher
	classifier  *catalog.Classifier
	concurrency int
	minCount    int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets the number of concurrent tag fetch operations.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithMinCount sets the lowest tag count that still counts as a hint.
func WithMinCount(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minCount = n
		}
	}
}

// NewService creates a new hints service.
func NewService(fetcher TagFetcher, classifier *catalog.Classifier, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		classifier:  classifier,
		concurrency: DefaultConcurrency,
		minCount:    DefaultMinCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch looks up hints for songs concurrently. Results are returned in
// input order. Individual fetch errors are captured in Result.Err rather
// than failing the batch; only cancellation fails it.
func (s *Service) Fetch(ctx context.Context, songs []Song) ([]Result, error) {
	if len(songs) == 0 {
		return []Result{}, nil
	}

	results := make([]Result, len(songs))

	type workItem struct {
		index int
		song  Song
	}
	workCh := make(chan workItem, len(songs))
	for i, song := range songs {
		workCh <- workItem{index: i, song: song}
	}
	close(workCh)

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				if err := ctx.Err(); err != nil {
					results[work.index] = Result{SongID: work.song.ID, Source: lastfm.SourceNone, Err: err}
					continue
				}
				results[work.index] = s.fetchOne(ctx, work.song)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (s *Service) fetchOne(ctx context.Context, song Song) Result {
	tags, source, err := s.fetcher.GetTags(ctx, song.Artist, song.Title)
	if err != nil {
		return Result{SongID: song.ID, Source: lastfm.SourceNone, Err: err}
	}
	return Result{
		SongID: song.ID,
		Tags:   tags,
		Source: source,
		Hints:  s.categorize(tags),
	}
}

// categorize matches each sufficiently popular tag against the category
// keywords.
func (s *Service) categorize(tags []lastfm.Tag) []string {
	var set catalog.CategorySet
	for _, t := range tags {
		if t.Count > 0 && t.Count < s.minCount {
			continue
		}
		set = set.Union(s.classifier.Classify(t.Name, ""))
	}

	cs := set.Slice()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
