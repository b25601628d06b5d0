// Package recommend turns a mood into a list of songs from the catalog.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/catalog"
	"github.com/justestif/go-moodmuse/internal/clustering"
	"github.com/justestif/go-moodmuse/internal/intent"
	"github.com/justestif/go-moodmuse/internal/logger"
	"github.com/justestif/go-moodmuse/internal/mood"
	"github.com/justestif/go-moodmuse/internal/ranking"
)

// Limits on the number of songs per request.
const (
	DefaultLimit = 15
	MaxLimit     = 100
)

// AllPartitions selects every partition in the store.
const AllPartitions = "all"

// Mode selects how a list is built.
type Mode string

const (
	// ModeGradient drifts one song at a time from the current mood to the
	// target.
	ModeGradient Mode = "gradient"
	// ModeRanked ranks every song against the target at once.
	ModeRanked Mode = "ranked"
)

// ParseMode maps a name to a mode. Anything but "ranked" is gradient.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeRanked)) {
		return ModeRanked
	}
	return ModeGradient
}

// Request describes one recommendation.
type Request struct {
	Mood       mood.Result
	Intent     intent.Intent
	Partitions []string // empty or "all" means every partition
	Limit      int
	ExcludeIDs []string
	Mode       Mode
}

// Response is the outcome of Recommend.
type Response struct {
	Label     string              `json:"label"`
	Target    affect.Vector       `json:"target"`
	Preferred []catalog.Category  `json:"preferred"`
	Songs     []ranking.Candidate `json:"songs"`
	// Skipped lists gradient steps that had no song left.
	Skipped []int `json:"skipped,omitempty"`
}

// Service handles mood analysis and recommendation.
type Service struct {
	classifier *mood.Classifier
	ranker     *ranking.Ranker
	store      catalog.Store
	log        *logger.Logger
}

// New creates a new recommendation service.
func New(classifier *mood.Classifier, ranker *ranking.Ranker, store catalog.Store, log *logger.Logger) *Service {
	return &Service{
		classifier: classifier,
		ranker:     ranker,
		store:      store,
		log:        log,
	}
}

// Analyze classifies free text and emoji.
func (s *Service) Analyze(text, emoji string) mood.Result {
	r := s.classifier.Classify(text, emoji)
	s.log.Debug("mood analyzed",
		"label", r.Label,
		"dominant", r.Dominant,
		"confidence", r.Confidence,
		"signals", len(r.Signals),
	)
	return r
}

// Recommend picks songs for req. Errors come only from the catalog store.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	target := intent.Apply(req.Mood.Vector, req.Intent)
	preferred := intent.Preferences(req.Mood.Dominant, req.Intent)

	// Load candidates per partition
	partitions, err := s.loadPartitions(ctx, req.Partitions)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	resp := &Response{
		Label:     intent.Describe(req.Mood.Label, req.Intent),
		Target:    target,
		Preferred: preferred,
	}
	excluded := ranking.NewIDSet(req.ExcludeIDs...)

	switch req.Mode {
	case ModeRanked:
		prefSet := catalog.NewCategorySet(preferred...)
		if len(partitions) == 1 {
			resp.Songs = s.ranker.Top(target, partitions[0].Items, excluded, prefSet, limit)
		} else {
			resp.Songs = s.ranker.Balance(target, partitions, excluded, prefSet, limit)
		}
	default:
		seq := s.ranker.Sequence(ranking.GradientRequest{
			Start:      req.Mood.Vector,
			Target:     target,
			Partitions: partitions,
			Excluded:   excluded,
			Steps:      limit,
		})
		resp.Songs = seq.Items
		resp.Skipped = seq.Skipped
	}

	s.log.Info("recommendation built",
		"intent", req.Intent,
		"mode", req.Mode,
		"partitions", len(partitions),
		"songs", len(resp.Songs),
		"skipped", len(resp.Skipped),
	)
	return resp, nil
}

// loadPartitions resolves names to partitions. An empty list or "all"
// expands to every partition in the store; unknown names yield empty
// partitions.
func (s *Service) loadPartitions(ctx context.Context, names []string) ([]ranking.Partition, error) {
	names = normalizePartitions(names)
	if len(names) == 0 {
		all, err := s.store.Partitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing partitions: %w", err)
		}
		names = all
	}

	out := make([]ranking.Partition, 0, len(names))
	for _, name := range names {
		items, err := s.store.ByPartition(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("loading partition %q: %w", name, err)
		}
		out = append(out, ranking.Partition{Name: name, Items: items})
	}
	return out, nil
}

// ParsePartitions splits a "+" separated list such as "english+hindi".
func ParsePartitions(s string) []string {
	return normalizePartitions(strings.Split(s, "+"))
}

// normalizePartitions lower-cases and deduplicates names. It returns nil
// when the list is empty or names "all".
func normalizePartitions(names []string) []string {
	var out []string
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == AllPartitions {
			return nil
		}
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ProfileResult is a clustered view of the catalog.
type ProfileResult struct {
	Groups   []clustering.MoodGroup `json:"groups"`
	Outliers int                    `json:"outliers"`
	Total    int                    `json:"total"`
	Summary  string                 `json:"summary"`
}

// Profile groups every item in the catalog by affect.
func (s *Service) Profile(ctx context.Context, cfg clustering.Config) (*ProfileResult, error) {
	partitions, err := s.loadPartitions(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	var items []catalog.Item
	for _, p := range partitions {
		items = append(items, p.Items...)
	}

	groups, outliers, err := clustering.DetectMoodGroups(items, cfg)
	if err != nil {
		// Every item is an outlier; still report the profile
		s.log.Warn("clustering failed", "error", err, "items", len(items))
	}

	return &ProfileResult{
		Groups:   groups,
		Outliers: len(outliers),
		Total:    len(items),
		Summary:  clustering.FormatGroupSummary(groups, outliers),
	}, nil
}
