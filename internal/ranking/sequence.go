package ranking

import (
	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/catalog"
)

// GradientRequest describes a list that drifts from Start to Target.
type GradientRequest struct {
	Start  affect.Vector
	Target affect.Vector
	// Partitions are visited round robin, one per step, when there are
	// more than one. With a single partition every step draws from it.
	Partitions []Partition
	Excluded   IDSet
	Steps      int
}

// Sequence is the result of Ranker.Sequence.
type Sequence struct {
	Items []Candidate
	// Skipped lists the steps for which no item was left.
	Skipped []int
}

// Sequence picks one item per step. Step i aims at the point i/(Steps-1)
// of the way from Start to Target and takes the most similar item not yet
// used. Chosen items are excluded from later steps. Scores are plain
// similarity to the step's target.
func (r *Ranker) Sequence(req GradientRequest) Sequence {
	var seq Sequence
	if req.Steps <= 0 || len(req.Partitions) == 0 {
		return seq
	}

	used := req.Excluded.Clone()
	var pool []catalog.Item
	if len(req.Partitions) == 1 {
		pool = req.Partitions[0].Items
	}

	for i := 0; i < req.Steps; i++ {
		t := 1.0
		if req.Steps > 1 {
			t = float64(i) / float64(req.Steps-1)
		}
		step := affect.Interpolate(req.Start, req.Target, t)

		items := pool
		if len(req.Partitions) > 1 {
			items = req.Partitions[i%len(req.Partitions)].Items
		}

		best, ok := r.closest(step, items, used)
		if !ok {
			seq.Skipped = append(seq.Skipped, i)
			continue
		}
		used[best.Item.ID] = struct{}{}
		seq.Items = append(seq.Items, best)
	}
	return seq
}

func (r *Ranker) closest(target affect.Vector, items []catalog.Item, used IDSet) (Candidate, bool) {
	var (
		best  Candidate
		found bool
	)
	for _, it := range items {
		if used.Has(it.ID) {
			continue
		}
		c := Candidate{Item: it, Score: affect.Similarity(target, it.Vector)}
		if !found || better(c, best) {
			best, found = c, true
		}
	}
	if found {
		best.Categories = r.cache.Categories(best.Item).OrNeutral()
	}
	return best, found
}
