package ranking

import (
	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/catalog"
)

// Partition is a named pool of items, such as all songs in one language.
type Partition struct {
	Name  string
	Items []catalog.Item
}

// Balance ranks each partition separately with an equal quota and
// interleaves the results in partition order. No partition takes more than
// ceil(limit/len(partitions)) slots.
func (r *Ranker) Balance(target affect.Vector, partitions []Partition, excluded IDSet, preferred catalog.CategorySet, limit int) []Candidate {
	if len(partitions) == 0 || limit <= 0 {
		return nil
	}
	quota := (limit + len(partitions) - 1) / len(partitions)

	queues := make([][]Candidate, len(partitions))
	total := 0
	for i, p := range partitions {
		queues[i] = r.Top(target, p.Items, excluded, preferred, quota)
		total += len(queues[i])
	}

	out := make([]Candidate, 0, min(limit, total))
	for round := 0; len(out) < limit; round++ {
		added := false
		for _, q := range queues {
			if round >= len(q) || len(out) == limit {
				continue
			}
			out = append(out, q[round])
			added = true
		}
		if !added {
			break
		}
	}
	return out
}
