// Package clustering groups catalog items by affect using k-means and names
// each group by its energy and valence.
//
// Results depend on random initial centers, so they are for profiling a
// catalog only. Ranking never uses them.
package clustering

// Config holds clustering parameters.
type Config struct {
	NumGroups    int // Number of k-means clusters (default: 4)
	MinGroupSize int // Groups smaller than this become outliers
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumGroups:    4,
		MinGroupSize: 3,
	}
}
