package clustermatch

import (
	"go.uber.org/zap"
)

// Config controls a matcher run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Fuzzy switches confidence output to per-cluster memberships read from
	// Item.Membership. Default: false (hard confidences).
	Fuzzy bool

	// Logger receives debug output from the contingency and solver stages.
	// Default: zap.NewNop().
	Logger *zap.Logger
}

// Result is the outcome of Match.
type Result struct {
	Mapping *Mapping

	// Agreement is the number of items whose label equals the label mapped
	// to their cluster.
	Agreement int

	// Accuracy is Agreement divided by the number of items (0 when empty).
	Accuracy float64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{Logger: zap.NewNop()}
}

func (cfg *Config) applyDefaults() {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Match finds the cluster-to-label bijection that maximizes agreement over
// items and writes predictions and confidences onto them. k is the number
// of clusters. Items are mutated in place; nothing else is retained between
// calls.
func Match(items []Item, k int, cfg Config) (*Result, error) {
	cfg.applyDefaults()
	log := cfg.Logger.With(zap.Int("k", k), zap.Int("items", len(items)))

	table, err := BuildContingency(items, k)
	if err != nil {
		return nil, err
	}
	log.Debug("contingency table built", zap.Strings("labels", table.Labels))

	assignment, err := Solve(table.Counts, WithLogger(log))
	if err != nil {
		return nil, err
	}
	mapping := newMapping(table, assignment)

	if cfg.Fuzzy {
		err = WriteFuzzyLabels(items, mapping)
	} else {
		err = WriteLabels(items, mapping)
	}
	if err != nil {
		return nil, err
	}

	agreement := Agreement(table.Counts, assignment)
	res := &Result{Mapping: mapping, Agreement: agreement}
	if len(items) > 0 {
		res.Accuracy = float64(agreement) / float64(len(items))
	}
	log.Debug("labels written", zap.Strings("mapping", mapping.Labels), zap.Int("agreement", agreement))
	return res, nil
}

// MatchClustering writes clustering's cluster names onto items and matches
// with K taken from the clustering.
func MatchClustering(items []Item, clustering *FlatClustering, cfg Config) (*Result, error) {
	if err := clustering.Apply(items); err != nil {
		return nil, err
	}
	return Match(items, clustering.K(), cfg)
}
