// Package clustermatch maps the clusters of a clustering onto the values
// of a nominal label so that the clustering can be scored and used as a
// classifier.
//
// Given items that each carry a true label and an assigned cluster, Match
// cross-tabulates cluster against label, finds the cluster-to-label
// bijection with the most agreement using the Hungarian method, and writes
// a predicted label and per-label confidences onto every item.
//
// Basic usage:
//
//	result, err := clustermatch.Match(items, 3, clustermatch.DefaultConfig())
//	// result.Mapping.Label(c) is the label assigned to cluster c
//	// items[i].Prediction is the label predicted for item i
//	// items[i].Confidence[label] is 1 for the prediction, 0 otherwise
//
// For soft clusterings set Config.Fuzzy and fill Item.Membership; each
// label's confidence is then the item's membership in the cluster mapped to
// that label.
//
// # Producing clusterings
//
// The package also ships two small clusterers whose output plugs straight
// into MatchClustering:
//
//	km, err := clustermatch.KMeans(data, ids, clustermatch.DefaultKMeansConfig(3))
//	result, err := clustermatch.MatchClustering(items, km.FlatClustering, cfg)
//
//	tree, err := clustermatch.SingleLinkage(data, ids, clustermatch.HierarchyConfig{})
//	flat, err := tree.Flatten(3)
//
// Match and Solve run synchronously on the calling goroutine and keep no
// state between calls. SingleLinkage spreads pairwise distances over
// HierarchyConfig.Workers goroutines and returns once they finish. Callers
// that need cancellation should run the whole call as one unit of work.
package clustermatch
