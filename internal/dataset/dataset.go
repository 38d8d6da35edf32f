// Package dataset reads item collections for the clustermatch CLI.
//
// A dataset file is YAML or JSON:
//
//	items:
//	  - id: a1
//	    label: A
//	    cluster: cluster_0
//	    features: [0.1, 0.4]
//	    membership: [0.8, 0.1, 0.1]
package dataset

import (
	"fmt"

	"github.com/TrevorS/clustermatch"
	"github.com/TrevorS/clustermatch/internal/config"
)

// Dataset is a labelled item collection.
type Dataset struct {
	Items []clustermatch.Item `json:"items" yaml:"items"`
}

// Load reads a dataset file. Items without an ID get their position.
func Load(path string) (*Dataset, error) {
	var ds Dataset
	if err := config.LoadFile(path, &ds); err != nil {
		return nil, err
	}
	if len(ds.Items) == 0 {
		return nil, fmt.Errorf("dataset %s has no items", path)
	}
	for i := range ds.Items {
		if ds.Items[i].ID == "" {
			ds.Items[i].ID = fmt.Sprint(i)
		}
	}
	return &ds, nil
}

// Features returns the feature matrix and item IDs. Every item must carry
// a feature vector of the same length.
func (ds *Dataset) Features() ([][]float64, []string, error) {
	data := make([][]float64, len(ds.Items))
	ids := make([]string, len(ds.Items))
	for i, it := range ds.Items {
		if len(it.Features) == 0 {
			return nil, nil, fmt.Errorf("item %q has no features", it.ID)
		}
		if len(it.Features) != len(ds.Items[0].Features) {
			return nil, nil, fmt.Errorf("item %q has %d features, want %d",
				it.ID, len(it.Features), len(ds.Items[0].Features))
		}
		data[i] = it.Features
		ids[i] = it.ID
	}
	return data, ids, nil
}

// InferK returns one more than the largest cluster index referenced by the
// items.
func (ds *Dataset) InferK() (int, error) {
	k := 0
	for _, it := range ds.Items {
		c, err := clustermatch.ParseClusterName(it.Cluster)
		if err != nil {
			return 0, err
		}
		k = max(k, c+1)
	}
	return k, nil
}
