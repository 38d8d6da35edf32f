package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/TrevorS/clustermatch"
)

// matchSummary is the serialisable form of a clustermatch.Result.
type matchSummary struct {
	Mapping   map[string]string `json:"mapping" yaml:"mapping"`
	Agreement int               `json:"agreement" yaml:"agreement"`
	Accuracy  float64           `json:"accuracy" yaml:"accuracy"`
}

func newMatchSummary(res *clustermatch.Result) *matchSummary {
	mapping := make(map[string]string, res.Mapping.K())
	for c, label := range res.Mapping.Labels {
		mapping[clustermatch.ClusterName(c)] = label
	}
	return &matchSummary{Mapping: mapping, Agreement: res.Agreement, Accuracy: res.Accuracy}
}

type matchReport struct {
	K     int                 `json:"k" yaml:"k"`
	Match *matchSummary       `json:"match" yaml:"match"`
	Items []clustermatch.Item `json:"items" yaml:"items"`
}

type clusterReport struct {
	K          int                 `json:"k" yaml:"k"`
	Sizes      []int               `json:"sizes" yaml:"sizes"`
	Iterations int                 `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	Converged  bool                `json:"converged,omitempty" yaml:"converged,omitempty"`
	Centroids  [][]float64         `json:"centroids,omitempty" yaml:"centroids,omitempty"`
	Match      *matchSummary       `json:"match,omitempty" yaml:"match,omitempty"`
	Items      []clustermatch.Item `json:"items" yaml:"items"`
}

func writeOutput(w io.Writer, format string, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = w.Write(data)
	return err
}
