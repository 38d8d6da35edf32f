package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/clustermatch"
)

const scenarioYAML = `
items:
  - {id: a1, label: A, cluster: cluster_0, features: [0.0, 0.1]}
  - {id: a2, label: A, cluster: cluster_0, features: [0.2, 0.0]}
  - {id: a3, label: A, cluster: cluster_0, features: [0.1, 0.2]}
  - {id: b4, label: B, cluster: cluster_0, features: [0.3, 0.1]}
  - {id: b1, label: B, cluster: cluster_1, features: [10.0, 10.1]}
  - {id: b2, label: B, cluster: cluster_1, features: [10.2, 10.0]}
  - {id: b3, label: B, cluster: cluster_1, features: [10.1, 10.2]}
  - {id: b5, label: B, cluster: cluster_1, features: [10.3, 10.1]}
  - {id: c1, label: C, cluster: cluster_2, features: [-10.0, 10.1]}
  - {id: c2, label: C, cluster: cluster_2, features: [-10.2, 10.0]}
  - {id: a4, label: A, cluster: cluster_2, features: [-10.1, 10.2]}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand_YAML(t *testing.T) {
	out, err := run(t, "match", "-f", writeFile(t, "items.yaml", scenarioYAML))
	require.NoError(t, err)

	var report struct {
		K     int `yaml:"k"`
		Match struct {
			Mapping   map[string]string `yaml:"mapping"`
			Agreement int               `yaml:"agreement"`
		} `yaml:"match"`
		Items []clustermatch.Item `yaml:"items"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))

	assert.Equal(t, 3, report.K)
	assert.Equal(t, map[string]string{"cluster_0": "A", "cluster_1": "B", "cluster_2": "C"}, report.Match.Mapping)
	assert.Equal(t, 9, report.Match.Agreement)
	require.Len(t, report.Items, 11)
	assert.Equal(t, "A", report.Items[3].Prediction)
	assert.Equal(t, 1.0, report.Items[3].Confidence["A"])
}

func TestMatchCommand_JSON(t *testing.T) {
	out, err := run(t, "match", "-o", "json", "-f", writeFile(t, "items.yaml", scenarioYAML))
	require.NoError(t, err)

	var report matchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.K)
	assert.InDelta(t, 9.0/11.0, report.Match.Accuracy, 1e-9)
}

func TestMatchCommand_CardinalityError(t *testing.T) {
	_, err := run(t, "match", "-k", "4", "-f", writeFile(t, "items.yaml", scenarioYAML))
	assert.ErrorIs(t, err, clustermatch.ErrCardinalityMismatch)
}

func TestMatchCommand_RequiresFile(t *testing.T) {
	_, err := run(t, "match")
	assert.Error(t, err)
}

func TestKMeansCommand_Match(t *testing.T) {
	out, err := run(t, "kmeans", "-k", "3", "--seed", "3", "--match", "-o", "json",
		"-f", writeFile(t, "items.yaml", scenarioYAML))
	require.NoError(t, err)

	var report clusterReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.K)
	assert.True(t, report.Converged)
	assert.Len(t, report.Centroids, 3)
	require.NotNil(t, report.Match)
	// Features follow the blobs, so b4 and a4 end up mispredicted again.
	assert.Equal(t, 9, report.Match.Agreement)
}

func TestKMeansCommand_FuzzyFromConfig(t *testing.T) {
	cfgPath := writeFile(t, "cfg.yaml", "output: json\nkmeans:\n  fuzziness: 2\n")
	out, err := run(t, "kmeans", "-c", cfgPath, "-k", "3", "--match",
		"-f", writeFile(t, "items.yaml", scenarioYAML))
	require.NoError(t, err)

	var report clusterReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	for _, it := range report.Items {
		require.Len(t, it.Membership, 3)
		sum := 0.0
		for _, c := range it.Confidence {
			sum += c
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestKMeansCommand_RequiresK(t *testing.T) {
	_, err := run(t, "kmeans", "-f", writeFile(t, "items.yaml", scenarioYAML))
	assert.ErrorContains(t, err, "-k")
}

func TestHierarchyCommand(t *testing.T) {
	path := writeFile(t, "items.yaml", scenarioYAML)

	out, err := run(t, "hierarchy", "-k", "3", "--match", "-o", "json", "-f", path)
	require.NoError(t, err)
	var report clusterReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []int{4, 4, 3}, report.Sizes)
	assert.Equal(t, 9, report.Match.Agreement)

	out, err = run(t, "hierarchy", "--threshold", "1", "-o", "json", "-f", path)
	require.NoError(t, err)
	report = clusterReport{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.K)
}

func TestHierarchyCommand_ZeroThreshold(t *testing.T) {
	out, err := run(t, "hierarchy", "--threshold", "0", "-o", "json",
		"-f", writeFile(t, "items.yaml", scenarioYAML))
	require.NoError(t, err)

	var report clusterReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	// No two points coincide, so nothing merges at distance 0.
	assert.Equal(t, 11, report.K)
}

func TestHierarchyCommand_RequiresCut(t *testing.T) {
	_, err := run(t, "hierarchy", "-f", writeFile(t, "items.yaml", scenarioYAML))
	assert.ErrorContains(t, err, "threshold")
}

func TestRoot_InvalidOutput(t *testing.T) {
	_, err := run(t, "match", "-o", "xml", "-f", writeFile(t, "items.yaml", scenarioYAML))
	assert.ErrorContains(t, err, "output")
}
