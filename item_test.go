package clustermatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClusterName(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"cluster_0", 0},
		{"cluster_3", 3},
		{"cluster_12", 12},
		{"5", 5},
		{" cluster_2 ", 2},
	}
	for _, tt := range tests {
		got, err := ParseClusterName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseClusterName_Malformed(t *testing.T) {
	for _, in := range []string{
		"", "cluster_", "cluster_x", "noise",
		"cluster_-1", "cluster_+1", "-1", "label_2", "c7", "cluster_1x",
	} {
		_, err := ParseClusterName(in)
		assert.ErrorIs(t, err, ErrMalformedClusterRef, in)
	}
}

func TestClusterName_RoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		got, err := ParseClusterName(ClusterName(i))
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
}
