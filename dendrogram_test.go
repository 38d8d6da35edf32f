package clustermatch

import (
	"math"
	"testing"
)

func TestDendrogram_FourPointMST(t *testing.T) {
	// Edges sorted by weight: [0,2,1], [2,3,1], [0,1,2].
	//   step 0: roots 0,2       -> [0, 2, 1, 2], node 4
	//   step 1: roots 4,3       -> [4, 3, 1, 3], node 5
	//   step 2: roots 5,1       -> [5, 1, 2, 4], node 6
	edges := [][3]float64{
		{0, 2, 1.0},
		{2, 3, 1.0},
		{0, 1, 2.0},
	}

	dendro := Dendrogram(edges, 4)

	expected := [][4]float64{
		{0, 2, 1.0, 2},
		{4, 3, 1.0, 3},
		{5, 1, 2.0, 4},
	}
	if len(dendro) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(dendro))
	}
	for i, row := range dendro {
		for j := 0; j < 4; j++ {
			if math.Abs(row[j]-expected[i][j]) > 1e-10 {
				t.Errorf("row[%d][%d] = %f, want %f", i, j, row[j], expected[i][j])
			}
		}
	}
}

func TestDendrogram_SortsEdgesByWeight(t *testing.T) {
	edges := [][3]float64{
		{0, 1, 5.0},
		{1, 2, 1.0},
	}

	dendro := Dendrogram(edges, 3)
	if dendro[0][2] != 1.0 || dendro[1][2] != 5.0 {
		t.Errorf("merges out of order: %v", dendro)
	}
	if dendro[1][3] != 3 {
		t.Errorf("final merged size should be 3, got %f", dendro[1][3])
	}
}

func TestDendrogram_Empty(t *testing.T) {
	if dendro := Dendrogram(nil, 1); len(dendro) != 0 {
		t.Fatalf("expected no rows for n=1, got %d", len(dendro))
	}
}
