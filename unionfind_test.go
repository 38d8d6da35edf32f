package clustermatch

import "testing"

func TestNewUnionFind(t *testing.T) {
	uf := NewUnionFind(5)

	for i := 0; i < 5; i++ {
		if root := uf.Find(i); root != i {
			t.Errorf("Find(%d) = %d, want %d", i, root, i)
		}
		if uf.Size(i) != 1 {
			t.Errorf("Size(%d) = %d, want 1", i, uf.Size(i))
		}
	}
}

func TestUnionFind_Merge(t *testing.T) {
	uf := NewUnionFind(4)

	a := uf.Merge(0, 2)
	if a != 4 {
		t.Fatalf("first merge id = %d, want 4", a)
	}
	b := uf.Merge(a, 3)
	if b != 5 {
		t.Fatalf("second merge id = %d, want 5", b)
	}

	if uf.Find(0) != 5 || uf.Find(2) != 5 || uf.Find(3) != 5 {
		t.Error("0, 2 and 3 should resolve to node 5")
	}
	if uf.Find(1) != 1 {
		t.Errorf("Find(1) = %d, want 1", uf.Find(1))
	}
	if uf.Size(5) != 3 {
		t.Errorf("Size(5) = %d, want 3", uf.Size(5))
	}
}

func TestUnionFind_PathCompression(t *testing.T) {
	uf := NewUnionFind(3)
	uf.Merge(uf.Merge(0, 1), 2)

	uf.Find(0)
	if uf.parent[0] != 4 {
		t.Errorf("parent[0] = %d after Find, want root 4", uf.parent[0])
	}
}

func TestNewUnionFind_Zero(t *testing.T) {
	uf := NewUnionFind(0)
	if len(uf.parent) != 1 {
		t.Errorf("expected 1 slot for n=0, got %d", len(uf.parent))
	}
}
