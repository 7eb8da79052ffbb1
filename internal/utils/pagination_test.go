package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	if AtoiDefault("42", 0) != 42 {
		t.Fatal("42")
	}
	if AtoiDefault("", 10) != 10 {
		t.Fatal("empty")
	}
	if AtoiDefault("x", 5) != 5 {
		t.Fatal("unparseable")
	}
}

func TestClampPage(t *testing.T) {
	p, s := ClampPage(0, 0, 100)
	if p != 1 || s != 1 {
		t.Fatalf("got %d,%d", p, s)
	}
	p, s = ClampPage(3, 500, 100)
	if p != 3 || s != 100 {
		t.Fatalf("got %d,%d", p, s)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.size); got != c.want {
			t.Fatalf("TotalPages(%d,%d) = %d, want %d", c.total, c.size, got, c.want)
		}
	}
}
