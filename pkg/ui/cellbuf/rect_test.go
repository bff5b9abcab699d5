package cellbuf

import "testing"

func TestRectDerivedQueries(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Left() != 2 || r.Right() != 12 || r.Top() != 3 || r.Bottom() != 7 {
		t.Errorf("edges = %d,%d,%d,%d", r.Left(), r.Right(), r.Top(), r.Bottom())
	}
	if r.Area() != 40 {
		t.Errorf("area = %d, want 40", r.Area())
	}
}

func TestNewRectClampsNegativeDimensions(t *testing.T) {
	r := NewRect(0, 0, -5, -1)
	if r.Width != 0 || r.Height != 0 {
		t.Errorf("negative dimensions not clamped: %+v", r)
	}
	if !r.IsEmpty() {
		t.Error("clamped rect should be empty")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(1, 1, 3, 3)
	cases := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},
		{3, 3, true},
		{4, 1, false},
		{1, 4, false},
		{0, 0, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRectIntersection(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	got := a.Intersection(b)
	want := NewRect(5, 5, 5, 5)
	if got != want {
		t.Errorf("intersection = %+v, want %+v", got, want)
	}

	c := NewRect(20, 20, 2, 2)
	if in := a.Intersection(c); !in.IsEmpty() {
		t.Errorf("disjoint intersection = %+v, want empty", in)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	b := NewRect(4, 4, 2, 2)
	got := a.Union(b)
	want := NewRect(0, 0, 6, 6)
	if got != want {
		t.Errorf("union = %+v, want %+v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("union with empty = %+v, want %+v", got, a)
	}
}

func TestRectInner(t *testing.T) {
	r := NewRect(0, 0, 100, 100)
	got := r.Inner(5)
	want := NewRect(5, 5, 90, 90)
	if got != want {
		t.Errorf("inner = %+v, want %+v", got, want)
	}
	if in := NewRect(0, 0, 3, 3).Inner(2); !in.IsEmpty() {
		t.Errorf("over-shrunk inner = %+v, want empty", in)
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 4, 4)
	if !a.Intersects(NewRect(3, 3, 4, 4)) {
		t.Error("overlapping rects reported disjoint")
	}
	if a.Intersects(NewRect(4, 0, 2, 2)) {
		t.Error("edge-adjacent rects reported overlapping")
	}
}
