package image2d

import "testing"

func TestAtSet(t *testing.T) {
	img := New[float64](3, 2)
	img.Set(2, 1, 42.5)
	if got := img.At(2, 1); got != 42.5 {
		t.Errorf("At(2,1) = %v, want 42.5", got)
	}
	if img.Index(2, 1) != 5 {
		t.Errorf("Index(2,1) = %d, want 5", img.Index(2, 1))
	}
}

func TestClone(t *testing.T) {
	a := New[uint8](2, 2)
	a.Set(0, 0, 7)
	b := a.Clone()
	b.Set(0, 0, 9)
	if a.At(0, 0) != 7 {
		t.Errorf("Clone aliased backing array: a mutated to %v", a.At(0, 0))
	}
}

func TestConvert(t *testing.T) {
	a := New[float64](2, 1)
	a.Set(0, 0, 3.7)
	a.Set(1, 0, -1.2)
	b := Convert[float32](a)
	if b.At(0, 0) != float32(3.7) || b.At(1, 0) != float32(-1.2) {
		t.Errorf("Convert produced %v, %v", b.At(0, 0), b.At(1, 0))
	}
}

func TestSameSize(t *testing.T) {
	a := New[uint8](3, 4)
	b := New[float64](3, 4)
	c := New[float64](4, 3)
	if !SameSize(a, b) {
		t.Error("expected SameSize true")
	}
	if SameSize(a, c) {
		t.Error("expected SameSize false")
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.5, 1}, {-0.5, -1}, {1.5, 2}, {-1.5, -2}, {0.4, 0}, {-0.4, 0}, {2.5, 3},
	}
	for _, c := range cases {
		if got := RoundHalfAwayFromZero(c.in); got != c.want {
			t.Errorf("RoundHalfAwayFromZero(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
