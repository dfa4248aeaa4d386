package vector

import "testing"

func TestVectorArithmetic(t *testing.T) {
	a := NewVec2f(3, 4)
	b := NewVec2f(0, 0)

	if d := a.Dst(b); d != 5 {
		t.Fatalf("Dst = %v, want 5", d)
	}

	if d := a.DstSq(b); d != 25 {
		t.Fatalf("DstSq = %v, want 25", d)
	}

	if l := a.Len(); l != 5 {
		t.Fatalf("Len = %v, want 5", l)
	}

	if s := a.Sub(NewVec2f(1, 1)); s != NewVec2f(2, 3) {
		t.Fatalf("Sub = %v", s)
	}

	if s := a.Add(NewVec2f(1, 1)).Scl(2); s != NewVec2f(8, 10) {
		t.Fatalf("Add/Scl = %v", s)
	}

	if m := b.Lerp(a, 0.5); m != NewVec2f(1.5, 2) {
		t.Fatalf("Lerp = %v", m)
	}
}

func TestAngleRV(t *testing.T) {
	a := NewVec2f(1, 0)
	b := NewVec2f(0, 1)

	got := a.AngleRV(b)
	if got < 1.5707 || got > 1.5709 {
		t.Fatalf("AngleRV = %v, want pi/2", got)
	}
}
