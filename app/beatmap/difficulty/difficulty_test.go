package difficulty

import (
	"math"
	"testing"
)

func TestHitWindows(t *testing.T) {
	d := NewDifficulty(5, 4, 8, 9)

	if d.Hit300 != 60 || d.Hit100 != 120 || d.Hit50 != 220 {
		t.Fatalf("unexpected hit windows %v/%v/%v", d.Hit300, d.Hit100, d.Hit50)
	}

	if math.Abs(d.CircleRadius-(54.4-4.48*4)) > 1e-9 {
		t.Fatalf("unexpected radius %v", d.CircleRadius)
	}

	if d.SliderBreakOffset() != 233 {
		t.Fatalf("SliderBreakOffset = %d, want 233", d.SliderBreakOffset())
	}
}

func TestPreciseHitWindows(t *testing.T) {
	cases := []struct {
		name             string
		mods             Modifier
		great, good, meh float64
		sliderBreak      int
	}{
		{"nomod", None, 75, 150, 250, 263},
		{"precise", Precise, 55, 120, 180, 193},
	}

	for _, c := range cases {
		d := NewDifficulty(5, 4, 5, 9)
		d.SetMods(c.mods)

		if d.Hit300 != c.great || d.Hit100 != c.good || d.Hit50 != c.meh {
			t.Fatalf("%s: hit windows %v/%v/%v, want %v/%v/%v", c.name, d.Hit300, d.Hit100, d.Hit50, c.great, c.good, c.meh)
		}

		if d.SliderBreakOffset() != c.sliderBreak {
			t.Fatalf("%s: SliderBreakOffset = %d, want %d", c.name, d.SliderBreakOffset(), c.sliderBreak)
		}
	}

	d := NewDifficulty(5, 4, 5, 9)
	nomod := d.Hit50

	d.SetMods(Precise)
	if d.Hit50 >= nomod {
		t.Fatalf("precise 50 window %v is not narrower than nomod %v", d.Hit50, nomod)
	}
}

func TestSetMods(t *testing.T) {
	d := NewDifficulty(5, 4, 8, 9)
	d.SetMods(DoubleTime | HardRock)

	if d.Speed != 1.5 {
		t.Fatalf("Speed = %v, want 1.5", d.Speed)
	}

	if d.Hit50 != 250+10*(5-math.Min(8*1.4, 10)) {
		t.Fatalf("HR not applied to OD, Hit50 = %v", d.Hit50)
	}

	if d.ARReal <= 10 {
		t.Fatalf("ARReal = %v, expected DT to push above 10", d.ARReal)
	}
}

func TestForcedStats(t *testing.T) {
	d := NewDifficulty(5, 4, 8, 9)
	cs := 2.0
	d.SetForced(&cs, nil, nil, nil)

	if math.Abs(d.CircleRadius-(54.4-4.48*2)) > 1e-9 {
		t.Fatalf("forced CS not applied, radius = %v", d.CircleRadius)
	}
}

func TestParseDroidMods(t *testing.T) {
	mods := ParseDroidMods("hrdz")

	for _, m := range []Modifier{TouchDevice, Hidden, HardRock, DoubleTime} {
		if !mods.Active(m) {
			t.Fatalf("expected %s in %s", m, mods)
		}
	}

	if mods.Active(Relax2) {
		t.Fatal("unexpected autopilot")
	}

	if s := ParseDroidMods("cp").String(); s != "TDNCAP" {
		t.Fatalf("String() = %q", s)
	}
}
