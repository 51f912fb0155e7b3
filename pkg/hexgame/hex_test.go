package hexgame

import "testing"

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b Hex
		want int
	}{
		{Hex{0, 0}, Hex{0, 0}, 0},
		{Hex{0, 0}, Hex{1, 0}, 1},
		{Hex{0, 0}, Hex{3, 3}, 6},
		{Hex{-3, -3}, Hex{3, 3}, 12},
	}
	for _, c := range cases {
		if got := Distance(c.a, c.b); got != c.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNeighborsAreUniqueAndAdjacent(t *testing.T) {
	center := Hex{2, -1}
	seen := make(map[Hex]bool)
	for _, n := range Neighbors(center) {
		if Distance(center, n) != 1 {
			t.Errorf("neighbor %v is not adjacent to %v", n, center)
		}
		if seen[n] {
			t.Errorf("duplicate neighbor %v", n)
		}
		seen[n] = true
	}
}

func TestRingRadiusZero(t *testing.T) {
	got := Ring(Hex{0, 0}, 0)
	if len(got) != 1 || got[0] != (Hex{0, 0}) {
		t.Fatalf("Ring(0,0,0) = %v", got)
	}
}

func TestRingMatchesSpiralShell(t *testing.T) {
	center := Hex{0, 0}
	for radius := 1; radius <= 3; radius++ {
		ring := Ring(center, radius)
		if len(ring) != 6*radius {
			t.Errorf("radius %d: len(ring) = %d, want %d", radius, len(ring), 6*radius)
		}
		for _, h := range ring {
			if Distance(center, h) != radius {
				t.Errorf("ring hex %v at radius %d has distance %d", h, radius, Distance(center, h))
			}
		}
	}
}

func TestSpiralContainsAllHexesWithinRadius(t *testing.T) {
	center := Hex{1, 1}
	radius := 2
	got := Spiral(center, radius)
	count := 0
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			if Distance(Hex{0, 0}, Hex{q, r}) <= radius {
				count++
			}
		}
	}
	if len(got) != count {
		t.Fatalf("Spiral len = %d, want %d", len(got), count)
	}
	for _, h := range got {
		if Distance(center, h) > radius {
			t.Errorf("spiral hex %v exceeds radius %d", h, radius)
		}
	}
}

func TestLinedrawEndpoints(t *testing.T) {
	a, b := Hex{0, 0}, Hex{3, -1}
	line := Linedraw(a, b)
	if line[0] != a {
		t.Errorf("line starts at %v, want %v", line[0], a)
	}
	if line[len(line)-1] != b {
		t.Errorf("line ends at %v, want %v", line[len(line)-1], b)
	}
	if len(line) != Distance(a, b)+1 {
		t.Errorf("line length %d, want %d", len(line), Distance(a, b)+1)
	}
	for i := 1; i < len(line); i++ {
		if Distance(line[i-1], line[i]) != 1 {
			t.Errorf("line not contiguous between %v and %v", line[i-1], line[i])
		}
	}
}

func TestLinedrawSameHex(t *testing.T) {
	a := Hex{5, -2}
	line := Linedraw(a, a)
	if len(line) != 1 || line[0] != a {
		t.Fatalf("Linedraw(a,a) = %v", line)
	}
}
