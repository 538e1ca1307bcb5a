package spharm

import (
	"math"
	"testing"
)

func TestGaussianLatitudes(t *testing.T) {
	const nlat = 48
	lats, weights, err := GaussianLatitudes(nlat)
	if err != nil {
		t.Fatal(err)
	}
	if len(lats) != nlat || len(weights) != nlat {
		t.Fatalf("got %d latitudes and %d weights, want %d", len(lats), len(weights), nlat)
	}

	var sum float64
	for i, w := range weights {
		if w <= 0 {
			t.Fatalf("non-positive weight %g at index %d", w, i)
		}
		sum += w
	}
	if math.Abs(sum-2) > 1e-12 {
		t.Fatalf("weights sum to %.15f, want 2", sum)
	}

	for i := 1; i < nlat; i++ {
		if lats[i] >= lats[i-1] {
			t.Fatalf("latitudes not strictly north-to-south at index %d: %g >= %g", i, lats[i], lats[i-1])
		}
	}
	for i := 0; i < nlat/2; i++ {
		if math.Abs(lats[i]+lats[nlat-1-i]) > 1e-10 {
			t.Fatalf("latitudes not symmetric: %g vs %g", lats[i], lats[nlat-1-i])
		}
	}

	// The nodes must be roots of the Legendre polynomial of degree nlat.
	for _, lat := range lats {
		mu := math.Sin(lat * math.Pi / 180)
		pPrev, p := 1.0, mu
		for k := 2; k <= nlat; k++ {
			pPrev, p = p, (float64(2*k-1)*mu*p-float64(k-1)*pPrev)/float64(k)
		}
		if math.Abs(p) > 1e-10 {
			t.Fatalf("P_%d(%g) = %g, want ~0", nlat, mu, p)
		}
	}
}

func TestRegularLatitudesOdd(t *testing.T) {
	lats := RegularLatitudes(73)
	if lats[0] != 90 || lats[72] != -90 {
		t.Fatalf("odd grid must include the poles, got endpoints %g and %g", lats[0], lats[72])
	}
	if math.Abs(lats[1]-87.5) > 1e-12 {
		t.Fatalf("expected 2.5 degree spacing, second latitude %g", lats[1])
	}
}

func TestRegularLatitudesEven(t *testing.T) {
	lats := RegularLatitudes(72)
	if math.Abs(lats[0]-88.75) > 1e-12 || math.Abs(lats[71]+88.75) > 1e-12 {
		t.Fatalf("even grid endpoints %g and %g, want +/-88.75", lats[0], lats[71])
	}
}

func TestRegularWeightsIntegrateExactly(t *testing.T) {
	for _, nlat := range []int{15, 16, 73} {
		lats := RegularLatitudes(nlat)
		mu := make([]float64, nlat)
		for i, lat := range lats {
			mu[i] = math.Sin(lat * math.Pi / 180)
		}
		weights, err := regularWeights(mu)
		if err != nil {
			t.Fatal(err)
		}
		var sum float64
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-2) > 1e-10 {
			t.Fatalf("nlat=%d: weights sum to %.15f, want 2", nlat, sum)
		}
		// Odd-degree monomial integrals over [-1, 1] vanish; mu^2
		// integrates to 2/3, mu^4 to 2/5.
		moment := func(p int) float64 {
			var s float64
			for j, w := range weights {
				s += w * math.Pow(mu[j], float64(p))
			}
			return s
		}
		if math.Abs(moment(1)) > 1e-10 || math.Abs(moment(3)) > 1e-10 {
			t.Fatalf("nlat=%d: odd moments not zero: %g, %g", nlat, moment(1), moment(3))
		}
		if math.Abs(moment(2)-2.0/3) > 1e-10 {
			t.Fatalf("nlat=%d: second moment %g, want 2/3", nlat, moment(2))
		}
		if math.Abs(moment(4)-2.0/5) > 1e-10 {
			t.Fatalf("nlat=%d: fourth moment %g, want 2/5", nlat, moment(4))
		}
	}
}

func TestParseGridType(t *testing.T) {
	for s, want := range map[string]GridType{"regular": Regular, "Gaussian": Gaussian, "GAUSSIAN": Gaussian} {
		got, err := ParseGridType(s)
		if err != nil {
			t.Fatalf("ParseGridType(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseGridType(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseGridType("icosahedral"); err == nil {
		t.Fatal("expected an error for an unknown grid type")
	}
}
