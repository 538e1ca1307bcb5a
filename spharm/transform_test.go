package spharm

import (
	"math"
	"math/rand"
	"testing"
)

const (
	testU0 = 20.0 // m/s, solid-body rotation speed at the equator
)

// solidBodyWind fills u with U0*cos(lat) and v with zero. The analytic
// relative vorticity is 2*U0*sin(lat)/a and the divergence is zero; the
// streamfunction is -a*U0*sin(lat).
func solidBodyWind(tr *Transform) (u, v []float64) {
	nlat, nlon := tr.NLat(), tr.NLon()
	u = make([]float64, nlat*nlon)
	v = make([]float64, nlat*nlon)
	for j, lat := range tr.Latitudes() {
		c := math.Cos(lat * math.Pi / 180)
		for i := 0; i < nlon; i++ {
			u[j*nlon+i] = testU0 * c
		}
	}
	return u, v
}

func maxAbsDiff(a, b []float64) float64 {
	var m float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > m {
			m = d
		}
	}
	return m
}

func TestNewRejectsBadGrids(t *testing.T) {
	if _, err := New(2, 128, Regular, EarthRadius); err == nil {
		t.Fatal("expected an error for nlat < 3")
	}
	if _, err := New(64, 3, Gaussian, EarthRadius); err == nil {
		t.Fatal("expected an error for nlon < 4")
	}
	if _, err := New(64, 128, GridType(7), EarthRadius); err == nil {
		t.Fatal("expected an error for an unknown grid type")
	}
	if _, err := New(64, 128, Regular, -1); err == nil {
		t.Fatal("expected an error for a non-positive radius")
	}
}

func TestAnalysisSynthesisRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name     string
		nlat     int
		gridType GridType
	}{
		{"gaussian", 24, Gaussian},
		{"regular-odd", 25, Regular},
		{"regular-even", 24, Regular},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := New(tc.nlat, 48, tc.gridType, EarthRadius)
			if err != nil {
				t.Fatal(err)
			}
			// Band-limited random field: exact round trip requires the
			// quadrature to integrate products of degree <= 2*10.
			rng := rand.New(rand.NewSource(42))
			spec := NewSpec(tr.MaxDegree())
			for m := 0; m <= 10; m++ {
				for n := m; n <= 10; n++ {
					if n == 0 {
						continue
					}
					c := complex(rng.NormFloat64(), rng.NormFloat64())
					if m == 0 {
						c = complex(real(c), 0) // zonal-mean coefficients of a real field are real
					}
					spec.Set(c, m, n)
				}
			}

			grid, err := tr.Synthesis(spec)
			if err != nil {
				t.Fatal(err)
			}
			back, err := tr.Analysis(grid)
			if err != nil {
				t.Fatal(err)
			}
			// Gaussian quadrature is exact for products up to degree
			// 2*nlat-1, so every coefficient is recovered. Equally spaced
			// weights are exact only up to degree nlat-1; coefficients
			// whose product with the band limit exceeds that alias.
			checkLimit := tr.MaxDegree()
			if tc.gridType == Regular {
				checkLimit = tr.MaxDegree() - 10
			}
			for m := 0; m <= checkLimit; m++ {
				for n := m; n <= checkLimit; n++ {
					d := back.At(m, n) - spec.At(m, n)
					if math.Hypot(real(d), imag(d)) > 1e-10 {
						t.Fatalf("coefficient (m=%d, n=%d) drifted by %g", m, n, d)
					}
				}
			}
		})
	}
}

func TestAnalysisPreservesGlobalMean(t *testing.T) {
	tr, err := New(32, 64, Gaussian, EarthRadius)
	if err != nil {
		t.Fatal(err)
	}
	field := make([]float64, tr.NLat()*tr.NLon())
	for i := range field {
		field[i] = 3.25
	}
	spec, err := tr.Analysis(field)
	if err != nil {
		t.Fatal(err)
	}
	// A constant field projects entirely onto (m=0, n=0):
	// c00 = 3.25 * integral(Pbar00 dmu) = 3.25*sqrt(2).
	want := 3.25 * math.Sqrt2
	if got := spec.At(0, 0); math.Abs(real(got)-want) > 1e-12 || math.Abs(imag(got)) > 1e-12 {
		t.Fatalf("constant-field coefficient %g, want %g", got, want)
	}
}

func TestVrtDivSolidBody(t *testing.T) {
	for _, gridType := range []GridType{Regular, Gaussian} {
		t.Run(gridType.String(), func(t *testing.T) {
			tr, err := New(73, 144, gridType, EarthRadius)
			if err != nil {
				t.Fatal(err)
			}
			u, v := solidBodyWind(tr)
			vrtSpec, divSpec, err := tr.VrtDivSpec(u, v)
			if err != nil {
				t.Fatal(err)
			}
			vrt, err := tr.Synthesis(vrtSpec)
			if err != nil {
				t.Fatal(err)
			}
			div, err := tr.Synthesis(divSpec)
			if err != nil {
				t.Fatal(err)
			}

			nlon := tr.NLon()
			want := make([]float64, len(vrt))
			for j, lat := range tr.Latitudes() {
				w := 2 * testU0 * math.Sin(lat*math.Pi/180) / tr.Radius()
				for i := 0; i < nlon; i++ {
					want[j*nlon+i] = w
				}
			}
			scale := 2 * testU0 / tr.Radius()
			if d := maxAbsDiff(vrt, want); d > 1e-10*scale {
				t.Fatalf("vorticity error %g exceeds tolerance", d)
			}
			for i, x := range div {
				if math.Abs(x) > 1e-10*scale {
					t.Fatalf("divergence %g at index %d, want ~0", x, i)
				}
			}
		})
	}
}

func TestInvertLaplacianStreamfunction(t *testing.T) {
	tr, err := New(64, 128, Gaussian, EarthRadius)
	if err != nil {
		t.Fatal(err)
	}
	u, v := solidBodyWind(tr)
	vrtSpec, _, err := tr.VrtDivSpec(u, v)
	if err != nil {
		t.Fatal(err)
	}
	psi, err := tr.Synthesis(tr.InvertLaplacian(vrtSpec))
	if err != nil {
		t.Fatal(err)
	}
	nlon := tr.NLon()
	scale := tr.Radius() * testU0
	for j, lat := range tr.Latitudes() {
		want := -scale * math.Sin(lat*math.Pi/180)
		for i := 0; i < nlon; i++ {
			if d := math.Abs(psi[j*nlon+i] - want); d > 1e-10*scale {
				t.Fatalf("streamfunction error %g at lat %g", d, lat)
			}
		}
	}
}

func TestGradientGrids(t *testing.T) {
	tr, err := New(48, 96, Gaussian, EarthRadius)
	if err != nil {
		t.Fatal(err)
	}
	// f = sin(lat) = Pbar(1,0)/sqrt(3/2); its gradient is purely
	// northward with magnitude cos(lat)/a.
	spec := NewSpec(tr.MaxDegree())
	spec.Set(complex(1/math.Sqrt(1.5), 0), 0, 1)

	ug, vg, err := tr.GradientGrids(spec)
	if err != nil {
		t.Fatal(err)
	}
	nlon := tr.NLon()
	tol := 1e-10 / tr.Radius()
	for j, lat := range tr.Latitudes() {
		want := math.Cos(lat*math.Pi/180) / tr.Radius()
		for i := 0; i < nlon; i++ {
			if math.Abs(ug[j*nlon+i]) > tol {
				t.Fatalf("zonal gradient %g at lat %g, want 0", ug[j*nlon+i], lat)
			}
			if d := math.Abs(vg[j*nlon+i] - want); d > tol {
				t.Fatalf("meridional gradient error %g at lat %g", d, lat)
			}
		}
	}
}

func TestWindsFromVrtDivRoundTrip(t *testing.T) {
	tr, err := New(73, 144, Regular, EarthRadius)
	if err != nil {
		t.Fatal(err)
	}
	u, v := solidBodyWind(tr)
	vrtSpec, divSpec, err := tr.VrtDivSpec(u, v)
	if err != nil {
		t.Fatal(err)
	}
	u2, v2, err := tr.WindsFromVrtDiv(vrtSpec, divSpec)
	if err != nil {
		t.Fatal(err)
	}
	if d := maxAbsDiff(u, u2); d > 1e-8 {
		t.Fatalf("u not recovered, max error %g", d)
	}
	if d := maxAbsDiff(v, v2); d > 1e-8 {
		t.Fatalf("v not recovered, max error %g", d)
	}
}

func TestSpecTruncate(t *testing.T) {
	tr, err := New(32, 64, Gaussian, EarthRadius)
	if err != nil {
		t.Fatal(err)
	}
	spec := NewSpec(tr.MaxDegree())
	spec.Set(complex(1, 0), 0, 2)
	spec.Set(complex(1, 1), 3, 5)
	spec.Truncate(3)
	if got := spec.At(3, 5); got != 0 {
		t.Fatalf("coefficient above the truncation survives: %g", got)
	}
	if got := spec.At(0, 2); got != complex(1, 0) {
		t.Fatalf("coefficient below the truncation changed: %g", got)
	}

	grid, err := tr.Synthesis(spec)
	if err != nil {
		t.Fatal(err)
	}
	back, err := tr.Analysis(grid)
	if err != nil {
		t.Fatal(err)
	}
	if got := back.At(3, 5); got != 0 {
		t.Fatalf("truncated coefficient reappeared: %g", got)
	}

	// Negative and out-of-range limits leave everything in place.
	spec.Set(complex(2, 0), 1, 1)
	spec.Truncate(-1)
	spec.Truncate(tr.MaxDegree() + 5)
	if got := spec.At(1, 1); got != complex(2, 0) {
		t.Fatalf("no-op truncation changed a coefficient: %g", got)
	}
	if got := spec.At(0, 2); got != complex(1, 0) {
		t.Fatalf("no-op truncation changed a coefficient: %g", got)
	}
}

func TestFieldSizeErrors(t *testing.T) {
	tr, err := New(16, 32, Gaussian, EarthRadius)
	if err != nil {
		t.Fatal(err)
	}
	short := make([]float64, 10)
	if _, err := tr.Analysis(short); err == nil {
		t.Fatal("expected a field size error from Analysis")
	}
	ok := make([]float64, 16*32)
	if _, _, err := tr.VrtDivSpec(ok, short); err == nil {
		t.Fatal("expected a field size error from VrtDivSpec")
	}
	big := NewSpec(40)
	if _, err := tr.Synthesis(big); err == nil {
		t.Fatal("expected a truncation error from Synthesis")
	}
}

func BenchmarkAnalysis(b *testing.B) {
	tr, err := New(73, 144, Regular, EarthRadius)
	if err != nil {
		b.Fatal(err)
	}
	u, _ := solidBodyWind(tr)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.Analysis(u); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVrtDivSpec(b *testing.B) {
	tr, err := New(73, 144, Regular, EarthRadius)
	if err != nil {
		b.Fatal(err)
	}
	u, v := solidBodyWind(tr)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := tr.VrtDivSpec(u, v); err != nil {
			b.Fatal(err)
		}
	}
}
