package gridtools

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spharm/internal/testutil"
	"github.com/cwbudde/algo-spharm/spharm"
)

func TestPrepRecoverRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		dimorder string
		dims     []int
	}{
		{"yx", []int{19, 36}},
		{"xy", []int{36, 19}},
		{"tzyx", []int{3, 2, 19, 36}},
		{"xayb", []int{36, 4, 19, 5}},
	} {
		t.Run(tc.dimorder, func(t *testing.T) {
			data := testutil.Sequential(tc.dims...)
			pdata, info, err := Prep(data, tc.dimorder)
			if err != nil {
				t.Fatal(err)
			}
			if len(pdata.Shape) != 3 {
				t.Fatalf("prepared rank %d, want 3", len(pdata.Shape))
			}
			if pdata.Shape[0] != 19 || pdata.Shape[1] != 36 {
				t.Fatalf("prepared grid %dx%d, want 19x36", pdata.Shape[0], pdata.Shape[1])
			}

			back, err := Recover(pdata, info)
			if err != nil {
				t.Fatal(err)
			}
			for i := range data.Shape {
				if back.Shape[i] != data.Shape[i] {
					t.Fatalf("recovered shape %v, want %v", back.Shape, data.Shape)
				}
			}
			for i, want := range data.Elements {
				if back.Elements[i] != want {
					t.Fatalf("element %d recovered as %g, want %g", i, back.Elements[i], want)
				}
			}
		})
	}
}

func TestPrepMovesLatLonValues(t *testing.T) {
	data := testutil.Sequential(3, 2, 5, 4) // (t, z, y, x)
	pdata, _, err := Prep(data, "tzyx")
	if err != nil {
		t.Fatal(err)
	}
	// pdata[y, x, t*2+z] must equal data[t, z, y, x].
	for ti := 0; ti < 3; ti++ {
		for z := 0; z < 2; z++ {
			for y := 0; y < 5; y++ {
				for x := 0; x < 4; x++ {
					if got, want := pdata.Get(y, x, ti*2+z), data.Get(ti, z, y, x); got != want {
						t.Fatalf("pdata[%d,%d,%d] = %g, want %g", y, x, ti*2+z, got, want)
					}
				}
			}
		}
	}
}

func TestPrepErrors(t *testing.T) {
	data := testutil.Sequential(3, 4)
	for _, order := range []string{"yy", "ty", "xt", "yxz", "y"} {
		if _, _, err := Prep(data, order); err == nil {
			t.Errorf("order %q: expected an error", order)
		} else if !errors.Is(err, ErrDimOrder) {
			t.Errorf("order %q: got %v, want ErrDimOrder", order, err)
		}
	}
}

func TestRecoveryClosure(t *testing.T) {
	data := testutil.Sequential(3, 2, 5, 4)
	pdata, info, err := Prep(data, "tzyx")
	if err != nil {
		t.Fatal(err)
	}
	restore := Recovery(info)
	out, err := restore(pdata, pdata.Copy())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("recovered %d fields, want 2", len(out))
	}
	for _, f := range out {
		for i, want := range data.Elements {
			if f.Elements[i] != want {
				t.Fatalf("element %d recovered as %g, want %g", i, f.Elements[i], want)
			}
		}
	}
}

func TestReverseLatDim(t *testing.T) {
	u := testutil.Sequential(4, 3)
	v := testutil.Sequential(4, 3)
	ru, rv, err := ReverseLatDim(u, v, 0)
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 4; j++ {
		for i := 0; i < 3; i++ {
			if ru.Get(j, i) != u.Get(3-j, i) || rv.Get(j, i) != v.Get(3-j, i) {
				t.Fatalf("latitude row %d not reversed", j)
			}
		}
	}
	if _, _, err := ReverseLatDim(u, v, 5); err == nil {
		t.Error("expected an error for an out-of-range axis")
	}
}

func TestOrderLatDim(t *testing.T) {
	ascending := []float64{-90, -45, 0, 45, 90}
	u := testutil.Sequential(5, 2)
	v := testutil.Sequential(5, 2)
	lats, ou, ov, err := OrderLatDim(ascending, u, v, 0)
	if err != nil {
		t.Fatal(err)
	}
	if lats[0] != 90 || lats[4] != -90 {
		t.Fatalf("latitudes not reordered: %v", lats)
	}
	if ou.Get(0, 0) != u.Get(4, 0) || ov.Get(0, 1) != v.Get(4, 1) {
		t.Fatal("fields not reversed with the latitudes")
	}

	// Already north to south: values pass through unchanged.
	lats2, ou2, _, err := OrderLatDim(lats, ou, ov, 0)
	if err != nil {
		t.Fatal(err)
	}
	if lats2[0] != 90 || ou2.Get(0, 0) != ou.Get(0, 0) {
		t.Fatal("north-to-south input was modified")
	}
}

func TestInspectGridType(t *testing.T) {
	if got, err := InspectGridType(spharm.RegularLatitudes(73)); err != nil || got != spharm.Regular {
		t.Fatalf("regular grid classified as %v, %v", got, err)
	}

	glats, _, err := spharm.GaussianLatitudes(64)
	if err != nil {
		t.Fatal(err)
	}
	if got, err := InspectGridType(glats); err != nil || got != spharm.Gaussian {
		t.Fatalf("gaussian grid classified as %v, %v", got, err)
	}

	// South-to-north input is accepted.
	reversed := make([]float64, len(glats))
	for i, lat := range glats {
		reversed[len(glats)-1-i] = lat
	}
	if got, err := InspectGridType(reversed); err != nil || got != spharm.Gaussian {
		t.Fatalf("reversed gaussian grid classified as %v, %v", got, err)
	}

	bad := []float64{80, 40, 30, -10, -85}
	if _, err := InspectGridType(bad); !errors.Is(err, ErrUnknownGrid) {
		t.Fatalf("irregular latitudes: got %v, want ErrUnknownGrid", err)
	}

	// Small perturbations inside the tolerance still classify.
	wobbly := spharm.RegularLatitudes(37)
	for i := range wobbly {
		wobbly[i] += 4e-4 * math.Cos(float64(i))
	}
	if got, err := InspectGridType(wobbly); err != nil || got != spharm.Regular {
		t.Fatalf("perturbed regular grid classified as %v, %v", got, err)
	}
}
