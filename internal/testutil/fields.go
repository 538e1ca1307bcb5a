// Package testutil builds analytic reference fields for transform tests.
package testutil

import (
	"math"

	"github.com/ctessum/sparse"
)

// SolidBodyWind returns u = u0*cos(lat) and v = 0 on an (nlat, nlon)
// grid. The analytic relative vorticity of this wind is 2*u0*sin(lat)/a,
// its divergence is zero and its streamfunction is -a*u0*sin(lat).
func SolidBodyWind(lats []float64, nlon int, u0 float64) (u, v *sparse.DenseArray) {
	nlat := len(lats)
	u = sparse.ZerosDense(nlat, nlon)
	v = sparse.ZerosDense(nlat, nlon)
	for j, lat := range lats {
		c := u0 * math.Cos(lat*math.Pi/180)
		for i := 0; i < nlon; i++ {
			u.Set(c, j, i)
		}
	}
	return u, v
}

// ZonalField fills an (nlat, nlon) grid with f(mu) where mu = sin(lat),
// constant along each latitude circle.
func ZonalField(lats []float64, nlon int, f func(mu float64) float64) *sparse.DenseArray {
	nlat := len(lats)
	out := sparse.ZerosDense(nlat, nlon)
	for j, lat := range lats {
		v := f(math.Sin(lat * math.Pi / 180))
		for i := 0; i < nlon; i++ {
			out.Set(v, j, i)
		}
	}
	return out
}

// Sequential fills an array with its own linear index so every element
// stays distinguishable after rearranging.
func Sequential(dims ...int) *sparse.DenseArray {
	a := sparse.ZerosDense(dims...)
	for i := range a.Elements {
		a.Elements[i] = float64(i)
	}
	return a
}
