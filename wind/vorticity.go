package wind

import (
	"math"

	"github.com/ctessum/sparse"

	"github.com/cwbudde/algo-spharm/spharm"
)

// VrtDiv returns the relative vorticity and horizontal divergence of the
// wind on the grid, optionally truncated to total wavenumber truncation.
func (w *VectorWind) VrtDiv(truncation int) (vrt, div *sparse.DenseArray, err error) {
	vrt = sparse.ZerosDense(w.u.Shape...)
	div = sparse.ZerosDense(w.u.Shape...)
	err = w.eachDecomposed(truncation, func(k int, vs, ds *spharm.Spec) error {
		vg, err := w.tr.Synthesis(vs)
		if err != nil {
			return err
		}
		dg, err := w.tr.Synthesis(ds)
		if err != nil {
			return err
		}
		setLevel(vrt, k, vg)
		setLevel(div, k, dg)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return vrt, div, nil
}

// Vorticity returns the relative vorticity of the wind.
func (w *VectorWind) Vorticity(truncation int) (*sparse.DenseArray, error) {
	vrt, _, err := w.VrtDiv(truncation)
	return vrt, err
}

// Divergence returns the horizontal divergence of the wind.
func (w *VectorWind) Divergence(truncation int) (*sparse.DenseArray, error) {
	_, div, err := w.VrtDiv(truncation)
	return div, err
}

// PlanetaryVorticity returns the Coriolis parameter f = 2*omega*sin(lat)
// broadcast over the wind's grid. Use [DefaultOmega] for the Earth.
func (w *VectorWind) PlanetaryVorticity(omega float64) *sparse.DenseArray {
	out := sparse.ZerosDense(w.u.Shape...)
	f := w.coriolis(omega)
	for k := 0; k < w.nt; k++ {
		setLevel(out, k, f)
	}
	return out
}

// AbsoluteVorticity returns the sum of planetary and relative vorticity.
func (w *VectorWind) AbsoluteVorticity(omega float64, truncation int) (*sparse.DenseArray, error) {
	vrt, err := w.Vorticity(truncation)
	if err != nil {
		return nil, err
	}
	vrt.AddDense(w.PlanetaryVorticity(omega))
	return vrt, nil
}

// coriolis returns 2*omega*sin(lat) as a single (nlat, nlon) level.
func (w *VectorWind) coriolis(omega float64) []float64 {
	f := make([]float64, w.nlat*w.nlon)
	for j, lat := range w.tr.Latitudes() {
		fj := 2 * omega * math.Sin(lat*math.Pi/180)
		for i := 0; i < w.nlon; i++ {
			f[j*w.nlon+i] = fj
		}
	}
	return f
}
