package wind

import (
	"github.com/ctessum/sparse"

	"github.com/cwbudde/algo-spharm/spharm"
)

// RossbyWaveSource returns S = -eta*D - (uchi, vchi) . grad(eta), where
// eta is absolute vorticity, D is divergence and (uchi, vchi) is the
// irrotational wind. Use [DefaultOmega] for the Earth's rotation rate.
func (w *VectorWind) RossbyWaveSource(omega float64, truncation int) (*sparse.DenseArray, error) {
	out := sparse.ZerosDense(w.u.Shape...)
	f := w.coriolis(omega)
	s := make([]float64, w.nlat*w.nlon)
	err := w.eachDecomposed(truncation, func(k int, vs, ds *spharm.Spec) error {
		vrt, err := w.tr.Synthesis(vs)
		if err != nil {
			return err
		}
		div, err := w.tr.Synthesis(ds)
		if err != nil {
			return err
		}
		eta := vrt // reuse: absolute vorticity on the grid
		for i := range eta {
			eta[i] += f[i]
		}
		etaSpec, err := w.tr.Analysis(eta)
		if err != nil {
			return err
		}
		if truncation >= 0 {
			etaSpec.Truncate(truncation)
		}
		etax, etay, err := w.tr.GradientGrids(etaSpec)
		if err != nil {
			return err
		}
		uchi, vchi, err := w.tr.WindsFromVrtDiv(spharm.NewSpec(ds.MaxDegree()), ds)
		if err != nil {
			return err
		}
		for i := range s {
			s[i] = -eta[i]*div[i] - (uchi[i]*etax[i] + vchi[i]*etay[i])
		}
		setLevel(out, k, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
