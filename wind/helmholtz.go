package wind

import (
	"github.com/ctessum/sparse"

	"github.com/cwbudde/algo-spharm/spharm"
)

// SFVP returns the streamfunction and velocity potential of the wind,
// the inverse Laplacians of relative vorticity and divergence.
func (w *VectorWind) SFVP(truncation int) (sf, vp *sparse.DenseArray, err error) {
	sf = sparse.ZerosDense(w.u.Shape...)
	vp = sparse.ZerosDense(w.u.Shape...)
	err = w.eachDecomposed(truncation, func(k int, vs, ds *spharm.Spec) error {
		psi, err := w.tr.Synthesis(w.tr.InvertLaplacian(vs))
		if err != nil {
			return err
		}
		chi, err := w.tr.Synthesis(w.tr.InvertLaplacian(ds))
		if err != nil {
			return err
		}
		setLevel(sf, k, psi)
		setLevel(vp, k, chi)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sf, vp, nil
}

// Streamfunction returns the streamfunction of the wind.
func (w *VectorWind) Streamfunction(truncation int) (*sparse.DenseArray, error) {
	sf, _, err := w.SFVP(truncation)
	return sf, err
}

// VelocityPotential returns the velocity potential of the wind.
func (w *VectorWind) VelocityPotential(truncation int) (*sparse.DenseArray, error) {
	_, vp, err := w.SFVP(truncation)
	return vp, err
}

// Helmholtz returns the Helmholtz decomposition of the wind: the
// irrotational components (uchi, vchi) and the non-divergent components
// (upsi, vpsi), with u = uchi + upsi and v = vchi + vpsi.
func (w *VectorWind) Helmholtz(truncation int) (uchi, vchi, upsi, vpsi *sparse.DenseArray, err error) {
	uchi = sparse.ZerosDense(w.u.Shape...)
	vchi = sparse.ZerosDense(w.u.Shape...)
	upsi = sparse.ZerosDense(w.u.Shape...)
	vpsi = sparse.ZerosDense(w.u.Shape...)
	err = w.eachDecomposed(truncation, func(k int, vs, ds *spharm.Spec) error {
		zero := spharm.NewSpec(vs.MaxDegree())
		uc, vc, err := w.tr.WindsFromVrtDiv(zero, ds)
		if err != nil {
			return err
		}
		up, vp, err := w.tr.WindsFromVrtDiv(vs, zero)
		if err != nil {
			return err
		}
		setLevel(uchi, k, uc)
		setLevel(vchi, k, vc)
		setLevel(upsi, k, up)
		setLevel(vpsi, k, vp)
		return nil
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return uchi, vchi, upsi, vpsi, nil
}

// IrrotationalComponent returns the divergent part of the wind, the
// gradient of the velocity potential.
func (w *VectorWind) IrrotationalComponent(truncation int) (uchi, vchi *sparse.DenseArray, err error) {
	uchi = sparse.ZerosDense(w.u.Shape...)
	vchi = sparse.ZerosDense(w.u.Shape...)
	err = w.eachDecomposed(truncation, func(k int, vs, ds *spharm.Spec) error {
		uc, vc, err := w.tr.WindsFromVrtDiv(spharm.NewSpec(ds.MaxDegree()), ds)
		if err != nil {
			return err
		}
		setLevel(uchi, k, uc)
		setLevel(vchi, k, vc)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return uchi, vchi, nil
}

// NondivergentComponent returns the rotational part of the wind, derived
// from the streamfunction alone.
func (w *VectorWind) NondivergentComponent(truncation int) (upsi, vpsi *sparse.DenseArray, err error) {
	upsi = sparse.ZerosDense(w.u.Shape...)
	vpsi = sparse.ZerosDense(w.u.Shape...)
	err = w.eachDecomposed(truncation, func(k int, vs, ds *spharm.Spec) error {
		up, vp, err := w.tr.WindsFromVrtDiv(vs, spharm.NewSpec(vs.MaxDegree()))
		if err != nil {
			return err
		}
		setLevel(upsi, k, up)
		setLevel(vpsi, k, vp)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return upsi, vpsi, nil
}

// DivergentComponent is another name for [IrrotationalComponent].
func (w *VectorWind) DivergentComponent(truncation int) (uchi, vchi *sparse.DenseArray, err error) {
	return w.IrrotationalComponent(truncation)
}

// RotationalComponent is another name for [NondivergentComponent].
func (w *VectorWind) RotationalComponent(truncation int) (upsi, vpsi *sparse.DenseArray, err error) {
	return w.NondivergentComponent(truncation)
}
