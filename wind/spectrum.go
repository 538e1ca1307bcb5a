package wind

import (
	"github.com/ctessum/sparse"

	"github.com/cwbudde/algo-spharm/spharm"
)

// KineticEnergySpectrum returns the kinetic energy per unit mass resolved
// at each total wavenumber n, shape (n+1) for a single field or
// (n+1, nfields) for a stack. Summed over all wavenumbers the spectrum
// equals the global mean kinetic energy of the wind.
func (w *VectorWind) KineticEnergySpectrum(truncation int) (*sparse.DenseArray, error) {
	maxDegree := w.tr.MaxDegree()
	if truncation >= 0 && truncation < maxDegree {
		maxDegree = truncation
	}
	var out *sparse.DenseArray
	if len(w.u.Shape) == 3 {
		out = sparse.ZerosDense(maxDegree+1, w.nt)
	} else {
		out = sparse.ZerosDense(maxDegree + 1)
	}

	a := w.tr.Radius()
	err := w.eachDecomposed(truncation, func(k int, vs, ds *spharm.Spec) error {
		for n := 1; n <= maxDegree; n++ {
			var e float64
			for m := 0; m <= n; m++ {
				xi := vs.At(m, n)
				dl := ds.At(m, n)
				p := real(xi)*real(xi) + imag(xi)*imag(xi) +
					real(dl)*real(dl) + imag(dl)*imag(dl)
				if m > 0 {
					p *= 2
				}
				e += p
			}
			e *= a * a / (4 * float64(n) * float64(n+1))
			if len(w.u.Shape) == 3 {
				out.Set(e, n, k)
			} else {
				out.Set(e, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
