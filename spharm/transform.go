package spharm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// EarthRadius is the mean spherical Earth radius in metres used by default
// for geophysical fields.
const EarthRadius = 6.3712e6

// Transform errors.
var (
	ErrFieldSize          = errors.New("spharm: field length does not match grid")
	ErrTruncationTooLarge = errors.New("spharm: spectral truncation exceeds grid resolution")
)

// Transform performs spherical harmonic transforms on a fixed global grid.
//
// The grid has nlat latitude rows ordered north to south and nlon
// equally-spaced longitudes per row. Grid fields are passed as row-major
// slices of length nlat*nlon (latitude varying slowest).
type Transform struct {
	nlat, nlon int
	gridType   GridType
	radius     float64
	maxDegree  int

	lats    []float64 // degrees, north to south
	mu      []float64 // sin(latitude)
	weights []float64 // quadrature weights on mu, summing to 2

	fft *fourier.FFT
	tab *legendreTables
}

// New builds a Transform for an nlat-by-nlon global grid of the given type.
// The sphere radius is used for all differential operators; EarthRadius is
// the conventional choice for atmospheric fields. The spectral resolution is
// a triangular truncation at total wavenumber nlat-1.
func New(nlat, nlon int, gridType GridType, radius float64) (*Transform, error) {
	if nlat < 3 || nlon < 4 {
		return nil, fmt.Errorf("%w: got nlat=%d, nlon=%d", ErrGridTooSmall, nlat, nlon)
	}
	if radius <= 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("spharm: sphere radius must be positive: %g", radius)
	}

	var (
		lats, weights []float64
		err           error
	)
	switch gridType {
	case Gaussian:
		lats, weights, err = GaussianLatitudes(nlat)
		if err != nil {
			return nil, err
		}
	case Regular:
		lats = RegularLatitudes(nlat)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidGridType, int(gridType))
	}

	mu := make([]float64, nlat)
	for i, lat := range lats {
		mu[i] = math.Sin(lat * math.Pi / 180)
	}
	if gridType == Regular {
		if nlat%2 == 1 {
			mu[0], mu[nlat-1] = 1, -1
		}
		weights, err = regularWeights(mu)
		if err != nil {
			return nil, err
		}
	}

	maxDegree := nlat - 1
	return &Transform{
		nlat:      nlat,
		nlon:      nlon,
		gridType:  gridType,
		radius:    radius,
		maxDegree: maxDegree,
		lats:      lats,
		mu:        mu,
		weights:   weights,
		fft:       fourier.NewFFT(nlon),
		tab:       newLegendreTables(mu, maxDegree),
	}, nil
}

// NLat returns the number of latitude rows.
func (t *Transform) NLat() int { return t.nlat }

// NLon returns the number of longitudes per row.
func (t *Transform) NLon() int { return t.nlon }

// GridType returns the latitude spacing of the grid.
func (t *Transform) GridType() GridType { return t.gridType }

// Radius returns the sphere radius in metres.
func (t *Transform) Radius() float64 { return t.radius }

// MaxDegree returns the default triangular truncation, nlat-1.
func (t *Transform) MaxDegree() int { return t.maxDegree }

// Latitudes returns a copy of the grid latitudes in degrees, north to south.
func (t *Transform) Latitudes() []float64 {
	out := make([]float64, len(t.lats))
	copy(out, t.lats)
	return out
}

// Weights returns a copy of the latitude quadrature weights. They apply to
// integrals over sin(latitude) and sum to 2.
func (t *Transform) Weights() []float64 {
	out := make([]float64, len(t.weights))
	copy(out, t.weights)
	return out
}

func (t *Transform) checkField(field []float64) error {
	if len(field) != t.nlat*t.nlon {
		return fmt.Errorf("%w: got %d values, want %d", ErrFieldSize, len(field), t.nlat*t.nlon)
	}
	return nil
}

// mmaxFor caps the zonal wavenumber at what the longitude count resolves.
func (t *Transform) mmaxFor(maxDegree int) int {
	if h := t.nlon / 2; h < maxDegree {
		return h
	}
	return maxDegree
}

// Analysis computes the spherical harmonic coefficients of a scalar grid
// field, truncated at MaxDegree.
func (t *Transform) Analysis(field []float64) (*Spec, error) {
	if err := t.checkField(field); err != nil {
		return nil, err
	}
	spec := NewSpec(t.maxDegree)
	coeff := make([]complex128, t.nlon/2+1)
	mmax := t.mmaxFor(t.maxDegree)
	inv := 1 / float64(t.nlon)
	for j := 0; j < t.nlat; j++ {
		t.fft.Coefficients(coeff, field[j*t.nlon:(j+1)*t.nlon])
		w := t.weights[j] * inv
		pb := t.tab.pbar[j]
		for m := 0; m <= mmax; m++ {
			fm := coeff[m] * complex(w, 0)
			base := triIndex(t.maxDegree, m, m)
			for k := 0; k <= t.maxDegree-m; k++ {
				spec.coeffs[base+k] += fm * complex(pb[base+k], 0)
			}
		}
	}
	return spec, nil
}

// Synthesis evaluates spectral coefficients on the grid. The coefficient
// truncation may be at most MaxDegree.
func (t *Transform) Synthesis(spec *Spec) ([]float64, error) {
	if spec.maxDegree > t.maxDegree {
		return nil, fmt.Errorf("%w: truncation %d on an nlat=%d grid", ErrTruncationTooLarge, spec.maxDegree, t.nlat)
	}
	out := make([]float64, t.nlat*t.nlon)
	coeff := make([]complex128, t.nlon/2+1)
	mmax := t.mmaxFor(spec.maxDegree)
	for j := 0; j < t.nlat; j++ {
		pb := t.tab.pbar[j]
		for m := 0; m <= mmax; m++ {
			var c complex128
			baseS := triIndex(spec.maxDegree, m, m)
			baseT := triIndex(t.maxDegree, m, m)
			for k := 0; k <= spec.maxDegree-m; k++ {
				c += spec.coeffs[baseS+k] * complex(pb[baseT+k], 0)
			}
			coeff[m] = c
		}
		for m := mmax + 1; m < len(coeff); m++ {
			coeff[m] = 0
		}
		t.fft.Sequence(out[j*t.nlon:(j+1)*t.nlon], coeff)
	}
	return out, nil
}

// VrtDivSpec computes the spectral relative vorticity and horizontal
// divergence of the wind pair (u eastward, v northward).
func (t *Transform) VrtDivSpec(u, v []float64) (vrt, div *Spec, err error) {
	if err := t.checkField(u); err != nil {
		return nil, nil, err
	}
	if err := t.checkField(v); err != nil {
		return nil, nil, err
	}
	vrt = NewSpec(t.maxDegree)
	div = NewSpec(t.maxDegree)
	cu := make([]complex128, t.nlon/2+1)
	cv := make([]complex128, t.nlon/2+1)
	mmax := t.mmaxFor(t.maxDegree)
	scale := 1 / (float64(t.nlon) * t.radius)
	for j := 0; j < t.nlat; j++ {
		t.fft.Coefficients(cu, u[j*t.nlon:(j+1)*t.nlon])
		t.fft.Coefficients(cv, v[j*t.nlon:(j+1)*t.nlon])
		w := complex(t.weights[j]*scale, 0)
		qb := t.tab.qbar[j]
		db := t.tab.dbar[j]
		for m := 0; m <= mmax; m++ {
			um := cu[m] * w
			vm := cv[m] * w
			im := complex(0, float64(m))
			base := triIndex(t.maxDegree, m, m)
			for k := 0; k <= t.maxDegree-m; k++ {
				i := base + k
				q := complex(qb[i], 0)
				d := complex(db[i], 0)
				div.coeffs[i] += im*um*q - vm*d
				vrt.coeffs[i] += im*vm*q + um*d
			}
		}
	}
	return vrt, div, nil
}

// GradientGrids evaluates the eastward and northward components of the
// horizontal gradient of a scalar given in spectral form.
func (t *Transform) GradientGrids(spec *Spec) (ugrad, vgrad []float64, err error) {
	if spec.maxDegree > t.maxDegree {
		return nil, nil, fmt.Errorf("%w: truncation %d on an nlat=%d grid", ErrTruncationTooLarge, spec.maxDegree, t.nlat)
	}
	ugrad = make([]float64, t.nlat*t.nlon)
	vgrad = make([]float64, t.nlat*t.nlon)
	cu := make([]complex128, t.nlon/2+1)
	cv := make([]complex128, t.nlon/2+1)
	mmax := t.mmaxFor(spec.maxDegree)
	invR := 1 / t.radius
	for j := 0; j < t.nlat; j++ {
		qb := t.tab.qbar[j]
		db := t.tab.dbar[j]
		for m := 0; m <= mmax; m++ {
			var sq, sd complex128
			baseS := triIndex(spec.maxDegree, m, m)
			baseT := triIndex(t.maxDegree, m, m)
			for k := 0; k <= spec.maxDegree-m; k++ {
				c := spec.coeffs[baseS+k]
				sq += c * complex(qb[baseT+k], 0)
				sd += c * complex(db[baseT+k], 0)
			}
			cu[m] = complex(0, float64(m)*invR) * sq
			cv[m] = complex(invR, 0) * sd
		}
		for m := mmax + 1; m < len(cu); m++ {
			cu[m], cv[m] = 0, 0
		}
		t.fft.Sequence(ugrad[j*t.nlon:(j+1)*t.nlon], cu)
		t.fft.Sequence(vgrad[j*t.nlon:(j+1)*t.nlon], cv)
	}
	return ugrad, vgrad, nil
}

// WindsFromVrtDiv reconstructs the wind components from spectral relative
// vorticity and divergence. It is the inverse of VrtDivSpec up to the
// spectral truncation.
func (t *Transform) WindsFromVrtDiv(vrt, div *Spec) (u, v []float64, err error) {
	if vrt.maxDegree > t.maxDegree || div.maxDegree > t.maxDegree {
		return nil, nil, fmt.Errorf("%w: truncations %d/%d on an nlat=%d grid", ErrTruncationTooLarge, vrt.maxDegree, div.maxDegree, t.nlat)
	}
	psi := t.InvertLaplacian(vrt)
	chi := t.InvertLaplacian(div)

	u = make([]float64, t.nlat*t.nlon)
	v = make([]float64, t.nlat*t.nlon)
	cu := make([]complex128, t.nlon/2+1)
	cv := make([]complex128, t.nlon/2+1)
	invR := 1 / t.radius
	for j := 0; j < t.nlat; j++ {
		qb := t.tab.qbar[j]
		db := t.tab.dbar[j]
		fill := func(spec *Spec, m int) (sq, sd complex128) {
			baseS := triIndex(spec.maxDegree, m, m)
			baseT := triIndex(t.maxDegree, m, m)
			for k := 0; k <= spec.maxDegree-m; k++ {
				c := spec.coeffs[baseS+k]
				sq += c * complex(qb[baseT+k], 0)
				sd += c * complex(db[baseT+k], 0)
			}
			return sq, sd
		}
		for m := 0; m < len(cu); m++ {
			cu[m], cv[m] = 0, 0
		}
		mpsi := t.mmaxFor(psi.maxDegree)
		for m := 0; m <= mpsi; m++ {
			sq, sd := fill(psi, m)
			im := complex(0, float64(m)*invR)
			cu[m] -= complex(invR, 0) * sd
			cv[m] += im * sq
		}
		mchi := t.mmaxFor(chi.maxDegree)
		for m := 0; m <= mchi; m++ {
			sq, sd := fill(chi, m)
			im := complex(0, float64(m)*invR)
			cu[m] += im * sq
			cv[m] += complex(invR, 0) * sd
		}
		t.fft.Sequence(u[j*t.nlon:(j+1)*t.nlon], cu)
		t.fft.Sequence(v[j*t.nlon:(j+1)*t.nlon], cv)
	}
	return u, v, nil
}

// InvertLaplacian solves the Poisson equation on the sphere: given the
// spectral coefficients of del^2 f it returns those of f, with the global
// mean (n = 0) set to zero.
func (t *Transform) InvertLaplacian(spec *Spec) *Spec {
	out := NewSpec(spec.maxDegree)
	r2 := t.radius * t.radius
	for m := 0; m <= spec.maxDegree; m++ {
		for n := m; n <= spec.maxDegree; n++ {
			if n == 0 {
				continue
			}
			i := triIndex(spec.maxDegree, m, n)
			out.coeffs[i] = spec.coeffs[i] * complex(-r2/float64(n*(n+1)), 0)
		}
	}
	return out
}
