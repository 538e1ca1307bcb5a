package wind

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spharm/spharm"
)

const (
	// DefaultOmega is the rotation rate of the Earth in radians per second.
	DefaultOmega = 7.292e-5

	// NoTruncation keeps the full spectral resolution of the grid.
	NoTruncation = -1
)

var (
	// ErrShapeMismatch reports wind components or scalar fields whose grid
	// shape does not match.
	ErrShapeMismatch = errors.New("wind: components must have the same shape")

	// ErrInvalidRank reports arrays that are not rank 2 or 3.
	ErrInvalidRank = errors.New("wind: fields must have rank 2 or 3")

	// ErrMissingValues reports NaN values in an input field.
	ErrMissingValues = errors.New("wind: fields cannot contain missing values")
)

type config struct {
	gridType spharm.GridType
	radius   float64
}

func defaultConfig() config {
	return config{
		gridType: spharm.Regular,
		radius:   spharm.EarthRadius,
	}
}

// Option configures a [VectorWind].
type Option func(*config) error

// WithGridType selects the latitude grid layout (default [spharm.Regular]).
func WithGridType(g spharm.GridType) Option {
	return func(cfg *config) error {
		if g != spharm.Regular && g != spharm.Gaussian {
			return fmt.Errorf("wind: invalid grid type: %d", g)
		}
		cfg.gridType = g
		return nil
	}
}

// WithRadius sets the sphere radius in meters (default [spharm.EarthRadius]).
func WithRadius(r float64) Option {
	return func(cfg *config) error {
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("wind: radius must be positive and finite: %g", r)
		}
		cfg.radius = r
		return nil
	}
}

// VectorWind holds a validated wind pair and the transform engine for its
// grid. Methods derive diagnostic fields from the stored components; the
// zero value is not usable, construct with [New].
type VectorWind struct {
	u, v *sparse.DenseArray
	tr   *spharm.Transform
	nlat int
	nlon int
	nt   int
}

// New wraps the zonal wind u and meridional wind v. Both arrays must share
// a shape of (nlat, nlon) or (nlat, nlon, nfields) with latitude running
// north to south, and must be free of NaN values. The components are
// copied, so later modification of u or v does not affect the returned
// value.
func New(u, v *sparse.DenseArray, opts ...Option) (*VectorWind, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if u == nil || v == nil {
		return nil, fmt.Errorf("%w: nil component", ErrShapeMismatch)
	}
	if !sameShape(u.Shape, v.Shape) {
		return nil, fmt.Errorf("%w: u %v, v %v", ErrShapeMismatch, u.Shape, v.Shape)
	}
	if len(u.Shape) != 2 && len(u.Shape) != 3 {
		return nil, fmt.Errorf("%w: got rank %d", ErrInvalidRank, len(u.Shape))
	}
	if hasMissing(u.Elements) || hasMissing(v.Elements) {
		return nil, ErrMissingValues
	}

	nlat, nlon := u.Shape[0], u.Shape[1]
	nt := 1
	if len(u.Shape) == 3 {
		nt = u.Shape[2]
	}
	tr, err := spharm.New(nlat, nlon, cfg.gridType, cfg.radius)
	if err != nil {
		return nil, err
	}
	return &VectorWind{
		u:    u.Copy(),
		v:    v.Copy(),
		tr:   tr,
		nlat: nlat,
		nlon: nlon,
		nt:   nt,
	}, nil
}

// Transform exposes the underlying spectral engine.
func (w *VectorWind) Transform() *spharm.Transform { return w.tr }

// Latitudes returns the grid latitudes in degrees, north to south.
func (w *VectorWind) Latitudes() []float64 { return w.tr.Latitudes() }

// Magnitude returns the wind speed sqrt(u**2 + v**2).
func (w *VectorWind) Magnitude() *sparse.DenseArray {
	out := sparse.ZerosDense(w.u.Shape...)
	vecmath.Magnitude(out.Elements, w.u.Elements, w.v.Elements)
	return out
}

// Truncate performs triangular truncation of a scalar field on the wind's
// grid: the field is analysed, coefficients with total wavenumber above
// truncation are zeroed and the result synthesised back. [NoTruncation]
// leaves the field at the full resolution of the grid, which smooths only
// what the grid cannot represent.
func (w *VectorWind) Truncate(field *sparse.DenseArray, truncation int) (*sparse.DenseArray, error) {
	if err := w.checkScalar(field); err != nil {
		return nil, err
	}
	out := sparse.ZerosDense(field.Shape...)
	buf := make([]float64, w.nlat*w.nlon)
	for k := 0; k < levels(field); k++ {
		spec, err := w.tr.Analysis(level(field, k, buf))
		if err != nil {
			return nil, err
		}
		if truncation >= 0 {
			spec.Truncate(truncation)
		}
		grid, err := w.tr.Synthesis(spec)
		if err != nil {
			return nil, err
		}
		setLevel(out, k, grid)
	}
	return out, nil
}

// Gradient returns the zonal and meridional components of the vector
// gradient of a scalar field on the wind's grid.
func (w *VectorWind) Gradient(field *sparse.DenseArray, truncation int) (ux, uy *sparse.DenseArray, err error) {
	if err := w.checkScalar(field); err != nil {
		return nil, nil, err
	}
	ux = sparse.ZerosDense(field.Shape...)
	uy = sparse.ZerosDense(field.Shape...)
	buf := make([]float64, w.nlat*w.nlon)
	for k := 0; k < levels(field); k++ {
		spec, err := w.tr.Analysis(level(field, k, buf))
		if err != nil {
			return nil, nil, err
		}
		if truncation >= 0 {
			spec.Truncate(truncation)
		}
		gx, gy, err := w.tr.GradientGrids(spec)
		if err != nil {
			return nil, nil, err
		}
		setLevel(ux, k, gx)
		setLevel(uy, k, gy)
	}
	return ux, uy, nil
}

// eachDecomposed runs fn on the truncated vorticity and divergence spectra
// of every vertical level of the wind.
func (w *VectorWind) eachDecomposed(truncation int, fn func(k int, vs, ds *spharm.Spec) error) error {
	ubuf := make([]float64, w.nlat*w.nlon)
	vbuf := make([]float64, w.nlat*w.nlon)
	for k := 0; k < w.nt; k++ {
		vs, ds, err := w.tr.VrtDivSpec(level(w.u, k, ubuf), level(w.v, k, vbuf))
		if err != nil {
			return err
		}
		if truncation >= 0 {
			vs.Truncate(truncation)
			ds.Truncate(truncation)
		}
		if err := fn(k, vs, ds); err != nil {
			return err
		}
	}
	return nil
}

// checkScalar validates a scalar field destined for the wind's grid.
func (w *VectorWind) checkScalar(f *sparse.DenseArray) error {
	if f == nil {
		return fmt.Errorf("%w: nil field", ErrShapeMismatch)
	}
	if len(f.Shape) != 2 && len(f.Shape) != 3 {
		return fmt.Errorf("%w: got rank %d", ErrInvalidRank, len(f.Shape))
	}
	if f.Shape[0] != w.nlat || f.Shape[1] != w.nlon {
		return fmt.Errorf("%w: field grid %dx%d, wind grid %dx%d",
			ErrShapeMismatch, f.Shape[0], f.Shape[1], w.nlat, w.nlon)
	}
	if hasMissing(f.Elements) {
		return ErrMissingValues
	}
	return nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasMissing(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// levels returns the number of vertical levels (trailing dimension) of a.
func levels(a *sparse.DenseArray) int {
	if len(a.Shape) == 3 {
		return a.Shape[2]
	}
	return 1
}

// level returns vertical level k of a as a contiguous (nlat, nlon) slice,
// copying into dst when the array is rank 3.
func level(a *sparse.DenseArray, k int, dst []float64) []float64 {
	if len(a.Shape) == 2 {
		return a.Elements
	}
	nt := a.Shape[2]
	for j := range dst {
		dst[j] = a.Elements[j*nt+k]
	}
	return dst
}

// setLevel writes a contiguous (nlat, nlon) slice into vertical level k of a.
func setLevel(a *sparse.DenseArray, k int, src []float64) {
	if len(a.Shape) == 2 {
		copy(a.Elements, src)
		return
	}
	nt := a.Shape[2]
	for j, x := range src {
		a.Elements[j*nt+k] = x
	}
}
