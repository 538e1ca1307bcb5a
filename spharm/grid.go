package spharm

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// Grid layout errors.
var (
	ErrGridTooSmall    = errors.New("spharm: grid requires nlat >= 3 and nlon >= 4")
	ErrInvalidGridType = errors.New("spharm: invalid grid type")
)

// GridType describes the latitude spacing of a global grid.
type GridType int

const (
	// Regular is an equally-spaced latitude grid. An odd number of
	// latitudes includes both poles; an even number is offset from the
	// poles by half a grid spacing.
	Regular GridType = iota

	// Gaussian is a grid whose latitudes are Gauss-Legendre quadrature
	// nodes.
	Gaussian
)

// String returns the lower-case name of the grid type.
func (t GridType) String() string {
	switch t {
	case Regular:
		return "regular"
	case Gaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("GridType(%d)", int(t))
	}
}

// ParseGridType converts a grid type name ("regular" or "gaussian",
// case-insensitive) to a [GridType].
func ParseGridType(s string) (GridType, error) {
	switch strings.ToLower(s) {
	case "regular":
		return Regular, nil
	case "gaussian":
		return Gaussian, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidGridType, s)
	}
}

// GaussianLatitudes returns the nlat Gauss-Legendre latitudes in degrees,
// ordered north to south, together with their quadrature weights. The
// weights sum to 2, the measure of sin(latitude) over the sphere.
func GaussianLatitudes(nlat int) (lats, weights []float64, err error) {
	if nlat < 3 {
		return nil, nil, ErrGridTooSmall
	}
	mu := make([]float64, nlat)
	w := make([]float64, nlat)
	quad.Legendre{}.FixedLocations(mu, w, -1, 1)

	// Reorder to north-to-south (descending sin(latitude)).
	ascending := mu[0] < mu[nlat-1]
	lats = make([]float64, nlat)
	weights = make([]float64, nlat)
	for i := range mu {
		j := i
		if ascending {
			j = nlat - 1 - i
		}
		lats[j] = math.Asin(mu[i]) * 180 / math.Pi
		weights[j] = w[i]
	}
	return lats, weights, nil
}

// RegularLatitudes returns nlat equally-spaced latitudes in degrees, ordered
// north to south. An odd count includes the poles; an even count is offset
// from them by half a spacing.
func RegularLatitudes(nlat int) []float64 {
	lats := make([]float64, nlat)
	if nlat%2 == 1 {
		dlat := 180 / float64(nlat-1)
		for i := range lats {
			lats[i] = 90 - float64(i)*dlat
		}
		// Exact pole values avoid sin(latitude) rounding away from +/-1.
		lats[0] = 90
		lats[nlat-1] = -90
	} else {
		dlat := 180 / float64(nlat)
		for i := range lats {
			lats[i] = 90 - (float64(i)+0.5)*dlat
		}
	}
	return lats
}

// regularWeights computes quadrature weights for the latitude nodes mu
// (values of sin(latitude)) such that Legendre polynomials up to degree
// len(mu)-1 are integrated exactly over [-1, 1]. The nodes of a regular
// grid are cosines of equally-spaced colatitudes, for which this system is
// well conditioned and yields positive weights.
func regularWeights(mu []float64) ([]float64, error) {
	n := len(mu)
	a := mat.NewDense(n, n, nil)
	for j, x := range mu {
		// Legendre polynomial three-term recurrence down the column.
		pPrev, p := 1.0, x
		a.Set(0, j, 1)
		if n > 1 {
			a.Set(1, j, x)
		}
		for k := 2; k < n; k++ {
			pNext := (float64(2*k-1)*x*p - float64(k-1)*pPrev) / float64(k)
			a.Set(k, j, pNext)
			pPrev, p = p, pNext
		}
	}
	b := mat.NewVecDense(n, nil)
	b.SetVec(0, 2)

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("spharm: solving regular-grid quadrature weights: %w", err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = w.AtVec(i)
	}
	return out, nil
}
