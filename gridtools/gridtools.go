package gridtools

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ctessum/sparse"

	"github.com/cwbudde/algo-spharm/spharm"
)

// latTolerance is the maximum deviation in degrees when matching a
// latitude vector against a reference grid.
const latTolerance = 5e-4

var (
	// ErrDimOrder reports an invalid dimension-order string.
	ErrDimOrder = errors.New("gridtools: invalid dimension order")

	// ErrUnknownGrid reports latitudes that are neither regular nor
	// gaussian.
	ErrUnknownGrid = errors.New("gridtools: latitudes are neither equally spaced nor gaussian")
)

// Info records how a field was rearranged by [Prep] so that [Recover] can
// restore the original layout.
type Info struct {
	originalOrder     string
	intermediateOrder string
	intermediateShape []int
}

// OriginalOrder returns the dimension-order string the data arrived with.
func (in *Info) OriginalOrder() string { return in.originalOrder }

// Prep reorders data so latitude and longitude lead and reshapes it to
// (nlat, nlon, other). dimorder names each dimension of data with a unique
// character, using 'y' for latitude and 'x' for longitude, for example
// "tzyx" for (time, level, lat, lon).
func Prep(data *sparse.DenseArray, dimorder string) (*sparse.DenseArray, *Info, error) {
	if data == nil {
		return nil, nil, fmt.Errorf("%w: nil data", ErrDimOrder)
	}
	perm, err := permFor(dimorder)
	if err != nil {
		return nil, nil, err
	}
	if len(dimorder) != len(data.Shape) {
		return nil, nil, fmt.Errorf("%w: order %q names %d dimensions, data has %d",
			ErrDimOrder, dimorder, len(dimorder), len(data.Shape))
	}

	inter := transpose(data, perm)
	iorder := make([]byte, len(perm))
	for i, p := range perm {
		iorder[i] = dimorder[p]
	}

	nother := 1
	for _, s := range inter.Shape[2:] {
		nother *= s
	}
	// Trailing dimensions are contiguous in row-major storage, so the
	// reshape to rank 3 is a straight copy.
	pdata := sparse.ZerosDense(inter.Shape[0], inter.Shape[1], nother)
	copy(pdata.Elements, inter.Elements)

	info := &Info{
		originalOrder:     dimorder,
		intermediateOrder: string(iorder),
		intermediateShape: append([]int(nil), inter.Shape...),
	}
	return pdata, info, nil
}

// Recover restores a field produced by [Prep], or any same-shape result
// derived from it, to the original dimension layout.
func Recover(pdata *sparse.DenseArray, info *Info) (*sparse.DenseArray, error) {
	if pdata == nil || info == nil {
		return nil, fmt.Errorf("%w: nil input", ErrDimOrder)
	}
	want := 1
	for _, s := range info.intermediateShape {
		want *= s
	}
	if len(pdata.Elements) != want {
		return nil, fmt.Errorf("gridtools: field has %d elements, recovery info describes %d",
			len(pdata.Elements), want)
	}

	inter := sparse.ZerosDense(info.intermediateShape...)
	copy(inter.Elements, pdata.Elements)

	perm, err := permFor(info.originalOrder)
	if err != nil {
		return nil, err
	}
	inverse := make([]int, len(perm))
	for i, p := range perm {
		inverse[p] = i
	}
	return transpose(inter, inverse), nil
}

// Recovery returns a closure applying [Recover] to any number of fields.
func Recovery(info *Info) func(...*sparse.DenseArray) ([]*sparse.DenseArray, error) {
	return func(fields ...*sparse.DenseArray) ([]*sparse.DenseArray, error) {
		out := make([]*sparse.DenseArray, len(fields))
		for i, f := range fields {
			r, err := Recover(f, info)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}
}

// ReverseLatDim returns copies of u and v with the latitude dimension
// (axis) reversed.
func ReverseLatDim(u, v *sparse.DenseArray, axis int) (*sparse.DenseArray, *sparse.DenseArray, error) {
	ru, err := reverseAxis(u, axis)
	if err != nil {
		return nil, nil, err
	}
	rv, err := reverseAxis(v, axis)
	if err != nil {
		return nil, nil, err
	}
	return ru, rv, nil
}

// OrderLatDim forces a north-to-south latitude orientation: when latdim
// runs south to north it returns reversed copies of latdim, u and v,
// otherwise copies in the original order.
func OrderLatDim(latdim []float64, u, v *sparse.DenseArray, axis int) ([]float64, *sparse.DenseArray, *sparse.DenseArray, error) {
	lats := append([]float64(nil), latdim...)
	if len(lats) > 1 && lats[0] < lats[len(lats)-1] {
		for i, j := 0, len(lats)-1; i < j; i, j = i+1, j-1 {
			lats[i], lats[j] = lats[j], lats[i]
		}
		ru, rv, err := ReverseLatDim(u, v, axis)
		if err != nil {
			return nil, nil, nil, err
		}
		return lats, ru, rv, nil
	}
	return lats, u.Copy(), v.Copy(), nil
}

// InspectGridType classifies a north-to-south or south-to-north latitude
// vector as [spharm.Regular] or [spharm.Gaussian] within a tolerance of
// 5e-4 degrees.
func InspectGridType(latitudes []float64) (spharm.GridType, error) {
	nlat := len(latitudes)
	if nlat < 3 {
		return 0, fmt.Errorf("%w: %d latitudes", ErrUnknownGrid, nlat)
	}
	lats := append([]float64(nil), latitudes...)
	if lats[0] < lats[nlat-1] {
		for i, j := 0, nlat-1; i < j; i, j = i+1, j-1 {
			lats[i], lats[j] = lats[j], lats[i]
		}
	}

	if matches(lats, spharm.RegularLatitudes(nlat)) {
		return spharm.Regular, nil
	}
	ref, _, err := spharm.GaussianLatitudes(nlat)
	if err == nil && matches(lats, ref) {
		return spharm.Gaussian, nil
	}
	return 0, ErrUnknownGrid
}

func matches(lats, ref []float64) bool {
	for i := range lats {
		if math.Abs(lats[i]-ref[i]) > latTolerance {
			return false
		}
	}
	return true
}

// permFor returns the transpose permutation moving 'y' then 'x' to the
// front, keeping the remaining dimensions in their original order.
func permFor(dimorder string) ([]int, error) {
	y := strings.IndexByte(dimorder, 'y')
	x := strings.IndexByte(dimorder, 'x')
	if y < 0 || x < 0 {
		return nil, fmt.Errorf("%w: order %q must contain 'y' and 'x'", ErrDimOrder, dimorder)
	}
	seen := make(map[byte]bool, len(dimorder))
	for i := 0; i < len(dimorder); i++ {
		if seen[dimorder[i]] {
			return nil, fmt.Errorf("%w: duplicate dimension %q in %q", ErrDimOrder, dimorder[i], dimorder)
		}
		seen[dimorder[i]] = true
	}
	perm := []int{y, x}
	for i := range dimorder {
		if i != y && i != x {
			perm = append(perm, i)
		}
	}
	return perm, nil
}

// transpose permutes the dimensions of a: dimension i of the result is
// dimension perm[i] of a.
func transpose(a *sparse.DenseArray, perm []int) *sparse.DenseArray {
	shape := make([]int, len(perm))
	for i, p := range perm {
		shape[i] = a.Shape[p]
	}
	out := sparse.ZerosDense(shape...)
	src := make([]int, len(perm))
	for i := range out.Elements {
		idx := out.IndexNd(i)
		for j, p := range perm {
			src[p] = idx[j]
		}
		out.Elements[i] = a.Get(src...)
	}
	return out
}

// reverseAxis returns a copy of a with the given dimension reversed.
func reverseAxis(a *sparse.DenseArray, axis int) (*sparse.DenseArray, error) {
	if a == nil {
		return nil, errors.New("gridtools: nil field")
	}
	if axis < 0 || axis >= len(a.Shape) {
		return nil, fmt.Errorf("gridtools: axis %d out of range for rank %d", axis, len(a.Shape))
	}
	out := sparse.ZerosDense(a.Shape...)
	n := a.Shape[axis]
	for i := range out.Elements {
		idx := out.IndexNd(i)
		idx[axis] = n - 1 - idx[axis]
		out.Elements[i] = a.Get(idx...)
	}
	return out, nil
}
