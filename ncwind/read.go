package ncwind

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/ctessum/sparse"

	"github.com/cwbudde/algo-spharm/gridtools"
	"github.com/cwbudde/algo-spharm/spharm"
	"github.com/cwbudde/algo-spharm/wind"
)

var (
	// ErrNoLatitude reports a wind variable without a recognizable
	// latitude coordinate.
	ErrNoLatitude = errors.New("ncwind: no latitude coordinate found")

	// ErrNoLongitude reports a wind variable without a recognizable
	// longitude coordinate.
	ErrNoLongitude = errors.New("ncwind: no longitude coordinate found")

	// ErrDimMismatch reports wind components with different dimensions.
	ErrDimMismatch = errors.New("ncwind: wind components have different dimensions")
)

// VectorWind couples a [wind.VectorWind] with the coordinates and
// dimension layout of the file it was read from. Diagnostic methods
// return [Field] values in the original dimension order.
type VectorWind struct {
	w        *wind.VectorWind
	gridType spharm.GridType
	info     *gridtools.Info
	dims     []string
	coords   map[string][]float64
	latName  string
	lonName  string
}

// OpenVectorWind reads the wind variables uVar and vVar from a NetCDF
// file. Extra options are applied after the inferred grid type, so a
// caller can still override the sphere radius.
func OpenVectorWind(path, uVar, vVar string, opts ...wind.Option) (*VectorWind, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncwind: opening %s: %w", path, err)
	}
	defer nc.Close()

	u, udims, err := readVariable(nc, uVar)
	if err != nil {
		return nil, err
	}
	v, vdims, err := readVariable(nc, vVar)
	if err != nil {
		return nil, err
	}
	if len(udims) != len(vdims) {
		return nil, fmt.Errorf("%w: %s %v, %s %v", ErrDimMismatch, uVar, udims, vVar, vdims)
	}
	for i := range udims {
		if udims[i] != vdims[i] {
			return nil, fmt.Errorf("%w: %s %v, %s %v", ErrDimMismatch, uVar, udims, vVar, vdims)
		}
	}

	latName, lonName, err := locateCoords(nc, udims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uVar, err)
	}
	coords := make(map[string][]float64, len(udims))
	for _, dim := range udims {
		vals, err := readCoord(nc, dim)
		if err != nil {
			continue // dimensions without coordinate variables are fine
		}
		coords[dim] = vals
	}

	dimorder, err := dimOrder(udims, latName, lonName)
	if err != nil {
		return nil, err
	}
	pu, info, err := gridtools.Prep(u, dimorder)
	if err != nil {
		return nil, err
	}
	pv, _, err := gridtools.Prep(v, dimorder)
	if err != nil {
		return nil, err
	}

	lats, ok := coords[latName]
	if !ok {
		return nil, fmt.Errorf("%w: coordinate variable %s has no values", ErrNoLatitude, latName)
	}
	if len(lats) > 1 && lats[0] < lats[len(lats)-1] {
		lats, pu, pv, err = gridtools.OrderLatDim(lats, pu, pv, 0)
		if err != nil {
			return nil, err
		}
		coords[latName] = lats
	}
	gridType, err := gridtools.InspectGridType(lats)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", latName, err)
	}

	w, err := wind.New(pu, pv, append([]wind.Option{wind.WithGridType(gridType)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &VectorWind{
		w:        w,
		gridType: gridType,
		info:     info,
		dims:     udims,
		coords:   coords,
		latName:  latName,
		lonName:  lonName,
	}, nil
}

// Wind exposes the underlying computation interface.
func (vw *VectorWind) Wind() *wind.VectorWind { return vw.w }

// GridType returns the inferred latitude grid layout.
func (vw *VectorWind) GridType() spharm.GridType { return vw.gridType }

// Latitudes returns the grid latitudes in degrees, north to south.
func (vw *VectorWind) Latitudes() []float64 { return vw.w.Latitudes() }

// readVariable loads a variable as a dense array plus its dimension names.
func readVariable(nc api.Group, name string) (*sparse.DenseArray, []string, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, nil, fmt.Errorf("ncwind: variable %s: %w", name, err)
	}
	raw, err := vg.Values()
	if err != nil {
		return nil, nil, fmt.Errorf("ncwind: reading %s: %w", name, err)
	}
	arr, err := toDense(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("ncwind: variable %s: %w", name, err)
	}
	unpack(arr, vg.Attributes())
	return arr, vg.Dimensions(), nil
}

// readCoord loads a one-dimensional coordinate variable.
func readCoord(nc api.Group, name string) ([]float64, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, err
	}
	raw, err := vg.Values()
	if err != nil {
		return nil, err
	}
	arr, err := toDense(raw)
	if err != nil {
		return nil, err
	}
	if len(arr.Shape) != 1 {
		return nil, fmt.Errorf("ncwind: coordinate %s is not one-dimensional", name)
	}
	return arr.Elements, nil
}

// locateCoords identifies the latitude and longitude dimensions of a
// variable by the units or name of their coordinate variables.
func locateCoords(nc api.Group, dims []string) (latName, lonName string, err error) {
	for _, dim := range dims {
		units := ""
		if vg, err := nc.GetVarGetter(dim); err == nil {
			units, _ = attrString(vg.Attributes(), "units")
		}
		switch {
		case isLatitude(dim, units):
			latName = dim
		case isLongitude(dim, units):
			lonName = dim
		}
	}
	if latName == "" {
		return "", "", ErrNoLatitude
	}
	if lonName == "" {
		return "", "", ErrNoLongitude
	}
	return latName, lonName, nil
}

func isLatitude(name, units string) bool {
	u := strings.ToLower(units)
	if strings.HasPrefix(u, "degrees_north") || strings.HasPrefix(u, "degree_north") {
		return true
	}
	n := strings.ToLower(name)
	return n == "latitude" || n == "lat" || n == "lats"
}

func isLongitude(name, units string) bool {
	u := strings.ToLower(units)
	if strings.HasPrefix(u, "degrees_east") || strings.HasPrefix(u, "degree_east") {
		return true
	}
	n := strings.ToLower(name)
	return n == "longitude" || n == "lon" || n == "lons"
}

// dimOrder builds the dimension-order string for [gridtools.Prep]: 'y'
// for latitude, 'x' for longitude and a distinct letter for each other
// dimension.
func dimOrder(dims []string, latName, lonName string) (string, error) {
	const extras = "abcdefghijklmnopqrstuvw"
	order := make([]byte, len(dims))
	next := 0
	for i, dim := range dims {
		switch dim {
		case latName:
			order[i] = 'y'
		case lonName:
			order[i] = 'x'
		default:
			if next >= len(extras) {
				return "", fmt.Errorf("ncwind: too many dimensions: %v", dims)
			}
			order[i] = extras[next]
			next++
		}
	}
	return string(order), nil
}

// unpack applies the scale_factor and add_offset packing attributes.
func unpack(arr *sparse.DenseArray, attrs api.AttributeMap) {
	scale, hasScale := attrFloat(attrs, "scale_factor")
	offset, hasOffset := attrFloat(attrs, "add_offset")
	if !hasScale && !hasOffset {
		return
	}
	if !hasScale {
		scale = 1
	}
	for i, x := range arr.Elements {
		arr.Elements[i] = x*scale + offset
	}
}

// toDense converts the nested slices returned by the NetCDF reader into a
// dense array, accepting any integer or floating element type.
func toDense(raw interface{}) (*sparse.DenseArray, error) {
	rv := reflect.ValueOf(raw)
	var shape []int
	for v := rv; v.Kind() == reflect.Slice; v = v.Index(0) {
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			return nil, errors.New("empty dimension")
		}
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
	arr := sparse.ZerosDense(shape...)
	pos := 0
	if err := flatten(rv, arr.Elements, &pos); err != nil {
		return nil, err
	}
	if pos != len(arr.Elements) {
		return nil, fmt.Errorf("ragged data: read %d of %d elements", pos, len(arr.Elements))
	}
	return arr, nil
}

func flatten(rv reflect.Value, dst []float64, pos *int) error {
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("unsupported element type %s", rv.Kind())
	}
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i)
		switch e.Kind() {
		case reflect.Slice:
			if err := flatten(e, dst, pos); err != nil {
				return err
			}
		case reflect.Float32, reflect.Float64:
			dst[*pos] = e.Float()
			*pos++
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst[*pos] = float64(e.Int())
			*pos++
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst[*pos] = float64(e.Uint())
			*pos++
		default:
			return fmt.Errorf("unsupported element type %s", e.Kind())
		}
	}
	return nil
}

// attrFloat reads a numeric attribute, tolerating scalar and length-one
// slice encodings.
func attrFloat(attrs api.AttributeMap, key string) (float64, bool) {
	if attrs == nil {
		return 0, false
	}
	raw, ok := attrs.Get(key)
	if !ok {
		return 0, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Slice {
		if rv.Len() == 0 {
			return 0, false
		}
		rv = rv.Index(0)
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func attrString(attrs api.AttributeMap, key string) (string, bool) {
	if attrs == nil {
		return "", false
	}
	raw, ok := attrs.Get(key)
	if !ok {
		return "", false
	}
	switch s := raw.(type) {
	case string:
		return s, true
	case []string:
		if len(s) > 0 {
			return s[0], true
		}
	}
	return "", false
}
