package ncwind

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ctessum/cdf"
)

// WriteFields writes fields and their coordinate variables to a classic
// NetCDF file at path, replacing any existing file.
func WriteFields(path string, fields ...*Field) error {
	if len(fields) == 0 {
		return errors.New("ncwind: no fields to write")
	}

	var dimNames []string
	dimLens := make(map[string]int)
	coordVals := make(map[string][]float64)
	for _, f := range fields {
		if f == nil || f.Data == nil {
			return errors.New("ncwind: nil field")
		}
		if len(f.Dims) != len(f.Data.Shape) {
			return fmt.Errorf("ncwind: field %s names %d dimensions for rank %d",
				f.Name, len(f.Dims), len(f.Data.Shape))
		}
		for i, dim := range f.Dims {
			n := f.Data.Shape[i]
			if have, ok := dimLens[dim]; ok {
				if have != n {
					return fmt.Errorf("ncwind: dimension %s has conflicting lengths %d and %d", dim, have, n)
				}
			} else {
				dimLens[dim] = n
				dimNames = append(dimNames, dim)
			}
			if vals, ok := f.Coords[dim]; ok {
				if len(vals) != n {
					return fmt.Errorf("ncwind: coordinate %s has %d values for length %d", dim, len(vals), n)
				}
				coordVals[dim] = vals
			}
		}
	}

	lengths := make([]int, len(dimNames))
	for i, d := range dimNames {
		lengths[i] = dimLens[d]
	}
	h := cdf.NewHeader(dimNames, lengths)
	for _, dim := range dimNames {
		if _, ok := coordVals[dim]; !ok {
			continue
		}
		h.AddVariable(dim, []string{dim}, []float64{0})
		if units := coordUnits(dim); units != "" {
			h.AddAttribute(dim, "units", units)
		}
	}
	for _, f := range fields {
		h.AddVariable(f.Name, f.Dims, []float64{0})
		keys := make([]string, 0, len(f.Attrs))
		for k := range f.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.AddAttribute(f.Name, k, f.Attrs[k])
		}
	}
	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return fmt.Errorf("ncwind: invalid header: %w", errors.Join(errs...))
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	nc, err := cdf.Create(file, h)
	if err != nil {
		file.Close()
		return fmt.Errorf("ncwind: writing %s: %w", path, err)
	}
	for _, dim := range dimNames {
		vals, ok := coordVals[dim]
		if !ok {
			continue
		}
		if err := writeVar(nc, dim, vals); err != nil {
			file.Close()
			return fmt.Errorf("ncwind: writing coordinate %s: %w", dim, err)
		}
	}
	for _, f := range fields {
		if err := writeVar(nc, f.Name, f.Data.Elements); err != nil {
			file.Close()
			return fmt.Errorf("ncwind: writing %s: %w", f.Name, err)
		}
	}
	// Replace the streaming record count so readers accept the file.
	if err := cdf.UpdateNumRecs(file); err != nil {
		file.Close()
		return fmt.Errorf("ncwind: finalizing %s: %w", path, err)
	}
	return file.Close()
}

func writeVar(nc *cdf.File, name string, data []float64) error {
	end := nc.Header.Lengths(name)
	start := make([]int, len(end))
	w := nc.Writer(name, start, end)
	_, err := w.Write(data)
	return err
}

// coordUnits returns CF units for coordinate variables the reader can
// classify by name.
func coordUnits(dim string) string {
	switch {
	case isLatitude(dim, ""):
		return "degrees_north"
	case isLongitude(dim, ""):
		return "degrees_east"
	}
	return ""
}
