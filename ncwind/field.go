package ncwind

import (
	"github.com/ctessum/sparse"

	"github.com/cwbudde/algo-spharm/gridtools"
)

// Field is a named gridded quantity with the dimension names, coordinate
// values and attributes needed to write it to a NetCDF file.
type Field struct {
	Name   string
	Data   *sparse.DenseArray
	Dims   []string
	Coords map[string][]float64
	Attrs  map[string]string
}

// newField restores a diagnostic to the original dimension layout and
// attaches the coordinates of the source file.
func (vw *VectorWind) newField(name, standardName, units string, data *sparse.DenseArray) (*Field, error) {
	restored, err := vw.recover(data)
	if err != nil {
		return nil, err
	}
	coords := make(map[string][]float64, len(vw.coords))
	for dim, vals := range vw.coords {
		coords[dim] = append([]float64(nil), vals...)
	}
	return &Field{
		Name:   name,
		Data:   restored,
		Dims:   append([]string(nil), vw.dims...),
		Coords: coords,
		Attrs: map[string]string{
			"standard_name": standardName,
			"units":         units,
		},
	}, nil
}

// recover maps a (nlat, nlon, other) result back to the source layout.
// Rank-2 sources come back as rank 2.
func (vw *VectorWind) recover(data *sparse.DenseArray) (*sparse.DenseArray, error) {
	restored, err := gridtools.Recover(data, vw.info)
	if err != nil {
		return nil, err
	}
	return restored, nil
}

// Magnitude returns the wind speed.
func (vw *VectorWind) Magnitude() (*Field, error) {
	return vw.newField("spd", "wind_speed", "m s**-1", vw.w.Magnitude())
}

// VrtDiv returns the relative vorticity and divergence of the wind.
func (vw *VectorWind) VrtDiv(truncation int) (vrt, div *Field, err error) {
	gv, gd, err := vw.w.VrtDiv(truncation)
	if err != nil {
		return nil, nil, err
	}
	vrt, err = vw.newField("vo", "atmosphere_relative_vorticity", "s**-1", gv)
	if err != nil {
		return nil, nil, err
	}
	div, err = vw.newField("d", "divergence_of_wind", "s**-1", gd)
	if err != nil {
		return nil, nil, err
	}
	return vrt, div, nil
}

// Vorticity returns the relative vorticity of the wind.
func (vw *VectorWind) Vorticity(truncation int) (*Field, error) {
	vrt, _, err := vw.VrtDiv(truncation)
	return vrt, err
}

// Divergence returns the divergence of the wind.
func (vw *VectorWind) Divergence(truncation int) (*Field, error) {
	_, div, err := vw.VrtDiv(truncation)
	return div, err
}

// PlanetaryVorticity returns the Coriolis parameter on the wind's grid.
func (vw *VectorWind) PlanetaryVorticity(omega float64) (*Field, error) {
	return vw.newField("f", "coriolis_parameter", "s**-1", vw.w.PlanetaryVorticity(omega))
}

// AbsoluteVorticity returns the sum of planetary and relative vorticity.
func (vw *VectorWind) AbsoluteVorticity(omega float64, truncation int) (*Field, error) {
	abs, err := vw.w.AbsoluteVorticity(omega, truncation)
	if err != nil {
		return nil, err
	}
	return vw.newField("absvo", "atmosphere_absolute_vorticity", "s**-1", abs)
}

// SFVP returns the streamfunction and velocity potential of the wind.
func (vw *VectorWind) SFVP(truncation int) (sf, vp *Field, err error) {
	gs, gc, err := vw.w.SFVP(truncation)
	if err != nil {
		return nil, nil, err
	}
	sf, err = vw.newField("psi", "atmosphere_horizontal_streamfunction", "m**2 s**-1", gs)
	if err != nil {
		return nil, nil, err
	}
	vp, err = vw.newField("chi", "atmosphere_horizontal_velocity_potential", "m**2 s**-1", gc)
	if err != nil {
		return nil, nil, err
	}
	return sf, vp, nil
}

// Streamfunction returns the streamfunction of the wind.
func (vw *VectorWind) Streamfunction(truncation int) (*Field, error) {
	sf, _, err := vw.SFVP(truncation)
	return sf, err
}

// VelocityPotential returns the velocity potential of the wind.
func (vw *VectorWind) VelocityPotential(truncation int) (*Field, error) {
	_, vp, err := vw.SFVP(truncation)
	return vp, err
}

// Helmholtz returns the irrotational and non-divergent wind components.
func (vw *VectorWind) Helmholtz(truncation int) (uchi, vchi, upsi, vpsi *Field, err error) {
	guc, gvc, gup, gvp, err := vw.w.Helmholtz(truncation)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	uchi, err = vw.newField("uchi", "irrotational_eastward_wind", "m s**-1", guc)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	vchi, err = vw.newField("vchi", "irrotational_northward_wind", "m s**-1", gvc)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	upsi, err = vw.newField("upsi", "non_divergent_eastward_wind", "m s**-1", gup)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	vpsi, err = vw.newField("vpsi", "non_divergent_northward_wind", "m s**-1", gvp)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return uchi, vchi, upsi, vpsi, nil
}

// IrrotationalComponent returns the divergent part of the wind.
func (vw *VectorWind) IrrotationalComponent(truncation int) (uchi, vchi *Field, err error) {
	guc, gvc, err := vw.w.IrrotationalComponent(truncation)
	if err != nil {
		return nil, nil, err
	}
	uchi, err = vw.newField("uchi", "irrotational_eastward_wind", "m s**-1", guc)
	if err != nil {
		return nil, nil, err
	}
	vchi, err = vw.newField("vchi", "irrotational_northward_wind", "m s**-1", gvc)
	if err != nil {
		return nil, nil, err
	}
	return uchi, vchi, nil
}

// NondivergentComponent returns the rotational part of the wind.
func (vw *VectorWind) NondivergentComponent(truncation int) (upsi, vpsi *Field, err error) {
	gup, gvp, err := vw.w.NondivergentComponent(truncation)
	if err != nil {
		return nil, nil, err
	}
	upsi, err = vw.newField("upsi", "non_divergent_eastward_wind", "m s**-1", gup)
	if err != nil {
		return nil, nil, err
	}
	vpsi, err = vw.newField("vpsi", "non_divergent_northward_wind", "m s**-1", gvp)
	if err != nil {
		return nil, nil, err
	}
	return upsi, vpsi, nil
}

// RossbyWaveSource returns the Rossby wave source term.
func (vw *VectorWind) RossbyWaveSource(omega float64, truncation int) (*Field, error) {
	s, err := vw.w.RossbyWaveSource(omega, truncation)
	if err != nil {
		return nil, err
	}
	return vw.newField("rws", "rossby_wave_source", "s**-2", s)
}
