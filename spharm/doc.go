// Package spharm implements spherical harmonic transforms for scalar and
// vector fields sampled on global latitude/longitude grids.
//
// A [Transform] is built once for a fixed grid shape and then reused. It
// supports equally-spaced ("regular") grids, with or without pole rows, and
// Gaussian grids whose latitudes are Gauss-Legendre quadrature nodes. The
// latitude rows must run from north to south.
//
// The engine provides the operations needed for Helmholtz analysis of the
// horizontal wind:
//
//   - scalar analysis and synthesis (grid <-> spectral coefficients)
//   - spectral vorticity and divergence of a wind component pair
//   - wind components from spectral vorticity and divergence
//   - horizontal gradient components of a scalar in spectral form
//   - inversion of the Laplacian on the sphere
//   - triangular truncation of spectral coefficients
//
// Longitude transforms use a real-input FFT, so any longitude count >= 4 is
// supported. Latitude transforms use associated Legendre function tables
// precomputed at construction; the tables are formulated so that no value
// ever requires division by the cosine of latitude on the grid, keeping pole
// rows finite.
//
// # Usage
//
//	t, err := spharm.New(73, 144, spharm.Regular, spharm.EarthRadius)
//	vrt, div, err := t.VrtDivSpec(u, v)
//	vrtGrid, err := t.Synthesis(vrt)
//
// A Transform is not safe for concurrent use; the longitude FFT plan carries
// scratch state.
package spharm
