// Package wind computes standard diagnostics of global vector wind fields
// via spherical harmonics.
//
// The entry point is [VectorWind], which wraps zonal and meridional wind
// components given as dense arrays of shape (nlat, nlon) or
// (nlat, nlon, nfields) with latitude running north to south. From a wind
// pair it derives relative and absolute vorticity, divergence,
// streamfunction, velocity potential, the Helmholtz decomposition into
// irrotational and non-divergent parts, vector gradients of arbitrary
// scalar fields on the same grid, spectral smoothing, the kinetic energy
// spectrum, and the Rossby wave source.
//
// All diagnostics accept a triangular truncation limit; pass
// [NoTruncation] to keep the full spectral resolution of the grid.
package wind
