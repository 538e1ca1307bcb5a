// Package ncwind reads wind fields from NetCDF files and writes derived
// diagnostics back, keeping coordinates and attributes attached.
//
// [OpenVectorWind] locates the latitude and longitude coordinates of the
// named wind variables, unpacks scaled integer data, orients latitudes
// north to south and infers the grid type, so callers get a ready
// [VectorWind] regardless of how the file arranges its dimensions.
// Results come back as [Field] values in the original dimension order and
// can be written to a classic NetCDF file with [WriteFields].
package ncwind
