// Package gridtools prepares arbitrarily ordered gridded data for
// spherical harmonic analysis.
//
// Fields arrive with latitude and longitude in any dimension positions;
// [Prep] reorders them to (lat, lon, other) with every remaining dimension
// collapsed into one, and [Recover] restores the original layout.
// [ReverseLatDim] and [OrderLatDim] fix the latitude orientation, and
// [InspectGridType] classifies a latitude vector as regular or gaussian.
package gridtools
