package spharm

import "fmt"

// Spec holds complex spherical harmonic coefficients in triangular storage:
// zonal wavenumber m = 0..MaxDegree, total wavenumber n = m..MaxDegree.
// Coefficients for negative m are implied by the reality condition and are
// not stored.
type Spec struct {
	maxDegree int
	coeffs    []complex128
}

// NewSpec returns a zeroed coefficient set truncated at maxDegree.
func NewSpec(maxDegree int) *Spec {
	if maxDegree < 0 {
		panic(fmt.Sprintf("spharm: negative spectral truncation %d", maxDegree))
	}
	return &Spec{
		maxDegree: maxDegree,
		coeffs:    make([]complex128, triSize(maxDegree)),
	}
}

// MaxDegree returns the triangular truncation limit.
func (s *Spec) MaxDegree() int { return s.maxDegree }

// Len returns the number of stored coefficients.
func (s *Spec) Len() int { return len(s.coeffs) }

func (s *Spec) check(m, n int) {
	if m < 0 || n < m || n > s.maxDegree {
		panic(fmt.Sprintf("spharm: coefficient (m=%d, n=%d) out of range for truncation %d", m, n, s.maxDegree))
	}
}

// At returns the coefficient for zonal wavenumber m and total wavenumber n.
// It panics when the pair lies outside the triangle.
func (s *Spec) At(m, n int) complex128 {
	s.check(m, n)
	return s.coeffs[triIndex(s.maxDegree, m, n)]
}

// Set stores the coefficient for zonal wavenumber m and total wavenumber n.
// It panics when the pair lies outside the triangle.
func (s *Spec) Set(c complex128, m, n int) {
	s.check(m, n)
	s.coeffs[triIndex(s.maxDegree, m, n)] = c
}

// Copy returns a deep copy of the coefficient set.
func (s *Spec) Copy() *Spec {
	out := NewSpec(s.maxDegree)
	copy(out.coeffs, s.coeffs)
	return out
}

// Truncate zeroes every coefficient with total wavenumber n > ntrunc and
// returns s. Limits at or beyond MaxDegree and negative limits leave s
// unchanged; a negative limit means no truncation.
func (s *Spec) Truncate(ntrunc int) *Spec {
	if ntrunc < 0 || ntrunc >= s.maxDegree {
		return s
	}
	for m := 0; m <= s.maxDegree; m++ {
		lo := ntrunc + 1
		if lo < m {
			lo = m
		}
		for n := lo; n <= s.maxDegree; n++ {
			s.coeffs[triIndex(s.maxDegree, m, n)] = 0
		}
	}
	return s
}
