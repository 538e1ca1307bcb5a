package spharm

import "math"

// poleEps is the threshold on 1-|mu| below which a latitude row is treated
// as an exact pole.
const poleEps = 1e-13

// legendreTables holds per-latitude values of the normalized associated
// Legendre functions and the two derived families needed for vector
// transforms. All three stay finite at the poles.
//
// With mu = sin(latitude) and Pnm normalized so that the integral of
// Pnm^2 over mu in [-1, 1] is 1:
//
//	pbar[j][i] = Pnm(mu_j)
//	qbar[j][i] = Pnm(mu_j) / cos(latitude_j)   (zero stored for m == 0)
//	dbar[j][i] = cos(latitude_j) * dPnm/dmu (mu_j)
//
// Entries are indexed triangularly: m = 0..M, n = m..M.
type legendreTables struct {
	maxDegree int
	pbar      [][]float64
	qbar      [][]float64
	dbar      [][]float64
}

// triSize returns the number of (m, n) coefficient pairs for a triangular
// truncation at total wavenumber maxDegree.
func triSize(maxDegree int) int {
	return (maxDegree + 1) * (maxDegree + 2) / 2
}

// triIndex returns the position of the (m, n) pair within a triangular
// coefficient array truncated at maxDegree.
func triIndex(maxDegree, m, n int) int {
	return m*(maxDegree+1) - m*(m-1)/2 + n - m
}

func newLegendreTables(mu []float64, maxDegree int) *legendreTables {
	t := &legendreTables{
		maxDegree: maxDegree,
		pbar:      make([][]float64, len(mu)),
		qbar:      make([][]float64, len(mu)),
		dbar:      make([][]float64, len(mu)),
	}
	size := triSize(maxDegree)
	for j, x := range mu {
		t.pbar[j] = make([]float64, size)
		t.qbar[j] = make([]float64, size)
		t.dbar[j] = make([]float64, size)
		computeLegendre(x, maxDegree, t.pbar[j], t.qbar[j], t.dbar[j])
	}
	return t
}

// computeLegendre fills the triangular tables p, q and d at a single
// latitude node x = sin(latitude), using the standard stable three-term
// recurrences in total wavenumber n at fixed order m.
func computeLegendre(x float64, maxDegree int, p, q, d []float64) {
	m1 := 1 - x*x
	if m1 < 0 {
		m1 = 0
	}
	c := math.Sqrt(m1) // cos(latitude)
	pole := m1 < poleEps

	idx := func(m, n int) int { return triIndex(maxDegree, m, n) }

	// Diagonal seeds. q is p with one cosine factor removed, so it shares
	// the recurrences of p once seeded one diagonal step earlier.
	p[idx(0, 0)] = math.Sqrt(0.5)
	for m := 1; m <= maxDegree; m++ {
		f := math.Sqrt(float64(2*m+1) / float64(2*m))
		p[idx(m, m)] = c * f * p[idx(m-1, m-1)]
		q[idx(m, m)] = f * p[idx(m-1, m-1)]
	}
	for m := 0; m < maxDegree; m++ {
		f := math.Sqrt(float64(2*m + 3))
		p[idx(m, m+1)] = f * x * p[idx(m, m)]
		if m > 0 {
			q[idx(m, m+1)] = f * x * q[idx(m, m)]
		}
	}
	for m := 0; m <= maxDegree; m++ {
		for n := m + 2; n <= maxDegree; n++ {
			a := math.Sqrt(float64(4*n*n-1) / float64(n*n-m*m))
			b := math.Sqrt(float64((n-1)*(n-1)-m*m) / float64(4*(n-1)*(n-1)-1))
			p[idx(m, n)] = a * (x*p[idx(m, n-1)] - b*p[idx(m, n-2)])
			if m > 0 {
				q[idx(m, n)] = a * (x*q[idx(m, n-1)] - b*q[idx(m, n-2)])
			}
		}
	}

	// d from the derivative identity
	// (1-mu^2) dPnm/dmu = -n mu Pnm + e(n,m) P(n-1)m,
	// e(n,m) = sqrt((n^2-m^2)(2n+1)/(2n-1)).
	// For m >= 1 divide through by cos(latitude) using q; for m == 0 the
	// cosine factor multiplies a finite polynomial derivative, which
	// vanishes at the poles.
	for m := 1; m <= maxDegree; m++ {
		d[idx(m, m)] = -float64(m) * x * q[idx(m, m)]
		for n := m + 1; n <= maxDegree; n++ {
			e := math.Sqrt(float64((n*n-m*m)*(2*n+1)) / float64(2*n-1))
			d[idx(m, n)] = -float64(n)*x*q[idx(m, n)] + e*q[idx(m, n-1)]
		}
	}
	for n := 1; n <= maxDegree; n++ {
		if pole {
			d[idx(0, n)] = 0
			continue
		}
		e := math.Sqrt(float64(n*n*(2*n+1)) / float64(2*n-1))
		d[idx(0, n)] = (-float64(n)*x*p[idx(0, n)] + e*p[idx(0, n-1)]) / c
	}
}
