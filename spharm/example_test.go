package spharm_test

import (
	"fmt"

	"github.com/cwbudde/algo-spharm/spharm"
)

func ExampleTransform_Analysis() {
	tr, _ := spharm.New(32, 64, spharm.Gaussian, spharm.EarthRadius)

	field := make([]float64, tr.NLat()*tr.NLon())
	for i := range field {
		field[i] = 3.25
	}

	// A constant projects entirely onto the (m=0, n=0) mode.
	spec, _ := tr.Analysis(field)
	fmt.Printf("%.4f\n", real(spec.At(0, 0)))
	// Output:
	// 4.5962
}
