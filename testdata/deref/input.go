package testdata

import (
	"github.com/ecordell/gsetgen/helpers"
)

// Point is reached through the fields of Shape.
type Point struct {
	X, Y int
}

// Shape tests fields with one level of indirection
type Shape struct {
	//getset:get_deref, vis="pub"
	//getset:get_deref_copy, name="origin_copy"
	origin *Point

	// Scale factor.
	//getset:get_deref_mut
	scale helpers.Box[float64]

	//getset:get_as_ref, type="*string"
	label helpers.Option[string]

	//getset:get_as_deref, type="*float64"
	//getset:get_as_deref_mut, type="*float64"
	weight helpers.DerefOption[float64, helpers.Box[float64]]
}
