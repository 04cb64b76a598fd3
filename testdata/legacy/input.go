package testdata

import (
	"github.com/ecordell/gsetgen/helpers"
)

// Options is annotated with the gset vocabulary
type Options struct {
	//getset:deref_get_copy, vis="pub"
	retries *int

	//getset:as_ref_get, ty="*string"
	name helpers.Option[string]

	Verbose bool `getset:"set_own,name=WithVerbose"`
}
