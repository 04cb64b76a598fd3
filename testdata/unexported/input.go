package testdata

// Visibility tests visibility overrides
type Visibility struct {
	//getset:get_copy, vis="private"
	Exported int

	//getset:get_copy, vis="pub(crate)"
	//getset:set, vis="unexported"
	Level int

	//getset:get_copy, name="hidden", vis="pub"
	hidden string
}
