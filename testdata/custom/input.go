package testdata

// Record is annotated with a custom vocabulary
type Record struct {
	//getset:fetch
	//getset:put, as="Store"
	id string

	Total int `rec:"fetch"`
}
