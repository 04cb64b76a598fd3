package testdata

// Base is embedded by value.
type Base struct {
	ID int
}

// Inner is embedded by pointer.
type Inner struct {
	Level int
}

// Wrapper tests embedded and blank fields
type Wrapper struct {
	//getset:get_mut
	Base

	//getset:get_deref, name="InnerRef"
	*Inner

	_ int

	//getset:get_copy
	count int
}
