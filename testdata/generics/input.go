package testdata

// Container is a generic container type
type Container[T any] struct {
	//getset:get, vis="pub"
	//getset:set_own, vis="pub"
	value T
}

// Pair is a generic type with two type parameters
type Pair[K comparable, V any] struct {
	//getset:get_copy
	key K

	//getset:get_mut
	//getset:set_borrow
	value V

	//getset:get_deref_copy
	next *Pair[K, V]

	//getset:get_copy
	items []Container[V]
}
