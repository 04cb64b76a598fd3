package testdata

type UnknownKind struct {
	//getset:fetch
	a int
}

type DuplicateKind struct {
	a int `getset:"get,set"`
}

type MissingType struct {
	//getset:get_as_ref
	a int
}

type FieldCollision struct {
	//getset:get_copy
	Name string
}

type MethodCollision struct {
	//getset:get_copy
	size int
}

func (m MethodCollision) Size() int {
	return m.size
}

type DuplicateAccessor struct {
	//getset:get
	//getset:get_copy
	a int
}

type BlankNamed struct {
	//getset:get, name="first"
	_ int
}

type BlankUnnamed struct {
	//getset:get
	_ int
}

type Unresolved struct {
	//getset:get_deref
	a int
}

type Malformed struct {
	//getset:get, name=
	a int
}

type Nested struct {
	//getset:get(vis="pub")
	a int
}

type NestedTag struct {
	a int `getset:"get(vis=pub)"`
}

type Kind int
