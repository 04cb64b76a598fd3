package testdata

// Account is a user account annotated with directives and struct tags.
type Account struct {
	// Count of logins.
	//getset:get_copy, name="get_count", vis="pub"
	//getset:set
	count int64

	Name string `json:"name" getset:"get_mut"`

	//getset:get
	//getset:set_borrow
	//getset:set_own, name="with_email"
	email string

	untouched bool
}

// Counter has a setter whose result type is overridden.
type Counter struct {
	//getset:set, type="error"
	n int
}
