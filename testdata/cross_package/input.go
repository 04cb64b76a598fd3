package testdata

import (
	"text/template"
	"time"
)

// Schedule tests cross-package types
type Schedule struct {
	//getset:get_copy, vis="pub"
	//getset:set_borrow, vis="pub"
	start time.Time

	//getset:get_deref_copy
	timeout *time.Duration

	//getset:get, type="fmt.Stringer"
	every time.Duration

	//getset:get_copy
	body *template.Template

	//getset:get_deref
	page Page
}
