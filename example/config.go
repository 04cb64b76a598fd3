package example

import (
	"time"

	"github.com/ecordell/gsetgen/helpers"
)

//go:generate go run github.com/ecordell/gsetgen --output=config_accessors.go . Config Server

// Config represents a configuration struct for testing gsetgen
type Config struct {
	// Name of the application.
	//getset:get_copy, vis="pub"
	//getset:set_borrow, vis="pub"
	name string

	//getset:get_copy, vis="pub"
	//getset:set, vis="pub"
	port int

	//getset:get_deref_copy, vis="pub"
	timeout *time.Duration

	//getset:get_mut, vis="pub"
	tags []string

	Debug bool `getset:"set_own,name=WithDebug"`
}

// Server represents another test struct
type Server struct {
	//getset:get_copy, vis="pub"
	host string

	// Worker count.
	//getset:get_deref_copy, vis="pub"
	//getset:get_deref_mut, vis="pub"
	workers helpers.Box[int]

	//getset:get_as_ref, type="*string", vis="pub"
	cert helpers.Option[string]
}
