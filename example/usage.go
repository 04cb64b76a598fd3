package example

import (
	"fmt"
	"time"

	"github.com/ecordell/gsetgen/helpers"
)

// NewConfig returns a Config with a timeout and the given name.
func NewConfig(name string, timeout time.Duration) *Config {
	c := &Config{timeout: &timeout}
	return c.SetName(name)
}

// NewServer returns a Server with a worker count and an optional certificate.
func NewServer(host string, workers int, cert string) *Server {
	s := &Server{host: host, workers: helpers.NewBox(workers)}
	if cert != "" {
		s.cert = helpers.Some(cert)
	}
	return s
}

// ExampleUsage demonstrates how to use the generated accessors
func ExampleUsage() {
	config := NewConfig("my-app", 30*time.Second)
	config.SetPort(3000)
	*config.TagsMut() = append(*config.TagsMut(), "production", "v1.0")

	fmt.Printf("Config created: %s on port %d (timeout %s)\n", config.Name(), config.Port(), config.Timeout())

	// WithDebug returns an updated copy
	debug := config.WithDebug(true)
	fmt.Printf("Debug config: %s (debug=%v), original debug=%v\n", debug.Name(), debug.Debug, config.Debug)

	server := NewServer("localhost", 4, "")
	*server.WorkersMut() *= 2
	fmt.Printf("Server %s with %d workers, has cert: %v\n", server.Host(), server.Workers(), server.Cert() != nil)
}
