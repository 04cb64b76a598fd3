//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Gen mg.Namespace

// Example regenerates the example accessors
func (Gen) Example() error {
	fmt.Println("Regenerating example accessors...")
	return sh.RunV("go", "generate", "./example/...")
}

// Testdata generates accessors for every testdata package into a scratch
// directory, failing on the first invalid annotation
func (Gen) Testdata() error {
	fmt.Println("Generating testdata accessors...")
	cases := map[string][]string{
		"basic":         {"Account"},
		"cross_package": {"Schedule"},
		"database_sql":  {"DatabaseConfig"},
		"deref":         {"Shape"},
		"generics":      {"Container", "Pair"},
		"nested":        {"Wrapper"},
		"unexported":    {"Visibility"},
	}
	out, err := os.MkdirTemp("", "gsetgen")
	if err != nil {
		return err
	}
	defer os.RemoveAll(out)

	for dir, structs := range cases {
		args := []string{"run", ".", "--output=" + filepath.Join(out, dir+"_gen.go"), filepath.Join("testdata", dir)}
		if err := sh.RunV("go", append(args, structs...)...); err != nil {
			return err
		}
	}
	return nil
}

// Verify regenerates examples and checks if files changed
func (Gen) Verify() error {
	fmt.Println("Verifying generated files are up to date...")
	mg.Deps(Gen.Example)

	// Check if git shows any changes
	out, err := sh.Output("git", "status", "--porcelain", "example/")
	if err != nil {
		return err
	}

	if out != "" {
		return fmt.Errorf("generated files are out of date, run 'mage gen:example'")
	}

	fmt.Println("Generated files are up to date!")
	return nil
}
