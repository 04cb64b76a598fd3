// Package config loads the optional gsetgen configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"

	"github.com/ecordell/gsetgen/internal/accessor"
	"github.com/ecordell/gsetgen/internal/layout"
)

// File is the content of a configuration file. Both sections are optional;
// a nil section leaves the corresponding command-line choice in effect.
type File struct {
	Vocabulary *layout.Vocabulary       `yaml:"vocabulary"`
	Naming     *accessor.NamingTemplates `yaml:"naming"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if f.Vocabulary != nil {
		if err := f.Vocabulary.Prepare(); err != nil {
			return nil, err
		}
	}
	if f.Naming != nil {
		if err := defaults.Set(f.Naming); err != nil {
			return nil, fmt.Errorf("naming defaults: %w", err)
		}
	}
	return &f, nil
}

// NamingScheme compiles the naming section, or returns fallback when the file
// has none.
func (f *File) NamingScheme(fallback *accessor.NamingScheme) (*accessor.NamingScheme, error) {
	if f == nil || f.Naming == nil {
		return fallback, nil
	}
	return accessor.NewNamingScheme("config", *f.Naming)
}

// VocabularyOr returns the vocabulary section, or fallback when the file has
// none.
func (f *File) VocabularyOr(fallback *layout.Vocabulary) *layout.Vocabulary {
	if f == nil || f.Vocabulary == nil {
		return fallback
	}
	return f.Vocabulary
}
