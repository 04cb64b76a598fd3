package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecordell/gsetgen/internal/diag"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "basic types",
			args: []string{"testdata/basic", "Account"},
			contains: []string{
				"func (a *Account) Get_count() int64",
				"func (a *Account) SetCount(value int64)",
				"func (a Account) with_email(value string) Account",
			},
		},
		{
			name: "several structs",
			args: []string{"testdata/generics", "Pair", "Container"},
			contains: []string{
				"func (p *Pair[K, V]) Key() K",
				"func (c *Container[T]) Value() *T",
			},
		},
		{
			name: "legacy vocabulary",
			args: []string{"--vocabulary=gset", "testdata/legacy", "Options"},
			contains: []string{
				"func (o *Options) Retries() int",
			},
		},
		{
			name: "snake naming",
			args: []string{"--naming", "snake", "testdata/database_sql", "DatabaseConfig"},
			contains: []string{
				"func (d *DatabaseConfig) Dsn() sql.NullString",
				"func (d *DatabaseConfig) maxConns_mut() *sql.NullInt64",
				"func (d *DatabaseConfig) set_maxConns(value sql.NullInt64)",
			},
		},
		{
			name: "custom configuration",
			args: []string{"--config=testdata/custom/gsetgen.yaml", "--tag=rec", "testdata/custom", "Record"},
			contains: []string{
				"func (r *Record) FetchId() string",
				"func (r *Record) Store(value string) *Record",
				"func (r *Record) FetchTotal() int",
			},
		},
		{
			name: "explicit package",
			args: []string{"--package=accessors", "testdata/nested", "Wrapper"},
			contains: []string{
				"package accessors",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "accessors_gen.go")
			var stderr bytes.Buffer
			args := append([]string{"--output=" + output, "--log-level=debug"}, tt.args...)

			err := run(context.Background(), args, &stderr)
			require.NoError(t, err, stderr.String())

			generated, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.Contains(t, string(generated), "// Code generated by github.com/ecordell/gsetgen. DO NOT EDIT.")
			for _, want := range tt.contains {
				assert.Contains(t, string(generated), want)
			}
			assert.Contains(t, stderr.String(), "generating accessors")
		})
	}
}

func TestRunInfersPackageFromOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.go"), []byte("package models\n"), 0o600))
	output := filepath.Join(dir, "accessors_gen.go")

	err := run(context.Background(), []string{"--output", output, "testdata/basic", "Account"}, &bytes.Buffer{})
	require.NoError(t, err)

	generated, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(generated), "package models")
}

func TestRunErrors(t *testing.T) {
	output := filepath.Join(t.TempDir(), "accessors_gen.go")

	tests := []struct {
		name string
		args []string
		code diag.Code
	}{
		{"missing output", []string{"testdata/basic", "Account"}, 0},
		{"missing struct", []string{"--output", output, "testdata/basic"}, 0},
		{"unknown flag", []string{"--output", output, "--prefix", "testdata/basic", "Account"}, 0},
		{"unknown vocabulary", []string{"--output", output, "--vocabulary=serde", "testdata/basic", "Account"}, 0},
		{"unknown naming", []string{"--output", output, "--naming=kebab", "testdata/basic", "Account"}, 0},
		{"invalid log level", []string{"--output", output, "--log-level=loud", "testdata/basic", "Account"}, 0},
		{"missing config", []string{"--output", output, "--config=testdata/nope.yaml", "testdata/basic", "Account"}, 0},
		{"struct not found", []string{"--output", output, "testdata/basic", "Nope"}, 0},
		{"name collision", []string{"--output", output, "--naming=snake", "testdata/basic", "Account"}, diag.DuplicateMethod},
		{"wrong vocabulary", []string{"--output", output, "testdata/legacy", "Options"}, diag.UnknownKind},
		{"not a struct", []string{"--output", output, "testdata/invalid", "Kind"}, diag.UnsupportedStructureShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, &bytes.Buffer{})
			require.Error(t, err)
			if tt.code != 0 {
				assert.True(t, diag.Is(err, tt.code), "got %v", err)
			}
			assert.NoFileExists(t, output)
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"--help"}, &stderr)
	require.ErrorIs(t, err, pflag.ErrHelp)
	assert.Contains(t, stderr.String(), "--vocabulary")
}
