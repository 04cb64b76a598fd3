// Package main implements gsetgen, a code generator for struct accessors in Go.
//
// gsetgen reads accessor annotations on struct fields and generates:
//   - getters returning a pointer to, or a copy of, a field
//   - getters reaching through a pointer or a Deref method
//   - getters converting an optional field with AsRef, AsDeref or AsDerefMut
//   - setters, optionally returning the receiver for chaining
//
// Usage:
//
//	gsetgen [flags] <package-path> <struct-name> [<struct-name>...]
//
// Flags:
//
//	--output <path>
//	    Location where generated accessors will be written (required)
//	--package <name>
//	    Name of package to use in output file (optional, inferred from output directory)
//	--vocabulary <name>
//	    Annotation vocabulary: getset (default) or gset
//	--naming <name>
//	    Naming scheme for accessors without a name: go (default) or snake
//	--tag <key>
//	    Struct tag key carrying annotations (default: "getset")
//	--directive <prefix>
//	    Comment directive prefix carrying annotations (default: "getset:")
//	--config <path>
//	    YAML file with a custom vocabulary and naming templates
//	--log-level <level>
//	    debug, info, warn or error (default: "info")
//
// Example:
//
//	//go:generate go run github.com/ecordell/gsetgen --output=account_accessors.go . Account
//
// Annotation Format:
//
// Each directive comment or `getset` struct tag on a field generates one method:
//
//	type Account struct {
//	    // Count of logins.
//	    //getset:get_copy, name="GetCount", vis="pub"
//	    //getset:set
//	    count int64
//
//	    Email string `getset:"set_borrow,name=WithEmail"`
//	}
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/creasty/defaults"
	"github.com/spf13/pflag"

	"github.com/ecordell/gsetgen/internal/accessor"
	"github.com/ecordell/gsetgen/internal/config"
	"github.com/ecordell/gsetgen/internal/generate"
	"github.com/ecordell/gsetgen/internal/layout"
)

// Options are the command line options of gsetgen.
type Options struct {
	Output     string
	Package    string
	Vocabulary string `default:"getset"`
	Naming     string `default:"go"`
	Tag        string `default:"getset"`
	Directive  string `default:"getset:"`
	Config     string
	LogLevel   string `default:"info"`
}

var errUsage = errors.New("must specify a package directory and a struct to generate accessors for")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		stop()
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal("generation failed", "err", err)
	}
}

func newFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("gsetgen", pflag.ContinueOnError)
	fs.StringVar(&opts.Output, "output", opts.Output, "Location where generated accessors will be written")
	fs.StringVar(&opts.Package, "package", opts.Package, "Name of package to use in output file")
	fs.StringVar(&opts.Vocabulary, "vocabulary", opts.Vocabulary, fmt.Sprintf("Annotation vocabulary %v", layout.BuiltinNames()))
	fs.StringVar(&opts.Naming, "naming", opts.Naming, "Naming scheme for accessors without a name (go, snake)")
	fs.StringVar(&opts.Tag, "tag", opts.Tag, "Struct tag key carrying annotations")
	fs.StringVar(&opts.Directive, "directive", opts.Directive, "Comment directive prefix carrying annotations")
	fs.StringVar(&opts.Config, "config", opts.Config, "YAML file with a custom vocabulary and naming templates")
	fs.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	return fs
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	var opts Options
	if err := defaults.Set(&opts); err != nil {
		return err
	}
	fs := newFlagSet(&opts)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.Output == "" {
		return errors.New("--output is required")
	}
	if fs.NArg() < 2 {
		return errUsage
	}

	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "gsetgen", Level: level})

	vocab, err := layout.Builtin(opts.Vocabulary)
	if err != nil {
		return err
	}
	naming, err := accessor.Scheme(opts.Naming)
	if err != nil {
		return err
	}
	if opts.Config != "" {
		file, err := config.Load(opts.Config)
		if err != nil {
			return err
		}
		vocab = file.VocabularyOr(vocab)
		if naming, err = file.NamingScheme(naming); err != nil {
			return err
		}
		logger.Debug("loaded config", "path", opts.Config, "vocabulary", vocab.Name, "naming", naming.Name)
	}

	return generate.Generate(ctx, generate.Options{
		Dir:        fs.Arg(0),
		Structs:    fs.Args()[1:],
		Output:     opts.Output,
		Package:    opts.Package,
		Vocabulary: vocab,
		Naming:     naming,
		Directive:  opts.Directive,
		TagKey:     opts.Tag,
		Logger:     logger,
	})
}
