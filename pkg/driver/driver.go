// Package driver connects NajaScript programs to the outside world: the
// naja.yml manifest, module resolution from disk and git, and program loading.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/stdlib"
)

func tracer() tracing.Trace {
	return tracing.Select("naja.driver")
}

// DefaultManifest describes a project without naja.yml: modules are looked
// up next to the entry file.
func DefaultManifest(entry string) (*Manifest, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", entry, err)
	}
	dir := filepath.Dir(abs)
	return &Manifest{
		Dir:         dir,
		Name:        filepath.Base(dir),
		Entry:       abs,
		ModulePaths: []string{dir},
		Modules:     map[string]string{},
	}, nil
}

// LoadProgram reads an entry program. Only the JSON AST form can be loaded
// without a parser.
func LoadProgram(path string) (*ast.Program, error) {
	if filepath.Ext(path) != ASTExtension {
		return nil, fmt.Errorf("driver: %s is not a %s AST file; source text needs a parser", path, ASTExtension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", path, err)
	}
	program, err := ast.DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("driver: %s: %w", path, err)
	}
	if program.Name == "" {
		program.Name = filepath.Base(path)
	}
	return program, nil
}

// Session is an interpreter configured from a manifest, with the standard
// builtins installed.
type Session struct {
	Manifest *Manifest
	Interp   *interpreter.Interpreter

	resolver *CachingResolver
	parser   interpreter.Parser
}

// NewSession builds the resolver chain of m and an interpreter whose print
// builtins write to out. parser may be nil.
func NewSession(m *Manifest, out io.Writer, parser interpreter.Parser) *Session {
	interp := interpreter.New()
	stdlib.Register(interp, out)
	resolver := NewCachingResolver(NewResolver(m))
	interp.SetModuleResolver(resolver)
	if parser != nil {
		interp.SetParser(parser)
	}
	return &Session{Manifest: m, Interp: interp, resolver: resolver, parser: parser}
}

// Preload decodes the manifest's preload modules ahead of evaluation.
func (s *Session) Preload(ctx context.Context) error {
	if len(s.Manifest.Preload) == 0 {
		return nil
	}
	return s.resolver.Preload(ctx, s.Manifest.Preload, DefaultPreloadLimit)
}

// Run preloads and then executes the program at path, or the manifest's
// entry when path is empty.
func (s *Session) Run(ctx context.Context, path string) (runtime.Value, error) {
	if path == "" {
		path = s.Manifest.Entry
	}
	if path == "" {
		return nil, fmt.Errorf("driver: no program given and manifest %s has no entry", s.Manifest.Path)
	}
	program, err := LoadProgram(path)
	if err != nil {
		return nil, err
	}
	if err := s.Preload(ctx); err != nil {
		return nil, err
	}
	tracer().Infof("running %s", path)
	return s.Interp.Interpret(program)
}
