package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

// Module files are either pre-parsed JSON ASTs or source text for a parser.
const (
	ASTExtension    = ".json"
	SourceExtension = ".naja"
)

// candidatePaths lists the slash-separated file names an import name may
// refer to, in lookup order.
func candidatePaths(name string) []string {
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	switch path.Ext(clean) {
	case ASTExtension, SourceExtension:
		return []string{clean}
	}
	return []string{clean + ASTExtension, clean + SourceExtension}
}

// sourceFromBytes builds a module source from file contents. JSON files are
// decoded here so that malformed ASTs are reported against their origin.
func sourceFromBytes(name, origin, file string, data []byte) (interpreter.ModuleSource, error) {
	if path.Ext(filepath.ToSlash(file)) != ASTExtension {
		return interpreter.ModuleSource{Name: name, Text: data, Origin: origin}, nil
	}
	program, err := ast.DecodeProgram(data)
	if err != nil {
		return interpreter.ModuleSource{}, runtime.NewError(runtime.ErrUnsupportedOperation, "module '%s' (%s): %v", name, origin, err)
	}
	if program.Name == "" {
		program.Name = name
	}
	return interpreter.ModuleSource{Name: name, Program: program, Origin: origin}, nil
}

// FileResolver finds modules on disk, first in the explicit module table and
// then below each search root.
type FileResolver struct {
	Roots   []string
	Modules map[string]string
}

// NewFileResolver returns a resolver for the manifest's module_paths and
// modules table.
func NewFileResolver(m *Manifest) *FileResolver {
	return &FileResolver{Roots: m.ModulePaths, Modules: m.Modules}
}

func (r *FileResolver) Resolve(name string) (interpreter.ModuleSource, error) {
	if file, ok := r.Modules[name]; ok {
		data, err := os.ReadFile(file)
		if err != nil {
			return interpreter.ModuleSource{}, fmt.Errorf("module %s: %w", name, err)
		}
		return sourceFromBytes(name, file, file, data)
	}
	for _, candidate := range candidatePaths(name) {
		local := filepath.FromSlash(candidate)
		if !filepath.IsLocal(local) {
			return interpreter.ModuleSource{}, fmt.Errorf("%w: %s escapes the module roots", interpreter.ErrModuleNotFound, name)
		}
		for _, root := range r.Roots {
			file := filepath.Join(root, local)
			data, err := os.ReadFile(file)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return interpreter.ModuleSource{}, fmt.Errorf("module %s: %w", name, err)
			}
			tracer().Debugf("module %s found at %s", name, file)
			return sourceFromBytes(name, file, file, data)
		}
	}
	return interpreter.ModuleSource{}, fmt.Errorf("%w: %s (searched %d roots)", interpreter.ErrModuleNotFound, name, len(r.Roots))
}

// ChainResolver asks each resolver in turn. A resolver that does not know the
// name reports interpreter.ErrModuleNotFound; any other error stops the search.
type ChainResolver []interpreter.ModuleResolver

func (c ChainResolver) Resolve(name string) (interpreter.ModuleSource, error) {
	for _, r := range c {
		src, err := r.Resolve(name)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, interpreter.ErrModuleNotFound) {
			return interpreter.ModuleSource{}, err
		}
	}
	return interpreter.ModuleSource{}, fmt.Errorf("%w: %s", interpreter.ErrModuleNotFound, name)
}

// NewResolver assembles the resolver chain a manifest describes: files first,
// then git sources in manifest order.
func NewResolver(m *Manifest) ChainResolver {
	chain := ChainResolver{NewFileResolver(m)}
	for _, src := range m.GitSources {
		chain = append(chain, NewGitResolver(src))
	}
	return chain
}
