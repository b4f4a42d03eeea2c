package interpreter

import (
	"errors"
	"path"
	"strings"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

// ErrModuleNotFound is returned (possibly wrapped) by resolvers that do not
// know a module name.
var ErrModuleNotFound = errors.New("module not found")

// ModuleSource is what a resolver hands back for a module name: either a
// decoded program or raw text for the configured Parser.
type ModuleSource struct {
	Name    string
	Program *ast.Program
	Text    []byte
	// Origin describes where the source came from (a path, a git revision).
	Origin string
}

// ModuleResolver locates module sources by import name.
type ModuleResolver interface {
	Resolve(name string) (ModuleSource, error)
}

// ResolverFunc adapts a plain function to ModuleResolver.
type ResolverFunc func(name string) (ModuleSource, error)

func (f ResolverFunc) Resolve(name string) (ModuleSource, error) {
	return f(name)
}

// Parser turns module text into a program.
type Parser interface {
	Parse(name string, src []byte) (*ast.Program, error)
}

type ParserFunc func(name string, src []byte) (*ast.Program, error)

func (f ParserFunc) Parse(name string, src []byte) (*ast.Program, error) {
	return f(name, src)
}

func (i *Interpreter) SetModuleResolver(resolver ModuleResolver) {
	i.resolver = resolver
}

func (i *Interpreter) SetParser(parser Parser) {
	i.parser = parser
}

// Module returns an already loaded module.
func (i *Interpreter) Module(name string) (*runtime.ModuleValue, bool) {
	m, ok := i.modules[name]
	return m, ok
}

// LoadModule loads and caches a module the way an import does.
func (i *Interpreter) LoadModule(name string) (*runtime.ModuleValue, error) {
	return i.loadModule(name)
}

func (i *Interpreter) loadModule(name string) (*runtime.ModuleValue, error) {
	if m, ok := i.modules[name]; ok {
		return m, nil
	}
	for idx, loading := range i.loading {
		if loading == name {
			cycle := append(append([]string{}, i.loading[idx:]...), name)
			return nil, runtime.NewError(runtime.ErrImportCycle, "import cycle: %s", strings.Join(cycle, " -> "))
		}
	}
	program, err := i.moduleProgram(name)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loading module %s", name)
	env := i.global.Extend()
	module := runtime.NewModule(name, env)
	i.loading = append(i.loading, name)
	_, err = i.runTopLevel(program.Body, env, module)
	i.loading = i.loading[:len(i.loading)-1]
	if err != nil {
		tracer().Infof("module %s failed to load: %v", name, err)
		return nil, err
	}
	i.modules[name] = module
	tracer().Debugf("module %s loaded, exports %v", name, module.Exports())
	return module, nil
}

func (i *Interpreter) moduleProgram(name string) (*ast.Program, error) {
	if i.resolver == nil {
		return nil, runtime.NewError(runtime.ErrModuleNotFound, "module '%s' not found: no module resolver configured", name)
	}
	src, err := i.resolver.Resolve(name)
	if err != nil {
		if rerr, ok := runtime.AsRuntimeError(err); ok {
			return nil, rerr
		}
		return nil, runtime.NewError(runtime.ErrModuleNotFound, "module '%s' not found: %v", name, err)
	}
	if src.Program != nil {
		return src.Program, nil
	}
	if src.Text == nil {
		return nil, runtime.NewError(runtime.ErrModuleNotFound, "module '%s' resolved to an empty source", name)
	}
	if i.parser == nil {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "module '%s' is source text but no parser is configured", name)
	}
	program, err := i.parser.Parse(name, src.Text)
	if err != nil {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "module '%s' (%s): %v", name, src.Origin, err)
	}
	return program, nil
}

// moduleBaseName is the default binding for a whole-module import:
// "lib/math.naja" binds "math".
func moduleBaseName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func (i *Interpreter) execImport(stmt *ast.ImportStatement, env *runtime.Environment) error {
	module, err := i.loadModule(stmt.Source)
	if err != nil {
		return err
	}
	switch stmt.Kind {
	case ast.ImportWhole, "":
		local := moduleBaseName(stmt.Source)
		if stmt.Alias != nil {
			local = stmt.Alias.Name
		}
		return env.Define(local, module, false)
	case ast.ImportNamespace:
		if stmt.Alias == nil {
			return runtime.NewError(runtime.ErrUnsupportedOperation, "namespace import of '%s' needs an alias", stmt.Source)
		}
		return env.Define(stmt.Alias.Name, module, false)
	case ast.ImportNamed:
		// resolve every name first so a bad specifier binds nothing
		values := make([]runtime.Value, len(stmt.Specifiers))
		for idx, spec := range stmt.Specifiers {
			v, err := module.Export(spec.Name.Name)
			if err != nil {
				return err
			}
			values[idx] = v
		}
		for idx, spec := range stmt.Specifiers {
			if err := env.Define(spec.LocalName(), values[idx], false); err != nil {
				return err
			}
		}
		return nil
	case ast.ImportWildcard:
		for _, name := range module.Exports() {
			v, err := module.Export(name)
			if err != nil {
				return err
			}
			if err := env.Define(name, v, false); err != nil {
				return err
			}
		}
		return nil
	default:
		return runtime.NewError(runtime.ErrUnsupportedOperation, "unknown import kind '%s'", stmt.Kind)
	}
}
