package driver

import (
	"fmt"
	"path/filepath"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
)

// ModuleInfo is one node of the import tree reported by Check. Level 0 is the
// entry program.
type ModuleInfo struct {
	Name   string
	Origin string
	Level  int
	// Cycle marks an import of a module that is already being visited.
	Cycle bool
	// Opaque marks a source text module whose imports cannot be followed
	// without a parser.
	Opaque bool
}

// Check decodes the program at path (or the manifest entry) and resolves
// every module it imports, transitively, without evaluating anything.
func (s *Session) Check(path string) ([]ModuleInfo, error) {
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
	w := &importWalker{session: s, onStack: map[string]bool{}}
	w.infos = append(w.infos, ModuleInfo{Name: filepath.Base(path), Origin: path})
	if err := w.walk(program, program.Name, 1); err != nil {
		return w.infos, err
	}
	return w.infos, nil
}

type importWalker struct {
	session *Session
	infos   []ModuleInfo
	onStack map[string]bool
}

func (w *importWalker) walk(program *ast.Program, from string, level int) error {
	for _, name := range ImportSources(program) {
		if w.onStack[name] {
			w.infos = append(w.infos, ModuleInfo{Name: name, Level: level, Cycle: true})
			continue
		}
		src, err := w.session.resolver.Resolve(name)
		if err != nil {
			return fmt.Errorf("%s: import %q: %w", from, name, err)
		}
		info := ModuleInfo{Name: name, Origin: src.Origin, Level: level}
		child := src.Program
		if child == nil && w.session.parser != nil {
			if child, err = w.session.parser.Parse(name, src.Text); err != nil {
				return fmt.Errorf("%s: parse %s: %w", from, name, err)
			}
		}
		info.Opaque = child == nil
		w.infos = append(w.infos, info)
		if child == nil {
			continue
		}
		w.onStack[name] = true
		err = w.walk(child, name, level+1)
		delete(w.onStack, name)
		if err != nil {
			return err
		}
	}
	return nil
}

// ImportSources lists the module names a program imports, in source order
// and without duplicates. Imports nested in blocks, loops, functions and
// methods are included; lambda bodies are not searched.
func ImportSources(program *ast.Program) []string {
	c := &importCollector{seen: map[string]bool{}}
	c.statements(program.Body)
	return c.names
}

type importCollector struct {
	names []string
	seen  map[string]bool
}

func (c *importCollector) statements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		c.statement(stmt)
	}
}

func (c *importCollector) block(block *ast.BlockStatement) {
	if block != nil {
		c.statements(block.Body)
	}
}

func (c *importCollector) statement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.ImportStatement:
		if !c.seen[n.Source] {
			c.seen[n.Source] = true
			c.names = append(c.names, n.Source)
		}
	case *ast.BlockStatement:
		c.block(n)
	case *ast.IfStatement:
		c.block(n.Consequent)
		if n.Alternate != nil {
			c.statement(n.Alternate)
		}
	case *ast.WhileLoop:
		c.block(n.Body)
	case *ast.DoWhileLoop:
		c.block(n.Body)
	case *ast.ForLoop:
		if n.Init != nil {
			c.statement(n.Init)
		}
		c.block(n.Body)
	case *ast.ForInLoop:
		c.block(n.Body)
	case *ast.SwitchStatement:
		for _, sc := range n.Cases {
			c.statements(sc.Body)
		}
	case *ast.TryStatement:
		c.block(n.Block)
		c.block(n.Handler)
		c.block(n.Finalizer)
	case *ast.FunctionDeclaration:
		c.block(n.Body)
	case *ast.ClassDeclaration:
		for _, m := range n.Methods {
			if m.Function != nil {
				c.block(m.Function.Body)
			}
		}
	case *ast.ExportStatement:
		if n.Declaration != nil {
			c.statement(n.Declaration)
		}
	}
}
