package ast

// Definitions

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	ID       *Identifier `json:"id"`
	TypeName string      `json:"typeName,omitempty"`
	Value    Expression  `json:"value,omitempty"`
	IsConst  bool        `json:"isConst,omitempty"`
}

func NewVariableDeclaration(id *Identifier, typeName string, value Expression, isConst bool) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), ID: id, TypeName: typeName, Value: value, IsConst: isConst}
}

type FunctionParameter struct {
	nodeImpl

	Name     *Identifier `json:"name"`
	TypeName string      `json:"typeName,omitempty"`
	Default  Expression  `json:"default,omitempty"`
}

func NewFunctionParameter(name *Identifier, typeName string, def Expression) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), Name: name, TypeName: typeName, Default: def}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	ID         *Identifier          `json:"id"`
	Params     []*FunctionParameter `json:"params"`
	ReturnType string               `json:"returnType,omitempty"`
	Body       *BlockStatement      `json:"body"`
	IsAsync    bool                 `json:"isAsync,omitempty"`
}

func NewFunctionDeclaration(id *Identifier, params []*FunctionParameter, body *BlockStatement, returnType string, isAsync bool) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: params, Body: body, ReturnType: returnType, IsAsync: isAsync}
}

// Classes

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// Normalize maps the zero value to public.
func (v Visibility) Normalize() Visibility {
	if v == "" {
		return VisibilityPublic
	}
	return v
}

// IsValid reports whether the visibility is recognised.
func (v Visibility) IsValid() bool {
	switch v.Normalize() {
	case VisibilityPublic, VisibilityProtected, VisibilityPrivate:
		return true
	default:
		return false
	}
}

type PropertyDeclaration struct {
	nodeImpl

	Name       *Identifier `json:"name"`
	TypeName   string      `json:"typeName,omitempty"`
	Visibility Visibility  `json:"visibility,omitempty"`
	IsStatic   bool        `json:"isStatic,omitempty"`
	Value      Expression  `json:"value,omitempty"`
}

func NewPropertyDeclaration(name *Identifier, visibility Visibility, value Expression, isStatic bool) *PropertyDeclaration {
	return &PropertyDeclaration{nodeImpl: newNodeImpl(NodePropertyDeclaration), Name: name, Visibility: visibility, Value: value, IsStatic: isStatic}
}

type MethodDeclaration struct {
	nodeImpl

	Visibility Visibility           `json:"visibility,omitempty"`
	IsStatic   bool                 `json:"isStatic,omitempty"`
	Function   *FunctionDeclaration `json:"function"`
}

func NewMethodDeclaration(visibility Visibility, fn *FunctionDeclaration, isStatic bool) *MethodDeclaration {
	return &MethodDeclaration{nodeImpl: newNodeImpl(NodeMethodDeclaration), Visibility: visibility, Function: fn, IsStatic: isStatic}
}

// Name returns the declared method name.
func (m *MethodDeclaration) Name() string {
	if m == nil || m.Function == nil || m.Function.ID == nil {
		return ""
	}
	return m.Function.ID.Name
}

type ClassDeclaration struct {
	nodeImpl
	statementMarker

	ID         *Identifier            `json:"id"`
	Parent     *Identifier            `json:"parent,omitempty"`
	Properties []*PropertyDeclaration `json:"properties"`
	Methods    []*MethodDeclaration   `json:"methods"`
}

func NewClassDeclaration(id *Identifier, parent *Identifier, properties []*PropertyDeclaration, methods []*MethodDeclaration) *ClassDeclaration {
	return &ClassDeclaration{nodeImpl: newNodeImpl(NodeClassDeclaration), ID: id, Parent: parent, Properties: properties, Methods: methods}
}

// Reactive bindings

type FluxDeclaration struct {
	nodeImpl
	statementMarker

	ID         *Identifier `json:"id"`
	Expression Expression  `json:"expression"`
}

func NewFluxDeclaration(id *Identifier, expr Expression) *FluxDeclaration {
	return &FluxDeclaration{nodeImpl: newNodeImpl(NodeFluxDeclaration), ID: id, Expression: expr}
}

// Modules

type ImportKind string

const (
	// ImportWhole binds the module handle: import "m";
	ImportWhole ImportKind = "whole"
	// ImportNamed binds selected exports: import { a, b as c } from "m";
	ImportNamed ImportKind = "named"
	// ImportNamespace binds the handle under an alias: import * as ns from "m";
	ImportNamespace ImportKind = "namespace"
	// ImportWildcard binds every export: import * from "m";
	ImportWildcard ImportKind = "wildcard"
)

type ImportSpecifier struct {
	nodeImpl

	Name  *Identifier `json:"name"`
	Alias *Identifier `json:"alias,omitempty"`
}

func NewImportSpecifier(name *Identifier, alias *Identifier) *ImportSpecifier {
	return &ImportSpecifier{nodeImpl: newNodeImpl(NodeImportSpecifier), Name: name, Alias: alias}
}

// LocalName is the name the specifier binds in the importing scope.
func (s *ImportSpecifier) LocalName() string {
	if s.Alias != nil && s.Alias.Name != "" {
		return s.Alias.Name
	}
	return s.Name.Name
}

type ImportStatement struct {
	nodeImpl
	statementMarker

	Source     string             `json:"source"`
	Kind       ImportKind         `json:"kind"`
	Alias      *Identifier        `json:"alias,omitempty"`
	Specifiers []*ImportSpecifier `json:"specifiers,omitempty"`
}

func NewImportStatement(source string, kind ImportKind, alias *Identifier, specifiers []*ImportSpecifier) *ImportStatement {
	return &ImportStatement{nodeImpl: newNodeImpl(NodeImportStatement), Source: source, Kind: kind, Alias: alias, Specifiers: specifiers}
}

// ExportStatement either wraps a declaration (export fun f() {}) or lists
// names already bound in the module scope (export { a, b };).
type ExportStatement struct {
	nodeImpl
	statementMarker

	Declaration Statement     `json:"declaration,omitempty"`
	Names       []*Identifier `json:"names,omitempty"`
}

func NewExportStatement(declaration Statement, names []*Identifier) *ExportStatement {
	return &ExportStatement{nodeImpl: newNodeImpl(NodeExportStatement), Declaration: declaration, Names: names}
}

// DeclaredName returns the name introduced by a declaration statement.
func DeclaredName(stmt Statement) (string, bool) {
	switch s := stmt.(type) {
	case *VariableDeclaration:
		if s.ID != nil {
			return s.ID.Name, true
		}
	case *FunctionDeclaration:
		if s.ID != nil {
			return s.ID.Name, true
		}
	case *ClassDeclaration:
		if s.ID != nil {
			return s.ID.Name, true
		}
	case *FluxDeclaration:
		if s.ID != nil {
			return s.ID.Name, true
		}
	}
	return "", false
}

type Program struct {
	nodeImpl

	Name string      `json:"name,omitempty"`
	Body []Statement `json:"body"`
}

func NewProgram(name string, body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Name: name, Body: body}
}
