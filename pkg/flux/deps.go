package flux

import "github.com/CreadorLanda/NajaScript-sub000/pkg/ast"

// Dependencies collects the free identifiers referenced by expr in first
// occurrence order. Names bound inside lambdas (parameters and local
// declarations) are not dependencies.
func Dependencies(expr ast.Expression) []string {
	c := &collector{seen: make(map[string]bool)}
	c.expression(expr, nil)
	return c.names
}

type collector struct {
	names []string
	seen  map[string]bool
}

type scope map[string]bool

func (s scope) with(names ...string) scope {
	out := make(scope, len(s)+len(names))
	for k := range s {
		out[k] = true
	}
	for _, n := range names {
		out[n] = true
	}
	return out
}

func (c *collector) add(name string, bound scope) {
	if bound[name] || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.names = append(c.names, name)
}

func (c *collector) expressions(exprs []ast.Expression, bound scope) {
	for _, e := range exprs {
		c.expression(e, bound)
	}
}

func (c *collector) expression(expr ast.Expression, bound scope) {
	switch e := expr.(type) {
	case nil:
	case *ast.Identifier:
		c.add(e.Name, bound)
	case *ast.ListLiteral:
		c.expressions(e.Elements, bound)
	case *ast.SetLiteral:
		c.expressions(e.Elements, bound)
	case *ast.TupleLiteral:
		c.expressions(e.Elements, bound)
	case *ast.DictLiteral:
		for _, entry := range e.Entries {
			c.expression(entry.Key, bound)
			c.expression(entry.Value, bound)
		}
	case *ast.UnaryExpression:
		c.expression(e.Operand, bound)
	case *ast.BinaryExpression:
		c.expression(e.Left, bound)
		c.expression(e.Right, bound)
	case *ast.AssignmentExpression:
		c.target(e.Left, bound)
		c.expression(e.Right, bound)
	case *ast.UpdateExpression:
		c.target(e.Target, bound)
	case *ast.MemberAccessExpression:
		c.expression(e.Object, bound)
	case *ast.IndexExpression:
		c.expression(e.Object, bound)
		c.expression(e.Index, bound)
	case *ast.FunctionCall:
		c.expression(e.Callee, bound)
		c.expressions(e.Arguments, bound)
	case *ast.NewExpression:
		c.expression(e.Class, bound)
		c.expressions(e.Arguments, bound)
	case *ast.ConditionalExpression:
		c.expression(e.Condition, bound)
		c.expression(e.Consequent, bound)
		c.expression(e.Alternate, bound)
	case *ast.AwaitExpression:
		c.expression(e.Argument, bound)
	case *ast.LambdaExpression:
		inner := bound
		for _, p := range e.Params {
			c.expression(p.Default, inner)
			inner = inner.with(p.Name.Name)
		}
		c.block(e.Body, inner)
	}
}

func (c *collector) target(target ast.AssignmentTarget, bound scope) {
	if expr, ok := target.(ast.Expression); ok {
		c.expression(expr, bound)
	}
}

func (c *collector) block(block *ast.BlockStatement, bound scope) scope {
	if block == nil {
		return bound
	}
	for _, stmt := range block.Body {
		bound = c.statement(stmt, bound)
	}
	return bound
}

// statement walks a statement inside a lambda body and returns the scope
// extended with any names it declares.
func (c *collector) statement(stmt ast.Statement, bound scope) scope {
	switch s := stmt.(type) {
	case ast.Expression:
		c.expression(s, bound)
	case *ast.VariableDeclaration:
		c.expression(s.Value, bound)
		return bound.with(s.ID.Name)
	case *ast.FunctionDeclaration:
		inner := bound.with(s.ID.Name)
		for _, p := range s.Params {
			inner = inner.with(p.Name.Name)
		}
		c.block(s.Body, inner)
		return bound.with(s.ID.Name)
	case *ast.FluxDeclaration:
		c.expression(s.Expression, bound)
		return bound.with(s.ID.Name)
	case *ast.ClassDeclaration:
		return bound.with(s.ID.Name)
	case *ast.BlockStatement:
		c.block(s, bound)
	case *ast.IfStatement:
		c.expression(s.Condition, bound)
		c.block(s.Consequent, bound)
		if s.Alternate != nil {
			c.statement(s.Alternate, bound)
		}
	case *ast.WhileLoop:
		c.expression(s.Condition, bound)
		c.block(s.Body, bound)
	case *ast.DoWhileLoop:
		c.block(s.Body, bound)
		c.expression(s.Condition, bound)
	case *ast.ForLoop:
		inner := bound
		if s.Init != nil {
			inner = c.statement(s.Init, inner)
		}
		c.expression(s.Condition, inner)
		c.expression(s.Update, inner)
		c.block(s.Body, inner)
	case *ast.ForInLoop:
		c.expression(s.Iterable, bound)
		c.block(s.Body, bound.with(s.Variable.Name))
	case *ast.SwitchStatement:
		c.expression(s.Discriminant, bound)
		for _, cs := range s.Cases {
			c.expression(cs.Test, bound)
			inner := bound
			for _, st := range cs.Body {
				inner = c.statement(st, inner)
			}
		}
	case *ast.ReturnStatement:
		c.expression(s.Argument, bound)
	case *ast.ThrowStatement:
		c.expression(s.Argument, bound)
	case *ast.TryStatement:
		c.block(s.Block, bound)
		if s.Handler != nil {
			inner := bound
			if s.CatchParam != nil {
				inner = inner.with(s.CatchParam.Name)
			}
			c.block(s.Handler, inner)
		}
		c.block(s.Finalizer, bound)
	}
	return bound
}
