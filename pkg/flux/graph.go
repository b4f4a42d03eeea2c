// Package flux maintains reactive bindings: names whose value is an
// expression that is re-evaluated whenever one of its dependencies changes.
package flux

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func tracer() tracing.Trace {
	return tracing.Select("naja.flux")
}

// Evaluator computes a flux expression in its declaring scope.
type Evaluator interface {
	Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(expr ast.Expression, env *runtime.Environment) (runtime.Value, error)

func (f EvaluatorFunc) Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	return f(expr, env)
}

// Node is one reactive binding.
type Node struct {
	name  string
	expr  ast.Expression
	env   *runtime.Environment
	deps  []string
	value runtime.Value
	seq   int
}

func (n *Node) Name() string { return n.name }

func (n *Node) Current() runtime.Value { return n.value }

func (n *Node) Dependencies() []string {
	out := make([]string, len(n.deps))
	copy(out, n.deps)
	return out
}

// Env is the scope the node was declared in.
func (n *Node) Env() *runtime.Environment { return n.env }

var _ runtime.FluxSource = (*Node)(nil)

type bindingKey struct {
	env  *runtime.Environment
	name string
}

// Graph is the registry of flux nodes with a reverse index from variable
// name to the nodes that read it.
type Graph struct {
	eval       Evaluator
	nodes      map[bindingKey]*Node
	byEnv      map[*runtime.Environment][]*Node
	dependents map[string][]*Node
	active     map[*Node]bool
	seq        int
}

func NewGraph(eval Evaluator) *Graph {
	return &Graph{
		eval:       eval,
		nodes:      make(map[bindingKey]*Node),
		byEnv:      make(map[*runtime.Environment][]*Node),
		dependents: make(map[string][]*Node),
		active:     make(map[*Node]bool),
	}
}

// Declare registers `flux name = expr` in env, evaluates it once and binds
// the result. Nodes that already read name from env are refreshed.
func (g *Graph) Declare(name string, expr ast.Expression, env *runtime.Environment) (*Node, error) {
	deps := Dependencies(expr)
	if g.reaches(deps, env, bindingKey{env: env, name: name}) {
		return nil, runtime.NewError(runtime.ErrFluxCycle, "flux '%s' depends on itself", name)
	}
	value, err := g.eval.Evaluate(expr, env)
	if err != nil {
		return nil, err
	}
	if err := env.DefineFlux(name, value); err != nil {
		return nil, err
	}
	key := bindingKey{env: env, name: name}
	if old, ok := g.nodes[key]; ok {
		g.unregister(old)
	}
	g.seq++
	node := &Node{name: name, expr: expr, env: env, deps: deps, value: value, seq: g.seq}
	g.nodes[key] = node
	g.byEnv[env] = append(g.byEnv[env], node)
	for _, dep := range deps {
		g.dependents[dep] = append(g.dependents[dep], node)
	}
	tracer().Debugf("flux %s declared, depends on %v", name, deps)
	if err := g.propagate(name, env); err != nil {
		return node, err
	}
	return node, nil
}

// reaches reports whether any of deps, resolved from env, leads through
// existing flux nodes to target.
func (g *Graph) reaches(deps []string, env *runtime.Environment, target bindingKey) bool {
	visited := make(map[*Node]bool)
	type frontier struct {
		name string
		env  *runtime.Environment
	}
	queue := make([]frontier, 0, len(deps))
	for _, d := range deps {
		if d == target.name {
			// after binding, the name resolves to the flux itself
			return true
		}
		queue = append(queue, frontier{name: d, env: env})
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		owner := next.env.Resolve(next.name)
		if next.name == target.name && owner == target.env {
			return true
		}
		if owner == nil {
			continue
		}
		node, ok := g.nodes[bindingKey{env: owner, name: next.name}]
		if !ok || visited[node] {
			continue
		}
		visited[node] = true
		for _, d := range node.deps {
			queue = append(queue, frontier{name: d, env: node.env})
		}
	}
	return false
}

// BindingChanged is the environment hook: it runs after every successful
// assignment and re-evaluates the affected flux nodes before returning.
func (g *Graph) BindingChanged(name string, owner *runtime.Environment) error {
	return g.propagate(name, owner)
}

func (g *Graph) propagate(name string, owner *runtime.Environment) error {
	affected := g.affected(name, owner)
	if len(affected) == 0 {
		return nil
	}
	tracer().Debugf("flux propagation for %s: %d node(s)", name, len(affected))
	for _, node := range affected {
		if g.active[node] {
			tracer().Debugf("flux %s is being re-evaluated, skipping", node.name)
			continue
		}
		if err := g.refresh(node); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) refresh(node *Node) error {
	g.active[node] = true
	defer delete(g.active, node)
	value, err := g.eval.Evaluate(node.expr, node.env)
	if err != nil {
		tracer().Errorf("flux %s re-evaluation failed: %v", node.name, err)
		return err
	}
	if !node.env.Rebind(node.name, value) {
		// the name was redefined as a plain binding
		g.unregister(node)
		return nil
	}
	node.value = value
	return nil
}

// affected returns every node reachable from the change of name in owner,
// each once, in dependency order (declaration order breaks ties).
func (g *Graph) affected(name string, owner *runtime.Environment) []*Node {
	set := make(map[*Node]bool)
	var order []*Node
	queue := []bindingKey{{env: owner, name: name}}
	for len(queue) > 0 {
		changed := queue[0]
		queue = queue[1:]
		for _, node := range g.dependents[changed.name] {
			if set[node] || node.env.Resolve(changed.name) != changed.env {
				continue
			}
			set[node] = true
			order = append(order, node)
			queue = append(queue, bindingKey{env: node.env, name: node.name})
		}
	}
	if len(order) < 2 {
		return order
	}
	return g.topological(order, set)
}

func (g *Graph) topological(nodes []*Node, set map[*Node]bool) []*Node {
	indegree := make(map[*Node]int, len(nodes))
	edges := make(map[*Node][]*Node, len(nodes))
	for _, n := range nodes {
		for _, m := range g.dependents[n.name] {
			if !set[m] || m.env.Resolve(n.name) != n.env {
				continue
			}
			edges[n] = append(edges[n], m)
			indegree[m]++
		}
	}
	bySeq := func(list []*Node) {
		sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })
	}
	var ready []*Node
	for _, n := range nodes {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	bySeq(ready)
	out := make([]*Node, 0, len(nodes))
	done := make(map[*Node]bool, len(nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		out = append(out, n)
		done[n] = true
		for _, m := range edges[n] {
			indegree[m]--
			if indegree[m] == 0 {
				ready = append(ready, m)
			}
		}
		bySeq(ready)
	}
	if len(out) < len(nodes) {
		// only reachable through a cycle created by redefinition; keep declaration order
		var rest []*Node
		for _, n := range nodes {
			if !done[n] {
				rest = append(rest, n)
			}
		}
		bySeq(rest)
		out = append(out, rest...)
	}
	return out
}

func (g *Graph) unregister(node *Node) {
	key := bindingKey{env: node.env, name: node.name}
	if g.nodes[key] == node {
		delete(g.nodes, key)
	}
	g.byEnv[node.env] = without(g.byEnv[node.env], node)
	if len(g.byEnv[node.env]) == 0 {
		delete(g.byEnv, node.env)
	}
	for _, dep := range node.deps {
		g.dependents[dep] = without(g.dependents[dep], node)
		if len(g.dependents[dep]) == 0 {
			delete(g.dependents, dep)
		}
	}
}

func without(list []*Node, node *Node) []*Node {
	for i, n := range list {
		if n == node {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Release drops the nodes declared in env once its block has been left.
// A scope held by a closure keeps its nodes.
func (g *Graph) Release(env *runtime.Environment) {
	nodes, ok := g.byEnv[env]
	if !ok || env.Captured() {
		return
	}
	for _, node := range nodes {
		g.unregister(node)
	}
	tracer().Debugf("released %d flux node(s)", len(nodes))
}

// Lookup returns the node bound to name as seen from env.
func (g *Graph) Lookup(name string, env *runtime.Environment) (*Node, bool) {
	owner := env.Resolve(name)
	if owner == nil {
		return nil, false
	}
	node, ok := g.nodes[bindingKey{env: owner, name: name}]
	return node, ok
}

// Len reports the number of registered nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}
