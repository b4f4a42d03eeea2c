package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// DecodeError reports a malformed node together with its JSON path.
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "ast: " + e.Message
	}
	return fmt.Sprintf("ast: %s: %s", e.Path, e.Message)
}

// DecodeProgram parses the JSON interchange form of a program.
func DecodeProgram(data []byte) (*Program, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("ast: parse program: %w", err)
	}
	node, err := decodeNode(raw, "$")
	if err != nil {
		return nil, err
	}
	prog, ok := node.(*Program)
	if !ok {
		return nil, &DecodeError{Path: "$", Message: fmt.Sprintf("expected Program, got %s", node.NodeType())}
	}
	return prog, nil
}

// DecodeNode decodes a single JSON node (already unmarshalled into a map).
func DecodeNode(raw map[string]any) (Node, error) {
	return decodeNode(raw, "$")
}

func decodeNode(node map[string]any, path string) (Node, error) {
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeProgram:
		body, err := decodeStatements(node, "body", path)
		if err != nil {
			return nil, err
		}
		name, _ := node["name"].(string)
		return NewProgram(name, body), nil
	case NodeIdentifier:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, &DecodeError{Path: path, Message: "identifier without name"}
		}
		return NewIdentifier(name), nil
	case NodeStringLiteral:
		val, _ := node["value"].(string)
		return NewStringLiteral(val), nil
	case NodeIntegerLiteral:
		val, err := decodeInt(node["value"], path+".value")
		if err != nil {
			return nil, err
		}
		return NewIntegerLiteral(val), nil
	case NodeFloatLiteral:
		val, err := decodeFloat(node["value"], path+".value")
		if err != nil {
			return nil, err
		}
		return NewFloatLiteral(val), nil
	case NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return NewBooleanLiteral(val), nil
	case NodeNullLiteral:
		return NewNullLiteral(), nil
	case NodeListLiteral:
		elems, err := decodeExpressions(node, "elements", path)
		if err != nil {
			return nil, err
		}
		return NewListLiteral(elems), nil
	case NodeSetLiteral:
		elems, err := decodeExpressions(node, "elements", path)
		if err != nil {
			return nil, err
		}
		return NewSetLiteral(elems), nil
	case NodeTupleLiteral:
		elems, err := decodeExpressions(node, "elements", path)
		if err != nil {
			return nil, err
		}
		return NewTupleLiteral(elems), nil
	case NodeDictLiteral:
		rawEntries, _ := node["entries"].([]any)
		entries := make([]*DictEntry, 0, len(rawEntries))
		for i, raw := range rawEntries {
			entryPath := fmt.Sprintf("%s.entries[%d]", path, i)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: entryPath, Message: fmt.Sprintf("invalid dict entry %T", raw)}
			}
			key, err := requireExpression(child, "key", entryPath)
			if err != nil {
				return nil, err
			}
			value, err := requireExpression(child, "value", entryPath)
			if err != nil {
				return nil, err
			}
			entries = append(entries, NewDictEntry(key, value))
		}
		return NewDictLiteral(entries), nil
	case NodeThisExpression:
		return NewThisExpression(), nil
	case NodeSuperExpression:
		return NewSuperExpression(), nil
	case NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, err := requireExpression(node, "operand", path)
		if err != nil {
			return nil, err
		}
		return NewUnaryExpression(op, operand), nil
	case NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := requireExpression(node, "left", path)
		if err != nil {
			return nil, err
		}
		right, err := requireExpression(node, "right", path)
		if err != nil {
			return nil, err
		}
		return NewBinaryExpression(op, left, right), nil
	case NodeAssignmentExpression:
		op, _ := node["operator"].(string)
		if op == "" {
			op = string(AssignmentAssign)
		}
		target, err := requireTarget(node, "left", path)
		if err != nil {
			return nil, err
		}
		right, err := requireExpression(node, "right", path)
		if err != nil {
			return nil, err
		}
		return NewAssignmentExpression(AssignmentOperator(op), target, right), nil
	case NodeUpdateExpression:
		op, _ := node["operator"].(string)
		prefix, _ := node["prefix"].(bool)
		target, err := requireTarget(node, "target", path)
		if err != nil {
			return nil, err
		}
		return NewUpdateExpression(op, prefix, target), nil
	case NodeMemberAccessExpression:
		object, err := requireExpression(node, "object", path)
		if err != nil {
			return nil, err
		}
		member, err := requireIdentifier(node, "member", path)
		if err != nil {
			return nil, err
		}
		return NewMemberAccessExpression(object, member), nil
	case NodeIndexExpression:
		object, err := requireExpression(node, "object", path)
		if err != nil {
			return nil, err
		}
		index, err := requireExpression(node, "index", path)
		if err != nil {
			return nil, err
		}
		return NewIndexExpression(object, index), nil
	case NodeFunctionCall:
		callee, err := requireExpression(node, "callee", path)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node, "arguments", path)
		if err != nil {
			return nil, err
		}
		return NewFunctionCall(callee, args), nil
	case NodeNewExpression:
		class, err := requireExpression(node, "class", path)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node, "arguments", path)
		if err != nil {
			return nil, err
		}
		return NewNewExpression(class, args), nil
	case NodeLambdaExpression:
		params, err := decodeParams(node, path)
		if err != nil {
			return nil, err
		}
		body, err := requireBlock(node, "body", path)
		if err != nil {
			return nil, err
		}
		return NewLambdaExpression(params, body), nil
	case NodeConditionalExpression:
		cond, err := requireExpression(node, "condition", path)
		if err != nil {
			return nil, err
		}
		cons, err := requireExpression(node, "consequent", path)
		if err != nil {
			return nil, err
		}
		alt, err := requireExpression(node, "alternate", path)
		if err != nil {
			return nil, err
		}
		return NewConditionalExpression(cond, cons, alt), nil
	case NodeAwaitExpression:
		arg, err := requireExpression(node, "argument", path)
		if err != nil {
			return nil, err
		}
		return NewAwaitExpression(arg), nil
	default:
		return decodeStatementNode(node, typ, path)
	}
}

func decodeStatementNode(node map[string]any, typ string, path string) (Node, error) {
	switch NodeType(typ) {
	case NodeBlockStatement:
		body, err := decodeStatements(node, "body", path)
		if err != nil {
			return nil, err
		}
		return NewBlockStatement(body), nil
	case NodeIfStatement:
		cond, err := requireExpression(node, "condition", path)
		if err != nil {
			return nil, err
		}
		cons, err := requireBlock(node, "consequent", path)
		if err != nil {
			return nil, err
		}
		alt, err := optionalStatement(node, "alternate", path)
		if err != nil {
			return nil, err
		}
		switch alt.(type) {
		case nil, *IfStatement, *BlockStatement:
		default:
			return nil, &DecodeError{Path: path + ".alternate", Message: fmt.Sprintf("invalid else branch %s", alt.NodeType())}
		}
		return NewIfStatement(cond, cons, alt), nil
	case NodeWhileLoop:
		cond, err := requireExpression(node, "condition", path)
		if err != nil {
			return nil, err
		}
		body, err := requireBlock(node, "body", path)
		if err != nil {
			return nil, err
		}
		return NewWhileLoop(cond, body), nil
	case NodeDoWhileLoop:
		body, err := requireBlock(node, "body", path)
		if err != nil {
			return nil, err
		}
		cond, err := requireExpression(node, "condition", path)
		if err != nil {
			return nil, err
		}
		return NewDoWhileLoop(body, cond), nil
	case NodeForLoop:
		init, err := optionalStatement(node, "init", path)
		if err != nil {
			return nil, err
		}
		cond, err := optionalExpression(node, "condition", path)
		if err != nil {
			return nil, err
		}
		update, err := optionalExpression(node, "update", path)
		if err != nil {
			return nil, err
		}
		body, err := requireBlock(node, "body", path)
		if err != nil {
			return nil, err
		}
		return NewForLoop(init, cond, update, body), nil
	case NodeForInLoop:
		variable, err := requireIdentifier(node, "variable", path)
		if err != nil {
			return nil, err
		}
		iterable, err := requireExpression(node, "iterable", path)
		if err != nil {
			return nil, err
		}
		body, err := requireBlock(node, "body", path)
		if err != nil {
			return nil, err
		}
		return NewForInLoop(variable, iterable, body), nil
	case NodeSwitchStatement:
		disc, err := requireExpression(node, "discriminant", path)
		if err != nil {
			return nil, err
		}
		rawCases, _ := node["cases"].([]any)
		cases := make([]*SwitchCase, 0, len(rawCases))
		for i, raw := range rawCases {
			casePath := fmt.Sprintf("%s.cases[%d]", path, i)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: casePath, Message: fmt.Sprintf("invalid switch case %T", raw)}
			}
			test, err := optionalExpression(child, "test", casePath)
			if err != nil {
				return nil, err
			}
			body, err := decodeStatements(child, "body", casePath)
			if err != nil {
				return nil, err
			}
			cases = append(cases, NewSwitchCase(test, body))
		}
		return NewSwitchStatement(disc, cases), nil
	case NodeBreakStatement:
		return NewBreakStatement(), nil
	case NodeContinueStatement:
		return NewContinueStatement(), nil
	case NodeReturnStatement:
		arg, err := optionalExpression(node, "argument", path)
		if err != nil {
			return nil, err
		}
		return NewReturnStatement(arg), nil
	case NodeThrowStatement:
		arg, err := requireExpression(node, "argument", path)
		if err != nil {
			return nil, err
		}
		return NewThrowStatement(arg), nil
	case NodeTryStatement:
		block, err := requireBlock(node, "block", path)
		if err != nil {
			return nil, err
		}
		param, err := optionalIdentifier(node, "catchParam", path)
		if err != nil {
			return nil, err
		}
		handler, err := optionalBlock(node, "handler", path)
		if err != nil {
			return nil, err
		}
		finalizer, err := optionalBlock(node, "finalizer", path)
		if err != nil {
			return nil, err
		}
		if handler == nil && finalizer == nil {
			return nil, &DecodeError{Path: path, Message: "try requires a catch or finally block"}
		}
		return NewTryStatement(block, param, handler, finalizer), nil
	default:
		return decodeDefinitionNode(node, typ, path)
	}
}

func decodeDefinitionNode(node map[string]any, typ string, path string) (Node, error) {
	switch NodeType(typ) {
	case NodeVariableDeclaration:
		id, err := requireIdentifier(node, "id", path)
		if err != nil {
			return nil, err
		}
		value, err := optionalExpression(node, "value", path)
		if err != nil {
			return nil, err
		}
		typeName, _ := node["typeName"].(string)
		isConst, _ := node["isConst"].(bool)
		if isConst && value == nil {
			return nil, &DecodeError{Path: path, Message: fmt.Sprintf("const '%s' requires an initializer", id.Name)}
		}
		return NewVariableDeclaration(id, typeName, value, isConst), nil
	case NodeFunctionDeclaration:
		return decodeFunctionDeclaration(node, path)
	case NodeClassDeclaration:
		id, err := requireIdentifier(node, "id", path)
		if err != nil {
			return nil, err
		}
		parent, err := optionalIdentifier(node, "parent", path)
		if err != nil {
			return nil, err
		}
		rawProps, _ := node["properties"].([]any)
		props := make([]*PropertyDeclaration, 0, len(rawProps))
		for i, raw := range rawProps {
			propPath := fmt.Sprintf("%s.properties[%d]", path, i)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: propPath, Message: fmt.Sprintf("invalid property %T", raw)}
			}
			name, err := requireIdentifier(child, "name", propPath)
			if err != nil {
				return nil, err
			}
			value, err := optionalExpression(child, "value", propPath)
			if err != nil {
				return nil, err
			}
			vis, err := decodeVisibility(child, propPath)
			if err != nil {
				return nil, err
			}
			isStatic, _ := child["isStatic"].(bool)
			prop := NewPropertyDeclaration(name, vis, value, isStatic)
			prop.TypeName, _ = child["typeName"].(string)
			props = append(props, prop)
		}
		rawMethods, _ := node["methods"].([]any)
		methods := make([]*MethodDeclaration, 0, len(rawMethods))
		for i, raw := range rawMethods {
			methodPath := fmt.Sprintf("%s.methods[%d]", path, i)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: methodPath, Message: fmt.Sprintf("invalid method %T", raw)}
			}
			fnRaw, ok := child["function"].(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: methodPath, Message: "method missing function"}
			}
			fn, err := decodeFunctionDeclaration(fnRaw, methodPath+".function")
			if err != nil {
				return nil, err
			}
			vis, err := decodeVisibility(child, methodPath)
			if err != nil {
				return nil, err
			}
			isStatic, _ := child["isStatic"].(bool)
			methods = append(methods, NewMethodDeclaration(vis, fn, isStatic))
		}
		return NewClassDeclaration(id, parent, props, methods), nil
	case NodeFluxDeclaration:
		id, err := requireIdentifier(node, "id", path)
		if err != nil {
			return nil, err
		}
		expr, err := requireExpression(node, "expression", path)
		if err != nil {
			return nil, err
		}
		return NewFluxDeclaration(id, expr), nil
	case NodeImportStatement:
		source, _ := node["source"].(string)
		if source == "" {
			return nil, &DecodeError{Path: path, Message: "import without source"}
		}
		kind, _ := node["kind"].(string)
		if kind == "" {
			kind = string(ImportWhole)
		}
		alias, err := optionalIdentifier(node, "alias", path)
		if err != nil {
			return nil, err
		}
		rawSpecs, _ := node["specifiers"].([]any)
		specs := make([]*ImportSpecifier, 0, len(rawSpecs))
		for i, raw := range rawSpecs {
			specPath := fmt.Sprintf("%s.specifiers[%d]", path, i)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: specPath, Message: fmt.Sprintf("invalid import specifier %T", raw)}
			}
			name, err := requireIdentifier(child, "name", specPath)
			if err != nil {
				return nil, err
			}
			specAlias, err := optionalIdentifier(child, "alias", specPath)
			if err != nil {
				return nil, err
			}
			specs = append(specs, NewImportSpecifier(name, specAlias))
		}
		switch ImportKind(kind) {
		case ImportWhole, ImportWildcard:
		case ImportNamespace:
			if alias == nil {
				return nil, &DecodeError{Path: path, Message: "namespace import requires an alias"}
			}
		case ImportNamed:
			if len(specs) == 0 {
				return nil, &DecodeError{Path: path, Message: "named import requires specifiers"}
			}
		default:
			return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unknown import kind %q", kind)}
		}
		return NewImportStatement(source, ImportKind(kind), alias, specs), nil
	case NodeExportStatement:
		decl, err := optionalStatement(node, "declaration", path)
		if err != nil {
			return nil, err
		}
		if decl != nil {
			if _, ok := DeclaredName(decl); !ok {
				return nil, &DecodeError{Path: path + ".declaration", Message: fmt.Sprintf("cannot export %s", decl.NodeType())}
			}
		}
		rawNames, _ := node["names"].([]any)
		names := make([]*Identifier, 0, len(rawNames))
		for i, raw := range rawNames {
			namePath := fmt.Sprintf("%s.names[%d]", path, i)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: namePath, Message: fmt.Sprintf("invalid export name %T", raw)}
			}
			n, err := decodeNode(child, namePath)
			if err != nil {
				return nil, err
			}
			id, ok := n.(*Identifier)
			if !ok {
				return nil, &DecodeError{Path: namePath, Message: fmt.Sprintf("expected Identifier, got %s", n.NodeType())}
			}
			names = append(names, id)
		}
		if decl == nil && len(names) == 0 {
			return nil, &DecodeError{Path: path, Message: "export requires a declaration or names"}
		}
		return NewExportStatement(decl, names), nil
	case "":
		return nil, &DecodeError{Path: path, Message: "node missing type"}
	default:
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unsupported node type %q", typ)}
	}
}

func decodeFunctionDeclaration(node map[string]any, path string) (*FunctionDeclaration, error) {
	if typ, _ := node["type"].(string); typ != "" && NodeType(typ) != NodeFunctionDeclaration {
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("expected FunctionDeclaration, got %s", typ)}
	}
	id, err := requireIdentifier(node, "id", path)
	if err != nil {
		return nil, err
	}
	params, err := decodeParams(node, path)
	if err != nil {
		return nil, err
	}
	body, err := requireBlock(node, "body", path)
	if err != nil {
		return nil, err
	}
	returnType, _ := node["returnType"].(string)
	isAsync, _ := node["isAsync"].(bool)
	return NewFunctionDeclaration(id, params, body, returnType, isAsync), nil
}

func decodeParams(node map[string]any, path string) ([]*FunctionParameter, error) {
	rawParams, _ := node["params"].([]any)
	params := make([]*FunctionParameter, 0, len(rawParams))
	for i, raw := range rawParams {
		paramPath := fmt.Sprintf("%s.params[%d]", path, i)
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, &DecodeError{Path: paramPath, Message: fmt.Sprintf("invalid parameter %T", raw)}
		}
		name, err := requireIdentifier(child, "name", paramPath)
		if err != nil {
			return nil, err
		}
		def, err := optionalExpression(child, "default", paramPath)
		if err != nil {
			return nil, err
		}
		typeName, _ := child["typeName"].(string)
		params = append(params, NewFunctionParameter(name, typeName, def))
	}
	return params, nil
}

func decodeVisibility(node map[string]any, path string) (Visibility, error) {
	raw, _ := node["visibility"].(string)
	vis := Visibility(raw).Normalize()
	if !vis.IsValid() {
		return "", &DecodeError{Path: path + ".visibility", Message: fmt.Sprintf("unknown visibility %q", raw)}
	}
	return vis, nil
}

func childNode(node map[string]any, field, path string) (Node, string, error) {
	childPath := path + "." + field
	raw, present := node[field]
	if !present || raw == nil {
		return nil, childPath, nil
	}
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, childPath, &DecodeError{Path: childPath, Message: fmt.Sprintf("expected object, got %T", raw)}
	}
	n, err := decodeNode(child, childPath)
	return n, childPath, err
}

func optionalExpression(node map[string]any, field, path string) (Expression, error) {
	n, childPath, err := childNode(node, field, path)
	if err != nil || n == nil {
		return nil, err
	}
	expr, ok := n.(Expression)
	if !ok {
		return nil, &DecodeError{Path: childPath, Message: fmt.Sprintf("expected expression, got %s", n.NodeType())}
	}
	return expr, nil
}

func requireExpression(node map[string]any, field, path string) (Expression, error) {
	expr, err := optionalExpression(node, field, path)
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, &DecodeError{Path: path + "." + field, Message: "missing expression"}
	}
	return expr, nil
}

func requireTarget(node map[string]any, field, path string) (AssignmentTarget, error) {
	n, childPath, err := childNode(node, field, path)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &DecodeError{Path: childPath, Message: "missing assignment target"}
	}
	target, ok := n.(AssignmentTarget)
	if !ok {
		return nil, &DecodeError{Path: childPath, Message: fmt.Sprintf("invalid assignment target %s", n.NodeType())}
	}
	return target, nil
}

func optionalStatement(node map[string]any, field, path string) (Statement, error) {
	n, childPath, err := childNode(node, field, path)
	if err != nil || n == nil {
		return nil, err
	}
	stmt, ok := n.(Statement)
	if !ok {
		return nil, &DecodeError{Path: childPath, Message: fmt.Sprintf("expected statement, got %s", n.NodeType())}
	}
	return stmt, nil
}

func optionalIdentifier(node map[string]any, field, path string) (*Identifier, error) {
	n, childPath, err := childNode(node, field, path)
	if err != nil || n == nil {
		return nil, err
	}
	id, ok := n.(*Identifier)
	if !ok {
		return nil, &DecodeError{Path: childPath, Message: fmt.Sprintf("expected Identifier, got %s", n.NodeType())}
	}
	return id, nil
}

func requireIdentifier(node map[string]any, field, path string) (*Identifier, error) {
	id, err := optionalIdentifier(node, field, path)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, &DecodeError{Path: path + "." + field, Message: "missing identifier"}
	}
	return id, nil
}

func optionalBlock(node map[string]any, field, path string) (*BlockStatement, error) {
	n, childPath, err := childNode(node, field, path)
	if err != nil || n == nil {
		return nil, err
	}
	block, ok := n.(*BlockStatement)
	if !ok {
		return nil, &DecodeError{Path: childPath, Message: fmt.Sprintf("expected BlockStatement, got %s", n.NodeType())}
	}
	return block, nil
}

func requireBlock(node map[string]any, field, path string) (*BlockStatement, error) {
	block, err := optionalBlock(node, field, path)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, &DecodeError{Path: path + "." + field, Message: "missing block"}
	}
	return block, nil
}

func decodeExpressions(node map[string]any, field, path string) ([]Expression, error) {
	rawList, _ := node[field].([]any)
	out := make([]Expression, 0, len(rawList))
	for i, raw := range rawList {
		itemPath := fmt.Sprintf("%s.%s[%d]", path, field, i)
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, &DecodeError{Path: itemPath, Message: fmt.Sprintf("expected object, got %T", raw)}
		}
		n, err := decodeNode(child, itemPath)
		if err != nil {
			return nil, err
		}
		expr, ok := n.(Expression)
		if !ok {
			return nil, &DecodeError{Path: itemPath, Message: fmt.Sprintf("expected expression, got %s", n.NodeType())}
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeStatements(node map[string]any, field, path string) ([]Statement, error) {
	rawList, _ := node[field].([]any)
	out := make([]Statement, 0, len(rawList))
	for i, raw := range rawList {
		itemPath := fmt.Sprintf("%s.%s[%d]", path, field, i)
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, &DecodeError{Path: itemPath, Message: fmt.Sprintf("expected object, got %T", raw)}
		}
		n, err := decodeNode(child, itemPath)
		if err != nil {
			return nil, err
		}
		stmt, ok := n.(Statement)
		if !ok {
			return nil, &DecodeError{Path: itemPath, Message: fmt.Sprintf("expected statement, got %s", n.NodeType())}
		}
		out = append(out, stmt)
	}
	return out, nil
}

func decodeInt(raw any, path string) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return 0, &DecodeError{Path: path, Message: fmt.Sprintf("integer literal %s out of range", v.String())}
	case float64:
		if v != math.Trunc(v) {
			return 0, &DecodeError{Path: path, Message: fmt.Sprintf("integer literal %v is fractional", v)}
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, &DecodeError{Path: path, Message: fmt.Sprintf("invalid integer literal %q", v)}
		}
		return i, nil
	default:
		return 0, &DecodeError{Path: path, Message: fmt.Sprintf("invalid integer literal %T", raw)}
	}
}

func decodeFloat(raw any, path string) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, &DecodeError{Path: path, Message: fmt.Sprintf("invalid float literal %s", v.String())}
		}
		return f, nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &DecodeError{Path: path, Message: fmt.Sprintf("invalid float literal %q", v)}
		}
		return f, nil
	default:
		return 0, &DecodeError{Path: path, Message: fmt.Sprintf("invalid float literal %T", raw)}
	}
}
