package ast

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeIntegerLiteral         NodeType = "IntegerLiteral"
	NodeFloatLiteral           NodeType = "FloatLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeNullLiteral            NodeType = "NullLiteral"
	NodeListLiteral            NodeType = "ListLiteral"
	NodeDictEntry              NodeType = "DictEntry"
	NodeDictLiteral            NodeType = "DictLiteral"
	NodeSetLiteral             NodeType = "SetLiteral"
	NodeTupleLiteral           NodeType = "TupleLiteral"
	NodeThisExpression         NodeType = "ThisExpression"
	NodeSuperExpression        NodeType = "SuperExpression"
	NodeUnaryExpression        NodeType = "UnaryExpression"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeAssignmentExpression   NodeType = "AssignmentExpression"
	NodeUpdateExpression       NodeType = "UpdateExpression"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeIndexExpression        NodeType = "IndexExpression"
	NodeFunctionCall           NodeType = "FunctionCall"
	NodeNewExpression          NodeType = "NewExpression"
	NodeLambdaExpression       NodeType = "LambdaExpression"
	NodeConditionalExpression  NodeType = "ConditionalExpression"
	NodeAwaitExpression        NodeType = "AwaitExpression"
	NodeBlockStatement         NodeType = "BlockStatement"
	NodeIfStatement            NodeType = "IfStatement"
	NodeWhileLoop              NodeType = "WhileLoop"
	NodeDoWhileLoop            NodeType = "DoWhileLoop"
	NodeForLoop                NodeType = "ForLoop"
	NodeForInLoop              NodeType = "ForInLoop"
	NodeSwitchCase             NodeType = "SwitchCase"
	NodeSwitchStatement        NodeType = "SwitchStatement"
	NodeBreakStatement         NodeType = "BreakStatement"
	NodeContinueStatement      NodeType = "ContinueStatement"
	NodeReturnStatement        NodeType = "ReturnStatement"
	NodeThrowStatement         NodeType = "ThrowStatement"
	NodeTryStatement           NodeType = "TryStatement"
	NodeVariableDeclaration    NodeType = "VariableDeclaration"
	NodeFunctionParameter      NodeType = "FunctionParameter"
	NodeFunctionDeclaration    NodeType = "FunctionDeclaration"
	NodePropertyDeclaration    NodeType = "PropertyDeclaration"
	NodeMethodDeclaration      NodeType = "MethodDeclaration"
	NodeClassDeclaration       NodeType = "ClassDeclaration"
	NodeFluxDeclaration        NodeType = "FluxDeclaration"
	NodeImportSpecifier        NodeType = "ImportSpecifier"
	NodeImportStatement        NodeType = "ImportStatement"
	NodeExportStatement        NodeType = "ExportStatement"
	NodeProgram                NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// AssignmentTarget is implemented by identifiers, member access and index expressions.
type AssignmentTarget interface {
	Node
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

type DictEntry struct {
	nodeImpl

	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

func NewDictEntry(key, value Expression) *DictEntry {
	return &DictEntry{nodeImpl: newNodeImpl(NodeDictEntry), Key: key, Value: value}
}

type DictLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Entries []*DictEntry `json:"entries"`
}

func NewDictLiteral(entries []*DictEntry) *DictLiteral {
	return &DictLiteral{nodeImpl: newNodeImpl(NodeDictLiteral), Entries: entries}
}

type SetLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewSetLiteral(elements []Expression) *SetLiteral {
	return &SetLiteral{nodeImpl: newNodeImpl(NodeSetLiteral), Elements: elements}
}

type TupleLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewTupleLiteral(elements []Expression) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTupleLiteral), Elements: elements}
}

// Object expressions

type ThisExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression)}
}

// SuperExpression is only valid as the object of a member access (super.m)
// or as the callee of a call inside a constructor (super(...)).
type SuperExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
}

func NewSuperExpression() *SuperExpression {
	return &SuperExpression{nodeImpl: newNodeImpl(NodeSuperExpression)}
}

// Operators

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentOperator string

const (
	AssignmentAssign AssignmentOperator = "="
	AssignmentAdd    AssignmentOperator = "+="
	AssignmentSub    AssignmentOperator = "-="
	AssignmentMul    AssignmentOperator = "*="
	AssignmentDiv    AssignmentOperator = "/="
	AssignmentMod    AssignmentOperator = "%="
)

// BinaryOperator returns the arithmetic operator behind a compound assignment.
func (op AssignmentOperator) BinaryOperator() (string, bool) {
	switch op {
	case AssignmentAdd:
		return "+", true
	case AssignmentSub:
		return "-", true
	case AssignmentMul:
		return "*", true
	case AssignmentDiv:
		return "/", true
	case AssignmentMod:
		return "%", true
	default:
		return "", false
	}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator AssignmentOperator `json:"operator"`
	Left     AssignmentTarget   `json:"left"`
	Right    Expression         `json:"right"`
}

func NewAssignmentExpression(operator AssignmentOperator, left AssignmentTarget, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

// UpdateExpression is ++ or -- in prefix or postfix position.
type UpdateExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string           `json:"operator"`
	Prefix   bool             `json:"prefix"`
	Target   AssignmentTarget `json:"target"`
}

func NewUpdateExpression(operator string, prefix bool, target AssignmentTarget) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Prefix: prefix, Target: target}
}

type MemberAccessExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Object Expression  `json:"object"`
	Member *Identifier `json:"member"`
}

func NewMemberAccessExpression(object Expression, member *Identifier) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Member: member}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type NewExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Class     Expression   `json:"class"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(class Expression, args []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), Class: class, Arguments: args}
}

type LambdaExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Params []*FunctionParameter `json:"params"`
	Body   *BlockStatement      `json:"body"`
}

func NewLambdaExpression(params []*FunctionParameter, body *BlockStatement) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Params: params, Body: body}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Condition  Expression `json:"condition"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func NewConditionalExpression(condition, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Condition: condition, Consequent: consequent, Alternate: alternate}
}

type AwaitExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Argument Expression `json:"argument"`
}

func NewAwaitExpression(argument Expression) *AwaitExpression {
	return &AwaitExpression{nodeImpl: newNodeImpl(NodeAwaitExpression), Argument: argument}
}

// Control flow

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

// IfStatement alternates are either another *IfStatement or a *BlockStatement.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression      `json:"condition"`
	Consequent *BlockStatement `json:"consequent"`
	Alternate  Statement       `json:"alternate,omitempty"`
}

func NewIfStatement(condition Expression, consequent *BlockStatement, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Consequent: consequent, Alternate: alternate}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression      `json:"condition"`
	Body      *BlockStatement `json:"body"`
}

func NewWhileLoop(condition Expression, body *BlockStatement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type DoWhileLoop struct {
	nodeImpl
	statementMarker

	Body      *BlockStatement `json:"body"`
	Condition Expression      `json:"condition"`
}

func NewDoWhileLoop(body *BlockStatement, condition Expression) *DoWhileLoop {
	return &DoWhileLoop{nodeImpl: newNodeImpl(NodeDoWhileLoop), Body: body, Condition: condition}
}

// ForLoop is the C-style for(init; condition; update) loop. Every clause is optional.
type ForLoop struct {
	nodeImpl
	statementMarker

	Init      Statement       `json:"init,omitempty"`
	Condition Expression      `json:"condition,omitempty"`
	Update    Expression      `json:"update,omitempty"`
	Body      *BlockStatement `json:"body"`
}

func NewForLoop(init Statement, condition Expression, update Expression, body *BlockStatement) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Init: init, Condition: condition, Update: update, Body: body}
}

type ForInLoop struct {
	nodeImpl
	statementMarker

	Variable *Identifier     `json:"variable"`
	Iterable Expression      `json:"iterable"`
	Body     *BlockStatement `json:"body"`
}

func NewForInLoop(variable *Identifier, iterable Expression, body *BlockStatement) *ForInLoop {
	return &ForInLoop{nodeImpl: newNodeImpl(NodeForInLoop), Variable: variable, Iterable: iterable, Body: body}
}

// SwitchCase with a nil Test is the default case.
type SwitchCase struct {
	nodeImpl

	Test Expression  `json:"test,omitempty"`
	Body []Statement `json:"body"`
}

func NewSwitchCase(test Expression, body []Statement) *SwitchCase {
	return &SwitchCase{nodeImpl: newNodeImpl(NodeSwitchCase), Test: test, Body: body}
}

type SwitchStatement struct {
	nodeImpl
	statementMarker

	Discriminant Expression    `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

func NewSwitchStatement(discriminant Expression, cases []*SwitchCase) *SwitchStatement {
	return &SwitchStatement{nodeImpl: newNodeImpl(NodeSwitchStatement), Discriminant: discriminant, Cases: cases}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type ThrowStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewThrowStatement(argument Expression) *ThrowStatement {
	return &ThrowStatement{nodeImpl: newNodeImpl(NodeThrowStatement), Argument: argument}
}

type TryStatement struct {
	nodeImpl
	statementMarker

	Block      *BlockStatement `json:"block"`
	CatchParam *Identifier     `json:"catchParam,omitempty"`
	Handler    *BlockStatement `json:"handler,omitempty"`
	Finalizer  *BlockStatement `json:"finalizer,omitempty"`
}

func NewTryStatement(block *BlockStatement, catchParam *Identifier, handler *BlockStatement, finalizer *BlockStatement) *TryStatement {
	return &TryStatement{nodeImpl: newNodeImpl(NodeTryStatement), Block: block, CatchParam: catchParam, Handler: handler, Finalizer: finalizer}
}
