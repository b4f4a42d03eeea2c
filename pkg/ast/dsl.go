package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

func Entry(key, value Expression) *DictEntry {
	return NewDictEntry(key, value)
}

func Dict(entries ...*DictEntry) *DictLiteral {
	return NewDictLiteral(entries)
}

func SetLit(elements ...Expression) *SetLiteral {
	return NewSetLiteral(elements)
}

func Tuple(elements ...Expression) *TupleLiteral {
	return NewTupleLiteral(elements)
}

// Expression helpers.

func This() *ThisExpression {
	return NewThisExpression()
}

func Super() *SuperExpression {
	return NewSuperExpression()
}

func Un(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Assign(target AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentAssign, target, value)
}

func AssignOp(op AssignmentOperator, target AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(op, target, value)
}

// Set is shorthand for assigning to a plain name.
func Set(name string, value Expression) *AssignmentExpression {
	return Assign(ID(name), value)
}

func Inc(target AssignmentTarget) *UpdateExpression {
	return NewUpdateExpression("++", false, target)
}

func Dec(target AssignmentTarget) *UpdateExpression {
	return NewUpdateExpression("--", false, target)
}

func PreInc(target AssignmentTarget) *UpdateExpression {
	return NewUpdateExpression("++", true, target)
}

func Member(object Expression, member string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(member))
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index)
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

// CallName calls a function bound to name.
func CallName(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

// CallMethod calls object.method(args...).
func CallMethod(object Expression, method string, args ...Expression) *FunctionCall {
	return NewFunctionCall(Member(object, method), args)
}

func New(class string, args ...Expression) *NewExpression {
	return NewNewExpression(ID(class), args)
}

func Lambda(params []*FunctionParameter, body ...Statement) *LambdaExpression {
	return NewLambdaExpression(params, Block(body...))
}

func Cond(condition, consequent, alternate Expression) *ConditionalExpression {
	return NewConditionalExpression(condition, consequent, alternate)
}

func Await(argument Expression) *AwaitExpression {
	return NewAwaitExpression(argument)
}

// Statement helpers.

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func If(condition Expression, consequent *BlockStatement, alternate Statement) *IfStatement {
	return NewIfStatement(condition, consequent, alternate)
}

func While(condition Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(condition, Block(body...))
}

func DoWhile(condition Expression, body ...Statement) *DoWhileLoop {
	return NewDoWhileLoop(Block(body...), condition)
}

func For(init Statement, condition Expression, update Expression, body ...Statement) *ForLoop {
	return NewForLoop(init, condition, update, Block(body...))
}

func ForIn(variable string, iterable Expression, body ...Statement) *ForInLoop {
	return NewForInLoop(ID(variable), iterable, Block(body...))
}

func Case(test Expression, body ...Statement) *SwitchCase {
	return NewSwitchCase(test, body)
}

func Default(body ...Statement) *SwitchCase {
	return NewSwitchCase(nil, body)
}

func Switch(discriminant Expression, cases ...*SwitchCase) *SwitchStatement {
	return NewSwitchStatement(discriminant, cases)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Throw(argument Expression) *ThrowStatement {
	return NewThrowStatement(argument)
}

func Try(block *BlockStatement, catchParam string, handler *BlockStatement, finalizer *BlockStatement) *TryStatement {
	var param *Identifier
	if catchParam != "" {
		param = ID(catchParam)
	}
	return NewTryStatement(block, param, handler, finalizer)
}

// Declaration helpers.

// Var declares a mutable binding; typeName may be empty.
func Var(typeName, name string, value Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), typeName, value, false)
}

func Const(typeName, name string, value Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), typeName, value, true)
}

func Param(name string) *FunctionParameter {
	return NewFunctionParameter(ID(name), "", nil)
}

func ParamDefault(name string, def Expression) *FunctionParameter {
	return NewFunctionParameter(ID(name), "", def)
}

// Params builds plain parameters from names.
func Params(names ...string) []*FunctionParameter {
	out := make([]*FunctionParameter, 0, len(names))
	for _, name := range names {
		out = append(out, Param(name))
	}
	return out
}

func Fn(name string, params []*FunctionParameter, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, Block(body...), "", false)
}

func Prop(name string, visibility Visibility, value Expression) *PropertyDeclaration {
	return NewPropertyDeclaration(ID(name), visibility, value, false)
}

func StaticProp(name string, visibility Visibility, value Expression) *PropertyDeclaration {
	return NewPropertyDeclaration(ID(name), visibility, value, true)
}

func Method(visibility Visibility, name string, params []*FunctionParameter, body ...Statement) *MethodDeclaration {
	return NewMethodDeclaration(visibility, Fn(name, params, body...), false)
}

func StaticMethod(visibility Visibility, name string, params []*FunctionParameter, body ...Statement) *MethodDeclaration {
	return NewMethodDeclaration(visibility, Fn(name, params, body...), true)
}

// Class declares a class; parent may be empty.
func Class(name, parent string, properties []*PropertyDeclaration, methods ...*MethodDeclaration) *ClassDeclaration {
	var parentID *Identifier
	if parent != "" {
		parentID = ID(parent)
	}
	return NewClassDeclaration(ID(name), parentID, properties, methods)
}

func Flux(name string, expr Expression) *FluxDeclaration {
	return NewFluxDeclaration(ID(name), expr)
}

// Module helpers.

func ImportWholeModule(source string, alias string) *ImportStatement {
	var aliasID *Identifier
	if alias != "" {
		aliasID = ID(alias)
	}
	return NewImportStatement(source, ImportWhole, aliasID, nil)
}

func ImportAs(source, alias string) *ImportStatement {
	return NewImportStatement(source, ImportNamespace, ID(alias), nil)
}

func ImportAll(source string) *ImportStatement {
	return NewImportStatement(source, ImportWildcard, nil, nil)
}

func ImportNames(source string, specifiers ...*ImportSpecifier) *ImportStatement {
	return NewImportStatement(source, ImportNamed, nil, specifiers)
}

// Spec builds an import specifier; alias may be empty.
func Spec(name, alias string) *ImportSpecifier {
	var aliasID *Identifier
	if alias != "" {
		aliasID = ID(alias)
	}
	return NewImportSpecifier(ID(name), aliasID)
}

func Export(declaration Statement) *ExportStatement {
	return NewExportStatement(declaration, nil)
}

func ExportNames(names ...string) *ExportStatement {
	ids := make([]*Identifier, 0, len(names))
	for _, name := range names {
		ids = append(ids, ID(name))
	}
	return NewExportStatement(nil, ids)
}

func Prog(body ...Statement) *Program {
	return NewProgram("", body)
}

func NamedProg(name string, body ...Statement) *Program {
	return NewProgram(name, body)
}
