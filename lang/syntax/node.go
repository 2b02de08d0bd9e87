package syntax

import "github.com/ardnew/pillar/lang/diag"

// Node is any element of the syntax tree, including tokens.
type Node interface {
	NodeKind() Kind
	// Span returns the location of the node's first token.
	Span() diag.Location
	fields() []field
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node that may appear in a block.
type Statement interface {
	Node
	stmtNode()
}

// Member is a top-level node of a compilation unit.
type Member interface {
	Node
	memberNode()
}

// field is a named child used when printing or dumping a tree.
type field struct {
	node  Node
	name  string
	nodes []Node
	list  bool
}

func one(name string, n Node) field { return field{name: name, node: n} }

func many[T Node](name string, ns []T) field {
	f := field{name: name, list: true, nodes: make([]Node, 0, len(ns))}
	for _, n := range ns {
		f.nodes = append(f.nodes, n)
	}

	return f
}

// Unit is the root of a parsed source file.
type Unit struct {
	Members []Member
	EOF     Token
}

// FuncDecl declares a named function: fn name(params) { body }.
type FuncDecl struct {
	Body       *BlockStmt
	Parameters []Param
	Fn         Token
	Identifier Token
	OpenParen  Token
	CloseParen Token
}

// Param is a single function parameter.
type Param struct {
	Identifier Token
}

// ImportDecl imports a built-in library or a source file.
type ImportDecl struct {
	Specifier Expression
	Import    Token
}

// ExportDecl marks the declaration it wraps as exported.
type ExportDecl struct {
	Statement Statement
	Export    Token
}

// GlobalStmt wraps a statement at the top level of a unit.
type GlobalStmt struct {
	Statement Statement
}

// BlockStmt is a braced statement list.
type BlockStmt struct {
	Statements []Statement
	Open       Token
	Close      Token
}

// IfStmt is a conditional with an optional else clause.
type IfStmt struct {
	Condition Expression
	Then      *BlockStmt
	Else      *Else
	If        Token
}

// Else is the alternative branch of an [IfStmt]. Its Statement is either a
// block or a nested if statement.
type Else struct {
	Statement Statement
	Else      Token
}

// WhileStmt repeats its body while the condition holds.
type WhileStmt struct {
	Condition Expression
	Body      *BlockStmt
	While     Token
}

// ForStmt counts Identifier from Lower up to, but not including, Upper.
type ForStmt struct {
	Lower      Expression
	Upper      Expression
	Body       *BlockStmt
	For        Token
	OpenParen  Token
	Identifier Token
	Equals     Token
	To         Token
	CloseParen Token
}

type BreakStmt struct {
	Keyword Token
}

type ContinueStmt struct {
	Keyword Token
}

// ReturnStmt exits the enclosing function. Expression is nil for a bare
// return.
type ReturnStmt struct {
	Expression Expression
	Keyword    Token
}

// VarDecl declares a variable with let or const. Equals and Initializer are
// nil when the declaration has no initializer.
type VarDecl struct {
	Initializer Expression
	Equals      *Token
	Keyword     Token
	Identifier  Token
	Constant    bool
}

type ExprStmt struct {
	Expression Expression
}

// LiteralExpr is a boolean, number, or string literal. Value is a bool,
// float64, or string respectively.
type LiteralExpr struct {
	Value   any
	Literal Token
}

type NameExpr struct {
	Identifier Token
}

type BinaryExpr struct {
	Left     Expression
	Right    Expression
	Operator Token
}

type UnaryExpr struct {
	Operand  Expression
	Operator Token
}

// AssignExpr assigns to a variable with = or a compound operator.
type AssignExpr struct {
	Expression Expression
	Identifier Token
	Operator   Token
}

// CallExpr calls a function by name.
type CallExpr struct {
	Callee     *NameExpr
	Arguments  []Expression
	OpenParen  Token
	CloseParen Token
}

// MemberExpr accesses a property of an object. Expression is the remainder
// of the chain: a name, a call, or another member access.
type MemberExpr struct {
	Expression Expression
	Identifier Token
	Dot        Token
}

type ParenExpr struct {
	Expression Expression
	Open       Token
	Close      Token
}

// ObjectExpr is a braced list of properties.
type ObjectExpr struct {
	Properties []*Property
	Open       Token
	Close      Token
}

// Property is a name: value pair of an object literal. Colon and Value are
// nil for the shorthand form, which copies a variable of the same name.
type Property struct {
	Value      Expression
	Colon      *Token
	Identifier Token
}

// FuncExpr is an anonymous function: fn(params) { body }.
type FuncExpr struct {
	Body       *BlockStmt
	Parameters []Param
	Fn         Token
	OpenParen  Token
	CloseParen Token
}

func (*Unit) NodeKind() Kind         { return CompilationUnit }
func (*FuncDecl) NodeKind() Kind     { return FunctionDeclaration }
func (Param) NodeKind() Kind         { return Parameter }
func (*ImportDecl) NodeKind() Kind   { return ImportDeclaration }
func (*ExportDecl) NodeKind() Kind   { return ExportDeclaration }
func (*GlobalStmt) NodeKind() Kind   { return GlobalStatement }
func (*BlockStmt) NodeKind() Kind    { return BlockStatement }
func (*IfStmt) NodeKind() Kind       { return IfStatement }
func (*Else) NodeKind() Kind         { return ElseClause }
func (*WhileStmt) NodeKind() Kind    { return WhileStatement }
func (*ForStmt) NodeKind() Kind      { return ForStatement }
func (*BreakStmt) NodeKind() Kind    { return BreakStatement }
func (*ContinueStmt) NodeKind() Kind { return ContinueStatement }
func (*ReturnStmt) NodeKind() Kind   { return ReturnStatement }
func (*VarDecl) NodeKind() Kind      { return VariableDeclaration }
func (*ExprStmt) NodeKind() Kind     { return ExpressionStatement }
func (*LiteralExpr) NodeKind() Kind  { return LiteralExpression }
func (*NameExpr) NodeKind() Kind     { return NameExpression }
func (*BinaryExpr) NodeKind() Kind   { return BinaryExpression }
func (*UnaryExpr) NodeKind() Kind    { return UnaryExpression }
func (*AssignExpr) NodeKind() Kind   { return AssignmentExpression }
func (*CallExpr) NodeKind() Kind     { return CallExpression }
func (*MemberExpr) NodeKind() Kind   { return MemberAccessExpression }
func (*ParenExpr) NodeKind() Kind    { return ParenthesizedExpression }
func (*ObjectExpr) NodeKind() Kind   { return ObjectLiteralExpression }
func (*Property) NodeKind() Kind     { return ObjectLiteralProperty }
func (*FuncExpr) NodeKind() Kind     { return FunctionExpression }

func (n *Unit) Span() diag.Location {
	if len(n.Members) > 0 {
		return n.Members[0].Span()
	}

	return n.EOF.Location
}

func (n *FuncDecl) Span() diag.Location     { return n.Fn.Location }
func (n Param) Span() diag.Location         { return n.Identifier.Location }
func (n *ImportDecl) Span() diag.Location   { return n.Import.Location }
func (n *ExportDecl) Span() diag.Location   { return n.Export.Location }
func (n *GlobalStmt) Span() diag.Location   { return n.Statement.Span() }
func (n *BlockStmt) Span() diag.Location    { return n.Open.Location }
func (n *IfStmt) Span() diag.Location       { return n.If.Location }
func (n *Else) Span() diag.Location         { return n.Else.Location }
func (n *WhileStmt) Span() diag.Location    { return n.While.Location }
func (n *ForStmt) Span() diag.Location      { return n.For.Location }
func (n *BreakStmt) Span() diag.Location    { return n.Keyword.Location }
func (n *ContinueStmt) Span() diag.Location { return n.Keyword.Location }
func (n *ReturnStmt) Span() diag.Location   { return n.Keyword.Location }
func (n *VarDecl) Span() diag.Location      { return n.Keyword.Location }
func (n *ExprStmt) Span() diag.Location     { return n.Expression.Span() }
func (n *LiteralExpr) Span() diag.Location  { return n.Literal.Location }
func (n *NameExpr) Span() diag.Location     { return n.Identifier.Location }
func (n *BinaryExpr) Span() diag.Location   { return n.Left.Span() }
func (n *UnaryExpr) Span() diag.Location    { return n.Operator.Location }
func (n *AssignExpr) Span() diag.Location   { return n.Identifier.Location }
func (n *CallExpr) Span() diag.Location     { return n.Callee.Span() }
func (n *MemberExpr) Span() diag.Location   { return n.Identifier.Location }
func (n *ParenExpr) Span() diag.Location    { return n.Open.Location }
func (n *ObjectExpr) Span() diag.Location   { return n.Open.Location }
func (n *Property) Span() diag.Location     { return n.Identifier.Location }
func (n *FuncExpr) Span() diag.Location     { return n.Fn.Location }

func (n *Unit) fields() []field {
	return []field{many("members", n.Members), one("eof", n.EOF)}
}

func (n *FuncDecl) fields() []field {
	return []field{
		one("identifier", n.Identifier),
		many("parameters", n.Parameters),
		one("body", n.Body),
	}
}

func (n Param) fields() []field {
	return []field{one("identifier", n.Identifier)}
}

func (n *ImportDecl) fields() []field {
	return []field{one("specifier", n.Specifier)}
}

func (n *ExportDecl) fields() []field {
	return []field{one("statement", n.Statement)}
}

func (n *GlobalStmt) fields() []field {
	return []field{one("statement", n.Statement)}
}

func (n *BlockStmt) fields() []field {
	return []field{many("statements", n.Statements)}
}

func (n *IfStmt) fields() []field {
	f := []field{one("condition", n.Condition), one("then", n.Then)}
	if n.Else != nil {
		f = append(f, one("else", n.Else))
	}

	return f
}

func (n *Else) fields() []field {
	return []field{one("statement", n.Statement)}
}

func (n *WhileStmt) fields() []field {
	return []field{one("condition", n.Condition), one("body", n.Body)}
}

func (n *ForStmt) fields() []field {
	return []field{
		one("identifier", n.Identifier),
		one("lower", n.Lower),
		one("upper", n.Upper),
		one("body", n.Body),
	}
}

func (*BreakStmt) fields() []field    { return nil }
func (*ContinueStmt) fields() []field { return nil }

func (n *ReturnStmt) fields() []field {
	if n.Expression == nil {
		return nil
	}

	return []field{one("expression", n.Expression)}
}

func (n *VarDecl) fields() []field {
	f := []field{one("keyword", n.Keyword), one("identifier", n.Identifier)}
	if n.Initializer != nil {
		f = append(f, one("initializer", n.Initializer))
	}

	return f
}

func (n *ExprStmt) fields() []field {
	return []field{one("expression", n.Expression)}
}

func (n *LiteralExpr) fields() []field {
	return []field{one("literal", n.Literal)}
}

func (n *NameExpr) fields() []field {
	return []field{one("identifier", n.Identifier)}
}

func (n *BinaryExpr) fields() []field {
	return []field{
		one("left", n.Left),
		one("operator", n.Operator),
		one("right", n.Right),
	}
}

func (n *UnaryExpr) fields() []field {
	return []field{one("operator", n.Operator), one("operand", n.Operand)}
}

func (n *AssignExpr) fields() []field {
	return []field{
		one("identifier", n.Identifier),
		one("operator", n.Operator),
		one("expression", n.Expression),
	}
}

func (n *CallExpr) fields() []field {
	return []field{one("callee", n.Callee), many("arguments", n.Arguments)}
}

func (n *MemberExpr) fields() []field {
	return []field{one("identifier", n.Identifier), one("expression", n.Expression)}
}

func (n *ParenExpr) fields() []field {
	return []field{one("expression", n.Expression)}
}

func (n *ObjectExpr) fields() []field {
	return []field{many("properties", n.Properties)}
}

func (n *Property) fields() []field {
	f := []field{one("identifier", n.Identifier)}
	if n.Value != nil {
		f = append(f, one("value", n.Value))
	}

	return f
}

func (n *FuncExpr) fields() []field {
	return []field{many("parameters", n.Parameters), one("body", n.Body)}
}

func (*FuncDecl) memberNode()   {}
func (*ImportDecl) memberNode() {}
func (*ExportDecl) memberNode() {}
func (*GlobalStmt) memberNode() {}

func (*FuncDecl) stmtNode()     {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*VarDecl) stmtNode()      {}
func (*ExprStmt) stmtNode()     {}

func (*LiteralExpr) exprNode() {}
func (*NameExpr) exprNode()    {}
func (*BinaryExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*AssignExpr) exprNode()  {}
func (*CallExpr) exprNode()    {}
func (*MemberExpr) exprNode()  {}
func (*ParenExpr) exprNode()   {}
func (*ObjectExpr) exprNode()  {}
func (*FuncExpr) exprNode()    {}
