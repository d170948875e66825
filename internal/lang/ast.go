package lang

// Node is implemented by every AST node. Pos returns the source location
// the node's defining token started at, so the validator and execution
// context can attach line/column information to errors without re-deriving
// it from the original text.
type Node interface {
	Pos() (line, col int)
}

type pos struct {
	Line, Col int
}

func (p pos) Pos() (int, int) { return p.Line, p.Col }

// Program is the root of a parsed script: an ordered list of top-level
// statements, executed in order against a single shared namespace.
type Program struct {
	pos
	Body []Stmt
}

// Stmt is implemented by every statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression-level node.
type Expr interface {
	Node
	exprNode()
}

// FunctionDef is a `def name(params):` block. Top-level FunctionDefs named
// setup/process define a script's required entrypoints; nested
// FunctionDefs are ordinary closures.
type FunctionDef struct {
	pos
	Name   string
	Params []string
	Body   []Stmt
}

func (*FunctionDef) stmtNode() {}

// Assign is `target = value`. Target is restricted to Name, Attribute, or
// Subscript by the parser.
type Assign struct {
	pos
	Target Expr
	Value  Expr
}

func (*Assign) stmtNode() {}

// ExprStmt is an expression evaluated for its side effects, e.g. a bare
// call like `strategy.entry("long")`.
type ExprStmt struct {
	pos
	X Expr
}

func (*ExprStmt) stmtNode() {}

// Return is `return value` or a bare `return`.
type Return struct {
	pos
	Value Expr // nil for a bare return
}

func (*Return) stmtNode() {}

// If is `if cond: ... elif cond: ... else: ...`. Elif clauses are
// desugared by the parser into a single nested If in Orelse.
type If struct {
	pos
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*If) stmtNode() {}

// While is `while cond: ...`.
type While struct {
	pos
	Cond Expr
	Body []Stmt
}

func (*While) stmtNode() {}

// For is `for target in iter: ...`.
type For struct {
	pos
	Target string
	Iter   Expr
	Body   []Stmt
}

func (*For) stmtNode() {}

// Global declares that subsequent assignments to the named variables in the
// enclosing function bind in the shared top-level namespace rather than a
// fresh local scope.
type Global struct {
	pos
	Names []string
}

func (*Global) stmtNode() {}

// Name is a bare identifier reference, e.g. `close` or `export`.
type Name struct {
	pos
	Ident string
}

func (*Name) exprNode() {}

// Constant is a literal int, float, string, bool, or None.
type Constant struct {
	pos
	Kind  TokenType // INT, FLOAT, STRING, TRUE, FALSE, NONE
	Value any
}

func (*Constant) exprNode() {}

// Attribute is `value.attr`, the sole mechanism for reaching into a
// namespace, e.g. `ta.sma`.
type Attribute struct {
	pos
	Value Expr
	Attr  string
}

func (*Attribute) exprNode() {}

// Call is `fn(args..., kw=val...)`.
type Call struct {
	pos
	Func     Expr
	Args     []Expr
	KwNames  []string
	KwValues []Expr
}

func (*Call) exprNode() {}

// Subscript is `value[index]`.
type Subscript struct {
	pos
	Value Expr
	Index Expr
}

func (*Subscript) exprNode() {}

// ListLit is `[a, b, c]`.
type ListLit struct {
	pos
	Elts []Expr
}

func (*ListLit) exprNode() {}

// DictLit is `{k: v, ...}`.
type DictLit struct {
	pos
	Keys   []Expr
	Values []Expr
}

func (*DictLit) exprNode() {}

// Lambda is `lambda params: body`, a single-expression anonymous function.
type Lambda struct {
	pos
	Params []string
	Body   Expr
}

func (*Lambda) exprNode() {}

// UnaryOp is `-x`, `not x`.
type UnaryOp struct {
	pos
	Op TokenType
	X  Expr
}

func (*UnaryOp) exprNode() {}

// BinOp is an arithmetic binary expression: `+ - * / // % **`.
type BinOp struct {
	pos
	Op          TokenType
	Left, Right Expr
}

func (*BinOp) exprNode() {}

// BoolOp is `a and b` / `a or b`, short-circuiting.
type BoolOp struct {
	pos
	Op     TokenType // AND or OR
	Values []Expr
}

func (*BoolOp) exprNode() {}

// Compare is a chained comparison: `a < b <= c`.
type Compare struct {
	pos
	Left  Expr
	Ops   []TokenType
	Comps []Expr
}

func (*Compare) exprNode() {}
