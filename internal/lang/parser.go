package lang

import (
	"fmt"
	"strconv"
)

// ParseError is raised for a malformed token stream (unexpected token,
// missing block, malformed expression).
type ParseError struct {
	Line, Col int
	Message   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// Parser builds a Program from a flat token stream produced by Tokenize.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser creates a Parser over an already-tokenized source.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes and parses source in one step.
func Parse(source string) (*Program, error) {
	toks, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	return NewParser(toks).ParseProgram()
}

// ParseProgram parses the full token stream as a sequence of top-level
// statements, skipping leading/blank NEWLINEs between them.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}

	p.skipNewlines()

	for !p.at(EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		prog.Body = append(prog.Body, stmt)
		p.skipNewlines()
	}

	return prog, nil
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) at(t TokenType) bool { return p.cur().Type == t }

func (p *Parser) advance() Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return tok
}

func (p *Parser) skipNewlines() {
	for p.at(NEWLINE) {
		p.advance()
	}
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if !p.at(t) {
		tok := p.cur()

		return Token{}, &ParseError{tok.Line, tok.Col, fmt.Sprintf("expected %v, got %v", t, tok.Type)}
	}

	return p.advance(), nil
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return &ParseError{tok.Line, tok.Col, fmt.Sprintf(format, args...)}
}

// parseStatement dispatches to a compound or simple statement based on the
// current token.
func (p *Parser) parseStatement() (Stmt, error) {
	switch p.cur().Type {
	case DEF:
		return p.parseFunctionDef()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	default:
		return p.parseSimpleStatement()
	}
}

// parseBlock consumes `: NEWLINE INDENT stmt+ DEDENT`.
func (p *Parser) parseBlock() ([]Stmt, error) {
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}

	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}

	p.skipNewlines()

	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}

	var body []Stmt

	for !p.at(DEDENT) && !p.at(EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
		p.skipNewlines()
	}

	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}

	return body, nil
}

func (p *Parser) parseFunctionDef() (Stmt, error) {
	tok, err := p.expect(DEF)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	var params []string

	for !p.at(RPAREN) {
		pn, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}

		params = append(params, pn.Literal)

		if p.at(COMMA) {
			p.advance()
		} else {
			break
		}
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &FunctionDef{pos: pos{tok.Line, tok.Col}, Name: name.Literal, Params: params, Body: body}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	tok, err := p.expect(IF)
	if err != nil {
		return nil, err
	}

	return p.parseIfRest(tok)
}

// parseIfRest parses the condition/body/else-chain shared by `if` and the
// synthetic `elif` nodes it desugars into.
func (p *Parser) parseIfRest(tok Token) (Stmt, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &If{pos: pos{tok.Line, tok.Col}, Cond: cond, Body: body}

	switch {
	case p.at(ELIF):
		elifTok := p.advance()

		elifNode, err := p.parseIfRest(elifTok)
		if err != nil {
			return nil, err
		}

		node.Orelse = []Stmt{elifNode}
	case p.at(ELSE):
		p.advance()

		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		node.Orelse = elseBody
	}

	return node, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	tok, err := p.expect(WHILE)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &While{pos: pos{tok.Line, tok.Col}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	tok, err := p.expect(FOR)
	if err != nil {
		return nil, err
	}

	target, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(IN); err != nil {
		return nil, err
	}

	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &For{pos: pos{tok.Line, tok.Col}, Target: target.Literal, Iter: iter, Body: body}, nil
}

// parseSimpleStatement parses one logical line that isn't a compound
// statement: global, return, assignment, or a bare expression — terminated
// by NEWLINE or EOF.
func (p *Parser) parseSimpleStatement() (Stmt, error) {
	tok := p.cur()

	var stmt Stmt

	switch tok.Type {
	case GLOBAL:
		p.advance()

		var names []string

		for {
			n, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}

			names = append(names, n.Literal)

			if p.at(COMMA) {
				p.advance()

				continue
			}

			break
		}

		stmt = &Global{pos: pos{tok.Line, tok.Col}, Names: names}
	case RETURN:
		p.advance()

		if p.at(NEWLINE) || p.at(EOF) || p.at(DEDENT) {
			stmt = &Return{pos: pos{tok.Line, tok.Col}}
		} else {
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			stmt = &Return{pos: pos{tok.Line, tok.Col}, Value: val}
		}
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if p.at(ASSIGN) {
			p.advance()

			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			stmt = &Assign{pos: pos{tok.Line, tok.Col}, Target: expr, Value: val}
		} else {
			stmt = &ExprStmt{pos: pos{tok.Line, tok.Col}, X: expr}
		}
	}

	if !p.at(NEWLINE) && !p.at(EOF) && !p.at(DEDENT) {
		t := p.cur()

		return nil, p.errorf(t, "unexpected token %v after statement", t.Type)
	}

	return stmt, nil
}

// Expression parsing, precedence climbing: or < and < not < comparison <
// additive < multiplicative < unary < power < postfix (call/attr/subscript) < atom.

func (p *Parser) parseExpr() (Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	if !p.at(OR) {
		return left, nil
	}

	tok := p.cur()
	values := []Expr{left}

	for p.at(OR) {
		p.advance()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		values = append(values, right)
	}

	return &BoolOp{pos: pos{tok.Line, tok.Col}, Op: OR, Values: values}, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	if !p.at(AND) {
		return left, nil
	}

	tok := p.cur()
	values := []Expr{left}

	for p.at(AND) {
		p.advance()

		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		values = append(values, right)
	}

	return &BoolOp{pos: pos{tok.Line, tok.Col}, Op: AND, Values: values}, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.at(NOT) {
		tok := p.advance()

		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		return &UnaryOp{pos: pos{tok.Line, tok.Col}, Op: NOT, X: x}, nil
	}

	return p.parseComparison()
}

var compareOps = map[TokenType]bool{EQ: true, NEQ: true, LT: true, GT: true, LE: true, GE: true}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if !compareOps[p.cur().Type] {
		return left, nil
	}

	tok := p.cur()

	var ops []TokenType

	var comps []Expr

	for compareOps[p.cur().Type] {
		op := p.advance().Type

		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		ops = append(ops, op)
		comps = append(comps, right)
	}

	return &Compare{pos: pos{tok.Line, tok.Col}, Left: left, Ops: ops, Comps: comps}, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.at(PLUS) || p.at(MINUS) {
		tok := p.advance()

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &BinOp{pos: pos{tok.Line, tok.Col}, Op: tok.Type, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.at(STAR) || p.at(SLASH) || p.at(DSLASH) || p.at(PERCENT) {
		tok := p.advance()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &BinOp{pos: pos{tok.Line, tok.Col}, Op: tok.Type, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.at(MINUS) || p.at(PLUS) {
		tok := p.advance()

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &UnaryOp{pos: pos{tok.Line, tok.Col}, Op: tok.Type, X: x}, nil
	}

	return p.parsePower()
}

func (p *Parser) parsePower() (Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	if p.at(DSTAR) {
		tok := p.advance()

		right, err := p.parseUnary() // right-associative
		if err != nil {
			return nil, err
		}

		return &BinOp{pos: pos{tok.Line, tok.Col}, Op: DSTAR, Left: left, Right: right}, nil
	}

	return left, nil
}

// parsePostfix handles chained `.attr`, `(args)`, `[index]` suffixes.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.at(DOT):
			tok := p.advance()

			name, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}

			expr = &Attribute{pos: pos{tok.Line, tok.Col}, Value: expr, Attr: name.Literal}
		case p.at(LPAREN):
			tok := p.advance()

			call := &Call{pos: pos{tok.Line, tok.Col}, Func: expr}

			for !p.at(RPAREN) {
				if p.at(IDENT) && p.peekAhead(1).Type == ASSIGN {
					name := p.advance()
					p.advance() // consume '='

					val, err := p.parseExpr()
					if err != nil {
						return nil, err
					}

					call.KwNames = append(call.KwNames, name.Literal)
					call.KwValues = append(call.KwValues, val)
				} else {
					arg, err := p.parseExpr()
					if err != nil {
						return nil, err
					}

					call.Args = append(call.Args, arg)
				}

				if p.at(COMMA) {
					p.advance()

					continue
				}

				break
			}

			if _, err := p.expect(RPAREN); err != nil {
				return nil, err
			}

			expr = call
		case p.at(LBRACKET):
			tok := p.advance()

			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}

			expr = &Subscript{pos: pos{tok.Line, tok.Col}, Value: expr, Index: idx}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) peekAhead(n int) Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[idx]
}

func (p *Parser) parseAtom() (Expr, error) {
	tok := p.cur()

	switch tok.Type {
	case INT:
		p.advance()

		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid integer literal %q", tok.Literal)
		}

		return &Constant{pos: pos{tok.Line, tok.Col}, Kind: INT, Value: n}, nil
	case FLOAT:
		p.advance()

		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid float literal %q", tok.Literal)
		}

		return &Constant{pos: pos{tok.Line, tok.Col}, Kind: FLOAT, Value: f}, nil
	case STRING:
		p.advance()

		return &Constant{pos: pos{tok.Line, tok.Col}, Kind: STRING, Value: tok.Literal}, nil
	case TRUE:
		p.advance()

		return &Constant{pos: pos{tok.Line, tok.Col}, Kind: TRUE, Value: true}, nil
	case FALSE:
		p.advance()

		return &Constant{pos: pos{tok.Line, tok.Col}, Kind: FALSE, Value: false}, nil
	case NONE:
		p.advance()

		return &Constant{pos: pos{tok.Line, tok.Col}, Kind: NONE, Value: nil}, nil
	case IDENT:
		p.advance()

		return &Name{pos: pos{tok.Line, tok.Col}, Ident: tok.Literal}, nil
	case LPAREN:
		p.advance()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}

		return expr, nil
	case LBRACKET:
		p.advance()

		var elts []Expr

		for !p.at(RBRACKET) {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			elts = append(elts, e)

			if p.at(COMMA) {
				p.advance()

				continue
			}

			break
		}

		if _, err := p.expect(RBRACKET); err != nil {
			return nil, err
		}

		return &ListLit{pos: pos{tok.Line, tok.Col}, Elts: elts}, nil
	case LBRACE:
		p.advance()

		lit := &DictLit{pos: pos{tok.Line, tok.Col}}

		for !p.at(RBRACE) {
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(COLON); err != nil {
				return nil, err
			}

			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			lit.Keys = append(lit.Keys, key)
			lit.Values = append(lit.Values, val)

			if p.at(COMMA) {
				p.advance()

				continue
			}

			break
		}

		if _, err := p.expect(RBRACE); err != nil {
			return nil, err
		}

		return lit, nil
	case LAMBDA:
		p.advance()

		var params []string

		for !p.at(COLON) {
			n, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}

			params = append(params, n.Literal)

			if p.at(COMMA) {
				p.advance()

				continue
			}

			break
		}

		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}

		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Lambda{pos: pos{tok.Line, tok.Col}, Params: params, Body: body}, nil
	default:
		return nil, p.errorf(tok, "unexpected token %v in expression", tok.Type)
	}
}
