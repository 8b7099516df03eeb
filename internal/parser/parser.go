// Package parser builds an AST from a token stream via recursive-descent
// with explicit operator-precedence levels.
package parser

import (
	"fmt"

	"github.com/cwbudde/minilang/internal/ast"
	"github.com/cwbudde/minilang/internal/lexer"
	"github.com/cwbudde/minilang/internal/token"
)

// Error reports a single syntactic failure. The parser stops at the
// first one; there is no error recovery.
type Error struct {
	Message string
	Found   token.Type
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos.String())
}

// Position reports where the error occurred, for diagnostic rendering.
func (e *Error) Position() token.Position { return e.Pos }

// Parser consumes a pre-tokenized stream and builds a Program.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse tokenizes source and parses it into a Program, stopping at the
// first lexical or syntactic error.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := New(toks)
	return p.ParseProgram()
}

// New builds a Parser over an already-tokenized stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) mark() int { return p.pos }

func (p *Parser) rewind(mark int) { p.pos = mark }

func (p *Parser) errorf(found token.Token, format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Found: found.Type, Pos: found.Start}
}

func (p *Parser) expect(tt token.Type, what string) (token.Token, error) {
	if p.cur().Type != tt {
		return token.Token{}, p.errorf(p.cur(), "expected %s, found %s", what, p.cur().Type)
	}
	return p.advance(), nil
}

// consumeEOL consumes a single EndOfLine terminator, if present. The
// final statement in a block or program may be followed directly by
// '}'/EOF instead.
func (p *Parser) consumeEOL() {
	if p.cur().Type == token.EndOfLine {
		p.advance()
	}
}

// ParseProgram parses the entire token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur().Type != token.EndOfFile {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case token.EndOfLine:
		tok := p.advance()
		return &ast.EmptyStatement{Token: tok}, nil
	case token.LBrace:
		return p.parseBlockStatement()
	case token.If:
		return p.parseIfStatement()
	case token.While:
		return p.parseWhileStatement()
	case token.For:
		return p.parseForStatement()
	case token.Return:
		return p.parseReturnStatement()
	case token.Break:
		tok := p.advance()
		p.consumeEOL()
		return &ast.BreakStatement{Token: tok}, nil
	case token.Continue:
		tok := p.advance()
		p.consumeEOL()
		return &ast.ContinueStatement{Token: tok}, nil
	case token.Symbol:
		if p.peek(1).Type == token.Assign {
			return p.parseDeclaration()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	tok, err := p.expect(token.LBrace, "'{'")
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{Token: tok}
	for p.cur().Type != token.RBrace {
		if p.cur().Type == token.EndOfFile {
			return nil, p.errorf(p.cur(), "unterminated block, expected '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.advance() // consume '}'
	p.consumeEOL()
	return block, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	tok := p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cons, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Token: tok, Condition: cond, Consequence: cons}

	switch p.cur().Type {
	case token.Elif:
		alt, err := p.parseIfStatement()
		if err != nil {
			return nil, err
		}
		stmt.Alternative = alt
	case token.Else:
		p.advance()
		alt, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		stmt.Alternative = alt
	}
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	tok := p.advance() // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseForStatement() (ast.Statement, error) {
	tok := p.advance() // 'for'
	if _, err := p.expect(token.LParen, "'('"); err != nil {
		return nil, err
	}
	init, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EndOfLine, "';'"); err != nil {
		return nil, err
	}
	step, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Token: tok, Init: init, Condition: cond, Step: step, Body: body}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	tok := p.advance() // 'return'
	stmt := &ast.ReturnStatement{Token: tok}
	if p.cur().Type != token.EndOfLine && p.cur().Type != token.EndOfFile && p.cur().Type != token.RBrace {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.ReturnValue = expr
	}
	p.consumeEOL()
	return stmt, nil
}

// parseDeclaration handles `SYMBOL "=" (func-decl | statement)`,
// speculatively trying the function-declaration shape first and
// rewinding to an ordinary expression statement if it doesn't match.
func (p *Parser) parseDeclaration() (ast.Statement, error) {
	nameTok := p.advance() // SYMBOL
	eqTok := p.advance()   // '='
	name := nameTok.Literal

	if p.cur().Type == token.LParen {
		afterEq := p.mark()
		params, ok := p.tryParseParamList()
		if ok && p.cur().Type == token.LBrace {
			body, err := p.parseBlockStatement()
			if err != nil {
				return nil, err
			}
			decl := &ast.FunctionDeclaration{Token: eqTok, Name: name, Parameters: params, Body: body}
			return &ast.ExpressionStatement{Token: eqTok, Expression: decl}, nil
		}
		p.rewind(afterEq)
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.consumeEOL()
	assign := &ast.AssignmentExpression{
		Token: eqTok,
		Name:  &ast.Identifier{Token: nameTok, Value: name},
		Value: value,
	}
	return &ast.ExpressionStatement{Token: eqTok, Expression: assign}, nil
}

// tryParseParamList attempts `"(" (SYMBOL ("," SYMBOL)*)? ")"`. It never
// returns a parse error: on any mismatch it reports ok=false and leaves
// the cursor wherever it stopped (the caller rewinds).
func (p *Parser) tryParseParamList() ([]*ast.Identifier, bool) {
	p.advance() // '('
	var params []*ast.Identifier
	if p.cur().Type == token.RParen {
		p.advance()
		return params, true
	}
	for {
		if p.cur().Type != token.Symbol {
			return nil, false
		}
		tok := p.advance()
		params = append(params, &ast.Identifier{Token: tok, Value: tok.Literal})
		if p.cur().Type == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Type != token.RParen {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	tok := p.cur()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.consumeEOL()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}, nil
}

// parseExpression is the `expr := assignment` entry point.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

var compoundOps = map[token.Type]string{
	token.PlusEq:    "+",
	token.MinusEq:   "-",
	token.StarEq:    "*",
	token.SlashEq:   "/",
	token.PercentEq: "%",
	token.CaretEq:   "^",
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if op, ok := compoundOps[p.cur().Type]; ok {
		tok := p.advance()
		ident, ok := left.(*ast.Identifier)
		if !ok {
			return nil, p.errorf(tok, "left-hand side of compound assignment must be an identifier")
		}
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{
			Token: tok,
			Name:  ident,
			Value: &ast.BinaryExpression{Token: tok, Left: ident, Operator: op, Right: rhs},
		}, nil
	}
	return left, nil
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.OrOr {
		tok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: "||", Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEqual()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.AndAnd {
		tok := p.advance()
		right, err := p.parseEqual()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: "&&", Right: right}
	}
	return left, nil
}

func (p *Parser) parseEqual() (ast.Expression, error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.Eq || p.cur().Type == token.NotEq {
		tok := p.advance()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parseCompare() (ast.Expression, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for isCompareOp(p.cur().Type) {
		tok := p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func isCompareOp(t token.Type) bool {
	return t == token.Lt || t == token.LtEq || t == token.Gt || t == token.GtEq
}

func (p *Parser) parseAdd() (ast.Expression, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.Plus || p.cur().Type == token.Minus {
		tok := p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Expression, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for isMulOp(p.cur().Type) {
		tok := p.advance()
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func isMulOp(t token.Type) bool {
	return t == token.Star || t == token.Slash || t == token.Percent
}

// parsePow implements `unary ("^" unary)?`: a single, non-chained
// application, right-associative by construction since it never loops.
func (p *Parser) parsePow() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.Caret {
		tok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Token: tok, Left: left, Operator: "^", Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.cur().Type == token.Minus || p.cur().Type == token.Bang {
		tok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Right: right}, nil
	}
	return p.parseCall()
}

func (p *Parser) parseCall() (ast.Expression, error) {
	if p.cur().Type == token.Symbol && p.peek(1).Type == token.LParen {
		tok := p.advance() // SYMBOL
		name := tok.Literal
		p.advance() // '('
		var args []ast.Expression
		if p.cur().Type != token.RParen {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur().Type == token.Comma {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.CallExpression{Token: tok, Name: name, Arguments: args}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case token.Integer:
		p.advance()
		var v int32
		if _, err := fmt.Sscanf(tok.Literal, "%d", &v); err != nil {
			return nil, p.errorf(tok, "invalid integer literal %q", tok.Literal)
		}
		return &ast.IntegerLiteral{Token: tok, Value: v}, nil
	case token.Float:
		p.advance()
		var v float32
		if _, err := fmt.Sscanf(tok.Literal, "%g", &v); err != nil {
			return nil, p.errorf(tok, "invalid float literal %q", tok.Literal)
		}
		return &ast.FloatLiteral{Token: tok, Value: v}, nil
	case token.Boolean:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Literal == "true"}, nil
	case token.String:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
	case token.Null:
		p.advance()
		return &ast.NullLiteral{Token: tok}, nil
	case token.Symbol:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
	case token.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.GroupedExpression{Token: tok, Expression: expr}, nil
	case token.LBrace:
		block, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		return &ast.BlockExpression{Token: tok, Block: block}, nil
	case token.LBracket:
		p.advance()
		var elems []ast.Expression
		if p.cur().Type != token.RBracket {
			for {
				el, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				elems = append(elems, el)
				if p.cur().Type == token.Comma {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expect(token.RBracket, "']'"); err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Token: tok, Elements: elems}, nil
	}
	return nil, p.errorf(tok, "unexpected token %s", tok.Type)
}
