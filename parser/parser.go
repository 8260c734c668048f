// Package parser implements a recursive-descent parser that turns a
// tiny-C token stream into an ast.Program.
package parser

import (
	"fmt"

	"tinyarmc/ast"
	"tinyarmc/token"
)

// Parser holds the token stream and the parser's current position within
// it. The parser's position always points at the next unconsumed token.
type Parser struct {
	tokens   []token.Token
	position int
}

// Make creates a new Parser over the given token stream.
func Make(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, position: 0}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.position]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.position-1]
}

func (p *Parser) isFinished() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) checkType(tt token.Type) bool {
	if p.isFinished() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) isMatch(types ...token.Type) bool {
	for _, tt := range types {
		if p.checkType(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt token.Type, message string) (token.Token, error) {
	if p.checkType(tt) {
		return p.advance(), nil
	}
	tok := p.peek()
	return token.Token{}, CreateSyntaxError(tok.Line, tok.Column, fmt.Sprintf("%s, got '%s'", message, tok.Lexeme))
}

// Parse parses the entire token stream into an ast.Program.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.isFinished() {
		fn, err := p.function()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}
	return program, nil
}

func (p *Parser) typeToken() (ast.Type, error) {
	switch {
	case p.isMatch(token.INT):
		return ast.Int, nil
	case p.isMatch(token.VOID):
		return ast.Void, nil
	default:
		tok := p.peek()
		return 0, CreateSyntaxError(tok.Line, tok.Column, "expected a type ('int' or 'void')")
	}
}

func (p *Parser) function() (ast.Function, error) {
	returnType, err := p.typeToken()
	if err != nil {
		return ast.Function{}, err
	}

	nameTok, err := p.consume(token.IDENTIFIER, "expected a function name")
	if err != nil {
		return ast.Function{}, err
	}

	if _, err := p.consume(token.LPAREN, "expected '(' after function name"); err != nil {
		return ast.Function{}, err
	}

	var params []ast.Parameter
	if !p.checkType(token.RPAREN) {
		for {
			paramType, err := p.typeToken()
			if err != nil {
				return ast.Function{}, err
			}
			paramName, err := p.consume(token.IDENTIFIER, "expected a parameter name")
			if err != nil {
				return ast.Function{}, err
			}
			params = append(params, ast.Parameter{Type: paramType, Name: paramName.Lexeme})
			if !p.isMatch(token.COMMA) {
				break
			}
		}
	}

	if _, err := p.consume(token.RPAREN, "expected ')' after parameter list"); err != nil {
		return ast.Function{}, err
	}

	body, err := p.block()
	if err != nil {
		return ast.Function{}, err
	}

	return ast.Function{
		ReturnType: returnType,
		Name:       nameTok.Lexeme,
		Parameters: params,
		Body:       body,
	}, nil
}

func (p *Parser) block() ([]ast.Statement, error) {
	if _, err := p.consume(token.LBRACE, "expected '{' to start a block"); err != nil {
		return nil, err
	}

	var statements []ast.Statement
	for !p.checkType(token.RBRACE) && !p.isFinished() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := p.consume(token.RBRACE, "expected '}' to close a block"); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.checkType(token.INT) || p.checkType(token.VOID):
		return p.declareStatement()
	case p.isMatch(token.RETURN):
		return p.returnStatement()
	case p.isMatch(token.IF):
		return p.ifStatement()
	case p.checkType(token.LBRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.Compound{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) declareStatement() (ast.Statement, error) {
	declType, err := p.typeToken()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.consume(token.IDENTIFIER, "expected a variable name")
	if err != nil {
		return nil, err
	}

	var init ast.Expression
	if p.isMatch(token.ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, "expected ';' after declaration"); err != nil {
		return nil, err
	}

	return ast.Declare{Type: declType, Name: nameTok.Lexeme, Init: init}, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return ast.Return{Value: value}, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Statement
	if p.isMatch(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return ast.If{Cond: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Value: value}, nil
}

// expression parses the full expression grammar, ordered from lowest to
// highest precedence: assignment, conditional, logical-or, logical-and,
// equality, relational, additive, term, unary, primary.
func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	// An assignment's left side must be an identifier; parse the
	// conditional level first and reinterpret it as a target if an '='
	// follows, mirroring how the teacher's parser resolves assignment
	// targets after the fact rather than with dedicated lookahead.
	expr, err := p.conditional()
	if err != nil {
		return nil, err
	}

	if p.isMatch(token.ASSIGN) {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		name, ok := expr.(ast.Var)
		if !ok {
			tok := p.previous()
			return nil, CreateSyntaxError(tok.Line, tok.Column, "invalid assignment target")
		}
		return ast.Assignment{Name: name.Name, Value: value}, nil
	}
	return expr, nil
}

func (p *Parser) conditional() (ast.Expression, error) {
	cond, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if p.isMatch(token.QUESTION) {
		thenExpr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.COLON, "expected ':' in conditional expression"); err != nil {
			return nil, err
		}
		elseExpr, err := p.conditional()
		if err != nil {
			return nil, err
		}
		return ast.Conditional{Cond: cond, Then: thenExpr, Else: elseExpr}, nil
	}
	return cond, nil
}

func (p *Parser) logicalOr() (ast.Expression, error) {
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.OR_OR) {
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: ast.LogicalOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) logicalAnd() (ast.Expression, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.AND_AND) {
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: ast.LogicalAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	left, err := p.relational()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.isMatch(token.EQUAL_EQUAL):
			op = ast.Equal
		case p.isMatch(token.NOT_EQUAL):
			op = ast.NotEqual
		default:
			return left, nil
		}
		right, err := p.relational()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) relational() (ast.Expression, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.isMatch(token.LESS):
			op = ast.Less
		case p.isMatch(token.LESS_EQUAL):
			op = ast.LessEqual
		case p.isMatch(token.GREATER):
			op = ast.Greater
		case p.isMatch(token.GREATER_EQUAL):
			op = ast.GreaterEqual
		default:
			return left, nil
		}
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) additive() (ast.Expression, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.isMatch(token.PLUS):
			op = ast.Add
		case p.isMatch(token.MINUS):
			op = ast.Subtract
		default:
			return left, nil
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) term() (ast.Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.isMatch(token.STAR):
			op = ast.Multiply
		case p.isMatch(token.SLASH):
			op = ast.Divide
		default:
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) unary() (ast.Expression, error) {
	var op ast.UnaryOp
	switch {
	case p.isMatch(token.BANG):
		op = ast.LogicalNot
	case p.isMatch(token.TILDE):
		op = ast.BitwiseNot
	case p.isMatch(token.MINUS):
		op = ast.ArithmeticNegate
	default:
		return p.primary()
	}
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.Unary{Op: op, Operand: operand}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.isMatch(token.INT_LIT):
		tok := p.previous()
		var value int32
		if _, err := fmt.Sscanf(tok.Lexeme, "%d", &value); err != nil {
			return nil, CreateSyntaxError(tok.Line, tok.Column, fmt.Sprintf("invalid integer literal '%s'", tok.Lexeme))
		}
		return ast.Const{Value: value}, nil
	case p.isMatch(token.IDENTIFIER):
		return ast.Var{Name: p.previous().Lexeme}, nil
	case p.isMatch(token.LPAREN):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.Group{Inner: inner}, nil
	default:
		tok := p.peek()
		return nil, CreateSyntaxError(tok.Line, tok.Column, fmt.Sprintf("unexpected token '%s'", tok.Lexeme))
	}
}
