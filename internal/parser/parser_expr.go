package parser

import (
	"github.com/hb-lang/hbc/internal/lexer"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/surface"
)

// parseExpr parses a full expression: arrow sugar at the top, binding
// right-associatively and looser than application.
func (p *Parser) parseExpr() (surface.Expr, error) {
	return p.parseArrow()
}

func (p *Parser) parseArrow() (surface.Expr, error) {
	start := p.cur().Span
	dom, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.peekKind() != lexer.Arrow {
		return dom, nil
	}
	p.advance()
	cod, err := p.parseArrow() // right-associative
	if err != nil {
		return nil, err
	}
	return &surface.Arrow{
		Node: surface.Node{Sp: srcmap.Span{Start: start.Start, End: cod.Span().End}},
		Dom:  dom,
		Cod:  cod,
	}, nil
}

// parseApp parses left-associative juxtaposition application over atoms.
func (p *Parser) parseApp() (surface.Expr, error) {
	start := p.cur().Span
	fun, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for startsAtom(p.peekKind()) {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fun = &surface.App{
			Node: surface.Node{Sp: srcmap.Span{Start: start.Start, End: arg.Span().End}},
			Fun:  fun,
			Arg:  arg,
		}
	}
	return fun, nil
}

func startsAtom(k lexer.Kind) bool {
	switch k {
	case lexer.IDENT, lexer.INT, lexer.KwType, lexer.KwUnit, lexer.LParen, lexer.KwFun, lexer.KwForall:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtom() (surface.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.IDENT:
		p.advance()
		return &surface.Ident{Node: surface.Node{Sp: tok.Span}, Name: tok.Text}, nil
	case lexer.INT:
		p.advance()
		return &surface.IntLit{Node: surface.Node{Sp: tok.Span}, Value: tok.Int}, nil
	case lexer.KwType:
		p.advance()
		return &surface.TypeExpr{Node: surface.Node{Sp: tok.Span}}, nil
	case lexer.KwUnit:
		p.advance()
		return &surface.UnitLit{Node: surface.Node{Sp: tok.Span}}, nil
	case lexer.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.KwFun:
		return p.parseLambda()
	case lexer.KwForall:
		return p.parseForall()
	default:
		return nil, p.errf("expected an expression, got %s %q", tok.Kind, tok.Text)
	}
}

func (p *Parser) parseBinder() (name string, ty surface.Expr, err error) {
	if _, err = p.expect(lexer.LParen); err != nil {
		return "", nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return "", nil, err
	}
	if _, err = p.expect(lexer.Colon); err != nil {
		return "", nil, err
	}
	ty, err = p.parseExpr()
	if err != nil {
		return "", nil, err
	}
	if _, err = p.expect(lexer.RParen); err != nil {
		return "", nil, err
	}
	return nameTok.Text, ty, nil
}

func (p *Parser) parseLambda() (surface.Expr, error) {
	start := p.advance().Span // `fun`
	param, ty, err := p.parseBinder()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.FatArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &surface.Lambda{
		Node:      surface.Node{Sp: srcmap.Span{Start: start.Start, End: body.Span().End}},
		Param:     param,
		ParamType: ty,
		Body:      body,
	}, nil
}

func (p *Parser) parseForall() (surface.Expr, error) {
	start := p.advance().Span // `forall`
	param, ty, err := p.parseBinder()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Comma); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &surface.Forall{
		Node:      surface.Node{Sp: srcmap.Span{Start: start.Start, End: body.Span().End}},
		Param:     param,
		ParamType: ty,
		Body:      body,
	}, nil
}
