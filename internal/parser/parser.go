// Package parser is a small recursive-descent parser from the lexer's
// token stream to internal/surface's named-binder AST. The grammar covers
// exactly the schematic surface syntax of spec.md §8's seed cases: data/
// def/extern declarations and a minimal dependent-function-type term
// language (identifiers, application, fun/forall, -> sugar, Type, literals).
package parser

import (
	"fmt"

	"github.com/hb-lang/hbc/internal/lexer"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/surface"
)

// Parser consumes a token slice produced by lexer.Tokenize.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New creates a Parser over toks.
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseFile parses a complete file's top-level declarations, given file
// and src for lexing (src is tokenized internally).
func ParseFile(file, src string) (*surface.File, error) {
	toks, err := lexer.New(file, src).Tokenize()
	if err != nil {
		return nil, err
	}
	return New(toks).parseFile()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peekKind() lexer.Kind { return p.cur().Kind }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.peekKind() != k {
		return lexer.Token{}, p.errf("expected %s, got %s %q", k, p.peekKind(), p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) errf(format string, args ...any) error {
	return fmt.Errorf("%s: %s", p.cur().Span.Start, fmt.Sprintf(format, args...))
}

// ParseExprString parses a single standalone expression, as used by the
// REPL to evaluate one line at a time rather than a whole file of
// declarations.
func ParseExprString(file, src string) (surface.Expr, error) {
	toks, err := lexer.New(file, src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := New(toks)
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EOF); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseFile() (*surface.File, error) {
	var decls []surface.Decl
	for p.peekKind() != lexer.EOF {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return &surface.File{Decls: decls}, nil
}

func (p *Parser) parseDecl() (surface.Decl, error) {
	switch p.peekKind() {
	case lexer.KwData:
		return p.parseDataDecl()
	case lexer.KwDef:
		return p.parseFnDecl()
	case lexer.KwExtern:
		return p.parseExternDecl()
	default:
		return nil, p.errf("expected a declaration (data/def/extern), got %s %q", p.peekKind(), p.cur().Text)
	}
}

func (p *Parser) parseDataDecl() (surface.Decl, error) {
	start := p.advance().Span // `data`
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	ty, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var ctors []surface.CtorDecl
	for p.peekKind() == lexer.Pipe {
		p.advance()
		ctorName, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		ctorTy, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ctors = append(ctors, surface.CtorDecl{Name: ctorName.Text, Type: ctorTy})
	}
	end, err := p.expect(lexer.KwEnd)
	if err != nil {
		return nil, err
	}
	return &surface.DataDecl{
		Node:  surface.Node{Sp: srcmap.Span{Start: start.Start, End: end.Span.End}},
		Name:  nameTok.Text,
		Type:  ty,
		Ctors: ctors,
	}, nil
}

func (p *Parser) parseFnDecl() (surface.Decl, error) {
	start := p.advance().Span // `def`
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	ty, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ColonEq); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &surface.FnDecl{
		Node: surface.Node{Sp: srcmap.Span{Start: start.Start, End: body.Span().End}},
		Name: nameTok.Text,
		Type: ty,
		Body: body,
	}, nil
}

func (p *Parser) parseExternDecl() (surface.Decl, error) {
	start := p.advance().Span // `extern`
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	ty, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &surface.ExternDecl{
		Node: surface.Node{Sp: srcmap.Span{Start: start.Start, End: ty.Span().End}},
		Name: nameTok.Text,
		Type: ty,
	}, nil
}
