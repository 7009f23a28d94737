// Package lexer tokenizes the surface `.hb` syntax: the schematic data/def/
// extern notation spec.md §8's seed cases are written in. This front-end is
// deliberately small — spec.md §1 treats lexing/parsing as an external
// collaborator out of the kernel's scope; this package exists only to make
// the repository runnable end to end.
package lexer

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/hb-lang/hbc/internal/srcmap"
)

// bomUTF8 is the UTF-8 Byte Order Mark a source file may be prefixed with.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Lexer scans normalized source into a token stream.
type Lexer struct {
	file   string
	src    string
	pos    int
	line   int
	column int
}

// New creates a Lexer over src, attributed to file for diagnostics. src is
// stripped of a leading BOM and put into Unicode NFC form before scanning,
// so two differently-composed encodings of the same identifier (e.g. an
// accented letter as one codepoint vs. base+combining-mark) lex to the same
// token rather than silently aliasing as distinct hints.
func New(file, src string) *Lexer {
	normalized := bytes.TrimPrefix([]byte(src), bomUTF8)
	if !norm.NFC.IsNormal(normalized) {
		normalized = norm.NFC.Bytes(normalized)
	}
	return &Lexer{
		file:   file,
		src:    string(normalized),
		line:   1,
		column: 1,
	}
}

// Tokenize scans the entire input and returns its tokens, ending in an EOF
// token, or an error on an unrecognized character.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) pos0() srcmap.Pos {
	return srcmap.Pos{File: l.file, Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, size
}

func (l *Lexer) advance() rune {
	r, size := l.peekRune()
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) skipTrivia() {
	for {
		r, _ := l.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		case r == '#':
			for {
				r, size := l.peekRune()
				if size == 0 || r == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (l *Lexer) next() (Token, error) {
	l.skipTrivia()
	start := l.pos0()
	r, size := l.peekRune()
	if size == 0 {
		return Token{Kind: EOF, Span: srcmap.Span{Start: start, End: start}}, nil
	}

	switch {
	case isIdentStart(r):
		return l.scanIdent(start)
	case unicode.IsDigit(r):
		return l.scanInt(start)
	case r == ':':
		l.advance()
		if r2, _ := l.peekRune(); r2 == '=' {
			l.advance()
			return l.tok(ColonEq, ":=", start), nil
		}
		return l.tok(Colon, ":", start), nil
	case r == '|':
		l.advance()
		return l.tok(Pipe, "|", start), nil
	case r == ',':
		l.advance()
		return l.tok(Comma, ",", start), nil
	case r == '(':
		l.advance()
		return l.tok(LParen, "(", start), nil
	case r == ')':
		l.advance()
		return l.tok(RParen, ")", start), nil
	case r == '-':
		l.advance()
		if r2, _ := l.peekRune(); r2 == '>' {
			l.advance()
			return l.tok(Arrow, "->", start), nil
		}
		return Token{}, l.errf(start, "unexpected character %q", r)
	case r == '=':
		l.advance()
		if r2, _ := l.peekRune(); r2 == '>' {
			l.advance()
			return l.tok(FatArrow, "=>", start), nil
		}
		return Token{}, l.errf(start, "unexpected character %q", r)
	default:
		l.advance()
		return Token{}, l.errf(start, "unexpected character %q", r)
	}
}

// scanIdent scans an identifier, allowing embedded "." so that qualified
// names like "Nat.succ" lex as a single token.
func (l *Lexer) scanIdent(start srcmap.Pos) (Token, error) {
	begin := l.pos
	l.advance()
	for {
		r, _ := l.peekRune()
		if isIdentCont(r) {
			l.advance()
			continue
		}
		if r == '.' {
			r2, size2 := utf8.DecodeRuneInString(l.src[l.pos+1:])
			if size2 > 0 && isIdentStart(r2) {
				l.advance()
				continue
			}
		}
		break
	}
	text := l.src[begin:l.pos]
	if kw, ok := keywords[text]; ok {
		return l.tok(kw, text, start), nil
	}
	return l.tok(IDENT, text, start), nil
}

func (l *Lexer) scanInt(start srcmap.Pos) (Token, error) {
	begin := l.pos
	for {
		r, _ := l.peekRune()
		if !unicode.IsDigit(r) {
			break
		}
		l.advance()
	}
	text := l.src[begin:l.pos]
	var value int64
	if _, err := fmt.Sscanf(text, "%d", &value); err != nil {
		return Token{}, l.errf(start, "invalid integer literal %q", text)
	}
	tok := l.tok(INT, text, start)
	tok.Int = value
	return tok, nil
}

func (l *Lexer) tok(kind Kind, text string, start srcmap.Pos) Token {
	return Token{Kind: kind, Text: text, Span: srcmap.Span{Start: start, End: l.pos0()}}
}

func (l *Lexer) errf(p srcmap.Pos, format string, args ...any) error {
	return fmt.Errorf("%s: %s", p, fmt.Sprintf(format, args...))
}
