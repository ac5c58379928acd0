package scan

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/token"
)

const (
	kwTrue  = "TRUE"
	kwFalse = "FALSE"
	kwNull  = "NULL"
)

type ScannerState struct {
	pos      int
	next     int
	char     rune
	position token.Position
}

type Scanner struct {
	input []byte
	pos   int
	next  int
	char  rune

	token.Position

	buf bytes.Buffer
}

func Scan(r io.Reader) (*Scanner, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(input), nil
}

func New(input []byte) *Scanner {
	scan := Scanner{
		input: input,
	}
	scan.Position.Line = 1
	scan.read()
	scan.skipBlanks()
	if scan.char == equal {
		scan.read()
	}
	return &scan
}

// Tokens scans the whole string and returns every token up to, and
// including, the final EOF token.
func Tokens(str string) []token.Token {
	var (
		scan = New([]byte(str))
		list []token.Token
	)
	for {
		tok := scan.Scan()
		list = append(list, tok)
		if tok.Type == op.EOF {
			break
		}
	}
	return list
}

func (s *Scanner) Save() ScannerState {
	return ScannerState{
		pos:      s.pos,
		next:     s.next,
		char:     s.char,
		position: s.Position,
	}
}

func (s *Scanner) Restore(state ScannerState) {
	s.Position = state.position
	s.pos = state.pos
	s.next = state.next
	s.char = state.char
}

func (s *Scanner) Peek() token.Token {
	currState := s.Save()
	defer s.Restore(currState)
	return s.Scan()
}

func (s *Scanner) Scan() token.Token {
	s.skipBlanks()

	var tok token.Token
	tok.Position = s.Position
	if s.done() {
		tok.Type = op.EOF
		return tok
	}
	defer s.reset()
	switch {
	case isOperator(s.char):
		s.scanOperator(&tok)
	case isDelimiter(s.char):
		s.scanDelimiter(&tok)
	case isQuote(s.char):
		s.scanLiteral(&tok)
	case isBackquote(s.char):
		s.scanQuoted(&tok)
	case isDigit(s.char):
		s.scanNumber(&tok)
	case isLetter(s.char) || s.char == dollar:
		s.scanIdent(&tok)
	default:
		tok.Type = op.Invalid
		tok.Literal = string(s.input[s.pos:s.next])
		s.read()
	}
	return tok
}

func (s *Scanner) scanIdent(tok *token.Token) {
	for !s.done() && isAlpha(s.char) {
		s.write()
		s.read()
	}
	tok.Type = op.Ident
	tok.Literal = s.literal()
	switch strings.ToUpper(tok.Literal) {
	case kwTrue, kwFalse:
		tok.Type = op.Bool
	case kwNull:
		tok.Type = op.Null
	default:
	}
}

func (s *Scanner) scanNumber(tok *token.Token) {
	tok.Type = op.Number
	s.scanDigits()
	if s.char == dot {
		s.write()
		s.read()
		s.scanDigits()
	}
	if s.char == 'e' || s.char == 'E' {
		s.write()
		s.read()
		if s.char == plus || s.char == minus {
			s.write()
			s.read()
		}
		if !isDigit(s.char) {
			tok.Type = op.Invalid
		}
		s.scanDigits()
	}
	tok.Literal = s.literal()
}

func (s *Scanner) scanDigits() {
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
}

func (s *Scanner) scanLiteral(tok *token.Token) {
	tok.Type = op.Literal
	if !s.scanDelimited(s.char) {
		tok.Type = op.Invalid
	}
	tok.Literal = s.literal()
}

func (s *Scanner) scanQuoted(tok *token.Token) {
	tok.Type = op.Quoted
	if !s.scanDelimited(backquote) {
		tok.Type = op.Invalid
	}
	tok.Literal = s.literal()
}

// scanDelimited reads characters up to the closing quote. A doubled quote
// stands for the quote itself.
func (s *Scanner) scanDelimited(quote rune) bool {
	s.read()
	for !s.done() {
		if s.char == quote {
			if s.peek() != quote {
				s.read()
				return true
			}
			s.read()
		}
		s.write()
		s.read()
	}
	return false
}

func (s *Scanner) scanOperator(tok *token.Token) {
	tok.Type = op.Invalid
	switch s.char {
	case amper:
		tok.Type = op.Concat
	case plus:
		tok.Type = op.Add
	case minus:
		tok.Type = op.Sub
	case star:
		tok.Type = op.Mul
	case slash:
		tok.Type = op.Div
	case caret:
		tok.Type = op.Pow
	case langle:
		tok.Type = op.Lt
		if k := s.peek(); k == equal {
			s.read()
			tok.Type = op.Le
		} else if k == rangle {
			s.read()
			tok.Type = op.Ne
		}
	case rangle:
		tok.Type = op.Gt
		if s.peek() == equal {
			s.read()
			tok.Type = op.Ge
		}
	case equal:
		tok.Type = op.Eq
	case colon:
		tok.Type = op.RangeRef
		if s.peek() == equal {
			s.read()
			tok.Type = op.Assign
		}
	case bang:
		tok.Type = op.SheetRef
	default:
	}
	tok.Literal = op.Symbol(tok.Type)
	s.read()
}

func (s *Scanner) scanDelimiter(tok *token.Token) {
	tok.Type = op.Invalid
	switch s.char {
	case comma:
		tok.Type = op.Comma
	case lparen:
		tok.Type = op.BegGrp
	case rparen:
		tok.Type = op.EndGrp
	default:
	}
	tok.Literal = op.Symbol(tok.Type)
	s.read()
}

func (s *Scanner) literal() string {
	return s.buf.String()
}

func (s *Scanner) write() {
	s.buf.Write(s.input[s.pos:s.next])
}

func (s *Scanner) reset() {
	s.buf.Reset()
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.char = 0
		s.pos = len(s.input)
		return
	}
	// an invalid byte decodes as utf8.RuneError with a width of one
	r, n := utf8.DecodeRune(s.input[s.next:])
	s.char, s.pos, s.next = r, s.next, s.next+n

	if s.char == nl {
		s.Line += 1
		s.Column = 0
		return
	}
	s.Column++
}

func (s *Scanner) peek() rune {
	if s.next >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *Scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) skipBlanks() {
	for isBlank(s.char) {
		s.read()
	}
}

const (
	underscore = '_'
	bang       = '!'
	comma      = ','
	rparen     = ')'
	lparen     = '('
	squote     = '\''
	dquote     = '"'
	backquote  = '`'
	space      = ' '
	tab        = '\t'
	plus       = '+'
	minus      = '-'
	star       = '*'
	slash      = '/'
	caret      = '^'
	equal      = '='
	langle     = '<'
	rangle     = '>'
	colon      = ':'
	dot        = '.'
	amper      = '&'
	dollar     = '$'
	nl         = '\n'
	cr         = '\r'
)

func isQuote(c rune) bool {
	return c == squote || c == dquote
}

func isBackquote(c rune) bool {
	return c == backquote
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c) || c == underscore
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return isLetter(c) || isDigit(c) || c == dollar || c == dot
}

func isBlank(c rune) bool {
	return c == space || c == tab || c == nl || c == cr
}

func isDelimiter(c rune) bool {
	return c == lparen || c == rparen || c == comma
}

func isOperator(c rune) bool {
	return c == plus || c == minus || c == slash || c == star ||
		c == langle || c == rangle || c == colon || c == bang ||
		c == equal || c == caret || c == amper
}
