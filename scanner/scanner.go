// Package scanner converts pioasm source text into a stream of
// token.Token values, stripping comments and whitespace along the way.
package scanner

import (
	"strconv"
	"strings"

	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/token"
)

// ReadLine supplies one more line of source (without its trailing newline)
// on each call; ok is false once there are no more lines. It is the only
// point at which a Scanner may block, bounded by input availability.
type ReadLine func() (line string, ok bool)

// Scanner is a single-use, non-restartable token producer: once Next
// returns an EOF token, the scanner is exhausted.
type Scanner struct {
	filename string
	buf      []byte
	pos      int
	line     int
	column   int
	ch       byte
	eof      bool

	emittedEOF bool
}

const puncSet = "~!%^&*+-=<>/:"

// New builds a Scanner over source text already fully materialized in
// memory, e.g. for tests and for DSL-adjacent uses that already hold a
// string.
func New(filename, source string) *Scanner {
	lines := strings.Split(source, "\n")
	i := 0
	return NewFromReadLine(filename, func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		// A trailing empty element from a final '\n' represents no
		// additional source line; suppress it so a file ending in a
		// single newline doesn't scan a spurious blank final line.
		if i == len(lines)-1 && lines[i] == "" {
			i++
			return "", false
		}
		line := lines[i]
		i++
		return line, true
	})
}

// NewFromReadLine builds a Scanner that pulls every source line from
// readLine up front. Lines are materialized eagerly into an internal buffer so the
// character-level scan below can use simple lookahead; readLine itself is
// still the only blocking point, and is called at most once per source
// line, preserving the "bounded by input availability" contract.
func NewFromReadLine(filename string, readLine ReadLine) *Scanner {
	s := &Scanner{filename: filename, line: 1}
	for {
		line, ok := readLine()
		if !ok {
			break
		}
		s.buf = append(s.buf, []byte(line)...)
		s.buf = append(s.buf, '\n')
	}
	s.readChar()
	return s
}

func (s *Scanner) readChar() {
	if s.pos >= len(s.buf) {
		s.ch = 0
		s.eof = true
		s.pos++
		return
	}
	s.ch = s.buf[s.pos]
	s.pos++
	s.column++
}

func (s *Scanner) peekChar() byte {
	if s.pos >= len(s.buf) {
		return 0
	}
	return s.buf[s.pos]
}

func (s *Scanner) currentPos() token.Position {
	return token.Position{Filename: s.filename, Line: s.line, Column: s.column}
}

func (s *Scanner) newline() {
	s.line++
	s.column = 0
}

func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' {
		s.readChar()
	}
}

// skipLineComment consumes up to (not including) the terminating newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && !s.eof {
		s.readChar()
	}
}

// skipBlockComment consumes a /* ... */ comment, which may span lines but
// does not nest. Interior newlines are swallowed without producing a
// Newline token.
func (s *Scanner) skipBlockComment() *pioasmerr.Error {
	start := s.currentPos()
	for {
		if s.eof {
			return pioasmerr.New(pioasmerr.UnterminatedComment, start, "unterminated block comment")
		}
		if s.ch == '*' && s.peekChar() == '/' {
			s.readChar()
			s.readChar()
			return nil
		}
		if s.ch == '\n' {
			s.newline()
		}
		s.readChar()
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func isPunc(ch byte) bool {
	return strings.IndexByte(puncSet, ch) >= 0
}

// Next returns the next token in the stream. Once it returns an EOF token
// it will keep returning EOF tokens indefinitely; callers drive the
// pipeline by checking Kind == token.EOF.
func (s *Scanner) Next() (token.Token, *pioasmerr.Error) {
	for {
		s.skipWhitespace()
		pos := s.currentPos()

		if s.eof {
			if s.emittedEOF {
				return token.New(token.EOF, "", pos), nil
			}
			s.emittedEOF = true
			return token.New(token.EOF, "", pos), nil
		}

		switch {
		case s.ch == '\n':
			s.readChar()
			s.newline()
			return token.New(token.Newline, "\n", pos), nil

		case s.ch == ';':
			s.skipLineComment()
			continue

		case s.ch == '/' && s.peekChar() == '/':
			s.skipLineComment()
			continue

		case s.ch == '/' && s.peekChar() == '*':
			s.readChar()
			s.readChar()
			if err := s.skipBlockComment(); err != nil {
				return token.Token{}, err
			}
			continue

		case s.ch == '(' || s.ch == ')' || s.ch == '[' || s.ch == ']' || s.ch == '.' || s.ch == ',':
			text := string(s.ch)
			s.readChar()
			return token.New(token.Keyword, text, pos), nil

		case isPunc(s.ch):
			var sb strings.Builder
			for isPunc(s.ch) {
				sb.WriteByte(s.ch)
				s.readChar()
			}
			return token.New(token.Keyword, sb.String(), pos), nil

		case isIdentStart(s.ch):
			var sb strings.Builder
			for isIdentCont(s.ch) {
				sb.WriteByte(s.ch)
				s.readChar()
			}
			name := sb.String()
			if s.ch == ':' {
				s.readChar()
				return token.New(token.Label, name, pos), nil
			}
			lower := strings.ToLower(name)
			if token.IsReserved(lower) {
				return token.New(token.Keyword, lower, pos), nil
			}
			return token.New(token.Symbol, name, pos), nil

		case s.ch >= '0' && s.ch <= '9':
			return s.readNumber(pos)

		default:
			ch := s.ch
			s.readChar()
			return token.Token{}, pioasmerr.New(pioasmerr.BadInput, pos, "unexpected byte %q", ch)
		}
	}
}

func (s *Scanner) readNumber(pos token.Position) (token.Token, *pioasmerr.Error) {
	var sb strings.Builder
	for isIdentCont(s.ch) {
		sb.WriteByte(s.ch)
		s.readChar()
	}
	raw := sb.String()
	text := strings.ReplaceAll(raw, "_", "")

	var base int
	digits := text
	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		base = 16
		digits = text[2:]
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		base = 2
		digits = text[2:]
	default:
		base = 10
	}

	if digits == "" {
		return token.Token{}, pioasmerr.New(pioasmerr.BadNumber, pos, "malformed number %q", raw)
	}

	value, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return token.Token{}, pioasmerr.New(pioasmerr.BadNumber, pos, "malformed number %q", raw)
	}

	tok := token.New(token.Number, raw, pos)
	tok.Value = value
	return tok, nil
}

// All drains the scanner to EOF (inclusive) and returns the full token
// sequence. Useful for tests and for the Pratt parser's property tests;
// the parser itself pulls one token at a time via Next.
func All(s *Scanner) ([]token.Token, *pioasmerr.Error) {
	var toks []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}
