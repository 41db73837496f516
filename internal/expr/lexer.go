// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer turns expression text into a token stream.
type lexer struct {
	src string
	pos int
}

// threeCharPuncts and twoCharPuncts are matched longest-first.
var threeCharPuncts = []string{"===", "!=="}

var twoCharPuncts = []string{"==", "!=", "<=", ">=", "&&", "||"}

const singleCharPuncts = "+-*/%<>!?:.,()[]"

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c >= '0' && c <= '9', c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		return l.lexNumber(start)
	case c == '\'' || c == '"':
		return l.lexString(start, c)
	case isIdentStart(rune(c)):
		return l.lexIdent(start)
	}

	for _, p := range threeCharPuncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.pos += 3
			return token{kind: tokPunct, text: p, pos: start}, nil
		}
	}
	for _, p := range twoCharPuncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.pos += 2
			return token{kind: tokPunct, text: p, pos: start}, nil
		}
	}
	if strings.IndexByte(singleCharPuncts, c) >= 0 {
		l.pos++
		return token{kind: tokPunct, text: string(c), pos: start}, nil
	}

	return token{}, fmt.Errorf("unexpected character %q at position %d", c, start)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.pos++
			continue
		}
		return
	}
}

func (l *lexer) lexNumber(start int) (token, error) {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			// Not an exponent after all (e.g. "2e" followed by an identifier).
			l.pos = mark
		}
	}

	text := l.src[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, fmt.Errorf("invalid number %q at position %d", text, start)
	}
	return token{kind: tokNumber, text: text, num: n, pos: start}, nil
}

func (l *lexer) lexString(start int, quote byte) (token, error) {
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case quote:
			l.pos++
			return token{kind: tokString, text: b.String(), pos: start}, nil
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return token{}, fmt.Errorf("unterminated string at position %d", start)
			}
			esc := l.src[l.pos]
			l.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"', '/':
				b.WriteByte(esc)
			case 'u':
				if l.pos+4 > len(l.src) {
					return token{}, fmt.Errorf("invalid unicode escape at position %d", l.pos-2)
				}
				code, err := strconv.ParseUint(l.src[l.pos:l.pos+4], 16, 32)
				if err != nil {
					return token{}, fmt.Errorf("invalid unicode escape at position %d", l.pos-2)
				}
				l.pos += 4
				b.WriteRune(rune(code))
			default:
				b.WriteByte(esc)
			}
		default:
			l.pos++
			b.WriteByte(c)
		}
	}
	return token{}, fmt.Errorf("unterminated string at position %d", start)
}

func (l *lexer) lexIdent(start int) (token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
