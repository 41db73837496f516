// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

import "fmt"

// parser is a recursive-descent parser for the expression grammar.
// Precedence, lowest to highest:
//
//	?:  ||  &&  == != === !==  < <= > >=  + -  * / %  unary  call/member/index
type parser struct {
	lex *lexer
	tok token
}

func parse(src string) (node, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s at position %d", p.tok, p.tok.pos)
	}
	return n, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) accept(text string) (bool, error) {
	if p.tok.kind == tokPunct && p.tok.text == text {
		return true, p.advance()
	}
	return false, nil
}

func (p *parser) expect(text string) error {
	if p.tok.kind != tokPunct || p.tok.text != text {
		return fmt.Errorf("expected %q but found %s at position %d", text, p.tok, p.tok.pos)
	}
	return p.advance()
}

func (p *parser) parseConditional() (node, error) {
	cond, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	ok, err := p.accept("?")
	if err != nil {
		return nil, err
	}
	if !ok {
		return cond, nil
	}
	then, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	alt, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return conditionalExpr{cond: cond, then: then, alt: alt}, nil
}

// binaryLevels orders operators by precedence, lowest first.
var binaryLevels = [][]string{
	{"||"},
	{"&&"},
	{"===", "!==", "==", "!="},
	{"<=", ">=", "<", ">"},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *parser) parseBinary(level int) (node, error) {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op := ""
		if p.tok.kind == tokPunct {
			for _, cand := range binaryLevels[level] {
				if p.tok.text == cand {
					op = cand
					break
				}
			}
		}
		if op == "" {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, l: left, r: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if p.tok.kind == tokPunct {
		switch p.tok.text {
		case "!", "-", "+":
			op := p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			x, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return unaryExpr{op: op, x: x}, nil
		}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.tok.kind == tokPunct && p.tok.text == ".":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind != tokIdent {
				return nil, fmt.Errorf("expected property name but found %s at position %d", p.tok, p.tok.pos)
			}
			x = memberExpr{x: x, name: p.tok.text}
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.kind == tokPunct && p.tok.text == "[":
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			x = indexExpr{x: x, index: idx}
		case p.tok.kind == tokPunct && p.tok.text == "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			var args []node
			if !(p.tok.kind == tokPunct && p.tok.text == ")") {
				for {
					arg, err := p.parseConditional()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					ok, err := p.accept(",")
					if err != nil {
						return nil, err
					}
					if !ok {
						break
					}
				}
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			x = callExpr{callee: x, args: args}
		default:
			return x, nil
		}
	}
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.kind {
	case tokNumber:
		n := numberLit{value: p.tok.num}
		return n, p.advance()
	case tokString:
		n := stringLit{value: p.tok.text}
		return n, p.advance()
	case tokIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch name {
		case "true":
			return boolLit{value: true}, nil
		case "false":
			return boolLit{value: false}, nil
		case "null":
			return nullLit{}, nil
		case "undefined":
			return undefinedLit{}, nil
		}
		return ident{name: name}, nil
	case tokPunct:
		switch p.tok.text {
		case "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			x, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		case "[":
			if err := p.advance(); err != nil {
				return nil, err
			}
			var elems []node
			if !(p.tok.kind == tokPunct && p.tok.text == "]") {
				for {
					e, err := p.parseConditional()
					if err != nil {
						return nil, err
					}
					elems = append(elems, e)
					ok, err := p.accept(",")
					if err != nil {
						return nil, err
					}
					if !ok {
						break
					}
				}
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			return arrayLit{elems: elems}, nil
		}
	}
	return nil, fmt.Errorf("unexpected %s at position %d", p.tok, p.tok.pos)
}
