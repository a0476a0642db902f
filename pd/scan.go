// SPDX-License-Identifier: MIT

package pd

import (
	"fmt"
	"unicode"

	"github.com/spf13/cast"
)

type tokenKind int

const (
	tokAtom tokenKind = iota
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokComma:
		return "','"
	case tokColon:
		return "':'"
	case tokEOF:
		return "end of input"
	}

	return "number"
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits s into punctuation and whitespace-delimited atoms.
func lex(s string) []token {
	toks := make([]token, 0, 8)
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '{':
			toks = append(toks, token{kind: tokLBrace, text: "{", pos: i})
			i++
		case r == '}':
			toks = append(toks, token{kind: tokRBrace, text: "}", pos: i})
			i++
		case r == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		case r == ':':
			toks = append(toks, token{kind: tokColon, text: ":", pos: i})
			i++
		default:
			start := i
			for i < len(rs) && !unicode.IsSpace(rs[i]) && !isPunct(rs[i]) {
				i++
			}
			toks = append(toks, token{kind: tokAtom, text: string(rs[start:i]), pos: start})
		}
	}

	return append(toks, token{kind: tokEOF, pos: len(rs)})
}

func isPunct(r rune) bool {
	return r == '{' || r == '}' || r == ',' || r == ':'
}

type planParser struct {
	toks []token
	at   int
}

func (pp *planParser) peek() token { return pp.toks[pp.at] }

func (pp *planParser) next() token {
	t := pp.toks[pp.at]
	if t.kind != tokEOF {
		pp.at++
	}

	return t
}

func (pp *planParser) expect(kind tokenKind) (token, error) {
	t := pp.next()
	if t.kind != kind {
		return t, fmt.Errorf("%w: at %d: want %s, got %s", ErrBadPlan, t.pos, kind, t.kind)
	}

	return t, nil
}

// ParsePlan parses "{<b> <d>: <mass>, ...}". "{}" is accepted as the empty
// plan. Exactly one pair of braces is allowed and nothing may follow the
// closing brace. A point listed twice has its masses summed.
func ParsePlan(s string) (Plan, error) {
	pp := &planParser{toks: lex(s)}
	if _, err := pp.expect(tokLBrace); err != nil {
		return nil, err
	}

	plan := NewPlan(len(pp.toks) / 4)
	if pp.peek().kind == tokRBrace {
		pp.next()
	} else {
		for {
			p, m, err := pp.entry()
			if err != nil {
				return nil, err
			}
			plan.Add(p, m)

			t := pp.next()
			if t.kind == tokRBrace {
				break
			}
			if t.kind != tokComma {
				return nil, fmt.Errorf("%w: at %d: want ',' or '}', got %s", ErrBadPlan, t.pos, t.kind)
			}
		}
	}

	if t := pp.next(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: at %d: trailing %s after '}'", ErrBadPlan, t.pos, t.kind)
	}

	return plan, nil
}

func (pp *planParser) entry() (Point, int, error) {
	b, err := pp.expect(tokAtom)
	if err != nil {
		return Point{}, 0, err
	}
	d, err := pp.expect(tokAtom)
	if err != nil {
		return Point{}, 0, err
	}
	p, err := PointFromFields(b.text, d.text)
	if err != nil {
		return Point{}, 0, fmt.Errorf("%w: at %d: %v", ErrBadPlan, b.pos, err)
	}
	if _, err = pp.expect(tokColon); err != nil {
		return Point{}, 0, err
	}
	mt, err := pp.expect(tokAtom)
	if err != nil {
		return Point{}, 0, err
	}
	m, err := ParseInteger(mt.text)
	if err != nil {
		return Point{}, 0, fmt.Errorf("%w: at %d: %v", ErrBadPlan, mt.pos, err)
	}

	return p, m, nil
}

// ParseInteger parses a signed decimal integer such as a mass or an index.
// Leading zeros are decimal, not an octal prefix.
func ParseInteger(s string) (int, error) {
	sign, digits := "", s
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		sign, digits = digits[:1], digits[1:]
	}
	if !isDecimal(digits) {
		return 0, fmt.Errorf("%q is not a decimal integer", s)
	}
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}

	return cast.ToIntE(sign + digits)
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
