/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abe

import (
	"fmt"
	"strings"
)

// The JSON policy grammar is not quite JSON: the accepted dialect allows
// the "name" and "children" keys to appear unquoted, e.g.
// {name: "and", children: [{name: "A"}, {name: "B"}]}. encoding/json can't
// parse that, so a small hand-rolled lexer/parser handles both the quoted
// and unquoted dialects uniformly.

type jsonTokKind int

const (
	jsonLBrace jsonTokKind = iota
	jsonRBrace
	jsonLBracket
	jsonRBracket
	jsonColon
	jsonComma
	jsonString
	jsonEOF
)

type jsonTok struct {
	kind jsonTokKind
	val  string
	pos  int
}

type jsonLexer struct {
	src string
	pos int
}

func (l *jsonLexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isBarewordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (l *jsonLexer) next() (jsonTok, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return jsonTok{kind: jsonEOF, pos: l.pos}, nil
	}
	start := l.pos
	switch c := l.src[l.pos]; c {
	case '{':
		l.pos++
		return jsonTok{kind: jsonLBrace, pos: start}, nil
	case '}':
		l.pos++
		return jsonTok{kind: jsonRBrace, pos: start}, nil
	case '[':
		l.pos++
		return jsonTok{kind: jsonLBracket, pos: start}, nil
	case ']':
		l.pos++
		return jsonTok{kind: jsonRBracket, pos: start}, nil
	case ':':
		l.pos++
		return jsonTok{kind: jsonColon, pos: start}, nil
	case ',':
		l.pos++
		return jsonTok{kind: jsonComma, pos: start}, nil
	case '"':
		l.pos++
		var sb strings.Builder
		for l.pos < len(l.src) && l.src[l.pos] != '"' {
			if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
				l.pos++
			}
			sb.WriteByte(l.src[l.pos])
			l.pos++
		}
		if l.pos >= len(l.src) {
			return jsonTok{}, newErrAt(PolicyParse, "unterminated string literal", start)
		}
		l.pos++ // closing quote
		return jsonTok{kind: jsonString, val: sb.String(), pos: start}, nil
	default:
		if !isBarewordByte(c) {
			return jsonTok{}, newErrAt(PolicyParse, fmt.Sprintf("unexpected character %q", c), start)
		}
		for l.pos < len(l.src) && isBarewordByte(l.src[l.pos]) {
			l.pos++
		}
		return jsonTok{kind: jsonString, val: l.src[start:l.pos], pos: start}, nil
	}
}

type jsonParser struct {
	lex  *jsonLexer
	peek *jsonTok
}

func (p *jsonParser) advance() (jsonTok, error) {
	if p.peek != nil {
		t := *p.peek
		p.peek = nil
		return t, nil
	}
	return p.lex.next()
}

func (p *jsonParser) lookahead() (jsonTok, error) {
	if p.peek == nil {
		t, err := p.lex.next()
		if err != nil {
			return jsonTok{}, err
		}
		p.peek = &t
	}
	return *p.peek, nil
}

func (p *jsonParser) expect(kind jsonTokKind, what string) (jsonTok, error) {
	t, err := p.advance()
	if err != nil {
		return jsonTok{}, err
	}
	if t.kind != kind {
		return jsonTok{}, newErrAt(PolicyParse, "expected "+what, t.pos)
	}
	return t, nil
}

// parseJSON parses the JSON-shaped policy grammar.
func parseJSON(src string) (*PolicyValue, error) {
	p := &jsonParser{lex: &jsonLexer{src: src}}
	val, err := p.parseObject()
	if err != nil {
		return nil, err
	}
	t, err := p.advance()
	if err != nil {
		return nil, err
	}
	if t.kind != jsonEOF {
		return nil, newErrAt(PolicyParse, "trailing input after policy object", t.pos)
	}
	return val, nil
}

func (p *jsonParser) parseObject() (*PolicyValue, error) {
	if _, err := p.expect(jsonLBrace, "'{'"); err != nil {
		return nil, err
	}

	var name string
	var haveName bool
	var children []*PolicyValue
	var haveChildren bool

	for {
		t, err := p.lookahead()
		if err != nil {
			return nil, err
		}
		if t.kind == jsonRBrace {
			p.advance()
			break
		}
		key, err := p.expect(jsonString, "a key (\"name\" or \"children\")")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(jsonColon, "':'"); err != nil {
			return nil, err
		}
		switch key.val {
		case "name":
			v, err := p.expect(jsonString, "a string value for \"name\"")
			if err != nil {
				return nil, err
			}
			name = v.val
			haveName = true
		case "children":
			arr, err := p.parseArray()
			if err != nil {
				return nil, err
			}
			children = arr
			haveChildren = true
		default:
			return nil, newErrAt(PolicyParse, fmt.Sprintf("unexpected key %q", key.val), key.pos)
		}

		t, err = p.lookahead()
		if err != nil {
			return nil, err
		}
		if t.kind == jsonComma {
			p.advance()
			continue
		}
		if _, err := p.expect(jsonRBrace, "'}' or ','"); err != nil {
			return nil, err
		}
		break
	}

	if !haveName {
		return nil, newErr(PolicyParse, "policy object missing \"name\"")
	}
	if !haveChildren {
		return NewLeaf(name)
	}
	switch name {
	case "and":
		return NewGate(And, children)
	case "or":
		return NewGate(Or, children)
	default:
		return nil, newErr(PolicyShape, fmt.Sprintf("unknown gate name %q", name))
	}
}

func (p *jsonParser) parseArray() ([]*PolicyValue, error) {
	if _, err := p.expect(jsonLBracket, "'['"); err != nil {
		return nil, err
	}
	var out []*PolicyValue
	for {
		t, err := p.lookahead()
		if err != nil {
			return nil, err
		}
		if t.kind == jsonRBracket {
			p.advance()
			break
		}
		val, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		out = append(out, val)

		t, err = p.lookahead()
		if err != nil {
			return nil, err
		}
		if t.kind == jsonComma {
			p.advance()
			continue
		}
		if _, err := p.expect(jsonRBracket, "']' or ','"); err != nil {
			return nil, err
		}
		break
	}
	return out, nil
}

// serializeJSON renders p into the JSON policy grammar. The output always
// uses quoted keys/strings, so it is also valid strict JSON, even though
// the parser additionally accepts unquoted keys on input.
func serializeJSON(p *PolicyValue) string {
	if p.IsLeaf() {
		return fmt.Sprintf("{\"name\": \"%s\"}", p.Name())
	}
	parts := make([]string, len(p.Children()))
	for i, c := range p.Children() {
		parts[i] = serializeJSON(c)
	}
	return fmt.Sprintf("{\"name\": \"%s\", \"children\": [%s]}", p.Kind(), strings.Join(parts, ", "))
}
