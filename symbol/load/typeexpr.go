package load

import (
	"fmt"
	"strings"

	"github.com/dhamidi/symdoc/symbol"
)

// SyntaxError reports a malformed type expression.
type SyntaxError struct {
	Expr   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("type %q at %d: %s", e.Expr, e.Offset, e.Msg)
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// scope maps type parameter names to their declarations. Inner scopes shadow
// outer ones.
type scope struct {
	params map[string]*symbol.TypeParameter
	parent *scope
}

func (s *scope) with(params []*symbol.TypeParameter) *scope {
	if len(params) == 0 {
		return s
	}
	inner := &scope{params: make(map[string]*symbol.TypeParameter, len(params)), parent: s}
	for _, p := range params {
		inner.params[p.Name] = p
	}
	return inner
}

func (s *scope) lookup(name string) (*symbol.TypeParameter, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if p, ok := cur.params[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// parseType parses a type expression:
//
//	type     = [ "suspend" ] ( function | simple ) .
//	function = [ simple "." ] "(" [ type { "," type } ] ")" "->" type .
//	simple   = Name [ "<" arg { "," arg } ">" ] [ "?" | "!" ] .
//	arg      = "*" | [ "in" | "out" ] type .
//
// A Name containing "/" is a class; other names are type parameters in scope,
// primitives, "dynamic", or classes in the root package. "error: text" is an
// unresolved type.
func parseType(expr string, sc *scope) (symbol.Type, error) {
	if text, ok := strings.CutPrefix(strings.TrimSpace(expr), "error:"); ok {
		return &symbol.ErrorType{Text: strings.TrimSpace(text)}, nil
	}
	p := &typeParser{expr: expr, toks: newLexer(typeGrammar, expr).tokenize(), scope: sc}
	t, err := p.typ()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != "EOF" {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
	return t, nil
}

type typeParser struct {
	expr  string
	toks  []token
	pos   int
	scope *scope
}

func (p *typeParser) peek() token { return p.toks[p.pos] }

func (p *typeParser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *typeParser) advance() token {
	t := p.toks[p.pos]
	if t.kind != "EOF" {
		p.pos++
	}
	return t
}

func (p *typeParser) expect(text string) error {
	if tok := p.advance(); tok.text != text {
		return p.errorf(tok, "expected %q, found %q", text, tok.text)
	}
	return nil
}

func (p *typeParser) errorf(tok token, format string, args ...any) error {
	return &SyntaxError{Expr: p.expr, Offset: tok.offset, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeParser) typ() (symbol.Type, error) {
	suspend := false
	if tok := p.peek(); tok.is("Name", "suspend") && p.peekAt(1).kind != "EOF" && !p.peekAt(1).is("Punct", "?") {
		p.advance()
		suspend = true
	}

	if p.peek().is("Punct", "(") {
		return p.function(nil, suspend)
	}

	t, err := p.simple()
	if err != nil {
		return nil, err
	}
	if p.peek().is("Punct", ".") && p.peekAt(1).is("Punct", "(") {
		p.advance()
		return p.function(t, suspend)
	}
	if suspend {
		return nil, p.errorf(p.peek(), "suspend needs a function type")
	}
	return t, nil
}

func (p *typeParser) function(receiver symbol.Type, suspend bool) (symbol.Type, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var params []symbol.Type
	for !p.peek().is("Punct", ")") {
		if len(params) > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		params = append(params, t)
	}
	p.advance()
	if tok := p.advance(); tok.kind != "Arrow" {
		return nil, p.errorf(tok, "expected \"->\", found %q", tok.text)
	}
	ret, err := p.typ()
	if err != nil {
		return nil, err
	}
	return &symbol.FunctionType{Receiver: receiver, Parameters: params, Return: ret, IsSuspend: suspend}, nil
}

func (p *typeParser) simple() (symbol.Type, error) {
	tok := p.advance()
	if tok.kind != "Name" {
		return nil, p.errorf(tok, "expected a type name, found %q", tok.text)
	}

	var args []symbol.Projection
	if p.peek().is("Punct", "<") {
		p.advance()
		for !p.peek().is("Punct", ">") {
			if len(args) > 0 {
				if err := p.expect(","); err != nil {
					return nil, err
				}
			}
			a, err := p.argument()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		p.advance()
	}

	nullable, flexible := false, false
	switch {
	case p.peek().is("Punct", "?"):
		p.advance()
		nullable = true
	case p.peek().is("Punct", "!"):
		p.advance()
		flexible = true
	}

	t, err := p.named(tok, args, nullable)
	if err != nil {
		return nil, err
	}
	if flexible {
		upper, _ := p.named(tok, args, true)
		return &symbol.FlexibleType{Lower: t, Upper: upper}, nil
	}
	return t, nil
}

func (p *typeParser) named(tok token, args []symbol.Projection, nullable bool) (symbol.Type, error) {
	name := tok.text
	if !strings.Contains(name, "/") {
		if tp, ok := p.scope.lookup(name); ok {
			if len(args) > 0 {
				return nil, p.errorf(tok, "type parameter %s takes no arguments", name)
			}
			return &symbol.TypeParameterType{Param: tp, Nullable: nullable}, nil
		}
		if name == "dynamic" {
			return &symbol.DynamicType{}, nil
		}
		if primitives[name] {
			return &symbol.PrimitiveType{Name: name}, nil
		}
	}
	return &symbol.ClassType{ID: symbol.ParseClassID(name), Arguments: args, Nullable: nullable}, nil
}

func (p *typeParser) argument() (symbol.Projection, error) {
	if p.peek().is("Punct", "*") {
		p.advance()
		return symbol.Projection{}, nil
	}
	variance := symbol.VarianceInvariant
	if tok := p.peek(); tok.kind == "Name" && (tok.text == "in" || tok.text == "out") && p.peekAt(1).kind == "Name" {
		p.advance()
		variance = symbol.Variance(tok.text)
	}
	t, err := p.typ()
	if err != nil {
		return symbol.Projection{}, err
	}
	return symbol.Projection{Variance: variance, Type: t}, nil
}
