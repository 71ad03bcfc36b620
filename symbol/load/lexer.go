package load

import (
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// typeTokens is the lexical grammar of type expressions such as
// "kotlin.collections/Map<K, out V>?" or "suspend R.(kotlin/Int) -> kotlin/Unit".
// Productions starting with an upper case letter are tokens.
const typeTokens = `
Name   = ident { "." ident } [ "/" ident { "." ident } ] .
Arrow  = "->" .
Punct  = "<" | ">" | "(" | ")" | "," | "?" | "*" | "!" | "." .
Space  = white { white } .
ident  = letter { letter | digit } .
letter = "a" … "z" | "A" … "Z" | "_" | "$" .
digit  = "0" … "9" .
white  = " " | "\t" .
`

var typeGrammar = mustGrammar("type.ebnf", typeTokens)

func mustGrammar(name, src string) ebnf.Grammar {
	g, err := ebnf.Parse(name, strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("load: grammar %s: %v", name, err))
	}
	return g
}

type token struct {
	kind   string
	text   string
	offset int
}

func (t token) is(kind, text string) bool {
	return t.kind == kind && t.text == text
}

type memoKey struct {
	name   string
	offset int
}

// lexer splits input into the longest matching token at each position. A
// position nothing matches yields an "ERROR" token of one byte.
type lexer struct {
	grammar  ebnf.Grammar
	input    string
	pos      int
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func newLexer(g ebnf.Grammar, input string) *lexer {
	return &lexer{grammar: g, input: input}
}

// tokenize returns every token except white space, followed by "EOF".
func (l *lexer) tokenize() []token {
	var out []token
	for l.pos < len(l.input) {
		tok := l.next()
		if tok.kind != "Space" {
			out = append(out, tok)
		}
	}
	return append(out, token{kind: "EOF", offset: len(l.input)})
}

func (l *lexer) next() token {
	start := l.pos
	l.memo = make(map[memoKey]int)

	bestKind, bestLen := "", 0
	for name, prod := range l.grammar {
		if prod.Expr == nil || name == "" || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		l.visiting = make(map[memoKey]bool)
		n, ok := l.match(prod.Expr, start)
		// ties go to the lexically smaller name so the result is deterministic
		if ok && (n > bestLen || (n == bestLen && n > 0 && name < bestKind)) {
			bestKind, bestLen = name, n
		}
	}

	if bestLen == 0 {
		l.pos++
		return token{kind: "ERROR", text: l.input[start:l.pos], offset: start}
	}
	l.pos += bestLen
	return token{kind: bestKind, text: l.input[start:l.pos], offset: start}
}

// match reports how many bytes expr matches at offset. Options and
// repetitions may match zero bytes and still succeed.
func (l *lexer) match(expr ebnf.Expression, offset int) (int, bool) {
	switch e := expr.(type) {
	case *ebnf.Token:
		if strings.HasPrefix(l.input[offset:], e.String) {
			return len(e.String), true
		}
		return 0, false
	case *ebnf.Range:
		if offset >= len(l.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return 0, false
		}
		ch := l.input[offset]
		return 1, ch >= e.Begin.String[0] && ch <= e.End.String[0]
	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n, ok := l.match(item, offset+total)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true
	case ebnf.Alternative:
		best, found := 0, false
		for _, alt := range e {
			if n, ok := l.match(alt, offset); ok && (!found || n > best) {
				best, found = n, true
			}
		}
		return best, found
	case *ebnf.Repetition:
		total := 0
		for {
			n, ok := l.match(e.Body, offset+total)
			if !ok || n == 0 {
				return total, true
			}
			total += n
		}
	case *ebnf.Option:
		if n, ok := l.match(e.Body, offset); ok {
			return n, true
		}
		return 0, true
	case *ebnf.Group:
		return l.match(e.Body, offset)
	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return 0, false
}

func (l *lexer) matchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n, n >= 0
	}
	// left recursion
	if l.visiting[key] {
		return 0, false
	}
	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0, false
	}

	l.visiting[key] = true
	n, ok := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	if !ok {
		l.memo[key] = -1
		return 0, false
	}
	l.memo[key] = n
	return n, true
}
