// Package doc provides the documentation extractor contract used by the
// translator and a fallback extractor for block comments.
package doc

import (
	"github.com/dhamidi/symdoc/symbol"
)

// Tree is a parsed documentation comment.
type Tree struct {
	Description string
	Tags        []Tag
}

// Tag is a block tag such as "@param name text" or "@return text".
type Tag struct {
	Name    string
	Subject string // parameter name, exception type or see target; may be empty
	Body    string
}

// Tag returns the first tag with the given name and subject.
func (t *Tree) Tag(name, subject string) (Tag, bool) {
	if t == nil {
		return Tag{}, false
	}
	for _, tag := range t.Tags {
		if tag.Name == name && tag.Subject == subject {
			return tag, true
		}
	}
	return Tag{}, false
}

// Extractor returns the documentation of a symbol, or nil when it has none.
type Extractor interface {
	Documentation(s *symbol.Session, sym symbol.Symbol) (*Tree, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(s *symbol.Session, sym symbol.Symbol) (*Tree, error)

func (f ExtractorFunc) Documentation(s *symbol.Session, sym symbol.Symbol) (*Tree, error) {
	return f(s, sym)
}

type chain []Extractor

// Chain asks each extractor in turn and returns the first non-nil tree.
func Chain(extractors ...Extractor) Extractor {
	var c chain
	for _, e := range extractors {
		if e != nil {
			c = append(c, e)
		}
	}
	return c
}

func (c chain) Documentation(s *symbol.Session, sym symbol.Symbol) (*Tree, error) {
	for _, e := range c {
		tree, err := e.Documentation(s, sym)
		if err != nil {
			return nil, err
		}
		if tree != nil {
			return tree, nil
		}
	}
	return nil, nil
}
