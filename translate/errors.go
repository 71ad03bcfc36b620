package translate

import (
	"errors"
	"fmt"

	"github.com/dhamidi/symdoc/symbol"
)

// ErrUnsupported is returned for declarations the translator cannot
// represent, such as anonymous or local objects.
var ErrUnsupported = errors.New("unsupported declaration")

// TranslationError wraps a failure with the symbol it happened on. It is
// always fatal for the whole source set.
type TranslationError struct {
	Symbol   string
	Location string
	Err      error
}

func (e *TranslationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("translate %s (%s): %v", e.Symbol, e.Location, e.Err)
	}
	return fmt.Sprintf("translate %s: %v", e.Symbol, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// guard runs f for sym. An error or panic coming out of f is reported as a
// *TranslationError carrying the innermost symbol that failed.
func guard[T any](sym symbol.Symbol, f func() (T, error)) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			result = zero
			err = wrapError(sym, fmt.Errorf("panic: %v", p))
		}
	}()

	result, err = f()
	if err != nil {
		var zero T
		return zero, wrapError(sym, err)
	}
	return result, nil
}

func wrapError(sym symbol.Symbol, err error) error {
	var te *TranslationError
	if errors.As(err, &te) {
		return err
	}
	return &TranslationError{
		Symbol:   describe(sym),
		Location: sym.SourceFile(),
		Err:      err,
	}
}

func describe(sym symbol.Symbol) string {
	switch s := sym.(type) {
	case *symbol.Class:
		return string(s.Kind) + " " + s.ID.String()
	case *symbol.Function:
		return "function " + s.ID.String()
	case *symbol.Property:
		return "property " + s.ID.String()
	case *symbol.JavaField:
		return "field " + s.ID.String()
	case *symbol.SyntheticJavaProperty:
		return "property " + s.ID.String()
	case *symbol.TypeAlias:
		return "typealias " + s.ID.String()
	case *symbol.EnumEntry:
		return "enum entry " + s.Owner.String() + "." + s.Name
	}
	return fmt.Sprintf("%T %s", sym, sym.SymbolName())
}
