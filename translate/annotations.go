package translate

import (
	"fmt"
	"strings"

	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
)

// AllAnnotations returns the annotations attached to sym, or nil when it has
// none so that no empty metadata entry is created.
func AllAnnotations(sym symbol.Symbol) []model.Annotation {
	return annotations(sym.DeclaredAnnotations())
}

func annotations(anns []symbol.Annotation) []model.Annotation {
	if len(anns) == 0 {
		return nil
	}
	out := make([]model.Annotation, len(anns))
	for i, a := range anns {
		out[i] = annotation(a)
	}
	return out
}

func annotation(a symbol.Annotation) model.Annotation {
	params := make([]model.AnnotationParam, len(a.Arguments))
	for i, arg := range a.Arguments {
		params[i] = model.AnnotationParam{Name: arg.Name, Value: annotationValue(arg.Value)}
	}
	return model.Annotation{DRI: classDRI(a.Class), Params: params, UseSite: a.UseSite}
}

func annotationValue(v symbol.Value) model.AnnotationValue {
	switch v := v.(type) {
	case nil:
		return model.LiteralValue{Expr: model.ComplexExpression{Text: "null"}}
	case *symbol.EnumValue:
		return model.EnumValue{Name: v.Enum.ShortName() + "." + v.Entry, DRI: classDRI(v.Enum).WithClass(v.Entry)}
	case *symbol.ClassLiteral:
		return model.ClassValue{Name: v.Class.Relative, DRI: classDRI(v.Class)}
	case *symbol.Annotation:
		return model.NestedAnnotation{Annotation: annotation(*v)}
	case *symbol.ArrayValue:
		values := make([]model.AnnotationValue, len(v.Elements))
		for i, e := range v.Elements {
			values[i] = annotationValue(e)
		}
		return model.ArrayValue{Values: values}
	}
	return model.LiteralValue{Expr: expression(v)}
}

// expression converts a default value or literal argument. Anything that is
// not a literal is kept as opaque text.
func expression(v symbol.Value) model.Expr {
	switch v := v.(type) {
	case nil:
		return nil
	case *symbol.Constant:
		return constant(v)
	case *symbol.Complex:
		return model.ComplexExpression{Text: v.Text}
	case *symbol.EnumValue:
		return model.ComplexExpression{Text: v.Enum.ShortName() + "." + v.Entry}
	case *symbol.ClassLiteral:
		return model.ComplexExpression{Text: v.Class.ShortName() + "::class"}
	case *symbol.ArrayValue:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = expression(e).String()
		}
		return model.ComplexExpression{Text: "[" + strings.Join(parts, ", ") + "]"}
	case *symbol.Annotation:
		return model.ComplexExpression{Text: "@" + v.Class.Relative}
	}
	return model.ComplexExpression{Text: fmt.Sprint(v)}
}

func constant(c *symbol.Constant) model.Expr {
	switch c.Kind {
	case symbol.ConstantInt, symbol.ConstantLong:
		if n, ok := toInt64(c.Value); ok {
			return model.IntegerConstant{Value: n}
		}
	case symbol.ConstantFloat:
		if f, ok := toFloat64(c.Value); ok {
			return model.FloatConstant{Value: float32(f)}
		}
	case symbol.ConstantDouble:
		if f, ok := toFloat64(c.Value); ok {
			return model.DoubleConstant{Value: f}
		}
	case symbol.ConstantBool:
		if b, ok := c.Value.(bool); ok {
			return model.BooleanConstant{Value: b}
		}
	case symbol.ConstantString, symbol.ConstantChar:
		if s, ok := c.Value.(string); ok {
			return model.StringConstant{Value: s}
		}
	case symbol.ConstantNull:
		return model.ComplexExpression{Text: "null"}
	}
	return model.ComplexExpression{Text: fmt.Sprint(c.Value)}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), n == float64(int64(n))
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
