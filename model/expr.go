package model

import (
	"strconv"
	"strings"

	"github.com/dhamidi/symdoc/dri"
)

// Expr is a default value or annotation argument literal.
type Expr interface {
	expr()
	String() string
}

type IntegerConstant struct{ Value int64 }
type FloatConstant struct{ Value float32 }
type DoubleConstant struct{ Value float64 }
type BooleanConstant struct{ Value bool }
type StringConstant struct{ Value string }

// ComplexExpression is any non-literal expression, kept as text.
type ComplexExpression struct{ Text string }

func (IntegerConstant) expr()   {}
func (FloatConstant) expr()     {}
func (DoubleConstant) expr()    {}
func (BooleanConstant) expr()   {}
func (StringConstant) expr()    {}
func (ComplexExpression) expr() {}

func (e IntegerConstant) String() string { return strconv.FormatInt(e.Value, 10) }
func (e FloatConstant) String() string {
	return strconv.FormatFloat(float64(e.Value), 'g', -1, 32) + "f"
}
func (e DoubleConstant) String() string   { return strconv.FormatFloat(e.Value, 'g', -1, 64) }
func (e BooleanConstant) String() string  { return strconv.FormatBool(e.Value) }
func (e StringConstant) String() string   { return strconv.Quote(e.Value) }
func (e ComplexExpression) String() string { return e.Text }

type Annotation struct {
	DRI     dri.DRI
	Params  []AnnotationParam
	UseSite string
}

// String renders the annotation as written in source, e.g.
// @Deprecated(message = "use Bar").
func (a Annotation) String() string {
	var sb strings.Builder
	sb.WriteString("@")
	if a.UseSite != "" {
		sb.WriteString(a.UseSite + ":")
	}
	sb.WriteString(a.DRI.ClassNames)
	if len(a.Params) > 0 {
		sb.WriteString("(")
		for i, p := range a.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name + " = " + p.Value.String())
		}
		sb.WriteString(")")
	}
	return sb.String()
}

type AnnotationParam struct {
	Name  string
	Value AnnotationValue
}

// AnnotationValue is one of LiteralValue, EnumValue, ClassValue,
// NestedAnnotation or ArrayValue.
type AnnotationValue interface {
	annotationValue()
	String() string
}

type LiteralValue struct{ Expr Expr }
type EnumValue struct {
	Name string
	DRI  dri.DRI
}
type ClassValue struct {
	Name string
	DRI  dri.DRI
}
type NestedAnnotation struct{ Annotation Annotation }
type ArrayValue struct{ Values []AnnotationValue }

func (LiteralValue) annotationValue()     {}
func (EnumValue) annotationValue()        {}
func (ClassValue) annotationValue()       {}
func (NestedAnnotation) annotationValue() {}
func (ArrayValue) annotationValue()       {}

func (v LiteralValue) String() string     { return v.Expr.String() }
func (v EnumValue) String() string        { return v.Name }
func (v ClassValue) String() string       { return v.Name + "::class" }
func (v NestedAnnotation) String() string { return v.Annotation.String() }
func (v ArrayValue) String() string {
	parts := make([]string, len(v.Values))
	for i, x := range v.Values {
		parts[i] = x.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
