package symbol

import "strings"

type Variance string

const (
	VarianceInvariant     Variance = ""
	VarianceCovariant     Variance = "out"
	VarianceContravariant Variance = "in"
)

// Type is a compiler type. The concrete types below form a closed set.
type Type interface {
	typ()
	String() string
}

type ClassType struct {
	ID          ClassID
	Arguments   []Projection
	Nullable    bool
	Abbreviated *ClassID // set when the type was written through a type alias
}

type TypeParameterType struct {
	Param    *TypeParameter
	Nullable bool
}

type FunctionType struct {
	Receiver   Type
	Parameters []Type
	Return     Type
	IsSuspend  bool
	Nullable   bool
}

// FlexibleType is a platform type coming from Java, written T! in diagnostics.
type FlexibleType struct {
	Lower Type
	Upper Type
}

type PrimitiveType struct {
	Name string
}

type DynamicType struct{}

// ErrorType is a type the compiler could not resolve.
type ErrorType struct {
	Text string
}

func (*ClassType) typ()         {}
func (*TypeParameterType) typ() {}
func (*FunctionType) typ()      {}
func (*FlexibleType) typ()      {}
func (*PrimitiveType) typ()     {}
func (*DynamicType) typ()       {}
func (*ErrorType) typ()         {}

func (t *ClassType) String() string {
	var sb strings.Builder
	sb.WriteString(t.ID.FQName())
	if len(t.Arguments) > 0 {
		sb.WriteString("<")
		for i, a := range t.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString(">")
	}
	if t.Nullable {
		sb.WriteString("?")
	}
	return sb.String()
}

func (t *TypeParameterType) String() string {
	if t.Nullable {
		return t.Param.Name + "?"
	}
	return t.Param.Name
}

func (t *FunctionType) String() string {
	var sb strings.Builder
	if t.IsSuspend {
		sb.WriteString("suspend ")
	}
	if t.Receiver != nil {
		sb.WriteString(t.Receiver.String())
		sb.WriteString(".")
	}
	sb.WriteString("(")
	for i, p := range t.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(t.Return.String())
	if t.Nullable {
		return "(" + sb.String() + ")?"
	}
	return sb.String()
}

func (t *FlexibleType) String() string { return t.Lower.String() + "!" }
func (t *PrimitiveType) String() string { return t.Name }
func (*DynamicType) String() string     { return "dynamic" }
func (t *ErrorType) String() string     { return "<error: " + t.Text + ">" }

// Projection is a type argument. A nil Type is the star projection.
type Projection struct {
	Variance Variance
	Type     Type
}

func (p Projection) IsStar() bool { return p.Type == nil }

func (p Projection) String() string {
	if p.Type == nil {
		return "*"
	}
	if p.Variance != VarianceInvariant {
		return string(p.Variance) + " " + p.Type.String()
	}
	return p.Type.String()
}

// IsNullable reports whether values of t may be null.
func IsNullable(t Type) bool {
	switch t := t.(type) {
	case *ClassType:
		return t.Nullable
	case *TypeParameterType:
		return t.Nullable
	case *FunctionType:
		return t.Nullable
	case *FlexibleType:
		return IsNullable(t.Upper)
	case *DynamicType:
		return true
	}
	return false
}
