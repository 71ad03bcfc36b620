package symbol

// Value is a compile-time expression: a parameter default, a property
// initializer or an annotation argument.
type Value interface {
	value()
}

type ConstantKind string

const (
	ConstantInt    ConstantKind = "int"
	ConstantLong   ConstantKind = "long"
	ConstantFloat  ConstantKind = "float"
	ConstantDouble ConstantKind = "double"
	ConstantBool   ConstantKind = "boolean"
	ConstantString ConstantKind = "string"
	ConstantChar   ConstantKind = "char"
	ConstantNull   ConstantKind = "null"
)

// Constant is a literal. Value holds int64, float64, bool, string or nil
// according to Kind.
type Constant struct {
	Kind  ConstantKind
	Value any
}

// Complex is any expression that is not a literal, kept as source text.
type Complex struct {
	Text string
}

type EnumValue struct {
	Enum  ClassID
	Entry string
}

type ClassLiteral struct {
	Class ClassID
}

type ArrayValue struct {
	Elements []Value
}

func (*Constant) value()     {}
func (*Complex) value()      {}
func (*EnumValue) value()    {}
func (*ClassLiteral) value() {}
func (*ArrayValue) value()   {}
func (*Annotation) value()   {}

type Annotation struct {
	Class     ClassID
	Arguments []NamedArgument
	// UseSite is the use-site target (field, get, set, param, file) or empty.
	UseSite string
}

type NamedArgument struct {
	Name  string
	Value Value
}
