package load

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/symdoc/symbol"
)

// valueNode decodes a literal, enum entry, class literal, nested annotation,
// array or opaque expression:
//
//	42, 1.5, true, "text", null
//	{long: 5}, {float: 1.5}, {char: "c"}
//	{enum: kotlin/DeprecationLevel.ERROR}
//	{class: p/Foo}
//	{annotation: {class: p/Ann, args: {...}}}
//	{expr: "listOf(1, 2)"}
//	[1, 2, 3]
type valueNode struct {
	value symbol.Value
}

func (v *valueNode) UnmarshalYAML(n *yaml.Node) error {
	val, err := decodeValue(n)
	if err != nil {
		return err
	}
	v.value = val
	return nil
}

func decodeValue(n *yaml.Node) (symbol.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.SequenceNode:
		arr := &symbol.ArrayValue{}
		for _, c := range n.Content {
			e, err := decodeValue(c)
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, e)
		}
		return arr, nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, fmt.Errorf("line %d: value mapping needs exactly one key", n.Line)
		}
		return tagged(n.Content[0].Value, n.Content[1])
	case yaml.AliasNode:
		return decodeValue(n.Alias)
	}
	return nil, fmt.Errorf("line %d: unsupported value", n.Line)
}

func scalar(n *yaml.Node) (symbol.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return &symbol.Constant{Kind: symbol.ConstantNull}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return &symbol.Constant{Kind: symbol.ConstantBool, Value: b}, nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return &symbol.Constant{Kind: symbol.ConstantInt, Value: i}, nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return &symbol.Constant{Kind: symbol.ConstantDouble, Value: f}, nil
	}
	return &symbol.Constant{Kind: symbol.ConstantString, Value: n.Value}, nil
}

func tagged(key string, n *yaml.Node) (symbol.Value, error) {
	switch key {
	case "long":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return &symbol.Constant{Kind: symbol.ConstantLong, Value: i}, nil
	case "float":
		f, err := strconv.ParseFloat(n.Value, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return &symbol.Constant{Kind: symbol.ConstantFloat, Value: f}, nil
	case "char":
		return &symbol.Constant{Kind: symbol.ConstantChar, Value: n.Value}, nil
	case "enum":
		entry := symbol.ParseClassID(n.Value)
		enum, ok := entry.Outer()
		if !ok {
			return nil, fmt.Errorf("line %d: enum value %q names no entry", n.Line, n.Value)
		}
		return &symbol.EnumValue{Enum: enum, Entry: entry.ShortName()}, nil
	case "class":
		return &symbol.ClassLiteral{Class: symbol.ParseClassID(n.Value)}, nil
	case "annotation":
		var a annotationNode
		if err := n.Decode(&a); err != nil {
			return nil, err
		}
		ann := a.annotation()
		return &ann, nil
	case "expr":
		return &symbol.Complex{Text: n.Value}, nil
	}
	return nil, fmt.Errorf("line %d: unknown value kind %q", n.Line, key)
}

type annotationNode struct {
	Class   string   `yaml:"class"`
	UseSite string   `yaml:"useSite"`
	Args    argsNode `yaml:"args"`
}

func (a annotationNode) annotation() symbol.Annotation {
	return symbol.Annotation{
		Class:     symbol.ParseClassID(a.Class),
		Arguments: a.Args,
		UseSite:   a.UseSite,
	}
}

func annotations(nodes []annotationNode) []symbol.Annotation {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]symbol.Annotation, len(nodes))
	for i, n := range nodes {
		out[i] = n.annotation()
	}
	return out
}

// argsNode keeps the order in which annotation arguments are written.
type argsNode []symbol.NamedArgument

func (a *argsNode) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: annotation arguments must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := decodeValue(n.Content[i+1])
		if err != nil {
			return fmt.Errorf("argument %s: %w", n.Content[i].Value, err)
		}
		*a = append(*a, symbol.NamedArgument{Name: n.Content[i].Value, Value: v})
	}
	return nil
}
