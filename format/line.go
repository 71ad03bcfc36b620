package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/symdoc/model"
)

// LineEncoder writes one tab separated line per declaration, suitable for
// grep and cut:
//
//	kind	dri	name	visibility	modality	detail
type LineEncoder struct {
	w      io.Writer
	module *model.Module
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(m *model.Module) error {
	e.module = m
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, p := range e.module.Packages {
		fmt.Fprintf(&sb, "package\t%s\t%s\n", p.DRI, p.Name)
		e.functions(&sb, "function", p.Functions)
		e.properties(&sb, p.Properties)
		for _, c := range p.Classlikes {
			e.classlike(&sb, c)
		}
		for _, a := range p.TypeAliases {
			fmt.Fprintf(&sb, "typealias\t%s\t%s\t%s\t%s\t%s\n",
				a.DRI, a.Name, a.Visibility, a.Modality, a.Underlying)
		}
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) classlike(sb *strings.Builder, c model.Classlike) {
	b := c.Base()
	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\t%s\t%s\n",
		c.Kind(), b.DRI, b.Name, b.Visibility, b.Modality, e.supertypesStr(b.Supertypes))

	e.functions(sb, "constructor", b.Constructors)
	e.functions(sb, "function", b.Functions)
	e.properties(sb, b.Properties)
	for _, nested := range b.Classlikes {
		e.classlike(sb, nested)
	}
	if enum, ok := c.(*model.Enum); ok {
		for _, entry := range enum.Entries {
			fmt.Fprintf(sb, "entry\t%s\t%s\n", entry.DRI, entry.Name)
			e.functions(sb, "function", entry.Functions)
			e.properties(sb, entry.Properties)
			for _, nested := range entry.Classlikes {
				e.classlike(sb, nested)
			}
		}
	}
}

func (e *LineEncoder) functions(sb *strings.Builder, kind string, fns []*model.Function) {
	for _, fn := range fns {
		fmt.Fprintf(sb, "%s\t%s\t%s\t%s\t%s\t%s%s\n",
			kind, fn.DRI, fn.Name, fn.Visibility, fn.Modality, e.signatureStr(fn), e.flagsStr(fn.InheritedFrom != nil, fn.Obvious))
	}
}

func (e *LineEncoder) properties(sb *strings.Builder, ps []*model.Property) {
	for _, p := range ps {
		keyword := "val"
		if p.IsVar {
			keyword = "var"
		}
		fmt.Fprintf(sb, "property\t%s\t%s\t%s\t%s\t%s %s%s\n",
			p.DRI, p.Name, p.Visibility, p.Modality, keyword, p.Type, e.flagsStr(p.InheritedFrom != nil, p.Obvious))
	}
}

func (e *LineEncoder) signatureStr(fn *model.Function) string {
	var sb strings.Builder
	if fn.Receiver != nil {
		sb.WriteString(fn.Receiver.Type.String())
		sb.WriteString(".")
	}
	sb.WriteString("(")
	for i, p := range fn.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type.String())
		if p.DefaultValue != nil {
			sb.WriteString(" = ")
			sb.WriteString(p.DefaultValue.String())
		}
	}
	sb.WriteString("): ")
	sb.WriteString(fn.Type.String())
	return sb.String()
}

func (e *LineEncoder) supertypesStr(sts []model.TypeConstructorWithKind) string {
	parts := make([]string, len(sts))
	for i, st := range sts {
		parts[i] = st.TypeConstructor.String()
	}
	return strings.Join(parts, ", ")
}

func (e *LineEncoder) flagsStr(inherited, obvious bool) string {
	var flags []string
	if inherited {
		flags = append(flags, "inherited")
	}
	if obvious {
		flags = append(flags, "obvious")
	}
	if len(flags) == 0 {
		return ""
	}
	return "\t" + strings.Join(flags, ",")
}
