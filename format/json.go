package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/symdoc/doc"
	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
)

type JSONEncoder struct {
	w      io.Writer
	module *model.Module
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(m *model.Module) error {
	e.module = m
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildModule(e.module), "", "  ")
}

type jsonModule struct {
	Name       string          `json:"name"`
	Run        string          `json:"run,omitempty"`
	SourceSets []jsonSourceSet `json:"sourceSets"`
	Packages   []jsonPackage   `json:"packages"`
}

type jsonSourceSet struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Platform    string   `json:"platform,omitempty"`
	Roots       []string `json:"roots,omitempty"`
}

type jsonPackage struct {
	DRI         string          `json:"dri"`
	Name        string          `json:"name"`
	Functions   []jsonFunction  `json:"functions,omitempty"`
	Properties  []jsonProperty  `json:"properties,omitempty"`
	Classlikes  []jsonClasslike `json:"classlikes,omitempty"`
	TypeAliases []jsonTypeAlias `json:"typeAliases,omitempty"`
}

type jsonMember struct {
	DRI           string          `json:"dri"`
	Name          string          `json:"name"`
	Visibility    string          `json:"visibility"`
	Modality      string          `json:"modality"`
	Expect        bool            `json:"expect,omitempty"`
	Generics      []jsonTypeParam `json:"generics,omitempty"`
	Documentation *jsonDoc        `json:"documentation,omitempty"`
	Annotations   []string        `json:"annotations,omitempty"`
	Modifiers     []string        `json:"modifiers,omitempty"`
	Sources       []string        `json:"sources,omitempty"`
	SourceSets    []string        `json:"sourceSets"`
}

type jsonClasslike struct {
	Kind string `json:"kind"`
	jsonMember
	Supertypes   []jsonSupertype `json:"supertypes,omitempty"`
	Companion    string          `json:"companion,omitempty"`
	IsCompanion  bool            `json:"isCompanion,omitempty"`
	Interfaces   []string        `json:"implementedInterfaces,omitempty"`
	Exceptions   []string        `json:"exceptionInSupertypes,omitempty"`
	Unresolved   []string        `json:"unresolvedSupertypes,omitempty"`
	Constructors []jsonFunction  `json:"constructors,omitempty"`
	Functions    []jsonFunction  `json:"functions,omitempty"`
	Properties   []jsonProperty  `json:"properties,omitempty"`
	Classlikes   []jsonClasslike `json:"classlikes,omitempty"`
	Entries      []jsonEntry     `json:"entries,omitempty"`
}

type jsonSupertype struct {
	DRI  string `json:"dri"`
	Type string `json:"type"`
	Kind string `json:"kind"`
}

type jsonEntry struct {
	DRI           string          `json:"dri"`
	Name          string          `json:"name"`
	Documentation *jsonDoc        `json:"documentation,omitempty"`
	Functions     []jsonFunction  `json:"functions,omitempty"`
	Properties    []jsonProperty  `json:"properties,omitempty"`
	Classlikes    []jsonClasslike `json:"classlikes,omitempty"`
}

type jsonFunction struct {
	jsonMember
	Constructor   bool            `json:"constructor,omitempty"`
	Receiver      *jsonParameter  `json:"receiver,omitempty"`
	Parameters    []jsonParameter `json:"parameters,omitempty"`
	Type          string          `json:"type"`
	InheritedFrom string          `json:"inheritedFrom,omitempty"`
	Obvious       bool            `json:"obvious,omitempty"`
	Throws        []string        `json:"throws,omitempty"`
}

type jsonProperty struct {
	jsonMember
	Receiver      *jsonParameter `json:"receiver,omitempty"`
	Type          string         `json:"type"`
	Var           bool           `json:"var,omitempty"`
	Default       string         `json:"default,omitempty"`
	Getter        *jsonFunction  `json:"getter,omitempty"`
	Setter        *jsonFunction  `json:"setter,omitempty"`
	InheritedFrom string         `json:"inheritedFrom,omitempty"`
	Obvious       bool           `json:"obvious,omitempty"`
}

type jsonParameter struct {
	DRI           string   `json:"dri"`
	Name          string   `json:"name,omitempty"`
	Type          string   `json:"type"`
	Default       string   `json:"default,omitempty"`
	Documentation *jsonDoc `json:"documentation,omitempty"`
}

type jsonTypeParam struct {
	DRI      string   `json:"dri"`
	Name     string   `json:"name"`
	Variance string   `json:"variance,omitempty"`
	Bounds   []string `json:"bounds"`
	Reified  bool     `json:"reified,omitempty"`
}

type jsonTypeAlias struct {
	jsonMember
	Type       string `json:"type"`
	Underlying string `json:"underlying"`
}

type jsonDoc struct {
	Description string    `json:"description,omitempty"`
	Tags        []jsonTag `json:"tags,omitempty"`
}

type jsonTag struct {
	Name    string `json:"name"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

func buildModule(m *model.Module) jsonModule {
	out := jsonModule{Name: m.Name, Packages: []jsonPackage{}}
	if run, ok := model.Get[model.TranslationRun](m.Extras); ok {
		out.Run = run.ID
	}
	for _, ss := range m.SourceSets {
		out.SourceSets = append(out.SourceSets, jsonSourceSet(ss))
	}
	for _, p := range m.Packages {
		out.Packages = append(out.Packages, buildPackage(p))
	}
	return out
}

func buildPackage(p *model.Package) jsonPackage {
	out := jsonPackage{
		DRI:        p.DRI.String(),
		Name:       p.Name,
		Functions:  buildFunctions(p.Functions),
		Properties: buildProperties(p.Properties),
		Classlikes: buildClasslikes(p.Classlikes),
	}
	for _, a := range p.TypeAliases {
		out.TypeAliases = append(out.TypeAliases, jsonTypeAlias{
			jsonMember: buildMember(&a.Member),
			Type:       a.Type.String(),
			Underlying: a.Underlying.String(),
		})
	}
	return out
}

func buildMember(m *model.Member) jsonMember {
	return jsonMember{
		DRI:           m.DRI.String(),
		Name:          m.Name,
		Visibility:    string(m.Visibility),
		Modality:      string(m.Modality),
		Expect:        m.IsExpect,
		Generics:      buildGenerics(m.Generics),
		Documentation: buildDoc(m.Documentation),
		Annotations:   annotationStrings(m.Extras),
		Modifiers:     modifierStrings(m.Extras),
		Sources:       m.Sources,
		SourceSets:    m.SourceSets,
	}
}

func buildClasslikes(cs []model.Classlike) []jsonClasslike {
	var out []jsonClasslike
	for _, c := range cs {
		out = append(out, buildClasslike(c))
	}
	return out
}

func buildClasslike(c model.Classlike) jsonClasslike {
	b := c.Base()
	out := jsonClasslike{
		Kind: string(c.Kind()),
		jsonMember: jsonMember{
			DRI:           b.DRI.String(),
			Name:          b.Name,
			Visibility:    string(b.Visibility),
			Modality:      string(b.Modality),
			Expect:        b.IsExpect,
			Generics:      buildGenerics(b.Generics),
			Documentation: buildDoc(b.Documentation),
			Annotations:   annotationStrings(b.Extras),
			Modifiers:     modifierStrings(b.Extras),
			Sources:       b.Sources,
			SourceSets:    b.SourceSets,
		},
		Constructors: buildFunctions(b.Constructors),
		Functions:    buildFunctions(b.Functions),
		Properties:   buildProperties(b.Properties),
		Classlikes:   buildClasslikes(b.Classlikes),
	}
	for _, st := range b.Supertypes {
		out.Supertypes = append(out.Supertypes, jsonSupertype{
			DRI:  st.TypeConstructor.DRI.String(),
			Type: st.TypeConstructor.String(),
			Kind: string(st.Kind),
		})
	}
	if b.Companion != nil {
		out.Companion = b.Companion.String()
	}
	_, out.IsCompanion = model.Get[model.IsCompanion](b.Extras)
	if ifaces, ok := model.Get[model.ImplementedInterfaces](b.Extras); ok {
		for _, i := range ifaces.Interfaces {
			out.Interfaces = append(out.Interfaces, i.DRI.String())
		}
	}
	if exc, ok := model.Get[model.ExceptionInSupertypes](b.Extras); ok {
		out.Exceptions = driStrings(exc.Exceptions)
	}
	if anc, ok := model.Get[model.Ancestry](b.Extras); ok {
		out.Unresolved = driStrings(anc.Unresolved)
	}
	if e, ok := c.(*model.Enum); ok {
		for _, entry := range e.Entries {
			out.Entries = append(out.Entries, jsonEntry{
				DRI:           entry.DRI.String(),
				Name:          entry.Name,
				Documentation: buildDoc(entry.Documentation),
				Functions:     buildFunctions(entry.Functions),
				Properties:    buildProperties(entry.Properties),
				Classlikes:    buildClasslikes(entry.Classlikes),
			})
		}
	}
	return out
}

func buildFunctions(fns []*model.Function) []jsonFunction {
	var out []jsonFunction
	for _, fn := range fns {
		out = append(out, *buildFunction(fn))
	}
	return out
}

func buildFunction(fn *model.Function) *jsonFunction {
	if fn == nil {
		return nil
	}
	out := &jsonFunction{
		jsonMember:    buildMember(&fn.Member),
		Constructor:   fn.IsConstructor,
		Receiver:      buildParameter(fn.Receiver),
		Type:          fn.Type.String(),
		InheritedFrom: optionalDRI(fn.InheritedFrom),
		Obvious:       fn.Obvious,
	}
	for _, p := range fn.Parameters {
		out.Parameters = append(out.Parameters, *buildParameter(p))
	}
	if thrown, ok := model.Get[model.CheckedExceptions](fn.Extras); ok {
		out.Throws = driStrings(thrown.Exceptions)
	}
	return out
}

func buildProperties(ps []*model.Property) []jsonProperty {
	var out []jsonProperty
	for _, p := range ps {
		jp := jsonProperty{
			jsonMember:    buildMember(&p.Member),
			Receiver:      buildParameter(p.Receiver),
			Type:          p.Type.String(),
			Var:           p.IsVar,
			Getter:        buildFunction(p.Getter),
			Setter:        buildFunction(p.Setter),
			InheritedFrom: optionalDRI(p.InheritedFrom),
			Obvious:       p.Obvious,
		}
		if p.DefaultValue != nil {
			jp.Default = p.DefaultValue.String()
		}
		out = append(out, jp)
	}
	return out
}

func buildParameter(p *model.Parameter) *jsonParameter {
	if p == nil {
		return nil
	}
	out := &jsonParameter{
		DRI:           p.DRI.String(),
		Name:          p.Name,
		Type:          p.Type.String(),
		Documentation: buildDoc(p.Documentation),
	}
	if p.DefaultValue != nil {
		out.Default = p.DefaultValue.String()
	}
	return out
}

func buildGenerics(tps []*model.TypeParameter) []jsonTypeParam {
	var out []jsonTypeParam
	for _, tp := range tps {
		jt := jsonTypeParam{DRI: tp.DRI.String(), Name: tp.Name, Reified: tp.IsReified}
		if tp.Variance != model.Invariant {
			jt.Variance = string(tp.Variance)
		}
		for _, b := range tp.Bounds {
			jt.Bounds = append(jt.Bounds, b.String())
		}
		out = append(out, jt)
	}
	return out
}

func buildDoc(t *doc.Tree) *jsonDoc {
	if t == nil {
		return nil
	}
	out := &jsonDoc{Description: t.Description}
	for _, tag := range t.Tags {
		out.Tags = append(out.Tags, jsonTag(tag))
	}
	return out
}

func annotationStrings(e model.Extras) []string {
	anns, ok := model.Get[model.Annotations](e)
	if !ok {
		return nil
	}
	out := make([]string, len(anns.Items))
	for i, a := range anns.Items {
		out[i] = a.String()
	}
	return out
}

func modifierStrings(e model.Extras) []string {
	if mods, ok := model.Get[model.Modifiers](e); ok {
		return mods.Items
	}
	return nil
}

func optionalDRI(d *dri.DRI) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func driStrings(ds []dri.DRI) []string {
	if len(ds) == 0 {
		return nil
	}
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}
