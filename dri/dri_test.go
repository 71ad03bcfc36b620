package dri

import "testing"

func TestDRIString(t *testing.T) {
	tests := []struct {
		name string
		dri  DRI
		want string
	}{
		{
			name: "package",
			dri:  ForPackage("foo.bar"),
			want: "foo.bar////decl/",
		},
		{
			name: "class",
			dri:  ForClass("foo", "Outer.Inner"),
			want: "foo/Outer.Inner///decl/",
		},
		{
			name: "function with receiver and params",
			dri: ForClass("foo", "Bar").WithCallable(&Callable{
				Name:     "plus",
				Receiver: TypeConstructor{FQName: "kotlin.String"},
				Params: []TypeRef{
					TypeConstructor{FQName: "kotlin.Int"},
					Nullable{Wrapped: TypeConstructor{FQName: "kotlin.collections.List", Params: []TypeRef{StarProjection{}}}},
				},
			}),
			want: "foo/Bar/plus/kotlin.String#kotlin.Int#kotlin.collections.List[*]?/decl/",
		},
		{
			name: "parameter target",
			dri:  ForClass("foo", "Bar").WithCallable(&Callable{Name: "f"}).WithTarget(ToCallableParameter(1)),
			want: "foo/Bar/f/#/param(1)/",
		},
		{
			name: "generic target with extra",
			dri:  ForClass("foo", "Bar").WithTarget(ToGenericParameter(0)).WithExtra("x"),
			want: "foo/Bar///generic(0)/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dri.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDRIEqual(t *testing.T) {
	a := ForClass("foo", "Bar").WithCallable(&Callable{Name: "f", Params: []TypeRef{TypeConstructor{FQName: "kotlin.Int"}}})
	b := ForClass("foo", "Bar").WithCallable(&Callable{Name: "f", Params: []TypeRef{TypeConstructor{FQName: "kotlin.Int"}}})
	c := ForClass("foo", "Bar").WithCallable(&Callable{Name: "f", Params: []TypeRef{TypeConstructor{FQName: "kotlin.Long"}}})

	if !a.Equal(b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	if a.Equal(c) {
		t.Errorf("expected %s to differ from %s", a, c)
	}
	if !a.SameDeclaringClass(c) {
		t.Errorf("expected same declaring class")
	}
}

func TestWithCallableDoesNotMutate(t *testing.T) {
	a := ForClass("foo", "Bar").WithCallable(&Callable{Name: "f"})
	stripped := a.WithCallable(nil)

	if a.Callable == nil {
		t.Fatal("original DRI lost its callable")
	}
	if stripped.Callable != nil {
		t.Errorf("stripped DRI still has callable %v", stripped.Callable)
	}
	if !stripped.Equal(ForClass("foo", "Bar")) {
		t.Errorf("stripped = %s, want class DRI", stripped)
	}
}

func TestRecursiveTypeString(t *testing.T) {
	if got := (RecursiveType{Rank: 0}).String(); got != "^" {
		t.Errorf("rank 0 = %q", got)
	}
	if got := (RecursiveType{Rank: 2}).String(); got != "^^^" {
		t.Errorf("rank 2 = %q", got)
	}
}
