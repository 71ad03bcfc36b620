package doc

import (
	"errors"
	"testing"

	"github.com/dhamidi/symdoc/symbol"
)

func TestParseCommentDescriptionOnly(t *testing.T) {
	tree := ParseComment("/** Simple text. */")

	if tree.Description != "Simple text." {
		t.Errorf("Description = %q, want %q", tree.Description, "Simple text.")
	}
	if len(tree.Tags) != 0 {
		t.Errorf("expected no tags, got %+v", tree.Tags)
	}
}

func TestParseCommentBlockTags(t *testing.T) {
	raw := `/**
 * Adds two numbers.
 *
 * Keeps {@code int} overflow semantics.
 * @param a the first
 *   operand
 * @param[b] the second operand
 * @return the sum
 * @throws ArithmeticException never
 * @since 1.2
 */`
	tree := ParseComment(raw)

	want := "Adds two numbers.\n\nKeeps {@code int} overflow semantics."
	if tree.Description != want {
		t.Errorf("Description = %q, want %q", tree.Description, want)
	}

	tests := []struct {
		name, subject, body string
	}{
		{"param", "a", "the first\n  operand"},
		{"param", "b", "the second operand"},
		{"return", "", "the sum"},
		{"throws", "ArithmeticException", "never"},
		{"since", "", "1.2"},
	}
	if len(tree.Tags) != len(tests) {
		t.Fatalf("expected %d tags, got %d: %+v", len(tests), len(tree.Tags), tree.Tags)
	}
	for i, tt := range tests {
		got := tree.Tags[i]
		if got.Name != tt.name || got.Subject != tt.subject || got.Body != tt.body {
			t.Errorf("tag %d = %+v, want {%s %s %q}", i, got, tt.name, tt.subject, tt.body)
		}
	}

	if _, ok := tree.Tag("param", "b"); !ok {
		t.Error("Tag(param, b) not found")
	}
}

func TestParseCommentIgnoresTagsInCodeFence(t *testing.T) {
	raw := "/**\n * Example:\n * ```\n * @Test fun x() {}\n * ```\n */"
	tree := ParseComment(raw)

	if len(tree.Tags) != 0 {
		t.Fatalf("expected no tags, got %+v", tree.Tags)
	}
}

func TestCommentExtractorNoComment(t *testing.T) {
	fn := &symbol.Function{Declaration: symbol.Declaration{Name: "f"}}

	tree, err := CommentExtractor{}.Documentation(nil, fn)
	if err != nil {
		t.Fatal(err)
	}
	if tree != nil {
		t.Errorf("expected nil tree, got %+v", tree)
	}
}

func TestChain(t *testing.T) {
	fn := &symbol.Function{Declaration: symbol.Declaration{Name: "f", Doc: "/** From comment. */"}}
	none := ExtractorFunc(func(*symbol.Session, symbol.Symbol) (*Tree, error) { return nil, nil })

	t.Run("falls back", func(t *testing.T) {
		tree, err := Chain(none, nil, CommentExtractor{}).Documentation(nil, fn)
		if err != nil {
			t.Fatal(err)
		}
		if tree == nil || tree.Description != "From comment." {
			t.Errorf("unexpected tree %+v", tree)
		}
	})

	t.Run("primary wins", func(t *testing.T) {
		primary := ExtractorFunc(func(*symbol.Session, symbol.Symbol) (*Tree, error) {
			return &Tree{Description: "primary"}, nil
		})
		tree, err := Chain(primary, CommentExtractor{}).Documentation(nil, fn)
		if err != nil {
			t.Fatal(err)
		}
		if tree.Description != "primary" {
			t.Errorf("Description = %q", tree.Description)
		}
	})

	t.Run("error stops the chain", func(t *testing.T) {
		boom := errors.New("boom")
		failing := ExtractorFunc(func(*symbol.Session, symbol.Symbol) (*Tree, error) { return nil, boom })
		_, err := Chain(failing, CommentExtractor{}).Documentation(nil, fn)
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want %v", err, boom)
		}
	})
}
