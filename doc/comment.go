package doc

import (
	"strings"
	"unicode"

	"github.com/dhamidi/symdoc/symbol"
)

// tags whose first word names what they describe
var subjectTags = map[string]bool{
	"param":     true,
	"property":  true,
	"throws":    true,
	"exception": true,
	"see":       true,
	"sample":    true,
}

// CommentExtractor reads the raw block comment attached to a symbol. It
// understands the block tag layout shared by KDoc and Javadoc; inline markup
// is kept verbatim.
type CommentExtractor struct{}

func (CommentExtractor) Documentation(_ *symbol.Session, sym symbol.Symbol) (*Tree, error) {
	raw := sym.DocComment()
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	return ParseComment(raw), nil
}

// ParseComment parses a /** ... */ comment. The delimiters and the leading
// asterisk of each line are optional.
func ParseComment(raw string) *Tree {
	lines := commentLines(raw)

	tree := &Tree{}
	var body []string
	var current *Tag

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if current == nil {
			tree.Description = text
		} else {
			current.Body = text
			tree.Tags = append(tree.Tags, *current)
		}
		body = body[:0]
	}

	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(trimmed, "@") && len(trimmed) > 1 {
			flush()
			tag, rest := parseTagLine(trimmed[1:])
			current = &tag
			body = append(body, rest)
			continue
		}
		body = append(body, line)
	}
	flush()

	return tree
}

func commentLines(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimPrefix(s, "/*")
	s = strings.TrimSuffix(s, "*/")

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
			lines[i] = trimmed
		} else {
			lines[i] = strings.TrimSpace(line)
		}
	}
	return lines
}

func parseTagLine(s string) (Tag, string) {
	name, rest := splitWord(s)

	// KDoc allows @param[name]
	if i := strings.IndexByte(name, '['); i > 0 && strings.HasSuffix(name, "]") {
		return Tag{Name: name[:i], Subject: name[i+1 : len(name)-1]}, rest
	}

	tag := Tag{Name: name}
	if subjectTags[name] {
		var subject string
		subject, rest = splitWord(rest)
		subject = strings.TrimSuffix(strings.TrimPrefix(subject, "["), "]")
		tag.Subject = subject
	}
	return tag, rest
}

func splitWord(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
