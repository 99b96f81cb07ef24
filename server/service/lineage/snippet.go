package lineage

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var excerptMarkdown = goldmark.New()

// PlainTextExcerpt renders post content down to plain text for breadcrumb and
// feed display: markdown structure is stripped via the parsed AST, whitespace
// collapsed, and the result truncated rune-safely (no split UTF-8 sequences).
func PlainTextExcerpt(content string, maxRunes int) string {
	src := []byte(content)
	doc := excerptMarkdown.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.(type) {
			case *ast.Paragraph, *ast.Heading, *ast.ListItem:
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	excerpt := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(excerpt)
	if maxRunes > 0 && len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "..."
	}
	return excerpt
}
