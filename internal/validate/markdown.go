package validate

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const proseSegmentSeparatorConstant = "\n"

// extractMarkdownProse parses markdown bytes and returns the document's prose
// text lowercased for case-insensitive matching. Fenced and indented code
// blocks carry no prose and are excluded, so keyword patterns never match
// example snippets.
func extractMarkdownProse(markdownSource []byte) string {
	markdownParser := goldmark.New()
	sourceReader := text.NewReader(markdownSource)
	documentNode := markdownParser.Parser().Parse(sourceReader)

	var proseSegments []string
	_ = ast.Walk(documentNode, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typedNode := node.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			proseSegments = append(proseSegments, string(typedNode.Segment.Value(markdownSource)))
		}
		return ast.WalkContinue, nil
	})

	return strings.ToLower(strings.Join(proseSegments, proseSegmentSeparatorConstant))
}

// proseContainsAnyVariant reports whether the prose mentions at least one of
// the conceptual variants for a required keyword.
func proseContainsAnyVariant(proseText string, keywordVariants []string) bool {
	for _, keywordVariant := range keywordVariants {
		if strings.Contains(proseText, strings.ToLower(keywordVariant)) {
			return true
		}
	}
	return false
}
