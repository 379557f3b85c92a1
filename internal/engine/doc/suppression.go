package doc

import (
	"regexp"

	"undoc/internal/engine/parser"
)

var (
	nodocPattern    = regexp.MustCompile(`^#?\s*:nodoc:(\s+all)?\s*$`)
	nodocAllPattern = regexp.MustCompile(`^#?\s*:nodoc:\s+all\s*$`)
)

// IsSuppressed reports whether node is exempted by a :nodoc: annotation.
// A node is suppressed by its own trailing :nodoc: (either form), or by
// an enclosing definition's ":nodoc: all". A plain :nodoc: on an
// ancestor covers that ancestor alone and never propagates down.
func IsSuppressed(node *parser.DefinitionNode, comments parser.CommentTable) bool {
	return suppressed(node, comments, false)
}

// IsSuppressedAll requires the propagating form from the start. It
// serves definitions reached by name lookup rather than by nesting,
// where only ":nodoc: all" may cover them.
func IsSuppressedAll(node *parser.DefinitionNode, comments parser.CommentTable) bool {
	return suppressed(node, comments, true)
}

func suppressed(node *parser.DefinitionNode, comments parser.CommentTable, requireAll bool) bool {
	for cur := node; cur != nil; cur = cur.Parent {
		if hasNodoc(cur, comments, requireAll) {
			return true
		}
		requireAll = true
	}
	return false
}

// hasNodoc matches the annotation on the definition's own keyword line.
// Comments above the line never suppress; they are documentation input.
func hasNodoc(node *parser.DefinitionNode, comments parser.CommentTable, requireAll bool) bool {
	c, ok := comments.ForNode(node)
	if !ok || c.Line != node.KeywordLine {
		return false
	}
	if requireAll {
		return nodocAllPattern.MatchString(c.Text)
	}
	return nodocPattern.MatchString(c.Text)
}
