// # internal/engine/parser/types.go
package parser

import (
	"strings"
	"time"
)

// File is the parse result for a single Ruby source file. Definitions
// holds every class and module in source order, outer before inner;
// nested definitions are also reachable through their parent's body.
type File struct {
	Path        string
	Language    string
	Definitions []*DefinitionNode
	Comments    CommentTable
	ParsedAt    time.Time
}

// DefinitionNode is a class definition, module definition, or constant
// assignment. Name is the name as written at the definition site and may
// itself be qualified ("Foo::Bar") for compact definitions. KeywordLine
// is the 1-based line of the class/module keyword, or of the assignment.
// Parent links to the lexically enclosing definition, nil at top level.
type DefinitionNode struct {
	Kind        NodeKind
	Name        string
	Body        *BodyNode
	KeywordLine int
	Parent      *DefinitionNode
}

// BodyNode holds the statements of a class or module body in source
// order. A definition with no body at all carries a nil *BodyNode, not
// an empty one.
type BodyNode struct {
	Stmts []Statement
}

// Statement classifies one body statement. Def and Visibility are
// mutually exclusive; when both are nil the statement is some other
// kind of code (a method, a call, a conditional, anything else).
type Statement struct {
	Def        *DefinitionNode
	Visibility *VisibilityDecl
}

// VisibilityDecl is a bare private_constant or public_constant call.
// Names carries at least one constant name as written.
type VisibilityDecl struct {
	Method string
	Names  []string
}

const (
	VisibilityPrivate = "private_constant"
	VisibilityPublic  = "public_constant"
)

type NodeKind int

const (
	KindClass NodeKind = iota
	KindModule
	KindConstAssign
)

func (k NodeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	case KindConstAssign:
		return "constant"
	default:
		return "unknown"
	}
}

// Comment is a single comment token. Text keeps the leading "#". Line is
// the 1-based line the comment ends on, so a multi-line =begin block
// associates with the code directly below it.
type Comment struct {
	Text string
	Line int
}

// CommentTable maps line numbers to the comment ending on that line.
type CommentTable map[int]Comment

func (t CommentTable) At(line int) (Comment, bool) {
	c, ok := t[line]
	return c, ok
}

// ForNode resolves the zero-or-one comment associated with a definition:
// a trailing comment on the keyword line wins, otherwise the comment
// ending on the line directly above.
func (t CommentTable) ForNode(n *DefinitionNode) (Comment, bool) {
	if c, ok := t[n.KeywordLine]; ok {
		return c, true
	}
	if c, ok := t[n.KeywordLine-1]; ok {
		return c, true
	}
	return Comment{}, false
}

// QualifiedName joins the written names from the outermost enclosing
// scope down to n. Segments that were written qualified keep their "::".
func QualifiedName(n *DefinitionNode) string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "::")
}

// OuterModule returns the first module in source order whose written
// name equals name, or nil. Compact definitions reference their
// outermost segment through this lookup.
func (f *File) OuterModule(name string) *DefinitionNode {
	for _, def := range f.Definitions {
		if def.Kind == KindModule && def.Name == name {
			return def
		}
	}
	return nil
}
