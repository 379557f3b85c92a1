package doc

import (
	"undoc/internal/engine/parser"
)

// Shared fixture builders. Trees are wired by hand, parents first, so
// each test controls exactly one aspect of the shape under test.

func classNode(name string, line int, parent *parser.DefinitionNode, stmts ...parser.Statement) *parser.DefinitionNode {
	return defNode(parser.KindClass, name, line, parent, stmts...)
}

func moduleNode(name string, line int, parent *parser.DefinitionNode, stmts ...parser.Statement) *parser.DefinitionNode {
	return defNode(parser.KindModule, name, line, parent, stmts...)
}

func defNode(kind parser.NodeKind, name string, line int, parent *parser.DefinitionNode, stmts ...parser.Statement) *parser.DefinitionNode {
	node := &parser.DefinitionNode{
		Kind:        kind,
		Name:        name,
		KeywordLine: line,
		Parent:      parent,
	}
	if len(stmts) > 0 {
		node.Body = &parser.BodyNode{Stmts: stmts}
	}
	if parent != nil {
		attach(parent, parser.Statement{Def: node})
	}
	return node
}

// attach appends statements to a node's body, creating the body when
// the node was built bodiless.
func attach(node *parser.DefinitionNode, stmts ...parser.Statement) {
	if node.Body == nil {
		node.Body = &parser.BodyNode{}
	}
	node.Body.Stmts = append(node.Body.Stmts, stmts...)
}

func constStmt(name string) parser.Statement {
	return parser.Statement{Def: &parser.DefinitionNode{Kind: parser.KindConstAssign, Name: name, KeywordLine: 1}}
}

func privateStmt(names ...string) parser.Statement {
	return parser.Statement{Visibility: &parser.VisibilityDecl{Method: parser.VisibilityPrivate, Names: names}}
}

func publicStmt(names ...string) parser.Statement {
	return parser.Statement{Visibility: &parser.VisibilityDecl{Method: parser.VisibilityPublic, Names: names}}
}

// codeStmt stands in for any non-constant body statement.
func codeStmt() parser.Statement {
	return parser.Statement{}
}

func newFile(comments map[int]string, defs ...*parser.DefinitionNode) *parser.File {
	file := &parser.File{
		Path:     "lib/example.rb",
		Language: "ruby",
		Comments: make(parser.CommentTable),
	}
	for line, text := range comments {
		file.Comments[line] = parser.Comment{Text: text, Line: line}
	}
	seen := make(map[*parser.DefinitionNode]bool)
	for _, def := range defs {
		collectDefs(&file.Definitions, def, seen)
	}
	return file
}

func collectDefs(out *[]*parser.DefinitionNode, def *parser.DefinitionNode, seen map[*parser.DefinitionNode]bool) {
	if def == nil || seen[def] {
		return
	}
	seen[def] = true
	*out = append(*out, def)
	if def.Body == nil {
		return
	}
	for _, stmt := range def.Body.Stmts {
		if stmt.Def != nil && stmt.Def.Kind != parser.KindConstAssign {
			collectDefs(out, stmt.Def, seen)
		}
	}
}
