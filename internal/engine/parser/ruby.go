package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type RubyExtractor struct{}

func (e *RubyExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "ruby",
		Comments: make(CommentTable),
		ParsedAt: time.Now(),
	}

	e.collectComments(root, source, file)

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		switch child.Kind() {
		case rubyNodeClass:
			e.extractDefinition(child, source, file, nil, KindClass)
		case rubyNodeModule:
			e.extractDefinition(child, source, file, nil, KindModule)
		}
	}

	return file, nil
}

// collectComments indexes every comment by the line it ends on, so a
// multi-line =begin block keys to its =end line.
func (e *RubyExtractor) collectComments(node *sitter.Node, source []byte, file *File) {
	if node.Kind() == rubyNodeComment {
		line := e.endLine(node)
		file.Comments[line] = Comment{
			Text: e.getText(node, source),
			Line: line,
		}
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.collectComments(node.Child(i), source, file)
	}
}

func (e *RubyExtractor) extractDefinition(node *sitter.Node, source []byte, file *File, parent *DefinitionNode, kind NodeKind) *DefinitionNode {
	name := e.definitionName(node, source)
	if name == "" {
		return nil
	}

	def := &DefinitionNode{
		Kind:        kind,
		Name:        name,
		KeywordLine: int(node.StartPosition().Row) + 1,
		Parent:      parent,
	}
	file.Definitions = append(file.Definitions, def)

	if body := e.bodyNode(node); body != nil {
		def.Body = e.extractBody(body, source, file, def)
	}
	return def
}

func (e *RubyExtractor) extractBody(body *sitter.Node, source []byte, file *File, parent *DefinitionNode) *BodyNode {
	out := &BodyNode{}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		stmt := body.NamedChild(i)
		switch stmt.Kind() {
		case rubyNodeComment:
			continue
		case rubyNodeClass:
			out.Stmts = append(out.Stmts, defStatement(e.extractDefinition(stmt, source, file, parent, KindClass)))
		case rubyNodeModule:
			out.Stmts = append(out.Stmts, defStatement(e.extractDefinition(stmt, source, file, parent, KindModule)))
		case rubyNodeAssignment:
			out.Stmts = append(out.Stmts, defStatement(e.extractConstAssign(stmt, source, parent)))
		case rubyNodeCall:
			if decl := e.extractVisibilityDecl(stmt, source); decl != nil {
				out.Stmts = append(out.Stmts, Statement{Visibility: decl})
			} else {
				out.Stmts = append(out.Stmts, Statement{})
			}
		default:
			out.Stmts = append(out.Stmts, Statement{})
		}
	}
	if len(out.Stmts) == 0 {
		return nil
	}
	return out
}

func defStatement(def *DefinitionNode) Statement {
	if def == nil {
		return Statement{}
	}
	return Statement{Def: def}
}

// extractConstAssign keeps constant assignments as definition nodes so
// namespace classification sees them; they are never checked themselves.
func (e *RubyExtractor) extractConstAssign(node *sitter.Node, source []byte, parent *DefinitionNode) *DefinitionNode {
	left := node.ChildByFieldName("left")
	if left == nil {
		return nil
	}
	switch left.Kind() {
	case rubyNodeConstant, rubyNodeScopeResolution:
		return &DefinitionNode{
			Kind:        KindConstAssign,
			Name:        e.getText(left, source),
			KeywordLine: int(node.StartPosition().Row) + 1,
			Parent:      parent,
		}
	default:
		return nil
	}
}

// extractVisibilityDecl matches a bare private_constant or
// public_constant call whose arguments are all symbol or string
// literals. Anything else counts as ordinary code.
func (e *RubyExtractor) extractVisibilityDecl(node *sitter.Node, source []byte) *VisibilityDecl {
	if node.ChildByFieldName("receiver") != nil {
		return nil
	}
	method := node.ChildByFieldName("method")
	if method == nil || method.Kind() != rubyNodeIdentifier {
		return nil
	}
	methodName := e.getText(method, source)
	if methodName != VisibilityPrivate && methodName != VisibilityPublic {
		return nil
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.Kind() != rubyNodeArgumentList {
		return nil
	}

	decl := &VisibilityDecl{Method: methodName}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		constName := e.constantArgument(args.NamedChild(i), source)
		if constName == "" {
			return nil
		}
		decl.Names = append(decl.Names, constName)
	}
	if len(decl.Names) == 0 {
		return nil
	}
	return decl
}

func (e *RubyExtractor) constantArgument(node *sitter.Node, source []byte) string {
	switch node.Kind() {
	case rubyNodeSimpleSymbol:
		return strings.TrimPrefix(e.getText(node, source), ":")
	case rubyNodeDelimitedSymbol, rubyNodeString:
		if content := e.getChildText(node, rubyNodeStringContent, source); content != "" {
			return content
		}
		return strings.Trim(strings.TrimPrefix(e.getText(node, source), ":"), `"'`)
	default:
		return ""
	}
}

func (e *RubyExtractor) definitionName(node *sitter.Node, source []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return e.getText(name, source)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == rubyNodeConstant || child.Kind() == rubyNodeScopeResolution {
			return e.getText(child, source)
		}
	}
	return ""
}

func (e *RubyExtractor) bodyNode(node *sitter.Node) *sitter.Node {
	if body := node.ChildByFieldName("body"); body != nil {
		return body
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == rubyNodeBodyStatement {
			return child
		}
	}
	return nil
}

// endLine is the 1-based line of the node's last content. A node whose
// span stops at column zero ended with the previous line's newline.
func (e *RubyExtractor) endLine(node *sitter.Node) int {
	end := node.EndPosition()
	row := int(end.Row)
	if end.Column == 0 && row > 0 {
		row--
	}
	return row + 1
}

func (e *RubyExtractor) getChildText(node *sitter.Node, kind string, source []byte) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return e.getText(child, source)
		}
	}
	return ""
}

func (e *RubyExtractor) getText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
