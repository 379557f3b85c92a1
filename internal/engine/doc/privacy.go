package doc

import (
	"undoc/internal/engine/parser"
)

// IsDeclaredPrivate reports whether some enclosing scope marks the
// definition private. The walk carries the name as visible from each
// ancestor: from the immediate parent the node is just "Bar", from the
// grandparent it is "Foo::Bar", and so on. At every level the visible
// name is matched against the private_constant declarations written
// directly in that scope's body. Compact names keep their own "::"
// inside the accumulated segment.
func IsDeclaredPrivate(node *parser.DefinitionNode) bool {
	visible := node.Name
	for scope := node.Parent; scope != nil; scope = scope.Parent {
		if scopeDeclaresPrivate(scope, visible) {
			return true
		}
		visible = scope.Name + "::" + visible
	}
	return false
}

func scopeDeclaresPrivate(scope *parser.DefinitionNode, name string) bool {
	if scope.Body == nil {
		return false
	}
	for _, stmt := range scope.Body.Stmts {
		decl := stmt.Visibility
		if decl == nil || decl.Method != parser.VisibilityPrivate {
			continue
		}
		for _, declared := range decl.Names {
			if declared == name {
				return true
			}
		}
	}
	return false
}
