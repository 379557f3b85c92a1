package doc

import (
	"undoc/internal/engine/parser"
)

// IsNamespace reports whether a body contains nothing but constant
// definitions and constant-visibility declarations. Such a class or
// module is organizational and needs no documentation of its own. The
// check never looks inside nested definitions; a namespace module may
// well contain undocumented classes, which are checked separately.
//
// A nil or empty body is not a namespace. Bodiless definitions are
// exempted on their own grounds before this check runs.
func IsNamespace(body *parser.BodyNode) bool {
	if body == nil || len(body.Stmts) == 0 {
		return false
	}
	for _, stmt := range body.Stmts {
		if stmt.Def == nil && stmt.Visibility == nil {
			return false
		}
	}
	return true
}
