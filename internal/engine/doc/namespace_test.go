package doc

import (
	"testing"

	"undoc/internal/engine/parser"
)

func TestIsNamespace_NilAndEmptyBody(t *testing.T) {
	if IsNamespace(nil) {
		t.Fatal("nil body must not be a namespace")
	}
	if IsNamespace(&parser.BodyNode{}) {
		t.Fatal("empty body must not be a namespace")
	}
}

func TestIsNamespace_SingleStatement(t *testing.T) {
	cases := []struct {
		name string
		stmt parser.Statement
		want bool
	}{
		{"constant assignment", constStmt("VERSION"), true},
		{"nested class", parser.Statement{Def: classNode("Inner", 2, nil)}, true},
		{"nested module", parser.Statement{Def: moduleNode("Inner", 2, nil)}, true},
		{"private_constant declaration", privateStmt("VERSION"), true},
		{"public_constant declaration", publicStmt("VERSION"), true},
		{"anything else", codeStmt(), false},
	}
	for _, tc := range cases {
		body := &parser.BodyNode{Stmts: []parser.Statement{tc.stmt}}
		if got := IsNamespace(body); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsNamespace_SequenceRequiresEveryStatement(t *testing.T) {
	allConstants := &parser.BodyNode{Stmts: []parser.Statement{
		constStmt("A"),
		parser.Statement{Def: classNode("Inner", 3, nil)},
		privateStmt("A"),
	}}
	if !IsNamespace(allConstants) {
		t.Fatal("body of constants and declarations must be a namespace")
	}

	withMethod := &parser.BodyNode{Stmts: []parser.Statement{
		constStmt("A"),
		codeStmt(),
		constStmt("B"),
	}}
	if IsNamespace(withMethod) {
		t.Fatal("one substantive statement must break the namespace")
	}
}

func TestIsNamespace_DoesNotRecurseIntoNestedBodies(t *testing.T) {
	inner := classNode("Inner", 2, nil, codeStmt(), codeStmt())
	body := &parser.BodyNode{Stmts: []parser.Statement{{Def: inner}}}
	if !IsNamespace(body) {
		t.Fatal("nested definition contents must not affect the outer body")
	}
}
