package doc

import (
	"testing"
)

func TestIsDeclaredPrivate_DirectParentDeclaration(t *testing.T) {
	foo := moduleNode("Foo", 1, nil, privateStmt("Bar"))
	bar := classNode("Bar", 2, foo)

	if !IsDeclaredPrivate(bar) {
		t.Fatal("Bar is declared private inside Foo")
	}
}

func TestIsDeclaredPrivate_NameMismatch(t *testing.T) {
	foo := moduleNode("Foo", 1, nil, privateStmt("Other"))
	bar := classNode("Bar", 2, foo)

	if IsDeclaredPrivate(bar) {
		t.Fatal("declaration for a different constant must not match")
	}
}

func TestIsDeclaredPrivate_PublicConstantIsNotPrivate(t *testing.T) {
	foo := moduleNode("Foo", 1, nil, publicStmt("Bar"))
	bar := classNode("Bar", 2, foo)

	if IsDeclaredPrivate(bar) {
		t.Fatal("public_constant must not mark anything private")
	}
}

func TestIsDeclaredPrivate_GrandparentSeesQualifiedName(t *testing.T) {
	root := moduleNode("Root", 1, nil, privateStmt("Foo::Bar"))
	foo := moduleNode("Foo", 2, root)
	bar := classNode("Bar", 3, foo)

	if !IsDeclaredPrivate(bar) {
		t.Fatal("Root declares Foo::Bar private")
	}
}

func TestIsDeclaredPrivate_GrandparentBareNameDoesNotMatch(t *testing.T) {
	root := moduleNode("Root", 1, nil, privateStmt("Bar"))
	foo := moduleNode("Foo", 2, root)
	bar := classNode("Bar", 3, foo)

	if IsDeclaredPrivate(bar) {
		t.Fatal("from Root the constant is Foo::Bar, not Bar")
	}
}

func TestIsDeclaredPrivate_MultipleNamesInOneDeclaration(t *testing.T) {
	foo := moduleNode("Foo", 1, nil, privateStmt("A", "Bar", "C"))
	bar := classNode("Bar", 2, foo)

	if !IsDeclaredPrivate(bar) {
		t.Fatal("Bar appears in the declared name list")
	}
}

func TestIsDeclaredPrivate_NoEnclosingScope(t *testing.T) {
	top := classNode("Foo", 1, nil, codeStmt())
	if IsDeclaredPrivate(top) {
		t.Fatal("a top-level definition has no scope to declare it private")
	}
}

func TestIsDeclaredPrivate_CompactNameKeepsItsSeparator(t *testing.T) {
	outer := moduleNode("A", 1, nil, privateStmt("B::C"))
	compact := classNode("B::C", 2, outer)

	if !IsDeclaredPrivate(compact) {
		t.Fatal("the written name B::C must match A's declaration verbatim")
	}
}

func TestIsDeclaredPrivate_DeepCompactNesting(t *testing.T) {
	root := moduleNode("Root", 1, nil, privateStmt("A::B::C"))
	a := moduleNode("A", 2, root)
	compact := classNode("B::C", 3, a)

	if !IsDeclaredPrivate(compact) {
		t.Fatal("from Root the compact class accumulates to A::B::C")
	}
}

func TestIsDeclaredPrivate_DeepCompactSuffixMustMatchVantage(t *testing.T) {
	root := moduleNode("Root", 1, nil, privateStmt("B::C"))
	a := moduleNode("A", 2, root)
	compact := classNode("B::C", 3, a)

	if IsDeclaredPrivate(compact) {
		t.Fatal("from Root the name is A::B::C; a bare B::C there must not match")
	}
}
