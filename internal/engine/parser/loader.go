// # internal/engine/parser/loader.go
package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader(grammarsPath string) (*GrammarLoader, error) {
	if grammarsPath != "" {
		if info, err := os.Stat(grammarsPath); err == nil && !info.IsDir() {
			return nil, fmt.Errorf("grammars path is not a directory: %s", grammarsPath)
		}
	}

	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
	}

	gl.languages["ruby"] = sitter.NewLanguage(tree_sitter_ruby.Language())

	return gl, nil
}

func (gl *GrammarLoader) Language(lang string) *sitter.Language {
	return gl.languages[lang]
}
