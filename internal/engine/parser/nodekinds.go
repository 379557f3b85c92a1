package parser

// Tree-sitter node kinds for Ruby traversal. Names match the grammar's
// node-types.json; traversal uses direct node walks, not the query
// language.
const (
	rubyNodeProgram = "program"

	// Definitions
	rubyNodeClass          = "class"
	rubyNodeModule         = "module"
	rubyNodeSingletonClass = "singleton_class"
	rubyNodeAssignment     = "assignment"

	// Names
	rubyNodeConstant        = "constant"
	rubyNodeScopeResolution = "scope_resolution"

	// Bodies and calls
	rubyNodeBodyStatement = "body_statement"
	rubyNodeCall          = "call"
	rubyNodeIdentifier    = "identifier"
	rubyNodeArgumentList  = "argument_list"

	// Visibility declaration arguments
	rubyNodeSimpleSymbol    = "simple_symbol"
	rubyNodeDelimitedSymbol = "delimited_symbol"
	rubyNodeString          = "string"
	rubyNodeStringContent   = "string_content"

	rubyNodeComment = "comment"
)
