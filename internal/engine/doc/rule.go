package doc

import (
	"regexp"
	"strings"

	"undoc/internal/engine/parser"
)

const (
	MsgClass  = "Missing top-level class documentation comment."
	MsgModule = "Missing top-level module documentation comment."
)

type Config struct {
	RequireForPrivate bool
}

type Offense struct {
	File    string
	Line    int
	Kind    parser.NodeKind
	Name    string // qualified name, for reports
	Message string
}

// Exemption names the check that let a definition pass.
type Exemption int

const (
	ExemptNone Exemption = iota
	ExemptBodiless
	ExemptNamespace
	ExemptPrivate
	ExemptDocumented
	ExemptSuppressed
	ExemptOuterSuppressed
)

func (x Exemption) String() string {
	switch x {
	case ExemptBodiless:
		return "bodiless"
	case ExemptNamespace:
		return "namespace"
	case ExemptPrivate:
		return "private"
	case ExemptDocumented:
		return "documented"
	case ExemptSuppressed:
		return "nodoc"
	case ExemptOuterSuppressed:
		return "outer_nodoc"
	default:
		return "none"
	}
}

// Verdict is the outcome for one definition. Offense is nil when the
// definition passed; Exemption then names the reason.
type Verdict struct {
	Offense   *Offense
	Exemption Exemption
}

type FileResult struct {
	Path     string
	Checked  int
	Offenses []Offense
	Exempt   map[Exemption]int
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Check evaluates one class or module definition. The checks short
// circuit in a fixed order; absence of a comment, parent, or matching
// declaration is a plain "not found", never an error.
func (e *Engine) Check(file *parser.File, node *parser.DefinitionNode) Verdict {
	if node.Body == nil {
		return Verdict{Exemption: ExemptBodiless}
	}
	if IsNamespace(node.Body) {
		return Verdict{Exemption: ExemptNamespace}
	}
	if IsDeclaredPrivate(node) && !e.cfg.RequireForPrivate {
		return Verdict{Exemption: ExemptPrivate}
	}
	if isDocumented(node, file.Comments) {
		return Verdict{Exemption: ExemptDocumented}
	}
	if IsSuppressed(node, file.Comments) {
		return Verdict{Exemption: ExemptSuppressed}
	}
	if outer := compactOuter(file, node); outer != nil && IsSuppressedAll(outer, file.Comments) {
		return Verdict{Exemption: ExemptOuterSuppressed}
	}

	msg := MsgClass
	if node.Kind == parser.KindModule {
		msg = MsgModule
	}
	return Verdict{Offense: &Offense{
		File:    file.Path,
		Line:    node.KeywordLine,
		Kind:    node.Kind,
		Name:    parser.QualifiedName(node),
		Message: msg,
	}}
}

// CheckFile evaluates every class and module definition in the file.
func (e *Engine) CheckFile(file *parser.File) FileResult {
	result := FileResult{
		Path:   file.Path,
		Exempt: make(map[Exemption]int),
	}
	for _, def := range file.Definitions {
		verdict := e.Check(file, def)
		result.Checked++
		if verdict.Offense != nil {
			result.Offenses = append(result.Offenses, *verdict.Offense)
			continue
		}
		result.Exempt[verdict.Exemption]++
	}
	return result
}

// compactOuter resolves the outermost segment of a compact name like
// "Foo::Bar" to the module it references, when one exists in the file.
func compactOuter(file *parser.File, node *parser.DefinitionNode) *parser.DefinitionNode {
	idx := strings.Index(node.Name, "::")
	if idx < 0 {
		return nil
	}
	return file.OuterModule(node.Name[:idx])
}

var (
	annotationPattern = regexp.MustCompile(`^#+\s*(TODO|FIXME|OPTIMIZE|HACK|REVIEW|NOTE)\b`)
	directivePattern  = regexp.MustCompile(`^#\s*rubocop\s*:`)
	magicPattern      = regexp.MustCompile(`^#\s*(frozen_string_literal|encoding|coding|warn_indent|shareable_constant_value)\s*:`)
)

// isDocumented reports whether a documentation comment block sits
// directly above the keyword line. The block is the run of contiguous
// comment lines ending at the line above; any substantive line in it
// counts. Suppression annotations, keyword annotations, linter
// directives, shebangs, and magic comments are not documentation.
func isDocumented(node *parser.DefinitionNode, comments parser.CommentTable) bool {
	for line := node.KeywordLine - 1; line > 0; line-- {
		c, ok := comments.At(line)
		if !ok {
			return false
		}
		if isSubstantiveComment(c.Text) {
			return true
		}
	}
	return false
}

func isSubstantiveComment(text string) bool {
	if strings.HasPrefix(text, "#!") {
		return false
	}
	if nodocPattern.MatchString(text) {
		return false
	}
	if annotationPattern.MatchString(text) {
		return false
	}
	if directivePattern.MatchString(text) {
		return false
	}
	if magicPattern.MatchString(text) {
		return false
	}
	return true
}
