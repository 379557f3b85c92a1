package formats

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"undoc/internal/engine/doc"
	"undoc/internal/shared/util"
)

type MarkdownReportData struct {
	FileCount       int
	DefinitionCount int
	Offenses        []doc.Offense
	Exemptions      map[doc.Exemption]int
}

type MarkdownReportOptions struct {
	ProjectRoot         string
	Version             string
	GeneratedAt         time.Time
	CollapsibleSections bool
}

// exemptionOrder fixes the row order in the summary table.
var exemptionOrder = []doc.Exemption{
	doc.ExemptDocumented,
	doc.ExemptNamespace,
	doc.ExemptBodiless,
	doc.ExemptPrivate,
	doc.ExemptSuppressed,
	doc.ExemptOuterSuppressed,
}

type MarkdownGenerator struct{}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

// Generate renders a self-contained report section, suitable both for a
// standalone file and for marker injection into an existing document.
func (m *MarkdownGenerator) Generate(data MarkdownReportData, opts MarkdownReportOptions) (string, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("## Missing Documentation\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(fmt.Sprintf("| Files scanned | %d |\n", data.FileCount))
	b.WriteString(fmt.Sprintf("| Definitions checked | %d |\n", data.DefinitionCount))
	b.WriteString(fmt.Sprintf("| Offenses | %d |\n", len(data.Offenses)))
	for _, reason := range exemptionOrder {
		if count := data.Exemptions[reason]; count > 0 {
			b.WriteString(fmt.Sprintf("| Exempt (%s) | %d |\n", reason, count))
		}
	}
	b.WriteString("\n")

	m.writeOffenses(&b, data.Offenses, opts.ProjectRoot, opts.CollapsibleSections)

	b.WriteString(fmt.Sprintf("_Generated by undoc %s at %s._\n",
		nonEmpty(opts.Version, "dev"),
		opts.GeneratedAt.UTC().Format(time.RFC3339)))
	return b.String(), nil
}

func (m *MarkdownGenerator) writeOffenses(b *strings.Builder, offenses []doc.Offense, projectRoot string, collapsible bool) {
	b.WriteString("### Offenses\n")
	if len(offenses) == 0 {
		b.WriteString("Every top-level class and module is documented.\n\n")
		return
	}

	byFile := make(map[string][]doc.Offense, len(offenses))
	for _, o := range offenses {
		key := relPath(projectRoot, o.File)
		byFile[key] = append(byFile[key], o)
	}

	rows := make([]string, 0, len(offenses))
	for _, file := range util.SortedStringKeys(byFile) {
		for _, o := range byFile[file] {
			rows = append(rows, fmt.Sprintf("| `%s:%d` | `%s %s` | %s |\n",
				file, o.Line, o.Kind, o.Name, o.Message))
		}
	}

	m.writeTableWithCollapse(
		b,
		"Offense details",
		collapsible,
		len(rows) > 15,
		[]string{"| Location | Definition | Message |\n", "| --- | --- | --- |\n"},
		rows,
	)
}

func (m *MarkdownGenerator) writeTableWithCollapse(
	b *strings.Builder,
	summary string,
	collapsible bool,
	collapse bool,
	header []string,
	rows []string,
) {
	if collapsible && collapse {
		b.WriteString("<details>\n")
		b.WriteString("<summary>")
		b.WriteString(summary)
		b.WriteString("</summary>\n\n")
	}
	for _, line := range header {
		b.WriteString(line)
	}
	for _, line := range rows {
		b.WriteString(line)
	}
	b.WriteString("\n")
	if collapsible && collapse {
		b.WriteString("</details>\n\n")
	}
}

func relPath(root, path string) string {
	root = strings.TrimSpace(root)
	path = strings.TrimSpace(path)
	if root == "" || path == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
