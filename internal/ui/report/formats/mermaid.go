package formats

import (
	"fmt"
	"strings"

	"undoc/internal/engine/doc"
)

type MermaidGenerator struct{}

func NewMermaidGenerator() *MermaidGenerator {
	return &MermaidGenerator{}
}

// Generate renders a pie chart of the latest scan's verdicts. Zero-count
// slices are dropped so empty projects render a bare chart header.
func (m *MermaidGenerator) Generate(data MarkdownReportData) (string, error) {
	documented := data.Exemptions[doc.ExemptDocumented]
	exempt := 0
	for _, reason := range exemptionOrder {
		if reason == doc.ExemptDocumented {
			continue
		}
		exempt += data.Exemptions[reason]
	}

	var b strings.Builder
	b.WriteString("pie title Top-level documentation\n")
	writePieSlice(&b, "Documented", documented)
	writePieSlice(&b, "Exempt", exempt)
	writePieSlice(&b, "Missing", len(data.Offenses))
	return b.String(), nil
}

func writePieSlice(b *strings.Builder, label string, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(fmt.Sprintf("    %q : %d\n", label, count))
}
