// # internal/ui/report/formats/tsv.go
package formats

import (
	"fmt"
	"strings"

	"undoc/internal/engine/doc"
)

type TSVGenerator struct {
	offenses []doc.Offense
}

func NewTSVGenerator(offenses []doc.Offense) *TSVGenerator {
	return &TSVGenerator{offenses: offenses}
}

func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("File\tLine\tKind\tName\tMessage\n")
	for _, o := range t.offenses {
		buf.WriteString(fmt.Sprintf("%s\t%d\t%s\t%s\t%s\n",
			o.File, o.Line, o.Kind, o.Name, o.Message))
	}

	return buf.String(), nil
}
