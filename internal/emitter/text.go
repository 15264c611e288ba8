// Package emitter implements the two stateless C0 code generators:
// EncodeText produces the human-readable assembly listing, and
// EncodeBinary produces the bit-exact binary module format. Both take
// an *analyser.Program and never observe or mutate analyser state;
// emission is a pure function of the already-analysed program.
package emitter

import (
	"fmt"
	"strings"

	"github.com/cwbudde/c0c/internal/analyser"
)

// EncodeText renders p as the textual assembly format: a `.constants:`
// section listing every constant-pool entry, a `.start:` section for
// the global initialisation code, a `.functions:` summary table, and
// one `.Fi:` section per function body.
func EncodeText(p *analyser.Program) string {
	var b strings.Builder

	b.WriteString(".constants:\n")
	for i, c := range p.Constants.Entries() {
		fmt.Fprintf(&b, "%d S \"%s\"\n", i, c.Name)
	}

	b.WriteString(".start:\n")
	for i, in := range p.Start {
		fmt.Fprintf(&b, "%d   %s\n", i, in)
	}

	fns := p.Constants.Functions()

	b.WriteString(".functions:\n")
	for i, fn := range fns {
		fmt.Fprintf(&b, "%d %d %d 1\n", i, fn.Index, paramSlotCount(fn))
	}

	for i, fn := range fns {
		fmt.Fprintf(&b, ".F%d:\n", i)
		for j, in := range p.Code[fn.Index] {
			fmt.Fprintf(&b, "%d   %s\n", j, in)
		}
	}

	return b.String()
}
