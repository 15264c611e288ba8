package emitter

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cwbudde/c0c/internal/analyser"
	"github.com/cwbudde/c0c/internal/instr"
	"github.com/cwbudde/c0c/internal/symtab"
)

// Magic and Version identify the C0 binary module format.
var (
	Magic   = [4]byte{0x43, 0x30, 0x3a, 0x29}
	Version = uint32(0x00000001)
)

// Constant-pool entry tags. TagInt and TagDouble are reserved but never
// emitted: only string literals and function names ever populate the
// constant pool, both tagged TagString.
const (
	TagString byte = 0x00
	TagInt    byte = 0x01
	TagDouble byte = 0x02
)

// EncodeBinary renders p as the big-endian binary module format:
// 4-byte magic, 4-byte version, a length-prefixed constant pool, the
// start code, and one record per function (name index, parameter-slot
// count, static level, instruction stream).
func EncodeBinary(p *analyser.Program) ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.Write(Magic[:])
	if err := binary.Write(buf, binary.BigEndian, Version); err != nil {
		return nil, fmt.Errorf("c0c: write version: %w", err)
	}

	entries := p.Constants.Entries()
	if err := writeU2(buf, len(entries)); err != nil {
		return nil, fmt.Errorf("c0c: write constant count: %w", err)
	}
	for _, c := range entries {
		if err := writeConstant(buf, c); err != nil {
			return nil, fmt.Errorf("c0c: write constant %q: %w", c.Name, err)
		}
	}

	if err := writeInstructions(buf, p.Start); err != nil {
		return nil, fmt.Errorf("c0c: write start code: %w", err)
	}

	fns := p.Constants.Functions()
	if err := writeU2(buf, len(fns)); err != nil {
		return nil, fmt.Errorf("c0c: write function count: %w", err)
	}
	for _, fn := range fns {
		if err := writeU2(buf, fn.Index); err != nil {
			return nil, fmt.Errorf("c0c: write function name index: %w", err)
		}
		if err := writeU2(buf, paramSlotCount(fn)); err != nil {
			return nil, fmt.Errorf("c0c: write function param count: %w", err)
		}
		if err := writeU2(buf, 1); err != nil { // static level: always 1, no nested functions
			return nil, fmt.Errorf("c0c: write function level: %w", err)
		}
		if err := writeInstructions(buf, p.Code[fn.Index]); err != nil {
			return nil, fmt.Errorf("c0c: write function body: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// paramSlotCount returns a function's parameter count in stack slots
// rather than in declared parameters: a double parameter occupies two
// slots, so it counts twice.
func paramSlotCount(fn *symtab.Symbol) int {
	n := 0
	for _, t := range fn.ParamTypes {
		if t == symtab.Double {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func writeConstant(buf *bytes.Buffer, c *symtab.Symbol) error {
	if c.IsFunction || c.Type == symtab.String {
		buf.WriteByte(TagString)
		return writeString(buf, c.Name)
	}
	if c.Type == symtab.Int {
		buf.WriteByte(TagInt)
		return nil
	}
	buf.WriteByte(TagDouble)
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	if err := writeU2(buf, len(s)); err != nil {
		return err
	}
	buf.WriteString(s)
	return nil
}

func writeInstructions(buf *bytes.Buffer, code []instr.Instruction) error {
	if err := writeU2(buf, len(code)); err != nil {
		return err
	}
	for _, in := range code {
		buf.WriteByte(byte(in.Op))
		widths, ok := instr.Widths[in.Op]
		if !ok {
			continue
		}
		if err := writeOperand(buf, widths[0], in.X); err != nil {
			return err
		}
		if len(widths) == 2 {
			if err := writeOperand(buf, widths[1], in.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeOperand(buf *bytes.Buffer, width int, v int32) error {
	switch width {
	case 1:
		buf.WriteByte(byte(v))
		return nil
	case 2:
		return writeU2(buf, int(v))
	case 4:
		return binary.Write(buf, binary.BigEndian, v)
	default:
		return fmt.Errorf("unsupported operand width %d", width)
	}
}

func writeU2(buf *bytes.Buffer, v int) error {
	if v < 0 || v > 0xffff {
		return fmt.Errorf("value %d does not fit in a u2 field", v)
	}
	return binary.Write(buf, binary.BigEndian, uint16(v))
}
