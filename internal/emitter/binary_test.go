package emitter

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/cwbudde/c0c/internal/instr"
)

func TestEncodeBinaryHeader(t *testing.T) {
	prog := analyse(t, "void main() { return; }")
	data, err := EncodeBinary(prog)
	if err != nil {
		t.Fatalf("EncodeBinary failed: %v", err)
	}
	if !bytes.Equal(data[:4], Magic[:]) {
		t.Fatalf("magic = % x, want % x", data[:4], Magic)
	}
	gotVersion := binary.BigEndian.Uint32(data[4:8])
	if gotVersion != Version {
		t.Errorf("version = 0x%08x, want 0x%08x", gotVersion, Version)
	}
}

func TestEncodeBinaryConstantPoolLayout(t *testing.T) {
	prog := analyse(t, "void main() { return; }")
	data, err := EncodeBinary(prog)
	if err != nil {
		t.Fatalf("EncodeBinary failed: %v", err)
	}

	off := 8
	constCount := binary.BigEndian.Uint16(data[off : off+2])
	off += 2
	if constCount != 1 {
		t.Fatalf("constant count = %d, want 1 (just \"main\")", constCount)
	}

	tag := data[off]
	off++
	if tag != TagString {
		t.Fatalf("constant tag = 0x%02x, want TagString 0x%02x", tag, TagString)
	}
	nameLen := int(binary.BigEndian.Uint16(data[off : off+2]))
	off += 2
	if nameLen != 4 {
		t.Fatalf("name length = %d, want 4 (\"main\")", nameLen)
	}
	name := string(data[off : off+nameLen])
	off += nameLen
	if name != "main" {
		t.Fatalf("name = %q, want \"main\"", name)
	}

	// Start code: 2-byte instruction count. There are no globals, and
	// main's explicit `ret` lives in the function record, not the start
	// block.
	startCount := binary.BigEndian.Uint16(data[off : off+2])
	if startCount != 0 {
		t.Errorf("start instruction count = %d, want 0", startCount)
	}
}

func TestEncodeBinaryFunctionRecord(t *testing.T) {
	prog := analyse(t, "int f(int a, int b) { return a; } void main() { f(1, 2); }")
	data, err := EncodeBinary(prog)
	if err != nil {
		t.Fatalf("EncodeBinary failed: %v", err)
	}

	// Walk past the header, constant pool, and start block to reach
	// the function table without re-deriving its offset by hand: rely
	// on the same field widths EncodeBinary writes.
	off := 8
	constCount := int(binary.BigEndian.Uint16(data[off : off+2]))
	off += 2
	for i := 0; i < constCount; i++ {
		tag := data[off]
		off++
		if tag == TagString {
			n := int(binary.BigEndian.Uint16(data[off : off+2]))
			off += 2 + n
		}
	}
	startCount := int(binary.BigEndian.Uint16(data[off : off+2]))
	off += 2
	for i := 0; i < startCount; i++ {
		off += instructionByteLen(data, off)
	}

	fnCount := binary.BigEndian.Uint16(data[off : off+2])
	off += 2
	if fnCount != 2 {
		t.Fatalf("function count = %d, want 2", fnCount)
	}

	nameIdx := binary.BigEndian.Uint16(data[off : off+2])
	off += 2
	paramCount := binary.BigEndian.Uint16(data[off : off+2])
	off += 2
	level := binary.BigEndian.Uint16(data[off : off+2])
	off += 2

	if nameIdx != 0 {
		t.Errorf("f's name index = %d, want 0", nameIdx)
	}
	if paramCount != 2 {
		t.Errorf("f's param count = %d, want 2", paramCount)
	}
	if level != 1 {
		t.Errorf("f's level = %d, want 1", level)
	}
}

// instructionByteLen re-derives the exact byte length an instruction
// occupies by reading its opcode and the corresponding operand widths
// from internal/instr.Widths, mirroring EncodeBinary's own write loop.
func instructionByteLen(data []byte, off int) int {
	op := instr.OpCode(data[off])
	widths, ok := instr.Widths[op]
	if !ok {
		return 1
	}
	n := 1
	for _, w := range widths {
		n += w
	}
	return n
}
