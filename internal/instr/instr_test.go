package instr

import "testing"

func TestOpCodeValuesMatchReference(t *testing.T) {
	cases := map[OpCode]byte{
		NOP: 0x00, BIPUSH: 0x01, IPUSH: 0x02, POP: 0x04, POP2: 0x05,
		POPN: 0x06, DUP: 0x07, DUP2: 0x08, LOADC: 0x09, LOADA: 0x0a,
		NEW: 0x0b, SNEW: 0x0c,
		ILOAD: 0x10, DLOAD: 0x11, ALOAD: 0x12,
		ISTORE: 0x20, DSTORE: 0x21, ASTORE: 0x22,
		IADD: 0x30, DADD: 0x31, ISUB: 0x34, DSUB: 0x35,
		IMUL: 0x38, DMUL: 0x39, IDIV: 0x3c, DDIV: 0x3d,
		INEG: 0x40, DNEG: 0x41, ICMP: 0x44, DCMP: 0x45,
		I2D: 0x60, D2I: 0x61, I2C: 0x62,
		JMP: 0x70, JE: 0x71, JNE: 0x72, JL: 0x73, JGE: 0x74, JG: 0x75, JLE: 0x76,
		CALL: 0x80, RET: 0x88, IRET: 0x89, DRET: 0x8a, ARET: 0x8b,
		IPRINT: 0xa0, DPRINT: 0xa1, CPRINT: 0xa2, SPRINT: 0xa3, PRINTL: 0xaf,
		ISCAN: 0xb0, DSCAN: 0xb1, CSCAN: 0xb2,
	}
	for op, want := range cases {
		if byte(op) != want {
			t.Errorf("%s = 0x%02x, want 0x%02x", op, byte(op), want)
		}
	}
}

func TestInstructionString(t *testing.T) {
	cases := []struct {
		in   Instruction
		want string
	}{
		{NewOp(RET), "ret"},
		{NewOp1(IPUSH, 42), "ipush 42"},
		{NewOp1(BIPUSH, 97), "bipush 97"},
		{NewOp2(LOADA, 0, 3), "loada 0, 3"},
		{NewOp1(JMP, 12), "jmp 12"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("%#v.String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsJump(t *testing.T) {
	for _, op := range []OpCode{JMP, JE, JNE, JL, JGE, JG, JLE} {
		if !IsJump(op) {
			t.Errorf("IsJump(%s) = false, want true", op)
		}
	}
	for _, op := range []OpCode{IADD, CALL, RET, NOP} {
		if IsJump(op) {
			t.Errorf("IsJump(%s) = true, want false", op)
		}
	}
}

func TestWidthsMatchReferenceParamOpt(t *testing.T) {
	cases := map[OpCode][]int{
		BIPUSH: {1}, IPUSH: {4}, POPN: {4}, LOADC: {2}, LOADA: {2, 4},
		SNEW: {4}, CALL: {2},
		JMP: {2}, JE: {2}, JNE: {2}, JL: {2}, JGE: {2}, JG: {2}, JLE: {2},
	}
	for op, want := range cases {
		got, ok := Widths[op]
		if !ok {
			t.Errorf("Widths[%s] missing", op)
			continue
		}
		if len(got) != len(want) {
			t.Fatalf("Widths[%s] = %v, want %v", op, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Widths[%s][%d] = %d, want %d", op, i, got[i], want[i])
			}
		}
	}
	if _, ok := Widths[NOP]; ok {
		t.Errorf("Widths[NOP] should be absent (no operands)")
	}
}
