package disassemble

import (
	"strings"
	"testing"
)

func TestModeDependentMnemonic(t *testing.T) {
	w := uint32(0x2) << 20 // opcode 2, channel/sector 0
	if got := Disassemble(w, false); !strings.HasPrefix(got, "TMI") {
		t.Errorf("D17B opcode 2 = %q, want TMI prefix", got)
	}
	if got := Disassemble(w, true); !strings.HasPrefix(got, "TZE") {
		t.Errorf("D37C opcode 2 = %q, want TZE prefix", got)
	}
}

func TestFlagBitAppendsStar(t *testing.T) {
	w := uint32(0xD)<<20 | uint32(1)<<19 // ADD, flag set
	got := Disassemble(w, true)
	if !strings.HasPrefix(got, "ADD*") {
		t.Errorf("flagged ADD = %q, want ADD* prefix", got)
	}
}

func TestChannelSectorOctal(t *testing.T) {
	w := uint32(0x9)<<20 | uint32(5)<<9 | uint32(3)<<2 // CLA ch=5 sec=3
	got := Disassemble(w, true)
	if !strings.Contains(got, "05,003") {
		t.Errorf("CLA operand = %q, want channel/sector 05,003", got)
	}
}

func TestUnassignedOpcode(t *testing.T) {
	w := uint32(0x3) << 20
	got := Disassemble(w, true)
	if !strings.HasPrefix(got, "?") {
		t.Errorf("opcode 3 = %q, want ? mnemonic", got)
	}
}
