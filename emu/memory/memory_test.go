package memory

import "testing"

func newFullyPopulated() *Memory {
	return &Memory{Limit: uint32(Channels) * uint32(Sectors)}
}

func TestLoopAliasing(t *testing.T) {
	cases := []struct {
		ch   uint8
		size int
	}{
		{ChanF, 4},
		{ChanH, 16},
		{ChanE, 8},
		{ChanU, 1},
		{ChanL, 1},
		{ChanV, 4},
		{ChanR, 4},
	}

	for _, c := range cases {
		m := newFullyPopulated()
		for k := 0; k < c.size; k++ {
			v := uint32(0x123450 + k)
			m.Write(c.ch, uint8(k), v)
			got := m.Read(c.ch, uint8(k))
			if got != v&0xffffff {
				t.Errorf("channel %o index %d: got %08o, want %08o", c.ch, k, got, v)
			}
		}
		if c.size > 0 {
			wrapped := m.Read(c.ch, uint8(c.size))
			base := m.Read(c.ch, 0)
			if wrapped != base {
				t.Errorf("channel %o: index %d did not alias to 0", c.ch, c.size)
			}
		}
	}
}

func TestBulkReadWrite(t *testing.T) {
	m := newFullyPopulated()
	m.Write(3, 10, 0xabcdef)
	got := m.Read(3, 10)
	if got != 0xabcdef {
		t.Errorf("bulk read/write: got %08o, want %08o", got, 0xabcdef)
	}
}

func TestOutOfRangeIsSilent(t *testing.T) {
	m := newFullyPopulated()
	if got := m.Read(47, 0); got != 0 {
		t.Errorf("channel 47 should be out of range: got %d", got)
	}
	m.Write(47, 0, 1) // must not panic
}

func TestUnpopulatedReadsZero(t *testing.T) {
	m := &Memory{Limit: 10} // only channel 0, sectors 0..9 populated
	m.Write(0, 5, 0x42)
	if got := m.Read(0, 5); got != 0x42 {
		t.Errorf("populated cell should hold write: got %08o", got)
	}
	m.Write(0, 20, 0x42) // beyond Limit
	if got := m.Read(0, 20); got != 0 {
		t.Errorf("unpopulated cell should read 0: got %08o", got)
	}
}

func TestWriteMasksTo24Bits(t *testing.T) {
	m := newFullyPopulated()
	m.Write(ChanU, 0, 0xff800123)
	if m.U != 0x800123 {
		t.Errorf("write should mask to 24 bits: got %08x", m.U)
	}
}

func TestIsLoopChannel(t *testing.T) {
	for _, ch := range []uint8{ChanF, ChanH, ChanE, ChanU, ChanL, ChanV, ChanR} {
		if !IsLoopChannel(ch) {
			t.Errorf("channel %o should be a loop channel", ch)
		}
	}
	if IsLoopChannel(3) {
		t.Errorf("channel 3 should not be a loop channel")
	}
}
