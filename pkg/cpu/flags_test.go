package cpu

import "testing"

// TestFlagRoundTrip checks both directions of the codec over the whole domain.
func TestFlagRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		if got := Encode(Decode(uint8(b))); got != uint8(b)&0xF0 {
			t.Errorf("Encode(Decode(%02X)) = %02X, want %02X", b, got, uint8(b)&0xF0)
		}
	}
	for i := 0; i < 16; i++ {
		f := Flags{Zero: i&8 != 0, Subtract: i&4 != 0, HalfCarry: i&2 != 0, Carry: i&1 != 0}
		if got := Decode(Encode(f)); got != f {
			t.Errorf("Decode(Encode(%s)) = %s", f, got)
		}
	}
}

func TestFlagBitPositions(t *testing.T) {
	tests := []struct {
		f    Flags
		want uint8
	}{
		{Flags{}, 0x00},
		{Flags{Zero: true}, 0x80},
		{Flags{Subtract: true}, 0x40},
		{Flags{HalfCarry: true}, 0x20},
		{Flags{Carry: true}, 0x10},
		{Flags{true, true, true, true}, 0xF0},
	}
	for _, tc := range tests {
		if got := Encode(tc.f); got != tc.want {
			t.Errorf("Encode(%s) = %02X, want %02X", tc.f, got, tc.want)
		}
	}
	if Decode(0x0F) != (Flags{}) {
		t.Error("Decode must ignore bits 3-0")
	}
}

func TestFlagString(t *testing.T) {
	if s := (Flags{Zero: true, Carry: true}).String(); s != "Z--C" {
		t.Errorf("String() = %q, want Z--C", s)
	}
}
