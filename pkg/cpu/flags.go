package cpu

// SM83 flag bit positions in the F register. Bits 3-0 are always zero.
const (
	FlagZ uint8 = 0x80 // Zero
	FlagN uint8 = 0x40 // Subtract
	FlagH uint8 = 0x20 // Half-carry
	FlagC uint8 = 0x10 // Carry
)

// Flags is the unpacked condition state left by the last flag-setting
// instruction.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Encode packs f into the F register layout.
func Encode(f Flags) uint8 {
	return bsel(f.Zero, FlagZ, 0) |
		bsel(f.Subtract, FlagN, 0) |
		bsel(f.HalfCarry, FlagH, 0) |
		bsel(f.Carry, FlagC, 0)
}

// Decode unpacks an F register byte. The low nibble is ignored.
func Decode(b uint8) Flags {
	return Flags{
		Zero:      b&FlagZ != 0,
		Subtract:  b&FlagN != 0,
		HalfCarry: b&FlagH != 0,
		Carry:     b&FlagC != 0,
	}
}

func (f Flags) String() string {
	buf := []byte("----")
	if f.Zero {
		buf[0] = 'Z'
	}
	if f.Subtract {
		buf[1] = 'N'
	}
	if f.HalfCarry {
		buf[2] = 'H'
	}
	if f.Carry {
		buf[3] = 'C'
	}
	return string(buf)
}

func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}

func b2u(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}
