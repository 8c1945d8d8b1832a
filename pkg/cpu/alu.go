package cpu

// ALU operations. Each one is a pure function of its operands and returns
// the result together with the flags that follow it. Arithmetic wraps;
// overflow is reported through C and H, never as an error.

// Add implements ADD A, r.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add(a, v uint8) (uint8, Flags) {
	sum := uint16(a) + uint16(v)
	res := uint8(sum)
	return res, Flags{
		Zero:      res == 0,
		HalfCarry: a&0x0F+v&0x0F > 0x0F,
		Carry:     sum > 0xFF,
	}
}

// Add16 implements ADD HL, rr. Z is always reset.
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func Add16(hl, v uint16) (uint16, Flags) {
	sum := uint32(hl) + uint32(v)
	return uint16(sum), Flags{
		HalfCarry: hl&0x0FFF+v&0x0FFF > 0x0FFF,
		Carry:     sum > 0xFFFF,
	}
}

// Adc implements ADC A, r: a + v + carry-in.
func Adc(a, v uint8, carry bool) (uint8, Flags) {
	cin := b2u(carry)
	sum := uint16(a) + uint16(v) + uint16(cin)
	res := uint8(sum)
	return res, Flags{
		Zero:      res == 0,
		HalfCarry: a&0x0F+v&0x0F+cin > 0x0F,
		Carry:     sum > 0xFF,
	}
}

// Sub implements SUB r.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub(a, v uint8) (uint8, Flags) {
	res := a - v
	return res, Flags{
		Zero:      res == 0,
		Subtract:  true,
		HalfCarry: a&0x0F < v&0x0F,
		Carry:     a < v,
	}
}

// Sbc implements SBC A, r: a - v - carry-in.
func Sbc(a, v uint8, carry bool) (uint8, Flags) {
	cin := b2u(carry)
	res := a - v - cin
	return res, Flags{
		Zero:      res == 0,
		Subtract:  true,
		HalfCarry: uint16(a&0x0F) < uint16(v&0x0F)+uint16(cin),
		Carry:     uint16(a) < uint16(v)+uint16(cin),
	}
}

// And implements AND r. H is always set and C always reset; unlike OR and
// XOR this is what the silicon does.
func And(a, v uint8) (uint8, Flags) {
	res := a & v
	return res, Flags{Zero: res == 0, HalfCarry: true}
}

// Or implements OR r.
func Or(a, v uint8) (uint8, Flags) {
	res := a | v
	return res, Flags{Zero: res == 0}
}

// Xor implements XOR r.
func Xor(a, v uint8) (uint8, Flags) {
	res := a ^ v
	return res, Flags{Zero: res == 0}
}

// Cp implements CP r: the flags of a - v with the difference discarded.
func Cp(a, v uint8) Flags {
	_, f := Sub(a, v)
	return f
}

// Inc implements INC r. It takes the flags in effect before the
// instruction because C passes through untouched.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func Inc(x uint8, prev Flags) (uint8, Flags) {
	res := x + 1
	return res, Flags{
		Zero:      res == 0,
		HalfCarry: x&0x0F == 0x0F,
		Carry:     prev.Carry,
	}
}

// Dec implements DEC r. C passes through untouched.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func Dec(x uint8, prev Flags) (uint8, Flags) {
	res := x - 1
	return res, Flags{
		Zero:      res == 0,
		Subtract:  true,
		HalfCarry: x&0x0F == 0,
		Carry:     prev.Carry,
	}
}
