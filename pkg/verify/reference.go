package verify

import (
	"github.com/oisee/sm83-alu/pkg/cpu"
	"github.com/oisee/sm83-alu/pkg/inst"
)

// reference computes the expected register file after in, using plain int
// arithmetic with carries and borrows read off the widened result.
func reference(in inst.Instruction, r cpu.Registers) cpu.Registers {
	a := int(r.A)
	cin := 0
	if r.F.Carry {
		cin = 1
	}

	switch in.Op {
	case inst.ADDHL:
		hl := int(r.H)<<8 | int(r.L)
		v := pairValue(r, in.SrcPair)
		sum := hl + v
		r.H, r.L = uint8(sum>>8), uint8(sum)
		r.F = cpu.Flags{
			HalfCarry: (hl^v^sum)&0x1000 != 0,
			Carry:     sum&0x10000 != 0,
		}
		return r

	case inst.INC, inst.DEC:
		x := int(r.Read(in.Src))
		d := 1
		if in.Op == inst.DEC {
			d = -1
		}
		res := x + d
		r.Write(in.Src, uint8(res))
		r.F = cpu.Flags{
			Zero:      uint8(res) == 0,
			Subtract:  in.Op == inst.DEC,
			HalfCarry: (x^1^res)&0x10 != 0,
			Carry:     r.F.Carry,
		}
		return r
	}

	v := int(r.Read(in.Src))
	var res int
	var f cpu.Flags
	switch in.Op {
	case inst.ADD, inst.ADC:
		if in.Op == inst.ADD {
			cin = 0
		}
		res = a + v + cin
		f.HalfCarry = (a^v^res)&0x10 != 0
		f.Carry = res&0x100 != 0
	case inst.SUB, inst.SBC, inst.CP:
		if in.Op != inst.SBC {
			cin = 0
		}
		res = a - v - cin
		f.Subtract = true
		f.HalfCarry = (a^v^res)&0x10 != 0
		f.Carry = res < 0
	case inst.AND:
		res = a & v
		f.HalfCarry = true
	case inst.OR:
		res = a | v
	case inst.XOR:
		res = a ^ v
	}
	f.Zero = uint8(res) == 0
	r.F = f
	if in.Op != inst.CP {
		r.A = uint8(res)
	}
	return r
}

func pairValue(r cpu.Registers, p inst.Pair) int {
	switch p {
	case inst.BC:
		return int(r.B)<<8 | int(r.C)
	case inst.DE:
		return int(r.D)<<8 | int(r.E)
	}
	return int(r.H)<<8 | int(r.L)
}
