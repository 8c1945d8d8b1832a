// Package verify checks the ALU against an independent reference model
// and decides equivalence of instruction sequences.
package verify

import (
	"github.com/oisee/sm83-alu/pkg/cpu"
	"github.com/oisee/sm83-alu/pkg/inst"
)

// FlagMask selects packed F bits that are dead and ignored by equivalence
// checks. A set bit means that flag is ignored.
type FlagMask = uint8

const (
	DeadNone FlagMask = 0x00
	DeadHalf FlagMask = cpu.FlagH | cpu.FlagN // BCD helper flags only DAA reads
	DeadAll  FlagMask = 0xFF                  // registers only
)

// TestVectors are fixed inputs used for QuickCheck to reject most non-matches.
var TestVectors = []cpu.Registers{
	{A: 0x00, B: 0x00, C: 0x00, D: 0x00, E: 0x00, H: 0x00, L: 0x00},
	{A: 0xFF, B: 0xFF, C: 0xFF, D: 0xFF, E: 0xFF, H: 0xFF, L: 0xFF, F: cpu.Decode(0xF0)},
	{A: 0x01, B: 0x02, C: 0x03, D: 0x04, E: 0x05, H: 0x06, L: 0x07},
	{A: 0x80, B: 0x40, C: 0x20, D: 0x10, E: 0x08, H: 0x04, L: 0x02, F: cpu.Decode(0x10)},
	{A: 0x55, B: 0xAA, C: 0x55, D: 0xAA, E: 0x55, H: 0xAA, L: 0x55},
	{A: 0xAA, B: 0x55, C: 0xAA, D: 0x55, E: 0xAA, H: 0x55, L: 0xAA, F: cpu.Decode(0x10)},
	{A: 0x0F, B: 0xF0, C: 0x0F, D: 0xF0, E: 0x0F, H: 0xF0, L: 0x0F},
	{A: 0x7F, B: 0x80, C: 0x7F, D: 0x80, E: 0x7F, H: 0x0F, L: 0xFF, F: cpu.Decode(0x90)},
}

// execSeq runs a sequence of instructions on a register file, returning
// the final state. Sequences are validated by the caller, so errors
// cannot occur here.
func execSeq(initial cpu.Registers, seq []inst.Instruction) cpu.Registers {
	r := initial
	for i := range seq {
		_ = cpu.Exec(&r, seq[i])
	}
	return r
}

// Validate reports the first instruction of seq the core cannot execute.
func Validate(seq []inst.Instruction) error {
	var r cpu.Registers
	return cpu.ExecSeq(&r, seq)
}

func equalMasked(a, b cpu.Registers, dead FlagMask) bool {
	return a.A == b.A &&
		(cpu.Encode(a.F)&^dead) == (cpu.Encode(b.F)&^dead) &&
		a.B == b.B && a.C == b.C &&
		a.D == b.D && a.E == b.E &&
		a.H == b.H && a.L == b.L
}

// QuickCheck tests two sequences against the test vectors, ignoring dead
// flag bits. Both sequences must be valid.
func QuickCheck(target, candidate []inst.Instruction, dead FlagMask) bool {
	for i := range TestVectors {
		tOut := execSeq(TestVectors[i], target)
		cOut := execSeq(TestVectors[i], candidate)
		if !equalMasked(tOut, cOut, dead) {
			return false
		}
	}
	return true
}

// FlagDiff runs the test vectors and returns which flag bits ever differ.
// 0 means the flags always match, or that some register differs and the
// sequences are not a flag-only mismatch.
func FlagDiff(target, candidate []inst.Instruction) FlagMask {
	var diff FlagMask
	for i := range TestVectors {
		tOut := execSeq(TestVectors[i], target)
		cOut := execSeq(TestVectors[i], candidate)
		if !equalMasked(tOut, cOut, DeadAll) {
			return 0
		}
		diff |= cpu.Encode(tOut.F) ^ cpu.Encode(cOut.F)
	}
	return diff
}

// Register bitmask for tracking which registers a sequence reads.
type regMask uint8

const (
	regA regMask = 1 << iota
	regB
	regC
	regD
	regE
	regH
	regL
)

var regBit = [inst.RegCount]regMask{
	inst.A: regA, inst.B: regB, inst.C: regC, inst.D: regD,
	inst.E: regE, inst.H: regH, inst.L: regL,
}

func regsRead(seq []inst.Instruction) regMask {
	var mask regMask
	for _, in := range seq {
		mask |= opReads(in)
	}
	return mask
}

// opReads returns which 8-bit registers an instruction reads.
func opReads(in inst.Instruction) regMask {
	switch in.Op {
	case inst.ADDHL:
		m := regH | regL
		switch in.SrcPair {
		case inst.BC:
			m |= regB | regC
		case inst.DE:
			m |= regD | regE
		}
		return m
	case inst.INC, inst.DEC:
		return regBit[in.Src]
	}
	return regA | regBit[in.Src]
}

// Representative values for registers beyond the exhaustively swept ones.
var repValues = []uint8{
	0x00, 0x01, 0x02, 0x0F, 0x10, 0x1F, 0x20, 0x3F,
	0x40, 0x55, 0x7E, 0x7F, 0x80, 0x81, 0xAA, 0xBF,
	0xC0, 0xD5, 0xE0, 0xEF, 0xF0, 0xF7, 0xFE, 0xFF,
	0x03, 0x07, 0x11, 0x33, 0x77, 0xBB, 0xDD, 0xEE,
}

// Flag inputs swept for every case: carry both ways, and Z/N/H both ways.
var flagInputs = []cpu.Flags{
	cpu.Decode(0x00), cpu.Decode(0x10), cpu.Decode(0xE0), cpu.Decode(0xF0),
}

// Small representative set used when many registers are read.
var repValuesSmall = []uint8{0x00, 0x01, 0x0F, 0x10, 0x7F, 0x80, 0xF0, 0xFF}

// ExhaustiveCheck verifies equivalence over all relevant inputs:
//   - F is swept over flagInputs
//   - when at most two registers are read they take all 256 values
//   - up to four read registers take the 32 representative values
//   - beyond that each read register takes 8 representative values
//
// Registers neither sequence reads keep a fixed background value.
func ExhaustiveCheck(target, candidate []inst.Instruction, dead FlagMask) bool {
	reads := regsRead(target) | regsRead(candidate)

	var swept []inst.Reg
	for _, r := range []inst.Reg{inst.A, inst.B, inst.C, inst.D, inst.E, inst.H, inst.L} {
		if reads&regBit[r] != 0 {
			swept = append(swept, r)
		}
	}

	var values []uint8
	switch {
	case len(swept) <= 2:
		values = make([]uint8, 256)
		for i := range values {
			values[i] = uint8(i)
		}
	case len(swept) <= 4:
		values = repValues
	default:
		values = repValuesSmall
	}

	compare := func(s cpu.Registers) bool {
		return equalMasked(execSeq(s, target), execSeq(s, candidate), dead)
	}

	var sweep func(s cpu.Registers, idx int) bool
	sweep = func(s cpu.Registers, idx int) bool {
		if idx == len(swept) {
			return compare(s)
		}
		for _, v := range values {
			s.Write(swept[idx], v)
			if !sweep(s, idx+1) {
				return false
			}
		}
		return true
	}

	for _, f := range flagInputs {
		s := background
		s.F = f
		if !sweep(s, 0) {
			return false
		}
	}
	return true
}

// Equivalent reports whether candidate can replace target, given dead
// flags. It rejects sequences the core cannot execute.
func Equivalent(target, candidate []inst.Instruction, dead FlagMask) (bool, error) {
	if err := Validate(target); err != nil {
		return false, err
	}
	if err := Validate(candidate); err != nil {
		return false, err
	}
	if !QuickCheck(target, candidate, dead) {
		return false, nil
	}
	return ExhaustiveCheck(target, candidate, dead), nil
}
