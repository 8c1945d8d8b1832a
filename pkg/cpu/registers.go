package cpu

import (
	"fmt"

	"github.com/oisee/sm83-alu/pkg/inst"
)

// Registers is the SM83 register file: seven 8-bit cells and the flags
// paired with A. Pairs are views over these cells, never separate storage.
//
// A Registers value belongs to one goroutine; nothing here is locked.
type Registers struct {
	A, B, C, D, E, H, L uint8
	F                   Flags
}

// Read returns the 8-bit register selected by reg. It panics on a selector
// outside A..L, which only a corrupted instruction can produce.
func (r *Registers) Read(reg inst.Reg) uint8 {
	return *r.cell(reg)
}

// Write stores v into the 8-bit register selected by reg.
func (r *Registers) Write(reg inst.Reg, v uint8) {
	*r.cell(reg) = v
}

func (r *Registers) cell(reg inst.Reg) *uint8 {
	switch reg {
	case inst.A:
		return &r.A
	case inst.B:
		return &r.B
	case inst.C:
		return &r.C
	case inst.D:
		return &r.D
	case inst.E:
		return &r.E
	case inst.H:
		return &r.H
	case inst.L:
		return &r.L
	}
	panic(fmt.Sprintf("cpu: register selector %d out of range", reg))
}

// Flags returns a snapshot of the condition flags.
func (r *Registers) Flags() Flags {
	return r.F
}

// Pair returns the 16-bit view of p, high byte first-named.
func (r *Registers) Pair(p inst.Pair) (uint16, error) {
	switch p {
	case inst.AF:
		return join(r.A, Encode(r.F)), nil
	case inst.BC:
		return join(r.B, r.C), nil
	case inst.DE:
		return join(r.D, r.E), nil
	case inst.HL:
		return join(r.H, r.L), nil
	}
	return 0, fmt.Errorf("pair %d: %w", p, ErrInvalidPair)
}

// SetPair splits v across the two registers of p. For AF the low byte goes
// through Decode, so bits 3-0 are dropped.
func (r *Registers) SetPair(p inst.Pair, v uint16) error {
	hi, lo := uint8(v>>8), uint8(v)
	switch p {
	case inst.AF:
		r.A, r.F = hi, Decode(lo)
	case inst.BC:
		r.B, r.C = hi, lo
	case inst.DE:
		r.D, r.E = hi, lo
	case inst.HL:
		r.H, r.L = hi, lo
	default:
		return fmt.Errorf("pair %d: %w", p, ErrInvalidPair)
	}
	return nil
}

// AF, BC, DE and HL are the infallible forms of Pair.

func (r *Registers) AF() uint16 { return join(r.A, Encode(r.F)) }
func (r *Registers) BC() uint16 { return join(r.B, r.C) }
func (r *Registers) DE() uint16 { return join(r.D, r.E) }
func (r *Registers) HL() uint16 { return join(r.H, r.L) }

func (r *Registers) setHL(v uint16) {
	r.H, r.L = uint8(v>>8), uint8(v)
}

func (r *Registers) String() string {
	return fmt.Sprintf("A=%02X F=%02X [%s] B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X",
		r.A, Encode(r.F), r.F, r.B, r.C, r.D, r.E, r.H, r.L)
}

func join(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
