package cpu

import (
	"fmt"

	"github.com/oisee/sm83-alu/pkg/inst"
)

// Exec executes a single instruction on the given register file.
// The register file is modified in place. When Exec returns an error
// nothing has been written.
func Exec(r *Registers, in inst.Instruction) error {
	if err := validate(in); err != nil {
		return err
	}

	switch in.Op {
	// === 16-bit arithmetic ===
	case inst.ADDHL:
		v, _ := r.Pair(in.SrcPair)
		var hl uint16
		hl, r.F = Add16(r.HL(), v)
		r.setHL(hl)

	// === 8-bit arithmetic into A ===
	case inst.ADD:
		r.A, r.F = Add(r.A, r.Read(in.Src))
	case inst.ADC:
		r.A, r.F = Adc(r.A, r.Read(in.Src), r.F.Carry)
	case inst.SUB:
		r.A, r.F = Sub(r.A, r.Read(in.Src))
	case inst.SBC:
		r.A, r.F = Sbc(r.A, r.Read(in.Src), r.F.Carry)

	// === 8-bit logic into A ===
	case inst.AND:
		r.A, r.F = And(r.A, r.Read(in.Src))
	case inst.OR:
		r.A, r.F = Or(r.A, r.Read(in.Src))
	case inst.XOR:
		r.A, r.F = Xor(r.A, r.Read(in.Src))
	case inst.CP:
		r.F = Cp(r.A, r.Read(in.Src))

	// === INC/DEC r ===
	case inst.INC:
		v, f := Inc(r.Read(in.Src), r.F)
		r.Write(in.Src, v)
		r.F = f
	case inst.DEC:
		v, f := Dec(r.Read(in.Src), r.F)
		r.Write(in.Src, v)
		r.F = f

	default:
		return &UnsupportedError{Op: in.Op}
	}
	return nil
}

// validate rejects an instruction before any register is touched.
func validate(in inst.Instruction) error {
	if !in.Op.Implemented() {
		return &UnsupportedError{Op: in.Op}
	}
	if in.Op == inst.ADDHL {
		// AF is a valid pair but not an ADD HL operand.
		if in.SrcPair == inst.AF || !in.SrcPair.Valid() {
			return fmt.Errorf("ADD HL, %s: %w", in.SrcPair, ErrInvalidPair)
		}
		return nil
	}
	if !in.Src.Valid() {
		return fmt.Errorf("%s %d: %w", in.Op, in.Src, ErrInvalidRegister)
	}
	return nil
}

// SeqError reports which instruction of a sequence failed.
type SeqError struct {
	Index int
	Instr inst.Instruction
	Err   error
}

func (e *SeqError) Error() string {
	return fmt.Sprintf("instruction %d (%s): %v", e.Index, inst.Disassemble(e.Instr), e.Err)
}

func (e *SeqError) Unwrap() error { return e.Err }

// ExecSeq runs seq in program order and stops at the first failing
// instruction. Instructions before it stay applied.
func ExecSeq(r *Registers, seq []inst.Instruction) error {
	for i := range seq {
		if err := Exec(r, seq[i]); err != nil {
			return &SeqError{Index: i, Instr: seq[i], Err: err}
		}
	}
	return nil
}
