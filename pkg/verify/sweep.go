package verify

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/oisee/sm83-alu/pkg/cpu"
	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/result"
)

// Every packed flag input, low nibble clear.
var allFlags = func() []cpu.Flags {
	out := make([]cpu.Flags, 16)
	for i := range out {
		out[i] = cpu.Decode(uint8(i << 4))
	}
	return out
}()

// Representative second operands for ADD HL, rr.
var repPairs = []uint16{
	0x0000, 0x0001, 0x000F, 0x0010, 0x00FF, 0x0100, 0x07FF, 0x0800,
	0x0FFE, 0x0FFF, 0x1000, 0x1001, 0x7FFF, 0x8000, 0x8001, 0xF000,
	0xF001, 0xFFF0, 0xFFFE, 0xFFFF, 0x1234, 0x5678, 0xABCD, 0xEDCB,
}

// background holds the registers an instruction does not sweep.
var background = cpu.Registers{A: 0x5A, B: 0x3C, C: 0xC3, D: 0x96, E: 0x69, H: 0xA5, L: 0x0F}

// CheckInstruction executes in over its whole input space, compares every
// outcome with the reference model and hashes the resulting truth table.
//
// 8-bit kinds sweep A, the source register and all 16 flag inputs.
// ADD HL sweeps HL completely against representative pair values.
func CheckInstruction(ctx context.Context, in inst.Instruction) (result.Finding, error) {
	info, ok := inst.Lookup(in)
	if !ok {
		return result.Finding{}, fmt.Errorf("%s: %w", inst.Disassemble(in), cpu.ErrUnsupportedInstruction)
	}

	f := result.Finding{Mnemonic: info.Mnemonic, Opcode: info.Opcode}
	h := xxhash.New()
	var buf [8]byte

	check := func(s cpu.Registers) error {
		got := s
		if err := cpu.Exec(&got, in); err != nil {
			return err
		}
		want := reference(in, s)
		f.Cases++
		if got != want {
			if f.Mismatches == 0 {
				f.First = fmt.Sprintf("in: %s | got: %s | want: %s", &s, &got, &want)
			}
			f.Mismatches++
		}
		buf = [8]byte{got.A, cpu.Encode(got.F), got.B, got.C, got.D, got.E, got.H, got.L}
		_, _ = h.Write(buf[:])
		return nil
	}

	for _, s := range inputs(in) {
		if err := ctx.Err(); err != nil {
			return f, err
		}
		if err := s(check); err != nil {
			return f, err
		}
	}
	f.Digest = h.Sum64()
	return f, nil
}

// inputs splits an instruction's input space into chunks so the caller can
// poll for cancellation between them.
func inputs(in inst.Instruction) []func(func(cpu.Registers) error) error {
	var chunks []func(func(cpu.Registers) error) error

	switch in.Op {
	case inst.ADDHL:
		for hi := 0; hi < 256; hi++ {
			hi := uint8(hi)
			chunks = append(chunks, func(check func(cpu.Registers) error) error {
				for lo := 0; lo < 256; lo++ {
					for _, carry := range []bool{false, true} {
						s := background
						s.H, s.L = hi, uint8(lo)
						s.F.Carry = carry
						if in.SrcPair == inst.HL {
							if err := check(s); err != nil {
								return err
							}
							continue
						}
						for _, v := range repPairs {
							_ = s.SetPair(in.SrcPair, v)
							if err := check(s); err != nil {
								return err
							}
						}
					}
				}
				return nil
			})
		}

	case inst.INC, inst.DEC:
		chunks = append(chunks, func(check func(cpu.Registers) error) error {
			for x := 0; x < 256; x++ {
				for _, fl := range allFlags {
					s := background
					s.Write(in.Src, uint8(x))
					s.F = fl
					if err := check(s); err != nil {
						return err
					}
				}
			}
			return nil
		})

	default:
		for a := 0; a < 256; a++ {
			a := uint8(a)
			chunks = append(chunks, func(check func(cpu.Registers) error) error {
				if in.Src == inst.A {
					for _, fl := range allFlags {
						s := background
						s.A, s.F = a, fl
						if err := check(s); err != nil {
							return err
						}
					}
					return nil
				}
				for v := 0; v < 256; v++ {
					for _, fl := range allFlags {
						s := background
						s.A, s.F = a, fl
						s.Write(in.Src, uint8(v))
						if err := check(s); err != nil {
							return err
						}
					}
				}
				return nil
			})
		}
	}
	return chunks
}
