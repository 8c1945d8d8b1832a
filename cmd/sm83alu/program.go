package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/sm83-alu/pkg/cpu"
	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/log"
	"github.com/oisee/sm83-alu/pkg/verify"
)

// parseProgram reads assembly text, or hex opcode bytes when isHex is set.
// Hex may be spaced ("80 0C") or packed ("800C").
func parseProgram(text string, isHex bool) ([]inst.Instruction, error) {
	if !isHex {
		return inst.ParseSeq(text)
	}
	raw, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		return nil, fmt.Errorf("hex program: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty program")
	}
	return inst.DecodeBytes(raw)
}

// run executes seq one instruction at a time and returns how many
// completed. With trace set every step is logged on the cpu module.
func run(r *cpu.Registers, seq []inst.Instruction, trace bool) (int, error) {
	for i, in := range seq {
		if err := cpu.Exec(r, in); err != nil {
			return i, &cpu.SeqError{Index: i, Instr: in, Err: err}
		}
		if trace {
			log.ModCPU.WithFields(log.Fields{
				"op": inst.Disassemble(in),
				"a":  fmt.Sprintf("%02X", r.A),
				"f":  r.F.String(),
				"bc": fmt.Sprintf("%04X", r.BC()),
				"de": fmt.Sprintf("%04X", r.DE()),
				"hl": fmt.Sprintf("%04X", r.HL()),
			}).Info("exec")
		}
	}
	return len(seq), nil
}

func parseDead(name string) (verify.FlagMask, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return verify.DeadNone, nil
	case "half":
		return verify.DeadHalf, nil
	case "all":
		return verify.DeadAll, nil
	}
	return 0, fmt.Errorf("unknown dead-flag set %q", name)
}

// regFlags seeds registers from the command line. Only flags the user
// actually set are applied, over whatever a state snapshot loaded.
type regFlags struct {
	a, f       uint8
	bc, de, hl uint16
}

func (rf *regFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Uint8Var(&rf.a, "a", 0, "Initial A")
	fs.Uint8Var(&rf.f, "f", 0, "Initial F (low nibble ignored)")
	fs.Uint16Var(&rf.bc, "bc", 0, "Initial BC")
	fs.Uint16Var(&rf.de, "de", 0, "Initial DE")
	fs.Uint16Var(&rf.hl, "hl", 0, "Initial HL")
}

func (rf *regFlags) apply(cmd *cobra.Command, r *cpu.Registers) error {
	fs := cmd.Flags()
	if fs.Changed("a") {
		r.A = rf.a
	}
	if fs.Changed("f") {
		r.F = cpu.Decode(rf.f)
	}
	for _, p := range []struct {
		name string
		pair inst.Pair
		v    uint16
	}{
		{"bc", inst.BC, rf.bc},
		{"de", inst.DE, rf.de},
		{"hl", inst.HL, rf.hl},
	} {
		if !fs.Changed(p.name) {
			continue
		}
		if err := r.SetPair(p.pair, p.v); err != nil {
			return err
		}
	}
	return nil
}
