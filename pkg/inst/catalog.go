package inst

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	ErrNotEncodable    = errors.New("instruction has no encoding")
)

// Info holds static metadata for an executable instruction.
type Info struct {
	Mnemonic string // Assembly mnemonic (e.g., "ADD A, B")
	Opcode   uint8  // SM83 encoding, single byte for every register form
}

// Catalog maps each executable instruction to its Info.
var Catalog = make(map[Instruction]Info, 80)

var (
	byOpcode   [256]Instruction
	opcodeUsed [256]bool
	byMnemonic = make(map[string]Instruction, 80)
)

// 8-bit operand column of the SM83 opcode matrix. Column 6 is (HL).
var regCode = [RegCount]uint8{A: 7, B: 0, C: 1, D: 2, E: 3, H: 4, L: 5}

// Row bases of the 0x80-0xBF ALU block.
var aluBase = map[Kind]uint8{
	ADD: 0x80, ADC: 0x88, SUB: 0x90, SBC: 0x98,
	AND: 0xA0, XOR: 0xA8, OR: 0xB0, CP: 0xB8,
}

// Operand column of ADD HL, rr.
var pairCode = map[Pair]uint8{BC: 0, DE: 1, HL: 2}

func init() {
	for _, in := range All() {
		info := Info{Mnemonic: mnemonic(in), Opcode: opcode(in)}
		Catalog[in] = info
		byOpcode[info.Opcode] = in
		opcodeUsed[info.Opcode] = true
		byMnemonic[normalize(info.Mnemonic)] = in
	}
}

func opcode(in Instruction) uint8 {
	switch in.Op {
	case INC:
		return 0x04 | regCode[in.Src]<<3
	case DEC:
		return 0x05 | regCode[in.Src]<<3
	case ADDHL:
		return 0x09 | pairCode[in.SrcPair]<<4
	}
	return aluBase[in.Op] | regCode[in.Src]
}

func mnemonic(in Instruction) string {
	switch in.Op {
	case ADD, ADC, SBC:
		return in.Op.String() + " A, " + in.Src.String()
	case ADDHL:
		return "ADD HL, " + in.SrcPair.String()
	}
	return in.Op.String() + " " + in.Src.String()
}

// normalize canonicalizes case and spacing so "add a,b" matches "ADD A, B".
func normalize(text string) string {
	text = strings.ToUpper(strings.ReplaceAll(text, ",", " , "))
	return strings.ReplaceAll(strings.Join(strings.Fields(text), " "), " ,", ",")
}

// Lookup returns the catalog entry for in.
func Lookup(in Instruction) (Info, bool) {
	info, ok := Catalog[in]
	return info, ok
}

// Encode returns the SM83 opcode byte of in.
func Encode(in Instruction) (uint8, error) {
	info, ok := Catalog[in]
	if !ok {
		return 0, fmt.Errorf("%s: %w", Disassemble(in), ErrNotEncodable)
	}
	return info.Opcode, nil
}

// Decode maps an SM83 opcode byte to its register-form instruction.
// Only the forms this core executes are known; anything else, including
// the (HL) memory column, is ErrUnknownOpcode.
func Decode(b uint8) (Instruction, error) {
	if !opcodeUsed[b] {
		return Instruction{}, fmt.Errorf("0x%02X: %w", b, ErrUnknownOpcode)
	}
	return byOpcode[b], nil
}

// DecodeBytes decodes a byte program, one instruction per byte.
func DecodeBytes(program []byte) ([]Instruction, error) {
	seq := make([]Instruction, 0, len(program))
	for i, b := range program {
		in, err := Decode(b)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		seq = append(seq, in)
	}
	return seq, nil
}

// Disassemble returns assembly text for an instruction.
func Disassemble(in Instruction) string {
	if info, ok := Catalog[in]; ok {
		return info.Mnemonic
	}
	if in.Op == ADDHL {
		return "ADD HL, " + in.SrcPair.String()
	}
	return in.Op.String() + " " + in.Src.String()
}

// DisassembleSeq joins a sequence with " : " separators.
func DisassembleSeq(seq []Instruction) string {
	parts := make([]string, len(seq))
	for i := range seq {
		parts[i] = Disassemble(seq[i])
	}
	return strings.Join(parts, " : ")
}

// Parse converts one line of assembly like "ADC A, C" into an instruction.
func Parse(text string) (Instruction, error) {
	in, ok := byMnemonic[normalize(text)]
	if !ok {
		return Instruction{}, fmt.Errorf("%q: %w", strings.TrimSpace(text), ErrUnknownMnemonic)
	}
	return in, nil
}

// ParseSeq parses a colon-separated sequence such as "ADD A, B : INC C".
func ParseSeq(text string) ([]Instruction, error) {
	var seq []Instruction
	for _, part := range strings.Split(text, ":") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		in, err := Parse(part)
		if err != nil {
			return nil, err
		}
		seq = append(seq, in)
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("no instructions parsed from %q", text)
	}
	return seq, nil
}
