package inst

// Reg selects one of the seven general 8-bit registers.
type Reg uint8

const (
	A Reg = iota
	B
	C
	D
	E
	H
	L

	RegCount
)

var regNames = [RegCount]string{"A", "B", "C", "D", "E", "H", "L"}

func (r Reg) String() string {
	if r < RegCount {
		return regNames[r]
	}
	return "?"
}

// Valid reports whether r names one of A, B, C, D, E, H, L.
func (r Reg) Valid() bool {
	return r < RegCount
}

// Regs returns all register selectors in encoding order.
func Regs() []Reg {
	return []Reg{B, C, D, E, H, L, A}
}

// Pair selects a 16-bit register pair view.
type Pair uint8

const (
	AF Pair = iota
	BC
	DE
	HL

	PairCount
)

var pairNames = [PairCount]string{"AF", "BC", "DE", "HL"}

func (p Pair) String() string {
	if p < PairCount {
		return pairNames[p]
	}
	return "?"
}

// Valid reports whether p names one of AF, BC, DE, HL.
func (p Pair) Valid() bool {
	return p < PairCount
}

// Kind is the operation carried by an instruction.
type Kind uint8

// Implemented kinds come first; everything from CCF onwards is part of
// the SM83 family but is not executed by this core.
const (
	ADD Kind = iota
	ADDHL
	ADC
	SUB
	SBC
	AND
	OR
	XOR
	CP
	INC
	DEC

	// Reserved.
	CCF
	SCF
	RRA
	RLA
	RRCA
	RLCA
	CPL
	BIT
	RES
	SET
	SRL
	RR
	RL
	RRC
	RLC
	SRA
	SLA
	SWAP

	KindCount
)

var kindNames = [KindCount]string{
	"ADD", "ADD HL", "ADC", "SUB", "SBC", "AND", "OR", "XOR", "CP", "INC", "DEC",
	"CCF", "SCF", "RRA", "RLA", "RRCA", "RLCA", "CPL", "BIT", "RES", "SET",
	"SRL", "RR", "RL", "RRC", "RLC", "SRA", "SLA", "SWAP",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "?"
}

// Implemented reports whether the core executes instructions of kind k.
func (k Kind) Implemented() bool {
	return k <= DEC
}

// Instruction is one decoded register-form instruction.
// Src is the operand selector for every 8-bit kind; ADDHL reads SrcPair
// instead.
type Instruction struct {
	Op      Kind
	Src     Reg
	SrcPair Pair
}

// New builds an 8-bit register-form instruction.
func New(op Kind, src Reg) Instruction {
	return Instruction{Op: op, Src: src}
}

// NewAddHL builds ADD HL, rr.
func NewAddHL(src Pair) Instruction {
	return Instruction{Op: ADDHL, SrcPair: src}
}

// ImplementedKinds returns all kinds the core executes.
func ImplementedKinds() []Kind {
	kinds := make([]Kind, 0, DEC+1)
	for k := ADD; k <= DEC; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// All returns every executable instruction: each 8-bit kind with each of
// the seven selectors, plus ADD HL with BC, DE and HL.
func All() []Instruction {
	var out []Instruction
	for _, k := range ImplementedKinds() {
		if k == ADDHL {
			for _, p := range []Pair{BC, DE, HL} {
				out = append(out, NewAddHL(p))
			}
			continue
		}
		for _, r := range Regs() {
			out = append(out, New(k, r))
		}
	}
	return out
}

// WritesAccumulator reports whether the instruction's result goes to A.
func WritesAccumulator(op Kind) bool {
	switch op {
	case ADD, ADC, SUB, SBC, AND, OR, XOR:
		return true
	}
	return false
}

// ReadsCarry reports whether the instruction consumes the carry flag.
func ReadsCarry(op Kind) bool {
	return op == ADC || op == SBC
}
