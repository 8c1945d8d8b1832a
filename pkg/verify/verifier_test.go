package verify_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oisee/sm83-alu/pkg/cpu"
	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/verify"
)

func seq(text string) []inst.Instruction {
	s, err := inst.ParseSeq(text)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Equivalence", func() {
	It("should tell SUB A and XOR A apart only by N", func() {
		target, cand := seq("SUB A"), seq("XOR A")

		Expect(verify.QuickCheck(target, cand, verify.DeadNone)).To(BeFalse())
		Expect(verify.FlagDiff(target, cand)).To(Equal(cpu.FlagN))

		ok, err := verify.Equivalent(target, cand, verify.DeadHalf)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("should report AND A and OR A as differing in H", func() {
		target, cand := seq("AND A"), seq("OR A")
		Expect(verify.FlagDiff(target, cand)).To(Equal(cpu.FlagH))

		ok, err := verify.Equivalent(target, cand, verify.DeadNone)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		ok, err = verify.Equivalent(target, cand, cpu.FlagH)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("should treat INC then DEC as a no-op on registers", func() {
		ok, err := verify.Equivalent(seq("INC B : DEC B"), nil, verify.DeadAll)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, err = verify.Equivalent(seq("INC B : DEC B"), nil, verify.DeadNone)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should find ADD A, A equal to itself and not to ADD A, B", func() {
		ok, err := verify.Equivalent(seq("ADD A, A"), seq("ADD A, A"), verify.DeadNone)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, err = verify.Equivalent(seq("ADD A, A"), seq("ADD A, B"), verify.DeadAll)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should not equate CP with SUB", func() {
		Expect(verify.FlagDiff(seq("CP B"), seq("SUB B"))).To(BeZero())
		ok, err := verify.Equivalent(seq("CP B"), seq("SUB B"), verify.DeadAll)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should reject sequences the core cannot execute", func() {
		_, err := verify.Equivalent([]inst.Instruction{inst.New(inst.SWAP, inst.A)}, seq("XOR A"), verify.DeadNone)
		Expect(errors.Is(err, cpu.ErrUnsupportedInstruction)).To(BeTrue())
	})
})

var _ = Describe("CheckInstruction", func() {
	ctx := context.Background()

	It("should sweep an 8-bit operand completely", func() {
		f, err := verify.CheckInstruction(ctx, inst.New(inst.ADC, inst.B))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Mnemonic).To(Equal("ADC A, B"))
		Expect(f.Opcode).To(Equal(uint8(0x88)))
		Expect(f.Cases).To(Equal(uint64(256 * 256 * 16)))
		Expect(f.Passed()).To(BeTrue(), f.First)
	})

	It("should sweep A-sourced and INC/DEC forms over one register", func() {
		f, err := verify.CheckInstruction(ctx, inst.New(inst.SBC, inst.A))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Cases).To(Equal(uint64(256 * 16)))
		Expect(f.Passed()).To(BeTrue(), f.First)

		f, err = verify.CheckInstruction(ctx, inst.New(inst.DEC, inst.L))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Cases).To(Equal(uint64(256 * 16)))
		Expect(f.Passed()).To(BeTrue(), f.First)
	})

	It("should sweep ADD HL over every HL value", func() {
		f, err := verify.CheckInstruction(ctx, inst.NewAddHL(inst.HL))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Cases).To(Equal(uint64(65536 * 2)))
		Expect(f.Passed()).To(BeTrue(), f.First)
	})

	It("should produce stable, distinct digests", func() {
		a1, err := verify.CheckInstruction(ctx, inst.New(inst.AND, inst.C))
		Expect(err).NotTo(HaveOccurred())
		a2, err := verify.CheckInstruction(ctx, inst.New(inst.AND, inst.C))
		Expect(err).NotTo(HaveOccurred())
		o, err := verify.CheckInstruction(ctx, inst.New(inst.OR, inst.C))
		Expect(err).NotTo(HaveOccurred())

		Expect(a1.Digest).To(Equal(a2.Digest))
		Expect(a1.Digest).NotTo(Equal(o.Digest))
	})

	It("should refuse reserved kinds", func() {
		_, err := verify.CheckInstruction(ctx, inst.New(inst.RLC, inst.B))
		Expect(errors.Is(err, cpu.ErrUnsupportedInstruction)).To(BeTrue())
	})

	It("should stop when the context is cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := verify.CheckInstruction(cctx, inst.New(inst.ADD, inst.B))
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Run", func() {
	It("should verify every executable instruction", func() {
		var stats verify.Stats
		rep, err := verify.Run(context.Background(), verify.Config{Workers: 4}, &stats)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.Findings).To(HaveLen(len(inst.All())))
		Expect(rep.Failed()).To(BeEmpty())
		Expect(stats.Checked()).To(Equal(int64(len(inst.All()))))
		Expect(stats.Failed()).To(BeZero())
	})

	It("should check only the requested instructions", func() {
		rep, err := verify.Run(context.Background(), verify.Config{
			Instructions: []inst.Instruction{inst.New(inst.INC, inst.A), inst.New(inst.XOR, inst.D)},
		}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.Findings).To(HaveLen(2))
		Expect(rep.Findings[0].Mnemonic).To(Equal("INC A"))
	})

	It("should surface cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := verify.Run(ctx, verify.Config{Workers: 2}, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})
