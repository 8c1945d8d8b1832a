package verify_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/verify"
)

var _ = Describe("Enumeration", func() {
	It("should enumerate every instruction pair", func() {
		n := 0
		verify.EnumerateSequences(2, func(s []inst.Instruction) bool {
			Expect(s).To(HaveLen(2))
			n++
			return true
		})
		Expect(n).To(Equal(len(inst.All()) * len(inst.All())))
	})

	It("should stop when the callback returns false", func() {
		n := 0
		verify.EnumerateSequences(2, func([]inst.Instruction) bool {
			n++
			return n < 10
		})
		Expect(n).To(Equal(10))
	})

	It("should call back once with an empty sequence for length zero", func() {
		n := 0
		verify.EnumerateSequences(0, func(s []inst.Instruction) bool {
			Expect(s).To(BeEmpty())
			n++
			return true
		})
		Expect(n).To(Equal(1))
	})
})

var _ = Describe("Shorten", func() {
	ctx := context.Background()

	It("should drop INC B : DEC B when flags are dead", func() {
		repl, ok, err := verify.Shorten(ctx, seq("INC B : DEC B"), 1, verify.DeadAll)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(repl).To(BeEmpty())
	})

	It("should collapse a double XOR A into one instruction", func() {
		repl, ok, err := verify.Shorten(ctx, seq("XOR A : XOR A"), 1, verify.DeadNone)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(inst.DisassembleSeq(repl)).To(Equal("XOR A"))
	})

	It("should find nothing shorter than a single ADD", func() {
		_, ok, err := verify.Shorten(ctx, seq("ADD A, B"), 1, verify.DeadNone)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should reject unsupported targets", func() {
		_, _, err := verify.Shorten(ctx, []inst.Instruction{inst.New(inst.SWAP, inst.A)}, 1, verify.DeadNone)
		Expect(err).To(HaveOccurred())
	})
})
