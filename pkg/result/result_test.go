package result_test

import (
	"bytes"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oisee/sm83-alu/pkg/cpu"
	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/result"
)

var _ = Describe("Table", func() {
	It("should sort findings by opcode", func() {
		t := result.NewTable()
		t.Add(result.Finding{Mnemonic: "CP A", Opcode: 0xBF})
		t.Add(result.Finding{Mnemonic: "INC B", Opcode: 0x04})
		t.Add(result.Finding{Mnemonic: "ADD A, B", Opcode: 0x80})

		Expect(t.Len()).To(Equal(3))
		fs := t.Findings()
		Expect(fs[0].Mnemonic).To(Equal("INC B"))
		Expect(fs[2].Mnemonic).To(Equal("CP A"))
	})

	It("should report failures and totals", func() {
		t := result.NewTable()
		t.Add(result.Finding{Mnemonic: "ADD A, B", Opcode: 0x80, Cases: 10})
		t.Add(result.Finding{Mnemonic: "SUB B", Opcode: 0x90, Cases: 5, Mismatches: 1, First: "A=00"})

		r := t.Report()
		Expect(r.Cases()).To(Equal(uint64(15)))
		Expect(r.Failed()).To(HaveLen(1))
		Expect(r.Failed()[0].Mnemonic).To(Equal("SUB B"))
	})
})

var _ = Describe("JSON report", func() {
	It("should read back what it writes", func() {
		in := &result.Report{Findings: []result.Finding{
			{Mnemonic: "ADD A, B", Opcode: 0x80, Cases: 131072, Digest: 0xDEADBEEF01234567},
			{Mnemonic: "DEC A", Opcode: 0x3D, Cases: 512, Mismatches: 2, First: "A=00 F=10"},
		}}

		var buf bytes.Buffer
		Expect(result.WriteJSON(&buf, in)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(`"digest":"deadbeef01234567"`))
		Expect(buf.String()).To(ContainSubstring(`"failed":1`))

		out, err := result.ReadJSON(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(in))
	})

	It("should reject malformed input", func() {
		_, err := result.ReadJSON(strings.NewReader(`{"findings":[{"opcode":999}]}`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("CompareDigests", func() {
	golden := &result.Report{Findings: []result.Finding{
		{Mnemonic: "ADD A, B", Digest: 1},
		{Mnemonic: "ADD A, C", Digest: 2},
		{Mnemonic: "ADD A, D", Digest: 3},
	}}

	It("should be empty for identical digests", func() {
		Expect(result.CompareDigests(golden, golden)).To(BeEmpty())
	})

	It("should list changed, extra and missing instructions", func() {
		cur := &result.Report{Findings: []result.Finding{
			{Mnemonic: "ADD A, B", Digest: 1},
			{Mnemonic: "ADD A, C", Digest: 9},
			{Mnemonic: "ADD A, E", Digest: 4},
		}}
		diffs := result.CompareDigests(golden, cur)
		Expect(diffs).To(HaveLen(3))
		Expect(diffs[0]).To(HavePrefix("ADD A, C: digest"))
		Expect(diffs[1]).To(Equal("ADD A, E: not in golden report"))
		Expect(diffs[2]).To(Equal("ADD A, D: missing from this run"))
	})
})

var _ = Describe("Snapshot", func() {
	It("should round-trip the register file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "regs.gob")
		snap := &result.Snapshot{
			Registers: cpu.Registers{A: 0x12, B: 0x34, H: 0xFF, F: cpu.Flags{Zero: true, Carry: true}},
			Executed:  7,
			Program:   []inst.Instruction{inst.New(inst.ADC, inst.B), inst.NewAddHL(inst.DE)},
		}
		Expect(result.SaveSnapshot(path, snap)).To(Succeed())

		got, err := result.LoadSnapshot(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(snap))
	})

	It("should fail on a missing file", func() {
		_, err := result.LoadSnapshot(filepath.Join(GinkgoT().TempDir(), "none.gob"))
		Expect(err).To(HaveOccurred())
	})
})
