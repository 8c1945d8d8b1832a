package result

import (
	"fmt"
	"sort"
	"sync"
)

// Finding is the outcome of sweeping one instruction over its input space.
type Finding struct {
	Mnemonic   string
	Opcode     uint8
	Cases      uint64 // inputs executed
	Mismatches uint64 // inputs where Exec disagreed with the reference model
	First      string // first mismatch, human readable; empty when clean
	Digest     uint64 // xxhash of the instruction's truth table
}

// Passed reports whether every case matched.
func (f Finding) Passed() bool {
	return f.Mismatches == 0
}

// Table collects findings from concurrent workers.
type Table struct {
	mu       sync.Mutex
	findings []Finding
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a finding into the table.
func (t *Table) Add(f Finding) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.findings = append(t.findings, f)
}

// Findings returns a copy of all findings, sorted by opcode.
func (t *Table) Findings() []Finding {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Finding, len(t.findings))
	copy(out, t.findings)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Opcode < out[j].Opcode
	})
	return out
}

// Len returns the number of findings.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.findings)
}

// Report is a finished verification run.
type Report struct {
	Findings []Finding
}

// Report snapshots the table.
func (t *Table) Report() *Report {
	return &Report{Findings: t.Findings()}
}

// Failed returns the findings with at least one mismatch.
func (r *Report) Failed() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if !f.Passed() {
			out = append(out, f)
		}
	}
	return out
}

// Cases returns the total number of inputs executed.
func (r *Report) Cases() uint64 {
	var n uint64
	for _, f := range r.Findings {
		n += f.Cases
	}
	return n
}

// CompareDigests lists every instruction whose digest differs between
// golden and r, or that is present in only one of them.
func CompareDigests(golden, r *Report) []string {
	want := make(map[string]uint64, len(golden.Findings))
	for _, f := range golden.Findings {
		want[f.Mnemonic] = f.Digest
	}
	var diffs []string
	for _, f := range r.Findings {
		d, ok := want[f.Mnemonic]
		switch {
		case !ok:
			diffs = append(diffs, fmt.Sprintf("%s: not in golden report", f.Mnemonic))
		case d != f.Digest:
			diffs = append(diffs, fmt.Sprintf("%s: digest %016x, golden %016x", f.Mnemonic, f.Digest, d))
		}
		delete(want, f.Mnemonic)
	}
	missing := make([]string, 0, len(want))
	for m := range want {
		missing = append(missing, m)
	}
	sort.Strings(missing)
	for _, m := range missing {
		diffs = append(diffs, fmt.Sprintf("%s: missing from this run", m))
	}
	return diffs
}
