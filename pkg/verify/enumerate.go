package verify

import (
	"context"

	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/log"
)

// EnumerateSequences generates all executable instruction sequences of
// exactly length n and calls fn for each one. The slice passed to fn is
// reused between calls. fn returns false to stop early.
func EnumerateSequences(n int, fn func(seq []inst.Instruction) bool) {
	seq := make([]inst.Instruction, n)
	enumerateRec(seq, 0, inst.All(), fn)
}

func enumerateRec(seq []inst.Instruction, pos int, all []inst.Instruction, fn func([]inst.Instruction) bool) bool {
	if pos == len(seq) {
		return fn(seq)
	}
	for _, in := range all {
		seq[pos] = in
		if !enumerateRec(seq, pos+1, all, fn) {
			return false
		}
	}
	return true
}

// Shorten finds the shortest sequence, strictly shorter than target and at
// most maxLen long, that is equivalent to target given dead flags. The
// empty sequence is a valid answer. ok is false when nothing was found.
func Shorten(ctx context.Context, target []inst.Instruction, maxLen int, dead FlagMask) (repl []inst.Instruction, ok bool, err error) {
	if err := Validate(target); err != nil {
		return nil, false, err
	}
	if maxLen >= len(target) {
		maxLen = len(target) - 1
	}

	var checked int64
	defer func() {
		log.ModVerify.WithFields(log.Fields{
			"target":  inst.DisassembleSeq(target),
			"checked": checked,
		}).Debug("shorten finished")
	}()

	for n := 0; n <= maxLen; n++ {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		EnumerateSequences(n, func(cand []inst.Instruction) bool {
			checked++
			if checked%4096 == 0 && ctx.Err() != nil {
				return false
			}
			if !QuickCheck(target, cand, dead) || !ExhaustiveCheck(target, cand, dead) {
				return true
			}
			repl = append([]inst.Instruction{}, cand...)
			ok = true
			return false
		})
		if ok {
			return repl, true, nil
		}
	}
	return nil, false, ctx.Err()
}
