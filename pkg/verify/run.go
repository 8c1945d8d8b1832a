package verify

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/log"
	"github.com/oisee/sm83-alu/pkg/result"
)

// Config holds verification settings.
type Config struct {
	Workers      int                // Number of parallel workers (defaults to NumCPU)
	Instructions []inst.Instruction // Instructions to check (defaults to inst.All())
}

// Stats are updated while Run is in progress.
type Stats struct {
	checked atomic.Int64
	failed  atomic.Int64
}

// Checked returns how many instructions have been fully swept.
func (s *Stats) Checked() int64 { return s.checked.Load() }

// Failed returns how many swept instructions had mismatches.
func (s *Stats) Failed() int64 { return s.failed.Load() }

// Run sweeps every configured instruction on a bounded pool of workers.
// Each worker owns its register files; nothing is shared but the table.
func Run(ctx context.Context, cfg Config, stats *Stats) (*result.Report, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if len(cfg.Instructions) == 0 {
		cfg.Instructions = inst.All()
	}
	if stats == nil {
		stats = &Stats{}
	}

	table := result.NewTable()
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, in := range cfg.Instructions {
		in := in
		g.Go(func() error {
			f, err := CheckInstruction(ctx, in)
			if err != nil {
				return err
			}
			table.Add(f)
			stats.checked.Add(1)
			entry := log.ModVerify.WithFields(log.Fields{
				"op":    f.Mnemonic,
				"cases": f.Cases,
			})
			if !f.Passed() {
				stats.failed.Add(1)
				entry.WithField("mismatches", f.Mismatches).Warnf("mismatch: %s", f.First)
				return nil
			}
			entry.Debugf("ok, digest %016x", f.Digest)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.ModVerify.WithFields(log.Fields{
		"instructions": table.Len(),
		"failed":       stats.Failed(),
		"elapsed":      time.Since(start).Round(time.Millisecond),
	}).Info("verification finished")
	return table.Report(), nil
}
