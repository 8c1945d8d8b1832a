package result

import (
	"encoding/gob"
	"os"

	"github.com/oisee/sm83-alu/pkg/cpu"
	"github.com/oisee/sm83-alu/pkg/inst"
)

// Snapshot holds a register file between CLI sessions.
type Snapshot struct {
	Registers cpu.Registers
	Executed  int                // instructions executed so far
	Program   []inst.Instruction // last program run
}

func init() {
	// Register types for gob encoding
	gob.Register(inst.Instruction{})
	gob.Register(cpu.Flags{})
}

// SaveSnapshot writes register state to a file.
func SaveSnapshot(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snap)
}

// LoadSnapshot loads register state from a file.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
