package cpu

import (
	"errors"
	"fmt"

	"github.com/oisee/sm83-alu/pkg/inst"
)

var (
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	ErrInvalidPair            = errors.New("invalid register pair")
	ErrInvalidRegister        = errors.New("invalid register")
)

// UnsupportedError reports an instruction kind the dispatcher does not
// execute. It matches ErrUnsupportedInstruction with errors.Is.
type UnsupportedError struct {
	Op inst.Kind
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrUnsupportedInstruction)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupportedInstruction
}
