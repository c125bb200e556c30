package provisioning

import (
	"errors"
	"fmt"
)

// ErrMissingFile signals that a step's required file does not exist.
var ErrMissingFile = errors.New("required file missing")

// StepError is the single failure class of a plan: a command failed.
type StepError struct {
	Step     Step
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("step %s (%s) failed with exit code %d: %v", e.Step.Name, e.Step.CommandLine(), e.ExitCode, e.Err)
	}
	return fmt.Sprintf("step %s (%s) failed with exit code %d", e.Step.Name, e.Step.CommandLine(), e.ExitCode)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the process exit code carried by err: 0 for nil, the
// failing command's status for a StepError and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) && stepErr.ExitCode != 0 {
		return stepErr.ExitCode
	}
	return 1
}
