package provisioning

import (
	"context"
	"io"
)

// CommandRunner executes one command to completion.
type CommandRunner interface {
	// Run executes name with args, streaming its output to stdout and stderr,
	// and returns the exit status. A non-nil error means the command could not
	// be started or was interrupted.
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error)
}

// Service executes provisioning plans.
type Service interface {
	// Run executes the plan sequentially, stopping at the first failing step.
	Run(ctx context.Context, plan Plan) (*Report, error)
	// DryRun renders the plan without executing it.
	DryRun(plan Plan) []string
}
