package provisioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/sitebill/sitebill/internal/domain/provisioning"
	"github.com/sitebill/sitebill/internal/pkg/logger"
)

// ExecRunner runs commands as child processes of the current process
type ExecRunner struct {
	// Dir is the working directory of the children; empty means the
	// current directory.
	Dir    string
	logger logger.Logger
}

// NewExecRunner creates a CommandRunner backed by os/exec
func NewExecRunner(dir string, logger logger.Logger) provisioning.CommandRunner {
	return &ExecRunner{Dir: dir, logger: logger}
}

// Run starts name and waits for it. A non-zero exit status is returned as the
// exit code with a nil error; failing to start the process or a cancelled
// context is returned as an error.
func (r *ExecRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	// #nosec G204 -- commands come from the provisioning plan, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	r.logger.Debug("starting command", "command", name, "args", args)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("command %s interrupted: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("failed to execute command %s: %w", name, err)
}
