package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sitebill/sitebill/internal/domain/provisioning"
	"github.com/sitebill/sitebill/internal/pkg/logger"
)

// provisioningService implements the provisioning Service interface
type provisioningService struct {
	runner provisioning.CommandRunner
	stdout io.Writer
	stderr io.Writer
	logger logger.Logger
}

// NewProvisioningService creates a Service that executes plans with runner
// and streams the output of every command to stdout and stderr
func NewProvisioningService(runner provisioning.CommandRunner, stdout, stderr io.Writer, logger logger.Logger) (provisioning.Service, error) {
	if runner == nil {
		return nil, fmt.Errorf("command runner is required")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &provisioningService{
		runner: runner,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}, nil
}

// Run executes the steps in order and stops at the first one that fails. The
// returned report holds every step that was attempted, the failing one last.
func (s *provisioningService) Run(ctx context.Context, plan provisioning.Plan) (*provisioning.Report, error) {
	report := &provisioning.Report{}

	for i, step := range plan.Steps {
		s.logger.Info("running provisioning step", "step", step.Name, "position", i+1, "total", len(plan.Steps), "command", step.CommandLine())

		result, err := s.runStep(ctx, step)
		report.Results = append(report.Results, result)
		if err != nil {
			s.logger.Error("provisioning step failed", "step", step.Name, "exit_code", result.ExitCode, "error", err)
			return report, err
		}

		s.logger.Info("provisioning step done", "step", step.Name, "duration", result.Duration.String())
	}

	return report, nil
}

func (s *provisioningService) runStep(ctx context.Context, step provisioning.Step) (provisioning.StepResult, error) {
	result := provisioning.StepResult{Step: step}

	if step.RequiresFile != "" {
		if _, err := os.Stat(step.RequiresFile); err != nil {
			result.ExitCode = 1
			if errors.Is(err, os.ErrNotExist) {
				err = fmt.Errorf("%w: %s", provisioning.ErrMissingFile, step.RequiresFile)
			}
			return result, &provisioning.StepError{Step: step, ExitCode: result.ExitCode, Err: err}
		}
	}

	start := time.Now()
	code, err := s.runner.Run(ctx, s.stdout, s.stderr, step.Command, step.Args...)
	result.Duration = time.Since(start)

	if err != nil {
		result.ExitCode = 1
		return result, &provisioning.StepError{Step: step, ExitCode: result.ExitCode, Err: err}
	}

	result.ExitCode = code
	if code != 0 {
		return result, &provisioning.StepError{Step: step, ExitCode: code}
	}
	return result, nil
}

// DryRun renders every step as the shell line it would execute
func (s *provisioningService) DryRun(plan provisioning.Plan) []string {
	lines := make([]string, len(plan.Steps))
	for i, step := range plan.Steps {
		lines[i] = step.CommandLine()
	}
	return lines
}
