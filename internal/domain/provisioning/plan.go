package provisioning

import (
	"strings"
	"time"

	"github.com/sitebill/sitebill/internal/pkg/config"
)

// Step is a single command of a plan.
type Step struct {
	Name    string
	Command string
	Args    []string
	// RequiresFile must exist when the step starts, otherwise the step fails
	// without running its command.
	RequiresFile string
}

// CommandLine renders the step as a shell line.
func (s Step) CommandLine() string {
	parts := append([]string{s.Command}, s.Args...)
	return strings.Join(parts, " ")
}

// Plan is an ordered list of steps.
type Plan struct {
	Steps []Step
}

// Step names of the default plan
const (
	StepRefreshIndex  = "refresh-package-index"
	StepInstallSystem = "install-system-packages"
	StepInstallPython = "install-python-requirements"
)

// DefaultPlan refreshes the OS package index, installs the system packages
// and then the Python requirements, in that order.
func DefaultPlan(settings config.ProvisionSettings) Plan {
	installArgs := append([]string{"install", "-y"}, settings.SystemPackages...)

	pipArgs := []string{"install"}
	if settings.UserScope {
		pipArgs = append(pipArgs, "--user")
	}
	pipArgs = append(pipArgs, "-r", settings.RequirementsFile)

	return Plan{
		Steps: []Step{
			{Name: StepRefreshIndex, Command: settings.AptGet, Args: []string{"update"}},
			{Name: StepInstallSystem, Command: settings.AptGet, Args: installArgs},
			{Name: StepInstallPython, Command: settings.Pip, Args: pipArgs, RequiresFile: settings.RequirementsFile},
		},
	}
}

// StepResult records the outcome of an executed step.
type StepResult struct {
	Step     Step
	ExitCode int
	Duration time.Duration
}

// Report lists the results of the steps that ran, in execution order.
type Report struct {
	Results []StepResult
}

// Succeeded reports whether every executed step exited 0.
func (r *Report) Succeeded() bool {
	for _, res := range r.Results {
		if res.ExitCode != 0 {
			return false
		}
	}
	return true
}
