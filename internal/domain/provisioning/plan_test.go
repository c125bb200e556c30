//go:build unit
// +build unit

package provisioning

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlan_Order(t *testing.T) {
	plan := DefaultPlan(config.DefaultProvisionSettings())

	require.Len(t, plan.Steps, 3)
	assert.Equal(t, "apt-get update", plan.Steps[0].CommandLine())
	assert.Equal(t, "apt-get install -y sqlite3", plan.Steps[1].CommandLine())
	assert.Equal(t, "pip install --user -r requirements.txt", plan.Steps[2].CommandLine())

	assert.Empty(t, plan.Steps[0].RequiresFile)
	assert.Empty(t, plan.Steps[1].RequiresFile)
	assert.Equal(t, "requirements.txt", plan.Steps[2].RequiresFile)
}

func TestDefaultPlan_CustomSettings(t *testing.T) {
	settings := config.ProvisionSettings{
		AptGet:           "/usr/bin/apt-get",
		Pip:              "pip3",
		SystemPackages:   []string{"sqlite3", "libsqlite3-dev"},
		RequirementsFile: "notebook/requirements.txt",
		UserScope:        false,
	}

	plan := DefaultPlan(settings)

	assert.Equal(t, "/usr/bin/apt-get install -y sqlite3 libsqlite3-dev", plan.Steps[1].CommandLine())
	assert.Equal(t, "pip3 install -r notebook/requirements.txt", plan.Steps[2].CommandLine())
}

func TestReport_Succeeded(t *testing.T) {
	report := &Report{Results: []StepResult{{ExitCode: 0}, {ExitCode: 0}}}
	assert.True(t, report.Succeeded())

	report.Results = append(report.Results, StepResult{ExitCode: 100})
	assert.False(t, report.Succeeded())

	assert.True(t, (&Report{}).Succeeded())
}

func TestExitCode(t *testing.T) {
	step := Step{Name: StepRefreshIndex, Command: "apt-get", Args: []string{"update"}}

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 100, ExitCode(&StepError{Step: step, ExitCode: 100}))
	assert.Equal(t, 100, ExitCode(fmt.Errorf("provisioning aborted: %w", &StepError{Step: step, ExitCode: 100})))
	assert.Equal(t, 1, ExitCode(&StepError{Step: step, Err: ErrMissingFile}))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}

func TestStepError_Message(t *testing.T) {
	step := Step{Name: StepInstallPython, Command: "pip", Args: []string{"install", "-r", "requirements.txt"}}

	err := &StepError{Step: step, ExitCode: 1, Err: ErrMissingFile}
	assert.Contains(t, err.Error(), "install-python-requirements")
	assert.Contains(t, err.Error(), "pip install -r requirements.txt")
	assert.True(t, errors.Is(err, ErrMissingFile))
}
