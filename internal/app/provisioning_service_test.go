//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sitebill/sitebill/internal/domain/provisioning"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/sitebill/sitebill/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records every command line and answers with a scripted exit code
type fakeRunner struct {
	calls []string
	codes map[string]int
	errs  map[string]error
	// stderr is written for commands exiting non-zero
	stderr string
}

func (f *fakeRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)

	if err := f.errs[line]; err != nil {
		return -1, err
	}
	code := f.codes[line]
	if code != 0 && f.stderr != "" {
		fmt.Fprintln(stderr, f.stderr)
	}
	return code, nil
}

func newTestPlan(t *testing.T, withRequirements bool) provisioning.Plan {
	t.Helper()

	settings := config.DefaultProvisionSettings()
	if withRequirements {
		settings.RequirementsFile = testutil.CreateTestFile(t, "requirements.txt", []byte("pandas\nsqlalchemy\n"))
	} else {
		settings.RequirementsFile = filepath.Join(t.TempDir(), "requirements.txt")
	}
	return provisioning.DefaultPlan(settings)
}

func newTestProvisioningService(t *testing.T, runner provisioning.CommandRunner, stderr io.Writer) provisioning.Service {
	t.Helper()

	svc, err := NewProvisioningService(runner, io.Discard, stderr, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return svc
}

func TestProvisioningService_Run_Success(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestProvisioningService(t, runner, io.Discard)
	plan := newTestPlan(t, true)

	report, err := svc.Run(context.Background(), plan)
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	require.Len(t, report.Results, 3)
	assert.Equal(t, 0, provisioning.ExitCode(err))

	require.Len(t, runner.calls, 3)
	assert.Equal(t, "apt-get update", runner.calls[0])
	assert.Equal(t, "apt-get install -y sqlite3", runner.calls[1])
	assert.True(t, strings.HasPrefix(runner.calls[2], "pip install --user -r "))
}

func TestProvisioningService_Run_MissingRequirements(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestProvisioningService(t, runner, io.Discard)
	plan := newTestPlan(t, false)

	report, err := svc.Run(context.Background(), plan)
	require.Error(t, err)

	assert.Equal(t, []string{"apt-get update", "apt-get install -y sqlite3"}, runner.calls)
	require.Len(t, report.Results, 3)
	assert.False(t, report.Succeeded())

	var stepErr *provisioning.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, provisioning.StepInstallPython, stepErr.Step.Name)
	assert.ErrorIs(t, err, provisioning.ErrMissingFile)
	assert.Contains(t, err.Error(), "requirements.txt")
	assert.Equal(t, 1, provisioning.ExitCode(err))
}

func TestProvisioningService_Run_NoNetwork(t *testing.T) {
	var stderr bytes.Buffer
	runner := &fakeRunner{
		codes:  map[string]int{"apt-get update": 100},
		stderr: "E: Failed to fetch http://deb.debian.org/debian/dists/bookworm/InRelease",
	}
	svc := newTestProvisioningService(t, runner, &stderr)
	plan := newTestPlan(t, true)

	report, err := svc.Run(context.Background(), plan)
	require.Error(t, err)

	assert.Equal(t, []string{"apt-get update"}, runner.calls)
	require.Len(t, report.Results, 1)
	assert.Equal(t, 100, report.Results[0].ExitCode)
	assert.Equal(t, 100, provisioning.ExitCode(err))
	assert.Contains(t, stderr.String(), "Failed to fetch")
}

func TestProvisioningService_Run_CommandNotFound(t *testing.T) {
	runner := &fakeRunner{
		errs: map[string]error{"apt-get install -y sqlite3": errors.New("executable file not found in $PATH")},
	}
	svc := newTestProvisioningService(t, runner, io.Discard)

	_, err := svc.Run(context.Background(), newTestPlan(t, true))
	require.Error(t, err)
	assert.Len(t, runner.calls, 2)
	assert.Equal(t, 1, provisioning.ExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestProvisioningService_Run_Idempotent(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestProvisioningService(t, runner, io.Discard)
	plan := newTestPlan(t, true)

	for i := 0; i < 2; i++ {
		report, err := svc.Run(context.Background(), plan)
		require.NoError(t, err)
		assert.True(t, report.Succeeded())
	}
	assert.Len(t, runner.calls, 6)
	assert.Equal(t, runner.calls[:3], runner.calls[3:])
}

func TestProvisioningService_DryRun(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestProvisioningService(t, runner, io.Discard)

	lines := svc.DryRun(provisioning.DefaultPlan(config.DefaultProvisionSettings()))
	assert.Equal(t, []string{
		"apt-get update",
		"apt-get install -y sqlite3",
		"pip install --user -r requirements.txt",
	}, lines)
	assert.Empty(t, runner.calls)
}

func TestNewProvisioningService_RequiresRunner(t *testing.T) {
	_, err := NewProvisioningService(nil, nil, nil, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
