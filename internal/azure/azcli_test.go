package azure

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	lookPathErr error
	out         string
	err         error
	calls       [][]string
}

func (r *recordingRunner) LookPath(string) error { return r.lookPathErr }

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.out, r.err
}

func (r *recordingRunner) RunInteractive(_ context.Context, dir, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name, "dir=" + dir}, args...))
	return r.err
}

func TestCheckInstalled(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		c := NewCLI(&recordingRunner{lookPathErr: errors.New("not found")})
		err := c.CheckInstalled()
		assert.ErrorIs(t, err, apperrors.ErrAzureCLINotFound)
		assert.Contains(t, err.Error(), "Install it with")
	})

	t.Run("Present", func(t *testing.T) {
		c := NewCLI(&recordingRunner{})
		assert.NoError(t, c.CheckInstalled())
	})
}

func TestCurrentAccount(t *testing.T) {
	t.Run("LoggedIn", func(t *testing.T) {
		runner := &recordingRunner{out: `{"id":"sub-1","name":"Prod","user":{"name":"ops@example.com"}}`}
		account, err := NewCLI(runner).CurrentAccount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "sub-1", account.ID)
		assert.Equal(t, "Prod", account.Name)
		assert.Equal(t, "ops@example.com", account.User.Name)
	})

	t.Run("NotLoggedIn", func(t *testing.T) {
		runner := &recordingRunner{out: "Please run 'az login'", err: errors.New("exit status 1")}
		_, err := NewCLI(runner).CurrentAccount(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
	})
}

func TestCreateFunctionAppArgs(t *testing.T) {
	runner := &recordingRunner{}
	err := NewCLI(runner).CreateFunctionApp(context.Background(), FunctionAppSpec{
		Name:             "deltashare-func-1700000000",
		ResourceGroup:    "deltashare-rg",
		Location:         "eastus",
		StorageAccount:   "deltashare1700000000",
		Runtime:          "python",
		RuntimeVersion:   "3.11",
		FunctionsVersion: "4",
		OSType:           "linux",
	})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)

	cmd := strings.Join(runner.calls[0], " ")
	assert.Contains(t, cmd, "az functionapp create")
	assert.Contains(t, cmd, "--consumption-plan-location eastus")
	assert.Contains(t, cmd, "--storage-account deltashare1700000000")
	assert.Contains(t, cmd, "--runtime python")
	assert.Contains(t, cmd, "--runtime-version 3.11")
	assert.Contains(t, cmd, "--functions-version 4")
	assert.Contains(t, cmd, "--os-type linux")
}

func TestCreateStorageAccountArgs(t *testing.T) {
	runner := &recordingRunner{}
	err := NewCLI(runner).CreateStorageAccount(context.Background(), "deltashare1700000000", "deltashare-rg", "eastus", "Standard_LRS")
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Contains(t, strings.Join(runner.calls[0], " "), "--sku Standard_LRS")
}

func TestFunctionAppState(t *testing.T) {
	runner := &recordingRunner{out: "Running"}
	state, err := NewCLI(runner).FunctionAppState(context.Background(), "app", "rg")
	require.NoError(t, err)
	assert.Equal(t, "Running", state)
}

func TestFuncToolsPublish(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		tools := NewFuncTools(&recordingRunner{lookPathErr: errors.New("not found")})
		err := tools.CheckInstalled()
		assert.ErrorIs(t, err, apperrors.ErrFuncToolsNotFound)
		assert.Contains(t, err.Error(), "npm install -g azure-functions-core-tools")
	})

	t.Run("PublishArgs", func(t *testing.T) {
		runner := &recordingRunner{}
		tools := NewFuncTools(runner)
		require.NoError(t, tools.Publish(context.Background(), "./app", "deltashare-func-1", "python"))
		require.Len(t, runner.calls, 1)

		cmd := strings.Join(runner.calls[0], " ")
		assert.Contains(t, cmd, "func dir=./app azure functionapp publish deltashare-func-1 --python")
	})
}
