package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"
)

// Runner executes commands on the host.
// A non-zero exit code is reported through ExecResult, not as an error;
// the error is reserved for commands that could not be run at all.
type Runner interface {
	Run(ctx context.Context, cmd *ExecCmd) (*ExecResult, error)
	// LookPath reports whether the named binary is found in PATH.
	LookPath(name string) bool
}

// ExecCmd represents an exec command.
type ExecCmd struct {
	Cmd []string `json:"cmd"` // Cmd is a slice-based representation of a string command.
	// Env holds KEY=value pairs added on top of the process environment.
	Env []string `json:"env,omitempty"`
}

// NewExecCmdFromString creates ExecCmd for a string-based command.
func NewExecCmdFromString(cmd string) (*ExecCmd, error) {
	result := &ExecCmd{}
	if err := result.SetCmd(cmd); err != nil {
		return nil, err
	}
	return result, nil
}

// NewExecCmdFromSlice creates ExecCmd for a command represented as a slice of strings.
func NewExecCmdFromSlice(cmd []string) *ExecCmd {
	return &ExecCmd{
		Cmd: cmd,
	}
}

// MustExecCmd is like NewExecCmdFromString but panics on a malformed command.
// Meant for command strings assembled from constants.
func MustExecCmd(cmd string) *ExecCmd {
	c, err := NewExecCmdFromString(cmd)
	if err != nil {
		panic(fmt.Sprintf("malformed command %q: %v", cmd, err))
	}
	return c
}

// WithEnv adds environment variables to the command.
func (e *ExecCmd) WithEnv(env ...string) *ExecCmd {
	e.Env = append(e.Env, env...)
	return e
}

// SetCmd sets the command that is to be executed.
func (e *ExecCmd) SetCmd(cmd string) error {
	c, err := shlex.Split(cmd)
	if err != nil {
		return err
	}
	if len(c) == 0 {
		return fmt.Errorf("empty command")
	}
	e.Cmd = c
	return nil
}

// GetCmd returns the command that is to be executed.
func (e *ExecCmd) GetCmd() []string {
	return e.Cmd
}

// GetCmdString returns the command as a single string, e.g. for log output.
func (e *ExecCmd) GetCmdString() string {
	return strings.Join(e.Cmd, " ")
}

// ExecResult represents a result of a command execution.
type ExecResult struct {
	Cmd        []string `json:"cmd"`
	ReturnCode int      `json:"return-code"`
	Stdout     string   `json:"stdout"`
	Stderr     string   `json:"stderr"`
}

func NewExecResult(op *ExecCmd) *ExecResult {
	er := &ExecResult{Cmd: op.GetCmd()}
	return er
}

func (e *ExecResult) String() string {
	var s strings.Builder

	s.WriteString(fmt.Sprintf("Cmd: %s\nReturnCode: %d", e.GetCmdString(), e.ReturnCode))

	if e.Stdout != "" {
		s.WriteString(fmt.Sprintf("\nStdout: %q", e.Stdout))
	}
	if e.Stderr != "" {
		s.WriteString(fmt.Sprintf("\nStderr: %q", e.Stderr))
	}

	return s.String()
}

// GetCmdString returns the initially parsed cmd as a string for e.g. log output purpose.
func (e *ExecResult) GetCmdString() string {
	return strings.Join(e.Cmd, " ")
}

func (e *ExecResult) GetReturnCode() int {
	return e.ReturnCode
}

func (e *ExecResult) GetStdOutString() string {
	return e.Stdout
}

func (e *ExecResult) GetStdErrString() string {
	return e.Stderr
}

// Failed reports whether the command exited with a non-zero code.
func (e *ExecResult) Failed() bool {
	return e.ReturnCode != 0
}

// AsError returns nil for a successful result and an error carrying
// the command, return code and stderr otherwise.
func (e *ExecResult) AsError() error {
	if !e.Failed() {
		return nil
	}
	stderr := strings.TrimSpace(e.GetStdErrString())
	if stderr == "" {
		return fmt.Errorf("command %q exited with code %d", e.GetCmdString(), e.GetReturnCode())
	}
	return fmt.Errorf("command %q exited with code %d: %s", e.GetCmdString(), e.GetReturnCode(), stderr)
}

// HostRunner runs commands with os/exec.
type HostRunner struct{}

// NewHostRunner returns a Runner executing commands on the local host.
func NewHostRunner() *HostRunner {
	return &HostRunner{}
}

// Run executes the command and waits for it to complete. No timeout is applied
// besides the one carried by ctx.
func (*HostRunner) Run(ctx context.Context, cmd *ExecCmd) (*ExecResult, error) {
	if len(cmd.Cmd) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	res := NewExecResult(cmd)

	c := osexec.CommandContext(ctx, cmd.Cmd[0], cmd.Cmd[1:]...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	log.Debug("Running command", "command", cmd.GetCmdString())

	err := c.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *osexec.ExitError
	switch {
	case errors.As(err, &exitErr):
		res.ReturnCode = exitErr.ExitCode()
	case err != nil:
		return nil, fmt.Errorf("failed to run %q: %w", cmd.GetCmdString(), err)
	}

	if res.Failed() {
		log.Debug("Command failed",
			"command", res.GetCmdString(),
			"rc", res.ReturnCode,
			"stderr", res.Stderr,
		)
	}

	return res, nil
}

// LookPath reports whether name resolves to an executable in PATH.
func (*HostRunner) LookPath(name string) bool {
	_, err := osexec.LookPath(name)
	return err == nil
}

// RunChecked runs cmd and turns a non-zero exit into an error.
func RunChecked(ctx context.Context, r Runner, cmd *ExecCmd) (*ExecResult, error) {
	res, err := r.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return res, res.AsError()
}
