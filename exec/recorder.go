package exec

import (
	"context"
	"strings"
	"sync"
)

// Response is a canned result returned by Recorder for a matching command.
type Response struct {
	ReturnCode int
	Stdout     string
	Stderr     string
	Err        error
	// Hook is called with the matched command before the response is returned.
	Hook func(cmd *ExecCmd)
}

// Recorder is a Runner that records executed commands and replies
// with canned responses instead of touching the host.
type Recorder struct {
	m         sync.Mutex
	cmds      []*ExecCmd
	responses map[string]Response
	// Binaries lists names LookPath reports as present.
	// A nil map means every binary is present.
	Binaries map[string]bool
}

// NewRecorder returns an empty Recorder where every command succeeds with no output.
func NewRecorder() *Recorder {
	return &Recorder{
		responses: map[string]Response{},
	}
}

// On registers a response for commands starting with prefix.
// The longest matching prefix wins.
func (r *Recorder) On(prefix string, resp Response) *Recorder {
	r.m.Lock()
	defer r.m.Unlock()
	r.responses[prefix] = resp
	return r
}

func (r *Recorder) Run(_ context.Context, cmd *ExecCmd) (*ExecResult, error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.cmds = append(r.cmds, cmd)

	s := cmd.GetCmdString()
	var (
		best  string
		found bool
	)
	for prefix := range r.responses {
		if strings.HasPrefix(s, prefix) && len(prefix) >= len(best) {
			best = prefix
			found = true
		}
	}

	res := NewExecResult(cmd)
	if !found {
		return res, nil
	}

	resp := r.responses[best]
	if resp.Hook != nil {
		resp.Hook(cmd)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	res.ReturnCode = resp.ReturnCode
	res.Stdout = resp.Stdout
	res.Stderr = resp.Stderr

	return res, nil
}

func (r *Recorder) LookPath(name string) bool {
	if r.Binaries == nil {
		return true
	}
	return r.Binaries[name]
}

// Commands returns executed commands as strings in execution order.
func (r *Recorder) Commands() []string {
	r.m.Lock()
	defer r.m.Unlock()

	out := make([]string, 0, len(r.cmds))
	for _, c := range r.cmds {
		out = append(out, c.GetCmdString())
	}
	return out
}

// Executed returns the recorded ExecCmd values in execution order.
func (r *Recorder) Executed() []*ExecCmd {
	r.m.Lock()
	defer r.m.Unlock()

	return append([]*ExecCmd(nil), r.cmds...)
}

// CommandsWithPrefix returns executed commands starting with prefix.
func (r *Recorder) CommandsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range r.Commands() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
