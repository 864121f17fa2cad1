package exec

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewExecCmdFromString(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		want    []string
		wantErr bool
	}{
		{
			name: "plain words",
			cmd:  "iw dev wlan0 interface add wlan0_ap type __ap",
			want: []string{"iw", "dev", "wlan0", "interface", "add", "wlan0_ap", "type", "__ap"},
		},
		{
			name: "quoted argument",
			cmd:  `iptables -m comment --comment "set by apsetup"`,
			want: []string{"iptables", "-m", "comment", "--comment", "set by apsetup"},
		},
		{
			name:    "unterminated quote",
			cmd:     `echo "foo`,
			wantErr: true,
		},
		{
			name:    "empty",
			cmd:     "   ",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExecCmdFromString(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExecCmdFromString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if d := cmp.Diff(tt.want, got.GetCmd()); d != "" {
				t.Errorf("NewExecCmdFromString() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestExecResultAsError(t *testing.T) {
	ok := &ExecResult{Cmd: []string{"true"}}
	if err := ok.AsError(); err != nil {
		t.Errorf("AsError() on success = %v, want nil", err)
	}

	failed := &ExecResult{Cmd: []string{"apt-get", "install"}, ReturnCode: 100, Stderr: "E: Unable to locate package\n"}
	err := failed.AsError()
	if err == nil {
		t.Fatal("AsError() on failure = nil, want error")
	}
	want := `command "apt-get install" exited with code 100: E: Unable to locate package`
	if err.Error() != want {
		t.Errorf("AsError() = %q, want %q", err.Error(), want)
	}
}

func TestHostRunner(t *testing.T) {
	r := NewHostRunner()
	if !r.LookPath("sh") {
		t.Skip("sh not available")
	}

	res, err := r.Run(context.Background(), NewExecCmdFromSlice([]string{"sh", "-c", "echo out; echo err >&2; exit 3"}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ReturnCode != 3 {
		t.Errorf("ReturnCode = %d, want 3", res.ReturnCode)
	}
	if res.Stdout != "out\n" || res.Stderr != "err\n" {
		t.Errorf("unexpected output: stdout %q stderr %q", res.Stdout, res.Stderr)
	}

	res, err = r.Run(context.Background(),
		NewExecCmdFromSlice([]string{"sh", "-c", "echo $APSETUP_TEST"}).WithEnv("APSETUP_TEST=yes"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Stdout != "yes\n" {
		t.Errorf("env not passed, stdout %q", res.Stdout)
	}

	_, err = r.Run(context.Background(), NewExecCmdFromSlice([]string{"/nonexistent/binary"}))
	if err == nil {
		t.Error("Run() of missing binary returned nil error")
	}
}

func TestRecorder(t *testing.T) {
	boom := errors.New("boom")
	r := NewRecorder().
		On("iw dev", Response{Stdout: "Interface wlan0\n"}).
		On("iw dev wlan0 interface add", Response{ReturnCode: 1}).
		On("systemctl", Response{Err: boom})

	ctx := context.Background()

	res, _ := r.Run(ctx, MustExecCmd("iw dev"))
	if res.Stdout != "Interface wlan0\n" {
		t.Errorf("iw dev stdout = %q", res.Stdout)
	}

	res, _ = r.Run(ctx, MustExecCmd("iw dev wlan0 interface add wlan0_ap type __ap"))
	if res.ReturnCode != 1 {
		t.Errorf("longest prefix not used, rc = %d", res.ReturnCode)
	}

	if _, err := r.Run(ctx, MustExecCmd("systemctl start hostapd")); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}

	if _, err := RunChecked(ctx, r, MustExecCmd("iw dev wlan0 interface add x")); err == nil {
		t.Error("RunChecked() did not report non-zero exit")
	}

	want := []string{
		"iw dev",
		"iw dev wlan0 interface add wlan0_ap type __ap",
		"systemctl start hostapd",
		"iw dev wlan0 interface add x",
	}
	if d := cmp.Diff(want, r.Commands()); d != "" {
		t.Errorf("Commands() mismatch (-want +got):\n%s", d)
	}
}
