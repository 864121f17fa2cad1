// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	aperrors "github.com/srl-labs/apsetup/errors"
)

func TestSetLine(t *testing.T) {
	daemonConf := regexp.MustCompile(`^\s*#?\s*DAEMON_CONF=`)
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "commented line is replaced",
			content: "# Defaults for hostapd\n#DAEMON_CONF=\"\"\n#DAEMON_OPTS=\"\"\n",
			want:    "# Defaults for hostapd\nDAEMON_CONF=\"/etc/hostapd/hostapd.conf\"\n#DAEMON_OPTS=\"\"\n",
		},
		{
			name:    "existing value is replaced and duplicates dropped",
			content: "DAEMON_CONF=\"/tmp/a\"\nDAEMON_CONF=\"/tmp/b\"\n",
			want:    "DAEMON_CONF=\"/etc/hostapd/hostapd.conf\"\n",
		},
		{
			name:    "missing line is appended",
			content: "DAEMON_OPTS=\"-d\"",
			want:    "DAEMON_OPTS=\"-d\"\nDAEMON_CONF=\"/etc/hostapd/hostapd.conf\"\n",
		},
		{
			name:    "empty content",
			content: "",
			want:    "DAEMON_CONF=\"/etc/hostapd/hostapd.conf\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(setLine([]byte(tt.content), daemonConf, `DAEMON_CONF="/etc/hostapd/hostapd.conf"`))
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("setLine() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestSetLineCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "sysctl.conf")

	err := SetLine(path, regexp.MustCompile(`^#?net\.ipv4\.ip_forward`), "net.ipv4.ip_forward=1", 0o644)
	if err != nil {
		t.Fatalf("SetLine() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "net.ipv4.ip_forward=1\n" {
		t.Errorf("unexpected content %q", b)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostapd", "hostapd.conf")

	if err := WriteFile(path, []byte("ssid=lab\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}

	if !FileExists(path) {
		t.Error("FileExists() = false after write")
	}
	if FileExists(filepath.Dir(path)) {
		t.Error("FileExists() = true for a directory")
	}
}

func TestReadFileContentMissing(t *testing.T) {
	_, err := ReadFileContent(filepath.Join(t.TempDir(), "sysctl.conf"))
	if !errors.Is(err, aperrors.ErrFileNotFound) {
		t.Fatalf("got error %v, want %v", err, aperrors.ErrFileNotFound)
	}
}
