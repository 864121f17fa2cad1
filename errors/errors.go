package errors

import "errors"

// ErrFileNotFound is returned when a file is not found.
var ErrFileNotFound = errors.New("file not found")

// ErrIncorrectInput is returned when the user input is incorrect.
var ErrIncorrectInput = errors.New("incorrect input")

// ErrNotRoot is returned when setup is invoked without root privileges.
var ErrNotRoot = errors.New("apsetup requires root privileges to run")

// ErrInstallFailed is returned when the package manager exits non-zero.
var ErrInstallFailed = errors.New("dependency installation failed")

// ErrNoWirelessInterface is returned when no wireless interface is present on the host.
var ErrNoWirelessInterface = errors.New("no wireless interface found")

// ErrDaemonStart is returned when the authenticator daemon fails to start.
var ErrDaemonStart = errors.New("failed to start hostapd")

// ErrCancelled is returned when the operator declines the final confirmation.
// It is not a failure.
var ErrCancelled = errors.New("cancelled by operator")
