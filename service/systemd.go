// Package service drives systemd units through systemctl.
package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	apexec "github.com/srl-labs/apsetup/exec"
)

// Manager controls system services.
type Manager interface {
	Start(ctx context.Context, unit string) error
	Stop(ctx context.Context, unit string) error
	Restart(ctx context.Context, unit string) error
	Enable(ctx context.Context, unit string) error
	Unmask(ctx context.Context, unit string) error
	IsActive(ctx context.Context, unit string) bool
}

// Systemd is a Manager backed by systemctl.
type Systemd struct {
	r apexec.Runner
}

func NewSystemd(r apexec.Runner) *Systemd {
	return &Systemd{r: r}
}

func (s *Systemd) systemctl(ctx context.Context, verb, unit string) error {
	_, err := apexec.RunChecked(ctx, s.r, apexec.NewExecCmdFromSlice([]string{"systemctl", verb, unit}))
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", verb, unit, err)
	}
	return nil
}

func (s *Systemd) Start(ctx context.Context, unit string) error {
	log.Debugf("starting %s", unit)
	return s.systemctl(ctx, "start", unit)
}

// Stop stops unit. A unit that is not running or not loaded is not an error.
func (s *Systemd) Stop(ctx context.Context, unit string) error {
	if !s.IsActive(ctx, unit) {
		log.Debugf("%s is not running, nothing to stop", unit)
		return nil
	}
	return s.systemctl(ctx, "stop", unit)
}

func (s *Systemd) Restart(ctx context.Context, unit string) error {
	log.Debugf("restarting %s", unit)
	return s.systemctl(ctx, "restart", unit)
}

func (s *Systemd) Enable(ctx context.Context, unit string) error {
	return s.systemctl(ctx, "enable", unit)
}

// Unmask removes a mask; Debian ships hostapd masked until it is configured.
func (s *Systemd) Unmask(ctx context.Context, unit string) error {
	return s.systemctl(ctx, "unmask", unit)
}

func (s *Systemd) IsActive(ctx context.Context, unit string) bool {
	res, err := s.r.Run(ctx, apexec.NewExecCmdFromSlice([]string{"systemctl", "is-active", "--quiet", unit}))
	return err == nil && !res.Failed()
}
