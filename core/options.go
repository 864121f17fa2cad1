package core

import (
	"errors"

	apexec "github.com/srl-labs/apsetup/exec"
	"github.com/srl-labs/apsetup/hostnet"
	"github.com/srl-labs/apsetup/prompt"
)

type SetupOption func(s *Setup) error

// WithRunner sets the runner used for every external command.
func WithRunner(r apexec.Runner) SetupOption {
	return func(s *Setup) error {
		s.runner = r

		return nil
	}
}

// WithLinkManager sets the link manager used for discovery and addressing.
func WithLinkManager(l hostnet.LinkManager) SetupOption {
	return func(s *Setup) error {
		s.links = l

		return nil
	}
}

// WithPrompter sets the prompter the operator answers on.
func WithPrompter(p *prompt.Prompter) SetupOption {
	return func(s *Setup) error {
		s.prompter = p

		return nil
	}
}

// WithPreset prefills answers.
func WithPreset(p *prompt.Preset) SetupOption {
	return func(s *Setup) error {
		s.preset = p

		return nil
	}
}

// WithRoot relocates every file read or written under root.
func WithRoot(root string) SetupOption {
	return func(s *Setup) error {
		if root == "" {
			return errors.New("empty root directory")
		}

		s.root = root

		return nil
	}
}
