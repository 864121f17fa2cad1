// Package prompt collects the access point settings from the operator.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/srl-labs/apsetup/apconfig"
	aperrors "github.com/srl-labs/apsetup/errors"
	"github.com/srl-labs/apsetup/utils"
)

// Preset holds answers supplied up front (flags or environment).
// Zero values mean "ask the operator".
type Preset struct {
	SSID       string
	Passphrase string
	Channel    int
	Forwarding *bool
	Uplink     string
	APAddress  string
	DHCPStart  string
	DHCPEnd    string
	// AssumeYes skips the final confirmation.
	AssumeYes bool
}

// Prompter asks questions on out and reads answers from in.
// Reads give up when the context is done; the Prompter must not be used afterwards.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// readSecret reads the passphrase. Falls back to a plain line read when nil.
	readSecret func(ctx context.Context) (string, error)
}

// New returns a Prompter reading plain lines from in.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// NewTerminal returns a Prompter on stdin/stdout that reads the passphrase
// without echo when stdin is a terminal.
func NewTerminal() *Prompter {
	p := New(os.Stdin, os.Stdout)
	if utils.IsTerminal(os.Stdin.Fd()) {
		p.readSecret = func(ctx context.Context) (string, error) {
			s, err := utils.ReadPasswordFromTerminal(ctx, int(os.Stdin.Fd()))
			fmt.Fprintln(p.out)
			return s, err
		}
	}
	return p
}

type lineResult struct {
	line string
	err  error
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- lineResult{line, err}
	}()

	var (
		line string
		err  error
	)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		line, err = r.line, r.err
	}

	switch {
	case errors.Is(err, io.EOF) && line == "":
		return "", fmt.Errorf("reading answer: %w", io.ErrUnexpectedEOF)
	case err != nil && !errors.Is(err, io.EOF):
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return utils.StripNonPrintChars(strings.TrimRight(line, "\r\n")), nil
}

// ask prints the question and returns the trimmed answer, or def for an empty answer.
func (p *Prompter) ask(ctx context.Context, question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	ans, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	ans = strings.TrimSpace(ans)
	if ans == "" {
		return def, nil
	}
	return ans, nil
}

// askSecret reads the passphrase with readSecret. Answers already buffered from
// in, e.g. pasted ahead of the prompt, are consumed first so they aren't lost.
func (p *Prompter) askSecret(ctx context.Context, question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	if p.readSecret == nil || p.in.Buffered() > 0 {
		return p.readLine(ctx)
	}
	return p.readSecret(ctx)
}

func (p *Prompter) invalid(err error) {
	fmt.Fprintf(p.out, "  %v\n", err)
}

// until asks question until parse accepts the answer.
func until[T any](ctx context.Context, p *Prompter, question, def string, parse func(string) (T, error)) (T, error) {
	for {
		ans, err := p.ask(ctx, question, def)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(ans)
		if err == nil {
			return v, nil
		}
		p.invalid(err)
	}
}

// preset returns the parsed preset value when s is set and valid.
func preset[T any](p *Prompter, field, s string, parse func(string) (T, error)) (T, bool) {
	var zero T
	if s == "" {
		return zero, false
	}
	v, err := parse(s)
	if err != nil {
		p.invalid(fmt.Errorf("preset %s ignored: %w", field, err))
		return zero, false
	}
	log.Debugf("using preset %s", field)
	return v, true
}

func check(v func(string) error) func(string) (string, error) {
	return func(s string) (string, error) {
		return s, v(s)
	}
}

// Collect fills cfg from pre and the operator's answers, in order:
// SSID, passphrase, channel, forwarding, uplink, AP address, DHCP start, DHCP end.
// Invalid answers are asked again.
func (p *Prompter) Collect(ctx context.Context, cfg *apconfig.Config, pre *Preset) error {
	if pre == nil {
		pre = &Preset{}
	}

	var err error

	if v, ok := preset(p, "SSID", pre.SSID, check(apconfig.ValidateSSID)); ok {
		cfg.SSID = v
	} else if cfg.SSID, err = until(ctx, p, "SSID", "", check(apconfig.ValidateSSID)); err != nil {
		return err
	}

	if v, ok := preset(p, "passphrase", pre.Passphrase, check(apconfig.ValidatePassphrase)); ok {
		cfg.Passphrase = v
	} else if cfg.Passphrase, err = p.collectPassphrase(ctx); err != nil {
		return err
	}

	var chPreset string
	if pre.Channel != 0 {
		chPreset = strconv.Itoa(pre.Channel)
	}
	if v, ok := preset(p, "channel", chPreset, apconfig.ParseChannel); ok {
		cfg.Channel = v
	} else if cfg.Channel, err = until(ctx, p, "Channel", strconv.Itoa(cfg.Channel), apconfig.ParseChannel); err != nil {
		return err
	}

	if pre.Forwarding != nil {
		cfg.Forwarding = *pre.Forwarding
	} else if cfg.Forwarding, err = p.Confirm(ctx, "Enable internet forwarding", false); err != nil {
		return err
	}

	if cfg.Forwarding {
		if v, ok := preset(p, "uplink", pre.Uplink, check(apconfig.ValidateUplink)); ok {
			cfg.Uplink = v
		} else if cfg.Uplink, err = until(ctx, p, "Uplink interface (e.g. eth0)", "",
			check(apconfig.ValidateUplink)); err != nil {
			return err
		}
	}

	if v, ok := preset(p, "AP address", pre.APAddress, apconfig.ParseIPv4); ok {
		cfg.APAddress = v
	} else if cfg.APAddress, err = until(ctx, p, "AP IP address", cfg.APAddress.String(), apconfig.ParseIPv4); err != nil {
		return err
	}

	start, end := apconfig.DefaultDHCPRange(cfg.APAddress)
	inAPNet := func(s string) (netip.Addr, error) {
		a, err := apconfig.ParseIPv4(s)
		if err != nil {
			return a, err
		}
		return a, apconfig.ValidateDHCPAddr(cfg.APAddress, a)
	}

	if v, ok := preset(p, "DHCP start", pre.DHCPStart, inAPNet); ok {
		cfg.DHCPStart = v
	} else if cfg.DHCPStart, err = until(ctx, p, "DHCP range start", start.String(), inAPNet); err != nil {
		return err
	}

	notBelowStart := func(s string) (netip.Addr, error) {
		a, err := inAPNet(s)
		if err != nil {
			return a, err
		}
		if a.Less(cfg.DHCPStart) {
			return a, fmt.Errorf("%w: DHCP range end %s is lower than start %s",
				aperrors.ErrIncorrectInput, a, cfg.DHCPStart)
		}
		return a, nil
	}

	if v, ok := preset(p, "DHCP end", pre.DHCPEnd, notBelowStart); ok {
		cfg.DHCPEnd = v
	} else if cfg.DHCPEnd, err = until(ctx, p, "DHCP range end", end.String(), notBelowStart); err != nil {
		return err
	}

	return cfg.Validate()
}

func (p *Prompter) collectPassphrase(ctx context.Context) (string, error) {
	for {
		pass, err := p.askSecret(ctx, "Passphrase (min 8 characters)")
		if err != nil {
			return "", err
		}
		if err := apconfig.ValidatePassphrase(pass); err != nil {
			p.invalid(err)
			continue
		}
		return pass, nil
	}
}

// Confirm asks a yes/no question. An empty answer yields def.
func (p *Prompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s (%s): ", question, hint)
		ans, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(ans)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.invalid(fmt.Errorf("%w: answer y or n", aperrors.ErrIncorrectInput))
	}
}

// Summary prints the collected configuration with the passphrase masked.
func (p *Prompter) Summary(cfg *apconfig.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatTitle
	t.SetTitle("Access point configuration")

	forwarding := "disabled"
	if cfg.Forwarding {
		forwarding = "enabled via " + cfg.Uplink
	}

	t.AppendRows([]table.Row{
		{"Wireless interface", cfg.PhysIface},
		{"SSID", cfg.SSID},
		{"Passphrase", apconfig.MaskPassphrase(cfg.Passphrase)},
		{"Channel", cfg.Channel},
		{"Internet forwarding", forwarding},
		{"AP IP address", cfg.APPrefix().String()},
		{"DHCP range", cfg.DHCPStart.String() + " - " + cfg.DHCPEnd.String()},
	})

	t.Render()
}

// ConfirmApply shows the summary and asks for the final confirmation.
// Declining returns ErrCancelled.
func (p *Prompter) ConfirmApply(ctx context.Context, cfg *apconfig.Config, pre *Preset) error {
	p.Summary(cfg)

	if pre != nil && pre.AssumeYes {
		return nil
	}

	ok, err := p.Confirm(ctx, "Apply this configuration", false)
	if err != nil {
		return err
	}
	if !ok {
		return aperrors.ErrCancelled
	}
	return nil
}
