// Package browser launches links in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/ports/driven"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure Opener implements the interface.
var _ driven.LinkOpener = (*Opener)(nil)

// Opener starts the platform's URL handler for each link.
type Opener struct {
	goos  string
	start func(name string, args ...string) error
}

// NewOpener creates an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, start: startDetached}
}

// Open launches link and returns without waiting for the browser.
// Only http and https links are accepted.
func (o *Opener) Open(link string) error {
	if err := checkLink(link); err != nil {
		return err
	}
	name, args, err := command(o.goos, link)
	if err != nil {
		return err
	}
	return o.start(name, args...)
}

// command returns the program and arguments that open link on goos.
func command(goos, link string) (string, []string, error) {
	switch goos {
	case osDarwin:
		return "open", []string{link}, nil
	case osLinux:
		return "xdg-open", []string{link}, nil
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, goos)
	}
}

func checkLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: refusing to open %q (not an http link)", domain.ErrInvalidInput, link)
	}
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
