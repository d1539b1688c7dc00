// Package browser opens shoutout images and the web dashboard in the
// system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher starts the platform command that hands a URL to the browser.
type Launcher func(name string, args ...string) error

// Opener validates URLs before launching them.
type Opener struct {
	goos   string
	launch Launcher
}

// New returns an Opener for the running platform.
func New() *Opener {
	return &Opener{goos: runtime.GOOS, launch: startCommand}
}

// NewWithLauncher returns an Opener for goos that launches through launch.
func NewWithLauncher(goos string, launch Launcher) *Opener {
	return &Opener{goos: goos, launch: launch}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // #nosec G204 -- URL validated by Opener.Open
}

// Open opens the specified URL in the default browser. Only absolute http
// and https URLs are accepted so nothing else reaches the shell.
func (o *Opener) Open(rawURL string) error {
	target, err := Validate(rawURL)
	if err != nil {
		return err
	}

	switch o.goos {
	case "linux", "freebsd", "openbsd":
		return o.launch("xdg-open", target)
	case "darwin":
		return o.launch("open", target)
	case "windows":
		return o.launch("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

// Validate parses rawURL and returns its normalized form.
func Validate(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s (only http and https allowed)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL: missing host")
	}
	return parsed.String(), nil
}

// Open opens rawURL with the platform's default browser.
func Open(rawURL string) error {
	return New().Open(rawURL)
}
