// Package compositor defines the narrow set of window-manager operations the
// cycler needs and builds the concrete backend for the running session.
package compositor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/a9sk/hypr-cycle/internal/ewmh"
	"github.com/a9sk/hypr-cycle/internal/hyprland"
	"github.com/a9sk/hypr-cycle/internal/i3"
	"github.com/a9sk/hypr-cycle/internal/logging"
	"github.com/a9sk/hypr-cycle/internal/models"
)

// Client lists monitors and workspaces and switches the focused monitor to a
// workspace. Returned slices carry no ordering guarantee.
type Client interface {
	Monitors(ctx context.Context) ([]models.Monitor, error)
	Workspaces(ctx context.Context) ([]models.Workspace, error)
	SwitchToWorkspace(ctx context.Context, id int64) error
}

const (
	BackendAuto     = "auto"
	BackendHyprland = "hyprland"
	BackendI3       = "i3"
	BackendEWMH     = "ewmh"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNoBackend      = errors.New("no supported window manager detected")
)

// Backends lists the names accepted by New.
func Backends() []string {
	return []string{BackendAuto, BackendHyprland, BackendI3, BackendEWMH}
}

// Options selects and tunes the backend.
type Options struct {
	Backend string
	Socket  string        // overrides socket discovery (hyprland, i3)
	Timeout time.Duration // per request (hyprland only)
}

// New builds the client for opts.Backend, detecting it from the environment
// when it is empty or "auto".
func New(opts Options) (Client, error) {
	backend := opts.Backend
	if backend == "" || backend == BackendAuto {
		detected, err := Detect(os.Getenv)
		if err != nil {
			return nil, err
		}
		backend = detected
		logging.Debug().Str("backend", backend).Msg("detected backend")
	}

	switch backend {
	case BackendHyprland:
		c, err := hyprland.NewClient(opts.Socket, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendI3:
		return i3.NewClient(opts.Socket), nil
	case BackendEWMH:
		c, err := ewmh.NewClient()
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, backend)
	}
}

// Detect picks a backend from session environment variables.
func Detect(getenv func(string) string) (string, error) {
	switch {
	case getenv("HYPRLAND_INSTANCE_SIGNATURE") != "":
		return BackendHyprland, nil
	case getenv("SWAYSOCK") != "", getenv("I3SOCK") != "":
		return BackendI3, nil
	case getenv("DISPLAY") != "":
		return BackendEWMH, nil
	default:
		return "", ErrNoBackend
	}
}

// Close releases c if it holds resources.
func Close(c Client) error {
	if closer, ok := c.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
