package hyprland

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ErrNotRunning means no Hyprland instance signature is set in the environment.
var ErrNotRunning = errors.New("hyprland is not running (HYPRLAND_INSTANCE_SIGNATURE is not set)")

const socketName = ".socket.sock"

// SocketPath locates the request socket of the current Hyprland instance.
// Newer releases keep it under $XDG_RUNTIME_DIR/hypr, older ones under /tmp/hypr.
func SocketPath(getenv func(string) string) (string, error) {
	sig := getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", ErrNotRunning
	}

	runtimeDir := getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = fmt.Sprintf("/run/user/%d", unix.Getuid())
	}

	current := filepath.Join(runtimeDir, "hypr", sig, socketName)
	if _, err := os.Stat(current); err == nil {
		return current, nil
	}

	legacy := filepath.Join("/tmp", "hypr", sig, socketName)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}

	// neither exists; report the current location when dialing fails
	return current, nil
}
