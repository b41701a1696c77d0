package i3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.i3wm.org/i3"

	"github.com/a9sk/hypr-cycle/internal/logging"
	"github.com/a9sk/hypr-cycle/internal/models"
)

// ErrCommandFailed is returned when i3 reports an unsuccessful command.
var ErrCommandFailed = errors.New("i3 command failed")

var (
	// hooks to the i3 IPC, replaced in tests
	getOutputs    = i3.GetOutputs
	getWorkspaces = i3.GetWorkspaces
	runCommand    = i3.RunCommand

	// asks the i3 binary, which does not exist under sway
	librarySocketPath = i3.SocketPathHook
)

// Client maps i3 (and sway) outputs and numbered workspaces onto monitors
// and workspaces. The i3 IPC library dials per call, so Client holds nothing.
type Client struct{}

// NewClient returns an i3 client talking to socket, or to the socket found by
// SocketPath when socket is empty.
func NewClient(socket string) *Client {
	i3.SocketPathHook = func() (string, error) {
		return SocketPath(socket, os.Getenv, librarySocketPath)
	}
	return &Client{}
}

// SocketPath picks the IPC socket: an explicit path, then $SWAYSOCK, then
// $I3SOCK, and finally whatever fallback reports.
func SocketPath(explicit string, getenv func(string) string, fallback func() (string, error)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, key := range []string{"SWAYSOCK", "I3SOCK"} {
		if p := getenv(key); p != "" {
			return p, nil
		}
	}
	return fallback()
}

// Monitors lists the active outputs. The focused one is the output that
// holds the focused workspace.
func (c *Client) Monitors(ctx context.Context) ([]models.Monitor, error) {
	outputs, err := getOutputs()
	if err != nil {
		return nil, fmt.Errorf("getting i3 outputs: %w", err)
	}
	workspaces, err := getWorkspaces()
	if err != nil {
		return nil, fmt.Errorf("getting i3 workspaces: %w", err)
	}

	focusedOutput := ""
	numByName := make(map[string]int64, len(workspaces))
	for _, ws := range workspaces {
		numByName[ws.Name] = ws.Num
		if ws.Focused {
			focusedOutput = ws.Output
		}
	}

	var monitors []models.Monitor
	for _, o := range outputs {
		// i3 lists disabled outputs and the internal xroot-0 as inactive
		if !o.Active {
			continue
		}
		active, ok := numByName[o.CurrentWorkspace]
		if !ok {
			active = -1
		}
		m := models.NewMonitor(o.Name, int64(len(monitors)+1), o.Name == focusedOutput, active)
		m.ActiveWorkspace.Name = o.CurrentWorkspace
		monitors = append(monitors, m)
	}

	logging.Debug().Int("outputs", len(outputs)).Int("active", len(monitors)).Msg("i3 outputs")
	return monitors, nil
}

// Workspaces lists workspaces by number. Named workspaces without a number
// have Num -1 and are treated as hidden.
func (c *Client) Workspaces(ctx context.Context) ([]models.Workspace, error) {
	workspaces, err := getWorkspaces()
	if err != nil {
		return nil, fmt.Errorf("getting i3 workspaces: %w", err)
	}

	out := make([]models.Workspace, 0, len(workspaces))
	for _, ws := range workspaces {
		w := models.NewWorkspace(ws.Num, ws.Output)
		w.Name = ws.Name
		out = append(out, w)
	}
	return out, nil
}

// SwitchToWorkspace runs `workspace number <id>`.
func (c *Client) SwitchToWorkspace(ctx context.Context, id int64) error {
	cmd := fmt.Sprintf("workspace number %d", id)
	results, err := runCommand(cmd)
	if err != nil {
		return fmt.Errorf("running %q: %w", cmd, err)
	}

	var msgs []string
	for _, r := range results {
		if !r.Success {
			msgs = append(msgs, r.Error)
		}
	}
	if len(msgs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrCommandFailed, cmd, strings.Join(msgs, "; "))
	}
	return nil
}
