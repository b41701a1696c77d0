// Package hyprland talks to Hyprland's request socket and translates its
// replies into monitors and workspaces.
package hyprland

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/a9sk/hypr-cycle/internal/logging"
	"github.com/a9sk/hypr-cycle/internal/models"
)

const DefaultTimeout = 2 * time.Second

// ErrCommandRejected is returned when a dispatch is answered with anything but "ok".
var ErrCommandRejected = errors.New("hyprland rejected command")

// Client sends one request per connection; Hyprland closes the socket after replying.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient returns a client for socketPath, discovering the socket of the
// running instance when socketPath is empty.
func NewClient(socketPath string, timeout time.Duration) (*Client, error) {
	if socketPath == "" {
		path, err := SocketPath(os.Getenv)
		if err != nil {
			return nil, err
		}
		socketPath = path
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{socketPath: socketPath, timeout: timeout}, nil
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// monitorJSON is the subset of `j/monitors` we read.
type monitorJSON struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Focused         bool   `json:"focused"`
	ActiveWorkspace struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"activeWorkspace"`
}

// workspaceJSON is the subset of `j/workspaces` we read.
type workspaceJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Monitor string `json:"monitor"`
}

func (m monitorJSON) toModel() models.Monitor {
	mon := models.NewMonitor(m.Name, m.ID, m.Focused, m.ActiveWorkspace.ID)
	mon.ActiveWorkspace.Name = m.ActiveWorkspace.Name
	return mon
}

func (w workspaceJSON) toModel() models.Workspace {
	ws := models.NewWorkspace(w.ID, w.Monitor)
	ws.Name = w.Name
	return ws
}

// Monitors queries `j/monitors`.
func (c *Client) Monitors(ctx context.Context) ([]models.Monitor, error) {
	var raw []monitorJSON
	if err := c.query(ctx, "j/monitors", &raw); err != nil {
		return nil, err
	}

	out := make([]models.Monitor, 0, len(raw))
	for _, m := range raw {
		out = append(out, m.toModel())
	}
	return out, nil
}

// Workspaces queries `j/workspaces`.
func (c *Client) Workspaces(ctx context.Context) ([]models.Workspace, error) {
	var raw []workspaceJSON
	if err := c.query(ctx, "j/workspaces", &raw); err != nil {
		return nil, err
	}

	out := make([]models.Workspace, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

// SwitchToWorkspace dispatches `workspace <id>`.
func (c *Client) SwitchToWorkspace(ctx context.Context, id int64) error {
	cmd := fmt.Sprintf("dispatch workspace %d", id)
	reply, err := c.request(ctx, cmd)
	if err != nil {
		return err
	}
	if r := strings.TrimSpace(string(reply)); r != "ok" {
		return fmt.Errorf("%w %q: %s", ErrCommandRejected, cmd, r)
	}
	return nil
}

func (c *Client) query(ctx context.Context, cmd string, v any) error {
	reply, err := c.request(ctx, cmd)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(reply, v); err != nil {
		return fmt.Errorf("decoding %s reply: %w", cmd, err)
	}
	return nil
}

// request writes cmd and reads the reply until Hyprland closes the connection.
func (c *Client) request(ctx context.Context, cmd string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to hyprland socket %s: %w", c.socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("setting deadline: %w", err)
		}
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	start := time.Now()
	if _, err := io.WriteString(conn, cmd); err != nil {
		return nil, fmt.Errorf("writing %q: %w", cmd, wrapCtx(ctx, err))
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("reading %q reply: %w", cmd, wrapCtx(ctx, err))
	}

	logging.Debug().Str("cmd", cmd).Int("bytes", len(reply)).Dur("took", time.Since(start)).Msg("hyprland request")
	return reply, nil
}

// wrapCtx reports cancellation and socket deadlines as context errors.
func wrapCtx(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	return err
}
