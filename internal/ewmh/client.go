// Package ewmh cycles desktops on any EWMH compliant X11 window manager.
// X11 desktops span every screen, so the whole display is one monitor.
package ewmh

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/a9sk/hypr-cycle/internal/logging"
	"github.com/a9sk/hypr-cycle/internal/models"
)

// desktops is the part of the EWMH root window protocol we use.
type desktops interface {
	Count() (uint, error)
	Current() (uint, error)
	Names() ([]string, error)
	Activate(index int) error
	Close()
}

type x11Desktops struct {
	xu *xgbutil.XUtil
}

func (d x11Desktops) Count() (uint, error)     { return ewmh.NumberOfDesktopsGet(d.xu) }
func (d x11Desktops) Current() (uint, error)   { return ewmh.CurrentDesktopGet(d.xu) }
func (d x11Desktops) Names() ([]string, error) { return ewmh.DesktopNamesGet(d.xu) }
func (d x11Desktops) Activate(index int) error { return ewmh.CurrentDesktopReq(d.xu, index) }
func (d x11Desktops) Close()                   { d.xu.Conn().Close() }

// Client holds one X connection until Close.
type Client struct {
	desktops desktops
	display  string
}

// NewClient connects to $DISPLAY.
func NewClient() (*Client, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to X11: %w", err)
	}
	return newClient(x11Desktops{xu: xu}, os.Getenv("DISPLAY")), nil
}

func newClient(d desktops, display string) *Client {
	if display == "" {
		display = "X11"
	}
	return &Client{desktops: d, display: display}
}

// Monitors returns the display as a single, focused monitor.
func (c *Client) Monitors(ctx context.Context) ([]models.Monitor, error) {
	current, err := c.desktops.Current()
	if err != nil {
		return nil, fmt.Errorf("reading _NET_CURRENT_DESKTOP: %w", err)
	}
	m := models.NewMonitor(c.display, 0, true, int64(current)+1)
	return []models.Monitor{m}, nil
}

// Workspaces maps desktops 0..n-1 to workspace ids 1..n.
func (c *Client) Workspaces(ctx context.Context) ([]models.Workspace, error) {
	n, err := c.desktops.Count()
	if err != nil {
		return nil, fmt.Errorf("reading _NET_NUMBER_OF_DESKTOPS: %w", err)
	}
	// names are optional in EWMH
	names, err := c.desktops.Names()
	if err != nil {
		logging.Debug().Err(err).Msg("no _NET_DESKTOP_NAMES")
		names = nil
	}

	out := make([]models.Workspace, 0, n)
	for i := 0; i < int(n); i++ {
		w := models.NewWorkspace(int64(i)+1, c.display)
		if i < len(names) {
			w.Name = names[i]
		}
		out = append(out, w)
	}
	return out, nil
}

// SwitchToWorkspace asks the window manager to show desktop id-1.
func (c *Client) SwitchToWorkspace(ctx context.Context, id int64) error {
	if id < 1 {
		return fmt.Errorf("desktop id %d out of range", id)
	}
	if err := c.desktops.Activate(int(id - 1)); err != nil {
		return fmt.Errorf("requesting desktop %d: %w", id-1, err)
	}
	return nil
}

// Close drops the X connection.
func (c *Client) Close() error {
	c.desktops.Close()
	return nil
}
