// Package compositortest provides an in-memory compositor.Client for tests.
package compositortest

import (
	"context"
	"slices"

	"github.com/a9sk/hypr-cycle/internal/compositor"
	"github.com/a9sk/hypr-cycle/internal/models"
)

var _ compositor.Client = (*Fake)(nil)

// Fake returns canned data and records every call made to it.
// Set the *Err fields to make the matching operation fail.
type Fake struct {
	MonitorList   []models.Monitor
	WorkspaceList []models.Workspace

	MonitorsErr   error
	WorkspacesErr error
	SwitchErr     error

	MonitorsCalls   int
	WorkspacesCalls int
	SwitchCalls     []int64
}

// New returns a fake seeded with monitors and workspaces.
func New(monitors []models.Monitor, workspaces []models.Workspace) *Fake {
	return &Fake{MonitorList: monitors, WorkspaceList: workspaces}
}

func (f *Fake) Monitors(ctx context.Context) ([]models.Monitor, error) {
	f.MonitorsCalls++
	if f.MonitorsErr != nil {
		return nil, f.MonitorsErr
	}
	return slices.Clone(f.MonitorList), nil
}

func (f *Fake) Workspaces(ctx context.Context) ([]models.Workspace, error) {
	f.WorkspacesCalls++
	if f.WorkspacesErr != nil {
		return nil, f.WorkspacesErr
	}
	return slices.Clone(f.WorkspaceList), nil
}

func (f *Fake) SwitchToWorkspace(ctx context.Context, id int64) error {
	f.SwitchCalls = append(f.SwitchCalls, id)
	return f.SwitchErr
}

// Fixture data: eDP-1 is focused and shows workspace 1, HDMI-1 shows 3.
// eDP-1 also owns the scratchpad -97.

// Monitors returns the two-monitor fixture.
func Monitors() []models.Monitor {
	return []models.Monitor{
		models.NewMonitor("eDP-1", 1, true, 1),
		models.NewMonitor("HDMI-1", 2, false, 3),
	}
}

// Workspaces returns the fixture workspaces, scratchpad included.
func Workspaces() []models.Workspace {
	return []models.Workspace{
		models.NewWorkspace(-97, "eDP-1"),
		models.NewWorkspace(1, "eDP-1"),
		models.NewWorkspace(2, "eDP-1"),
		models.NewWorkspace(3, "HDMI-1"),
	}
}

// Fixture returns a fake seeded with Monitors and Workspaces.
func Fixture() *Fake {
	return New(Monitors(), Workspaces())
}
