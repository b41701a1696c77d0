package models

import (
	"cmp"
	"slices"
)

// Monitor is a snapshot of one output as reported by the compositor.
// ActiveWorkspace is copied at query time, it is not a live reference.
type Monitor struct {
	Name            string    `json:"name"`
	ID              int64     `json:"id"`
	Focused         bool      `json:"focused"`
	ActiveWorkspace Workspace `json:"active_workspace"`
}

// Workspace identifies a workspace and the monitor it is bound to.
// An empty MonitorName means the source did not say which monitor owns it.
type Workspace struct {
	ID          int64  `json:"id"`
	MonitorName string `json:"monitor"`
	Name        string `json:"name,omitempty"` // display name, informational only
}

// NewWorkspace builds a workspace bound to monitorName.
func NewWorkspace(id int64, monitorName string) Workspace {
	return Workspace{ID: id, MonitorName: monitorName}
}

// NewMonitor builds a monitor whose active workspace is bound to the monitor itself.
func NewMonitor(name string, id int64, focused bool, activeID int64) Monitor {
	return Monitor{
		Name:            name,
		ID:              id,
		Focused:         focused,
		ActiveWorkspace: NewWorkspace(activeID, name),
	}
}

// Visible reports whether the workspace is an ordinary one.
// Non-positive ids are special (scratchpad) workspaces.
func (w Workspace) Visible() bool {
	return w.ID > 0
}

// Equal compares the fields that identify a workspace: id and owning monitor.
func (w Workspace) Equal(other Workspace) bool {
	return w.ID == other.ID && w.MonitorName == other.MonitorName
}

// CompareWorkspaces orders workspaces by id, ascending.
func CompareWorkspaces(a, b Workspace) int {
	return cmp.Compare(a.ID, b.ID)
}

// SortWorkspaces sorts ws in place by id.
func SortWorkspaces(ws []Workspace) {
	slices.SortStableFunc(ws, CompareWorkspaces)
}
