// Package cycle resolves the focused monitor's workspaces and moves it one
// workspace forward or backward, wrapping at both ends.
package cycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/a9sk/hypr-cycle/internal/compositor"
	"github.com/a9sk/hypr-cycle/internal/logging"
	"github.com/a9sk/hypr-cycle/internal/models"
)

var (
	ErrNoFocusedMonitor         = errors.New("no focused monitor found")
	ErrNoWorkspacesForMonitor   = errors.New("no workspaces found for monitor")
	ErrCurrentWorkspaceNotFound = errors.New("current workspace not found")
)

// Service owns a compositor client for its whole lifetime.
// It keeps no state between calls: every operation queries the compositor again.
type Service struct {
	client compositor.Client
	dryRun bool
}

// Option configures a Service.
type Option func(*Service)

// WithDryRun makes Cycle resolve the target without switching to it.
func WithDryRun(dryRun bool) Option {
	return func(s *Service) { s.dryRun = dryRun }
}

// New returns a service backed by client.
func New(client compositor.Client, opts ...Option) *Service {
	s := &Service{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FocusedMonitor returns the monitor that has focus. The compositor reports
// at most one; if several are flagged anyway the first one listed wins.
func (s *Service) FocusedMonitor(ctx context.Context) (models.Monitor, error) {
	monitors, err := s.client.Monitors(ctx)
	if err != nil {
		return models.Monitor{}, err
	}

	var (
		focused models.Monitor
		found   int
	)
	for _, m := range monitors {
		if !m.Focused {
			continue
		}
		if found == 0 {
			focused = m
		}
		found++
	}

	switch {
	case found == 0:
		return models.Monitor{}, ErrNoFocusedMonitor
	case found > 1:
		logging.Warn().Int("focused", found).Str("monitor", focused.Name).Msg("several monitors report focus, using the first")
	}

	logging.Debug().Str("monitor", focused.Name).Int64("active", focused.ActiveWorkspace.ID).Msg("focused monitor")
	return focused, nil
}

// WorkspacesForMonitor returns the visible workspaces bound to monitor,
// sorted by id.
func (s *Service) WorkspacesForMonitor(ctx context.Context, monitor models.Monitor) ([]models.Workspace, error) {
	workspaces, err := s.client.Workspaces(ctx)
	if err != nil {
		return nil, err
	}

	var owned []models.Workspace
	for _, w := range workspaces {
		if w.MonitorName == monitor.Name && w.Visible() {
			owned = append(owned, w)
		}
	}
	if len(owned) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoWorkspacesForMonitor, monitor.Name)
	}

	models.SortWorkspaces(owned)
	return owned, nil
}

// CurrentWorkspace returns the focused monitor's active workspace as the
// monitor reported it.
func (s *Service) CurrentWorkspace(ctx context.Context) (models.Workspace, error) {
	monitor, err := s.FocusedMonitor(ctx)
	if err != nil {
		return models.Workspace{}, err
	}
	return monitor.ActiveWorkspace, nil
}

// TargetWorkspace returns the workspace one step away from the current one in
// direction dir. A hidden active workspace is not part of the visible list, so
// it yields ErrCurrentWorkspaceNotFound.
func (s *Service) TargetWorkspace(ctx context.Context, dir models.Direction) (models.Workspace, error) {
	monitor, err := s.FocusedMonitor(ctx)
	if err != nil {
		return models.Workspace{}, err
	}
	workspaces, err := s.WorkspacesForMonitor(ctx, monitor)
	if err != nil {
		return models.Workspace{}, err
	}
	current, err := s.CurrentWorkspace(ctx)
	if err != nil {
		return models.Workspace{}, err
	}

	idx := indexOf(workspaces, current)
	if idx < 0 {
		return models.Workspace{}, fmt.Errorf("%w: workspace %d on %s", ErrCurrentWorkspaceNotFound, current.ID, monitor.Name)
	}

	target := workspaces[Step(idx, len(workspaces), dir)]
	logging.Debug().
		Str("direction", dir.String()).
		Int64("from", current.ID).
		Int64("to", target.ID).
		Int("count", len(workspaces)).
		Msg("resolved target workspace")
	return target, nil
}

// SwitchToWorkspace issues one switch command for target. It does not retry.
func (s *Service) SwitchToWorkspace(ctx context.Context, target models.Workspace) error {
	return s.client.SwitchToWorkspace(ctx, target.ID)
}

// Cycle moves the focused monitor one workspace in direction dir and returns
// the workspace it switched to. Nothing is sent unless the target resolved.
func (s *Service) Cycle(ctx context.Context, dir models.Direction) (models.Workspace, error) {
	target, err := s.TargetWorkspace(ctx, dir)
	if err != nil {
		return models.Workspace{}, err
	}
	if s.dryRun {
		logging.Info().Int64("workspace", target.ID).Msg("dry run, not switching")
		return target, nil
	}
	if err := s.SwitchToWorkspace(ctx, target); err != nil {
		return models.Workspace{}, err
	}
	logging.Info().Int64("workspace", target.ID).Str("monitor", target.MonitorName).Msg("switched workspace")
	return target, nil
}

// Step returns the index one step from index in a ring of length elements.
// It returns -1 when length is not positive.
func Step(index, length int, dir models.Direction) int {
	if length < 1 {
		return -1
	}
	switch dir {
	case models.Previous:
		return (index + length - 1) % length
	default:
		return (index + 1) % length
	}
}

func indexOf(ws []models.Workspace, target models.Workspace) int {
	for i, w := range ws {
		if w.Equal(target) {
			return i
		}
	}
	return -1
}
