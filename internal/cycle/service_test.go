package cycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a9sk/hypr-cycle/internal/compositor/compositortest"
	"github.com/a9sk/hypr-cycle/internal/models"
)

var ctx = context.Background()

func TestFocusedMonitor(t *testing.T) {
	svc := New(compositortest.Fixture())

	m, err := svc.FocusedMonitor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eDP-1", m.Name)
	assert.Equal(t, compositortest.Monitors()[0], m)
}

func TestFocusedMonitorNoneFocused(t *testing.T) {
	fake := compositortest.New([]models.Monitor{
		models.NewMonitor("eDP-1", 1, false, 1),
		models.NewMonitor("HDMI-1", 2, false, 3),
	}, compositortest.Workspaces())

	_, err := New(fake).FocusedMonitor(ctx)
	assert.ErrorIs(t, err, ErrNoFocusedMonitor)
}

func TestFocusedMonitorEmpty(t *testing.T) {
	_, err := New(compositortest.New(nil, nil)).FocusedMonitor(ctx)
	assert.ErrorIs(t, err, ErrNoFocusedMonitor)
}

func TestFocusedMonitorFirstWinsOnTie(t *testing.T) {
	fake := compositortest.New([]models.Monitor{
		models.NewMonitor("DP-2", 3, false, 5),
		models.NewMonitor("HDMI-1", 2, true, 3),
		models.NewMonitor("eDP-1", 1, true, 1),
	}, nil)

	m, err := New(fake).FocusedMonitor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HDMI-1", m.Name)
}

func TestFocusedMonitorTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	fake := compositortest.Fixture()
	fake.MonitorsErr = boom

	_, err := New(fake).FocusedMonitor(ctx)
	assert.Same(t, boom, err)
}

func TestWorkspacesForMonitor(t *testing.T) {
	svc := New(compositortest.Fixture())

	got, err := svc.WorkspacesForMonitor(ctx, compositortest.Monitors()[0])
	require.NoError(t, err)
	assert.Equal(t, []models.Workspace{
		models.NewWorkspace(1, "eDP-1"),
		models.NewWorkspace(2, "eDP-1"),
	}, got)
}

func TestWorkspacesForMonitorSortsAndFilters(t *testing.T) {
	fake := compositortest.New(compositortest.Monitors(), []models.Workspace{
		models.NewWorkspace(9, "eDP-1"),
		models.NewWorkspace(0, "eDP-1"),
		models.NewWorkspace(4, "HDMI-1"),
		models.NewWorkspace(2, "eDP-1"),
		models.NewWorkspace(-98, "eDP-1"),
		models.NewWorkspace(5, ""),
		models.NewWorkspace(7, "eDP-1"),
	})

	got, err := New(fake).WorkspacesForMonitor(ctx, compositortest.Monitors()[0])
	require.NoError(t, err)

	var ids []int64
	for _, w := range got {
		assert.Equal(t, "eDP-1", w.MonitorName)
		assert.True(t, w.Visible())
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []int64{2, 7, 9}, ids)
}

func TestWorkspacesForMonitorOnlyHidden(t *testing.T) {
	fake := compositortest.New(compositortest.Monitors(), []models.Workspace{
		models.NewWorkspace(-97, "eDP-1"),
		models.NewWorkspace(3, "HDMI-1"),
	})

	_, err := New(fake).WorkspacesForMonitor(ctx, compositortest.Monitors()[0])
	require.ErrorIs(t, err, ErrNoWorkspacesForMonitor)
	assert.Contains(t, err.Error(), "eDP-1")
}

func TestWorkspacesForMonitorTransportError(t *testing.T) {
	boom := errors.New("malformed response")
	fake := compositortest.Fixture()
	fake.WorkspacesErr = boom

	_, err := New(fake).WorkspacesForMonitor(ctx, compositortest.Monitors()[0])
	assert.Same(t, boom, err)
}

func TestCurrentWorkspace(t *testing.T) {
	fake := compositortest.Fixture()

	got, err := New(fake).CurrentWorkspace(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewWorkspace(1, "eDP-1"), got)
	assert.Zero(t, fake.WorkspacesCalls, "current workspace comes from the monitor record")
}

func TestCurrentWorkspaceNoFocus(t *testing.T) {
	fake := compositortest.New([]models.Monitor{models.NewMonitor("eDP-1", 1, false, 1)}, nil)

	_, err := New(fake).CurrentWorkspace(ctx)
	assert.ErrorIs(t, err, ErrNoFocusedMonitor)
}

func TestTargetWorkspaceScenario(t *testing.T) {
	svc := New(compositortest.Fixture())

	next, err := svc.TargetWorkspace(ctx, models.Next)
	require.NoError(t, err)
	assert.Equal(t, models.NewWorkspace(2, "eDP-1"), next)

	prev, err := svc.TargetWorkspace(ctx, models.Previous)
	require.NoError(t, err)
	assert.Equal(t, models.NewWorkspace(2, "eDP-1"), prev)
}

func TestTargetWorkspaceWraps(t *testing.T) {
	ws := []models.Workspace{
		models.NewWorkspace(1, "DP-1"),
		models.NewWorkspace(4, "DP-1"),
		models.NewWorkspace(6, "DP-1"),
	}

	tests := []struct {
		name   string
		active int64
		dir    models.Direction
		want   int64
	}{
		{"next from first", 1, models.Next, 4},
		{"next from middle", 4, models.Next, 6},
		{"next wraps to first", 6, models.Next, 1},
		{"previous from last", 6, models.Previous, 4},
		{"previous from middle", 4, models.Previous, 1},
		{"previous wraps to last", 1, models.Previous, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := compositortest.New([]models.Monitor{models.NewMonitor("DP-1", 0, true, tt.active)}, ws)

			got, err := New(fake).TargetWorkspace(ctx, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestTargetWorkspaceSingle(t *testing.T) {
	fake := compositortest.New(
		[]models.Monitor{models.NewMonitor("DP-1", 0, true, 3)},
		[]models.Workspace{models.NewWorkspace(3, "DP-1")},
	)
	svc := New(fake)

	for _, dir := range []models.Direction{models.Next, models.Previous} {
		got, err := svc.TargetWorkspace(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
	}
}

func TestTargetWorkspaceHiddenActive(t *testing.T) {
	fake := compositortest.New(
		[]models.Monitor{models.NewMonitor("eDP-1", 1, true, -97)},
		compositortest.Workspaces(),
	)

	_, err := New(fake).TargetWorkspace(ctx, models.Next)
	require.ErrorIs(t, err, ErrCurrentWorkspaceNotFound)
	assert.Contains(t, err.Error(), "-97")
	assert.Empty(t, fake.SwitchCalls)
}

func TestTargetWorkspaceNoWorkspaces(t *testing.T) {
	fake := compositortest.New(compositortest.Monitors(), []models.Workspace{models.NewWorkspace(3, "HDMI-1")})

	_, err := New(fake).TargetWorkspace(ctx, models.Next)
	assert.ErrorIs(t, err, ErrNoWorkspacesForMonitor)
}

func TestSwitchToWorkspace(t *testing.T) {
	fake := compositortest.Fixture()

	err := New(fake).SwitchToWorkspace(ctx, compositortest.Workspaces()[0])
	require.NoError(t, err)
	assert.Equal(t, []int64{-97}, fake.SwitchCalls)
}

func TestSwitchToWorkspaceErrorVerbatim(t *testing.T) {
	boom := errors.New("command rejected")
	fake := compositortest.Fixture()
	fake.SwitchErr = boom

	err := New(fake).SwitchToWorkspace(ctx, models.NewWorkspace(2, "eDP-1"))
	assert.Same(t, boom, err)
	assert.Len(t, fake.SwitchCalls, 1, "no retry")
}

func TestCycleSwitchesOnce(t *testing.T) {
	for _, dir := range []models.Direction{models.Next, models.Previous} {
		t.Run(dir.String(), func(t *testing.T) {
			fake := compositortest.Fixture()

			got, err := New(fake).Cycle(ctx, dir)
			require.NoError(t, err)
			assert.Equal(t, int64(2), got.ID)
			assert.Equal(t, []int64{2}, fake.SwitchCalls)
		})
	}
}

func TestCycleDryRun(t *testing.T) {
	fake := compositortest.Fixture()

	got, err := New(fake, WithDryRun(true)).Cycle(ctx, models.Next)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	assert.Empty(t, fake.SwitchCalls)
}

func TestCycleNoSwitchOnFailure(t *testing.T) {
	fake := compositortest.Fixture()
	fake.WorkspacesErr = errors.New("socket closed")

	_, err := New(fake).Cycle(ctx, models.Next)
	require.Error(t, err)
	assert.Empty(t, fake.SwitchCalls)
}

func TestCycleSwitchError(t *testing.T) {
	fake := compositortest.Fixture()
	fake.SwitchErr = errors.New("rejected")

	_, err := New(fake).Cycle(ctx, models.Next)
	assert.EqualError(t, err, "rejected")
}

func TestStep(t *testing.T) {
	assert.Equal(t, -1, Step(0, 0, models.Next))
	assert.Equal(t, 0, Step(0, 1, models.Next))
	assert.Equal(t, 0, Step(0, 1, models.Previous))
	assert.Equal(t, 1, Step(0, 2, models.Previous))
	assert.Equal(t, 0, Step(4, 5, models.Next))
	assert.Equal(t, 4, Step(0, 5, models.Previous))
}

func TestStepRoundTrip(t *testing.T) {
	for n := 1; n <= 12; n++ {
		seen := make(map[int]bool, n)
		for i := 0; i < n; i++ {
			next := Step(i, n, models.Next)
			assert.Equal(t, i, Step(next, n, models.Previous), "n=%d i=%d", n, i)
			assert.Equal(t, i, Step(Step(i, n, models.Previous), n, models.Next), "n=%d i=%d", n, i)
			assert.Equal(t, (i+1)%n, next)
			seen[next] = true
		}
		assert.Len(t, seen, n, "next is a bijection for n=%d", n)
	}
}
