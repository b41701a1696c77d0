package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/a9sk/hypr-cycle/internal/models"
)

// PrintMonitorsTable prints monitors in a table format
func PrintMonitorsTable(w io.Writer, monitors []models.Monitor) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Focused", "Workspace")

	for _, m := range monitors {
		focused := ""
		if m.Focused {
			focused = "*"
		}
		table.Append(
			fmt.Sprintf("%d", m.ID),
			m.Name,
			focused,
			workspaceLabel(m.ActiveWorkspace),
		)
	}

	return table.Render()
}

// PrintWorkspacesTable prints workspaces, marking the one equal to current.
func PrintWorkspacesTable(w io.Writer, workspaces []models.Workspace, current models.Workspace) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Monitor", "Active")

	for _, ws := range workspaces {
		active := ""
		if ws.Equal(current) {
			active = "*"
		}
		table.Append(
			fmt.Sprintf("%d", ws.ID),
			ws.Name,
			ws.MonitorName,
			active,
		)
	}

	return table.Render()
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func workspaceLabel(ws models.Workspace) string {
	if ws.Name == "" || ws.Name == fmt.Sprintf("%d", ws.ID) {
		return fmt.Sprintf("%d", ws.ID)
	}
	return fmt.Sprintf("%d (%s)", ws.ID, ws.Name)
}
