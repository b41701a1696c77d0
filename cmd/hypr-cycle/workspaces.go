package main

import (
	"github.com/spf13/cobra"

	"github.com/a9sk/hypr-cycle/internal/models"
	"github.com/a9sk/hypr-cycle/internal/output"
)

var showAllWorkspaces bool

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List the focused monitor's workspaces in cycling order",
	Long: `Lists the workspaces hypr-cycle would visit on the focused monitor, in
order, marking the active one. With --all every workspace the window
manager knows about is listed, special workspaces included.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, client, release, err := openService()
		if err != nil {
			return err
		}
		defer release()

		ctx := cmd.Context()
		monitor, err := svc.FocusedMonitor(ctx)
		if err != nil {
			return err
		}

		var workspaces []models.Workspace
		if showAllWorkspaces {
			workspaces, err = client.Workspaces(ctx)
			models.SortWorkspaces(workspaces)
		} else {
			workspaces, err = svc.WorkspacesForMonitor(ctx, monitor)
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return output.PrintJSON(cmd.OutOrStdout(), workspaces)
		}
		return output.PrintWorkspacesTable(cmd.OutOrStdout(), workspaces, monitor.ActiveWorkspace)
	},
}

func init() {
	workspacesCmd.Flags().BoolVar(&showAllWorkspaces, "all", false, "list every workspace on every monitor")
	rootCmd.AddCommand(workspacesCmd)
}
