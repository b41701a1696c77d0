package main

import (
	"github.com/spf13/cobra"

	"github.com/a9sk/hypr-cycle/internal/output"
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List the monitors reported by the window manager",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, release, err := openService()
		if err != nil {
			return err
		}
		defer release()

		monitors, err := client.Monitors(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return output.PrintJSON(cmd.OutOrStdout(), monitors)
		}
		return output.PrintMonitorsTable(cmd.OutOrStdout(), monitors)
	},
}

func init() {
	rootCmd.AddCommand(monitorsCmd)
}
