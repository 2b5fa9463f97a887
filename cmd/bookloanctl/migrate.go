package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&MigrateCommand)
}

var MigrateCommand = cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	Long:  "Create or update SQL tables, or MongoDB indexes, for the configured store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openBackend(true); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "done")
		return nil
	},
}
