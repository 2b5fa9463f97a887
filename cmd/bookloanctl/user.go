package main

import (
	"encoding/json"
	"fmt"

	"bookloan/internal/adapters/persistence/repositories"

	"github.com/spf13/cobra"
)

// capability flag name -> column
var capabilityFlags = []struct {
	flag   string
	column string
	usage  string
}{
	{"can-create-books", repositories.ColCanCreateBooks, "allow creating books"},
	{"can-edit-books", repositories.ColCanEditBooks, "allow editing books"},
	{"can-disable-books", repositories.ColCanDisableBooks, "allow soft-deleting books"},
	{"can-edit-users", repositories.ColCanEditUsers, "allow reading and editing other users"},
	{"can-disable-users", repositories.ColCanDisableUsers, "allow soft-deleting other users"},
}

func init() {
	for _, f := range capabilityFlags {
		UserGrantCommand.Flags().Bool(f.flag, false, f.usage)
	}
	UserGrantCommand.Flags().Bool("all", false, "grant every capability")

	UserCommand.AddCommand(&UserShowCommand)
	UserCommand.AddCommand(&UserGrantCommand)
	UserCommand.AddCommand(&UserDisableCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Inspect and manage user accounts",
	Long:  "Inspect and manage user accounts",
}

var UserShowCommand = cobra.Command{
	Use:   "show <email>",
	Short: "Print a user as JSON",
	Long:  "Print a user as JSON. The password hash is never printed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(false)
		if err != nil {
			return err
		}

		user, err := b.Stores.Users.GetByEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user %s: %w", args[0], err)
		}
		return printJSON(cmd, user.ToResponse())
	},
}

var UserGrantCommand = cobra.Command{
	Use:   "grant <email>",
	Short: "Set capability flags on a user",
	Long: `Set capability flags on a user. Only the flags given are changed:
  bookloanctl user grant ana@example.org --can-edit-books --can-disable-books=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := repositories.Fields{}
		all, _ := cmd.Flags().GetBool("all")
		for _, f := range capabilityFlags {
			if all {
				fields[f.column] = true
				continue
			}
			if cmd.Flags().Changed(f.flag) {
				v, _ := cmd.Flags().GetBool(f.flag)
				fields[f.column] = v
			}
		}
		if len(fields) == 0 {
			return fmt.Errorf("no capability flag given")
		}

		b, err := openBackend(false)
		if err != nil {
			return err
		}

		user, err := b.Stores.Users.GetByEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user %s: %w", args[0], err)
		}
		user, err = b.Stores.Users.UpdateFields(cmd.Context(), user.ID, fields)
		if err != nil {
			return err
		}
		return printJSON(cmd, user.ToResponse())
	},
}

var UserDisableCommand = cobra.Command{
	Use:   "disable <email>",
	Short: "Soft-delete a user",
	Long:  "Soft-delete a user. Tokens already issued stay valid until they expire.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(false)
		if err != nil {
			return err
		}

		user, err := b.Stores.Users.GetByEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user %s: %w", args[0], err)
		}
		user, err = b.Stores.Users.UpdateFields(cmd.Context(), user.ID, repositories.Fields{repositories.ColActive: false})
		if err != nil {
			return err
		}
		return printJSON(cmd, user.ToResponse())
	},
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
