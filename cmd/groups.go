package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the group values in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := loadController(cmd.Context())
		if err != nil {
			return err
		}
		st, err := ctrl.State()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !st.Group.Found {
			fmt.Fprintln(out, "(no group column)")
			return nil
		}
		if len(st.Groups) == 0 {
			fmt.Fprintln(out, "(no groups)")
			return nil
		}
		for _, g := range st.Groups {
			fmt.Fprintf(out, "- %s\n", g)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}
