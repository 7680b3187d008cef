package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/sectorlens/internal/columns"
	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show the spreadsheet headers and which ones were bound to each field",
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
		fmt.Fprintf(out, "headers (%d):\n", len(st.Dataset.Headers))
		for _, h := range st.Dataset.Headers {
			fmt.Fprintf(out, "  - %s\n", h)
		}
		fmt.Fprintln(out, "fields:")
		for _, b := range []columns.Binding{st.Group, st.Subsector} {
			fmt.Fprintf(out, "  %s\n", describeBinding(b))
		}
		return nil
	},
}

func describeBinding(b columns.Binding) string {
	kind := "optional"
	if b.Field.Required {
		kind = "required"
	}
	patterns := strings.Join(b.Field.Patterns, ", ")
	if !b.Found {
		return fmt.Sprintf("%s (%s): not found [%s]", b.Field.Name, kind, patterns)
	}
	return fmt.Sprintf("%s (%s): %s [%s]", b.Field.Name, kind, b.Header, patterns)
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
