package cmd

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/sectorlens/internal/render"
	"github.com/KaramelBytes/sectorlens/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumGroup      string
	sumJSON       bool
	sumOutputPath string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the subsector breakdown for all records or one group",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := loadController(cmd.Context())
		if err != nil {
			return err
		}
		sel := ctrl.Selection(sumGroup)

		var out []byte
		if sumJSON {
			v, err := ctrl.View(sel)
			if err != nil {
				return err
			}
			if out, err = utils.PrettyJSON(v); err != nil {
				return err
			}
			out = append(out, '\n')
		} else {
			var buf bytes.Buffer
			st, err := ctrl.State()
			if err != nil {
				return err
			}
			fmt.Fprintf(&buf, "# %s\n\n", st.Dataset.Source)
			fmt.Fprintf(&buf, "- sheet: %s\n", st.Dataset.Sheet)
			fmt.Fprintf(&buf, "- snapshot: %s\n", st.Dataset.ID)
			fmt.Fprintf(&buf, "- group column: %s\n", orDash(st.Group.Header))
			fmt.Fprintf(&buf, "- subsector column: %s\n\n", st.Subsector.Header)
			if err := ctrl.Render(render.NewText(&buf), sel); err != nil {
				return err
			}
			out = buf.Bytes()
		}

		// Decide where to write: --output path or stdout
		if sumOutputPath != "" {
			if err := utils.SafeWriteFile(sumOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumGroup, "group", "g", "", "group value to filter by (default all; the all label also selects all)")
	summaryCmd.Flags().BoolVar(&sumJSON, "json", false, "print the view as JSON")
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the summary")
}
