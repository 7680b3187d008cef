package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/sectorlens/internal/analysis"
	"github.com/KaramelBytes/sectorlens/internal/app"
	"github.com/KaramelBytes/sectorlens/internal/render"
	"github.com/KaramelBytes/sectorlens/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expOutDir string
	expGroup  string
	expTitle  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the view as static HTML pages plus a PNG chart",
	Long: `Export writes index.html for the selected group (default all), one page per
group so the chips keep working offline, and chart.png for the selection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if expOutDir == "" {
			return errors.New("--out is required")
		}
		ctrl, err := loadController(cmd.Context())
		if err != nil {
			return err
		}
		if err := os.MkdirAll(expOutDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		n, err := exportSite(ctrl, expOutDir, ctrl.Selection(expGroup), expTitle)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d page(s) to %s\n", n, expOutDir)
		return nil
	},
}

// exportSite writes the pages and chart for sel into dir and returns the
// number of pages written.
func exportSite(ctrl *app.Controller, dir string, sel analysis.Selection, title string) (int, error) {
	st, err := ctrl.State()
	if err != nil {
		return 0, err
	}
	if title == "" {
		title = "Subsectores por grupo"
	}

	files := make(map[string]string, len(st.Groups))
	for i, g := range st.Groups {
		files[g] = fmt.Sprintf("grupo-%03d.html", i+1)
	}
	link := func(s analysis.Selection) string {
		if f, ok := files[s.Group]; ok && !s.IsAll() {
			return f
		}
		return "index.html"
	}

	writePage := func(name string, s analysis.Selection) error {
		page := render.NewPage(title, link)
		if err := ctrl.Render(page, s); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := page.Write(&buf); err != nil {
			return err
		}
		return utils.SafeWriteFile(filepath.Join(dir, name), buf.Bytes())
	}

	if err := writePage("index.html", sel); err != nil {
		return 0, fmt.Errorf("write index: %w", err)
	}
	pages := 1
	for _, g := range st.Groups {
		if err := writePage(files[g], analysis.SelectGroup(g)); err != nil {
			return pages, fmt.Errorf("write page for %q: %w", g, err)
		}
		pages++
	}

	v, err := ctrl.View(sel)
	if err != nil {
		return pages, err
	}
	var png bytes.Buffer
	switch err := render.Donut(&png, ctrl.Chart(v), render.PNG); {
	case errors.Is(err, render.ErrEmptyChart):
		fmt.Fprintln(os.Stderr, "⚠ Warning: nothing to chart for this selection; chart.png not written")
	case err != nil:
		return pages, fmt.Errorf("render chart: %w", err)
	default:
		if err := utils.SafeWriteFile(filepath.Join(dir, "chart.png"), png.Bytes()); err != nil {
			return pages, err
		}
	}
	return pages, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&expOutDir, "out", "", "output directory")
	exportCmd.Flags().StringVarP(&expGroup, "group", "g", "", "group shown on index.html (default all)")
	exportCmd.Flags().StringVar(&expTitle, "title", "", "page title")
}
