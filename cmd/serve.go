package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/sectorlens/internal/app"
	"github.com/KaramelBytes/sectorlens/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveTitle string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the filtered view as a web page and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		addr := c.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctrl := app.New(app.OptionsFromConfig(c))
		// keep serving on failure; every route reports the status message
		if err := ctrl.Load(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", app.StatusMessage(err))
		} else if st, err := ctrl.State(); err == nil {
			fmt.Printf("✓ Loaded %d rows from %s (sheet %s)\n", st.Dataset.Len(), st.Dataset.Source, st.Dataset.Sheet)
		}

		fmt.Printf("✓ Serving on http://%s\n", addr)
		return server.New(ctrl, serveTitle).ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides listen_addr)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "page title")
}
