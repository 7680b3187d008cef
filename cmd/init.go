package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/sectorlens/internal/config"
	"github.com/KaramelBytes/sectorlens/internal/utils"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := utils.ExpandHome(cfgFile)
		if path == "" {
			p, err := cfgpkg.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		// Refuse to overwrite an existing config.
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat config: %w", err)
		}

		c, err := cfgpkg.Load(path)
		if err != nil {
			return err
		}
		if flagSource != "" {
			c.Source = flagSource
		}
		if err := cfgpkg.Save(c, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config initialized: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
