package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/sectorlens/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Sectorlens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "source: %s\n", cfg.Source)
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %s\n", cfg.Delimiter)
		}
		fmt.Fprintf(out, "group_patterns: %s\n", strings.Join(cfg.GroupPatterns, ", "))
		fmt.Fprintf(out, "subsector_patterns: %s\n", strings.Join(cfg.SubsectorPatterns, ", "))
		fmt.Fprintf(out, "preview_limit: %d\n", cfg.PreviewLimit)
		fmt.Fprintf(out, "all_label: %s\n", cfg.AllLabel)
		fmt.Fprintf(out, "locale: %s\n", cfg.Locale)
		fmt.Fprintf(out, "chart_palette: %s\n", strings.Join(cfg.ChartPalette, ", "))
		fmt.Fprintf(out, "chart_size: %d\n", cfg.ChartSize)
		fmt.Fprintf(out, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := requireConfig()
		if err != nil {
			return err
		}
		switch key {
		case "source":
			c.Source = val
		case "sheet":
			c.Sheet = val
		case "delimiter":
			c.Delimiter = val
			if val != "" && c.DelimiterRune() == 0 {
				return fmt.Errorf("invalid delimiter: %s (use ','|';'|'tab')", val)
			}
		case "group_patterns":
			c.GroupPatterns = splitList(val)
		case "subsector_patterns":
			p := splitList(val)
			if len(p) == 0 {
				return fmt.Errorf("subsector_patterns cannot be empty")
			}
			c.SubsectorPatterns = p
		case "preview_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for preview_limit: %v", val)
			}
			c.PreviewLimit = i
		case "all_label":
			c.AllLabel = val
		case "locale":
			c.Locale = val
		case "chart_palette":
			c.ChartPalette = splitList(val)
		case "chart_size":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for chart_size: %v", val)
			}
			c.ChartSize = i
		case "listen_addr":
			c.ListenAddr = val
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			c.HTTPTimeoutSec = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

// splitList parses a comma-separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
