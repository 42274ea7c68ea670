package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/geotally/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set geotally configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the built-in defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfgpkg.Save(cfgpkg.Defaults(), cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Wrote default configuration")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		fmt.Printf("field_index: %d\n", c.FieldIndex)
		fmt.Printf("delimiter: %s\n", c.Delimiter)
		if c.SheetName != "" {
			fmt.Printf("sheet_name: %s\n", c.SheetName)
		}
		fmt.Printf("sheet_index: %d\n", c.SheetIndex)
		fmt.Printf("output: %s\n", c.Output)
		fmt.Printf("map_type: %s\n", c.MapType)
		fmt.Printf("title: %s\n", c.Title)
		fmt.Printf("subtitle: %s\n", c.Subtitle)
		fmt.Printf("series_name: %s\n", c.SeriesName)
		fmt.Printf("scale_margin: %d\n", c.ScaleMargin)
		fmt.Printf("width: %s\n", c.Width)
		fmt.Printf("height: %s\n", c.Height)
		fmt.Printf("write_report: %t\n", c.WriteReport)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := activeConfig()
		switch key {
		case "field_index":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid field_index: %s", val)
			}
			c.FieldIndex = n
		case "delimiter":
			if _, err := delimRune(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "sheet_name":
			c.SheetName = val
		case "sheet_index":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid sheet_index: %s", val)
			}
			c.SheetIndex = n
		case "output":
			c.Output = val
		case "map_type":
			c.MapType = val
		case "title":
			c.Title = val
		case "subtitle":
			c.Subtitle = val
		case "series_name":
			c.SeriesName = val
		case "scale_margin":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid scale_margin: %s", val)
			}
			c.ScaleMargin = n
		case "width":
			c.Width = val
		case "height":
			c.Height = val
		case "write_report":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid write_report: %s", val)
			}
			c.WriteReport = b
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		cfg = c
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
