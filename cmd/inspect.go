package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/geotally/internal/config"
	"github.com/KaramelBytes/geotally/internal/loader"
	"github.com/KaramelBytes/geotally/internal/tally"
)

var (
	inspectColumn    int
	inspectDelim     string
	inspectSheetName string
	inspectSheetIdx  int
	inspectTop       int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Tally a label column and print the frequency table without rendering",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := activeConfig()
		if err := applyInspectFlags(cmd, c); err != nil {
			return err
		}

		// Pipeline failures are recovered here like render does: report
		// and end the run normally, never through cobra's error path.
		res, err := loader.Load(path, loaderOptions(c))
		if err != nil {
			var readErr *loader.ReadError
			if errors.As(err, &readErr) && len(res.Labels) > 0 {
				fmt.Fprintf(os.Stderr, "⚠ Warning: %v; summary covers the %d labels read before the failure\n", err, len(res.Labels))
			} else {
				fmt.Fprintln(os.Stderr, "✗", err)
				return nil
			}
		}

		table, err := tally.Count(res.Labels)
		if err != nil {
			fmt.Printf("%s: no valid data (%d rows, %d short rows skipped, %d blank)\n",
				path, res.Rows, res.ShortRows, res.Blank)
			return nil
		}
		fmt.Print(table.Summary(filepath.Base(path), inspectTop))
		if res.ShortRows > 0 || res.Blank > 0 {
			fmt.Printf("\n[NOTES]\n- skipped %d short rows, dropped %d blank fields\n", res.ShortRows, res.Blank)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().IntVar(&inspectColumn, "column", 0, "zero-based column holding the label (overrides config)")
	inspectCmd.Flags().StringVar(&inspectDelim, "delimiter", "", "CSV delimiter: ','|';'|'tab' (overrides config)")
	inspectCmd.Flags().StringVar(&inspectSheetName, "sheet-name", "", "XLSX sheet name (overrides config)")
	inspectCmd.Flags().IntVar(&inspectSheetIdx, "sheet-index", 0, "XLSX sheet index, 1-based (overrides config)")
	inspectCmd.Flags().IntVar(&inspectTop, "top", 20, "number of top values to list (0 lists all)")
	rootCmd.AddCommand(inspectCmd)
}

func applyInspectFlags(cmd *cobra.Command, c *cfgpkg.Global) error {
	f := cmd.Flags()
	if f.Changed("column") {
		if inspectColumn < 0 {
			return fmt.Errorf("--column must be >= 0")
		}
		c.FieldIndex = inspectColumn
	}
	if f.Changed("delimiter") {
		c.Delimiter = inspectDelim
	}
	if _, err := delimRune(c.Delimiter); err != nil {
		return err
	}
	if f.Changed("sheet-name") {
		c.SheetName = inspectSheetName
	}
	if f.Changed("sheet-index") {
		c.SheetIndex = inspectSheetIdx
	}
	return nil
}
