package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/geotally/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "geotally",
	Short: "geotally: turn a contact export into a region distribution map",
	Long:  `geotally reads a contact-export spreadsheet (CSV/TSV/XLSX), tallies one categorical column such as the province of each contact, and renders the distribution as an interactive choropleth HTML map.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.geotally/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, or built-in defaults when
// loading failed or never ran (e.g. in tests calling run functions directly).
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Defaults()
}
