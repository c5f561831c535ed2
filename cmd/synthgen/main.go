// Command synthgen is the CLI front end for the generation pipeline:
// generate/validate a config from the shell, list built-in domain
// templates, or run the HTTP server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "synthgen",
	Short:   "Synthetic time-series data generator",
	Long:    `synthgen produces realistic, configurable synthetic time-series datasets for telecom, finance, healthcare, manufacturing, ecommerce, and IoT domains.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a generator config YAML/JSON file")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
