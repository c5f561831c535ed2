package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"synthgen/pkg/configload"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Args:  cobra.NoArgs,
	Short: "Validate a config file and report a sizing estimate",
	Long:  `Loads a GeneratorConfig from --config, runs the same validation the HTTP /api/validate endpoint does, and prints any warnings plus a row/column/byte estimate without running the pipeline.`,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config flag is required")
	}

	cfg, err := configload.Load(cfgFile)
	if err != nil {
		return err
	}

	warnings, err := cfg.Validate()
	if err != nil {
		fmt.Printf("invalid: %v\n", err)
		return err
	}

	fmt.Println("config is valid")
	for _, w := range warnings {
		fmt.Printf("  warning: %s\n", w.String())
	}

	est := cfg.Estimate()
	fmt.Printf("estimate: %d rows, %d columns, ~%d bytes\n", est.Rows, est.Columns, est.EstimatedBytes)
	return nil
}
