package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	generator "synthgen/internal/core/domain/generator"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Args:  cobra.MaximumNArgs(1),
	Short: "List built-in domain templates, or print one as a starting config",
	Long:  `With no argument, lists the built-in domain template names. With a name, prints that template's GeneratorConfig as indented JSON to stdout, suitable for redirecting to a file and editing.`,
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(generator.Templates))
		for name := range generator.Templates {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	name := args[0]
	build, ok := generator.Templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	cfg := build(time.Now())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
