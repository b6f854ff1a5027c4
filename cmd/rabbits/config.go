package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rabbit-hunt/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the default config of a variant",
	Long: `Print the embedded default YAML config of a variant (hunt when omitted).
Save it under ~/.rabbits/configs/<variant>.yaml and edit it to change the
game without passing --config.

Examples:
  rabbits config > ~/.rabbits/configs/hunt.yaml
  rabbits config classic`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	variant, err := variantArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data := config.GetDefaultYAML(variant)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no default config for %q\n", variant)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
