package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Show the resolved allocator layout",
		Long: `The layout command prints the size classes, pool capacity, arena size,
and OS threshold the allocator would run with, after applying --config.

Example:
  memctl layout
  memctl layout --config layout.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
}

func runLayout() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintf(os.Stdout, "Size classes:")
	for _, class := range cfg.Classes {
		fmt.Fprintf(os.Stdout, " %d", class)
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Pool capacity: %d blocks per class\n", cfg.ClassCap)
	p.Fprintf(os.Stdout, "Arena size: %d bytes\n", cfg.ArenaSize)
	p.Fprintf(os.Stdout, "OS threshold: %d bytes\n", cfg.OSThreshold)
	return nil
}
